package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/api"
	"github.com/firebase/genkit/go/genkit"
	"github.com/rs/zerolog/log"

	"github.com/nnmag/storefront/config"
	"github.com/nnmag/storefront/internal/domain/dto"
)

const systemPrompt = "You are the copywriter for an independent magazine. " +
	"Use the available tools to look at the newest issue before writing. " +
	"Keep the tone warm and concise."

// Copy is the copywriter's output for one issue.
type Copy struct {
	Blurb   string `json:"blurb"`
	Credits string `json:"credits"`
}

// Copywriter binds the issue catalog tools to a model and runs the two
// editorial prompts against it.
type Copywriter struct {
	genkit  *genkit.Genkit
	backend *BackendClient
	model   string
	tools   []ai.ToolRef
}

// NewCopywriter initializes the model plugin and defines the catalog tools.
func NewCopywriter(ctx context.Context, cfg config.AgentConfig, plugins ...api.Plugin) (*Copywriter, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("agent model is required")
	}

	g := genkit.Init(ctx, genkit.WithPlugins(plugins...))

	cw := &Copywriter{
		genkit:  g,
		backend: NewBackendClient(cfg.BackendURL),
		model:   cfg.Model,
	}
	cw.defineTools(ctx)
	return cw, nil
}

func (cw *Copywriter) defineTools(ctx context.Context) {
	latestText := genkit.DefineTool(cw.genkit, "latestIssueText",
		"Returns the catalog text of the newest issue: title, blurb, and contributor credits",
		func(toolCtx *ai.ToolContext, _ struct{}) (string, error) {
			timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			issue, err := cw.backend.LatestIssueData(timeoutCtx)
			if err != nil {
				return "", err
			}
			return formatIssueText(issue), nil
		})

	latestCredits := genkit.DefineTool(cw.genkit, "latestIssueCredits",
		"Returns the contributor credits of the newest issue",
		func(toolCtx *ai.ToolContext, _ struct{}) (string, error) {
			timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			issue, err := cw.backend.LatestIssueData(timeoutCtx)
			if err != nil {
				return "", err
			}
			return formatCredits(issue), nil
		})

	cw.tools = []ai.ToolRef{latestText, latestCredits}
}

// Run produces a blurb and a credits list for the newest issue.
func (cw *Copywriter) Run(ctx context.Context) (*Copy, error) {
	log.Info().Str("model", cw.model).Msg("Running copywriter")

	blurb, err := cw.generate(ctx,
		"Write a short blurb for the newest issue of our magazine. "+
			"Look the issue up with latestIssueText first.")
	if err != nil {
		return nil, fmt.Errorf("failed to write blurb: %w", err)
	}

	credits, err := cw.generate(ctx,
		"List the contributors of the newest issue and their roles, one per line. "+
			"Look them up with latestIssueCredits first.")
	if err != nil {
		return nil, fmt.Errorf("failed to write credits: %w", err)
	}

	return &Copy{Blurb: blurb, Credits: credits}, nil
}

func (cw *Copywriter) generate(ctx context.Context, prompt string) (string, error) {
	response, err := genkit.Generate(ctx, cw.genkit,
		ai.WithSystem(systemPrompt),
		ai.WithPrompt(prompt),
		ai.WithModelName(cw.model),
		ai.WithTools(cw.tools...),
		ai.WithMaxTurns(4),
	)
	if err != nil {
		return "", err
	}
	return response.Text(), nil
}

// formatIssueText renders issue metadata as plain text for the model.
func formatIssueText(issue *dto.IssueDataResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Issue %d: %s\n", issue.Number, issue.Title)
	if issue.PublishedAt != "" {
		fmt.Fprintf(&b, "Published: %s\n", issue.PublishedAt)
	}
	if issue.Blurb != "" {
		fmt.Fprintf(&b, "Current blurb: %s\n", issue.Blurb)
	}
	if len(issue.Contributors) > 0 {
		b.WriteString(formatCredits(issue))
	}
	return b.String()
}

// formatCredits renders the contributor list as plain text for the model.
func formatCredits(issue *dto.IssueDataResponse) string {
	if len(issue.Contributors) == 0 {
		return "No contributors listed.\n"
	}
	var b strings.Builder
	b.WriteString("Contributors:\n")
	for _, contributor := range issue.Contributors {
		fmt.Fprintf(&b, "- %s (%s)\n", contributor.Name, contributor.Role)
	}
	return b.String()
}
