// Package main runs the copywriter agent against the storefront backend and
// prints its copy as JSON. Piping the output somewhere useful is the
// operator's job.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nnmag/storefront/config"
	"github.com/nnmag/storefront/internal/agent"
	"github.com/nnmag/storefront/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var backendURL, model string

	cmd := &cobra.Command{
		Use:   "copywriter",
		Short: "Draft a blurb and contributor credits for the newest issue",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(os.Getenv("LOG_LEVEL"), false)

			cfg := config.Load().Agent
			if backendURL != "" {
				cfg.BackendURL = backendURL
			}
			if model != "" {
				cfg.Model = model
			}
			if cfg.GoogleAIAPIKey == "" {
				return fmt.Errorf("GOOGLE_AI_API_KEY is required")
			}

			ctx := context.Background()
			copywriter, err := agent.NewCopywriter(ctx, cfg, &googlegenai.GoogleAI{
				APIKey: cfg.GoogleAIAPIKey,
			})
			if err != nil {
				return err
			}

			result, err := copywriter.Run(ctx)
			if err != nil {
				log.Error().Err(err).Msg("Copywriter run failed")
				return err
			}

			out, err := json.Marshal(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&backendURL, "backend-url", "", "storefront backend base URL (default from BACKEND_URL)")
	cmd.Flags().StringVar(&model, "model", "", "model name (default from AGENT_MODEL)")
	return cmd
}
