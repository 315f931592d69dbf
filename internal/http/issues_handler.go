package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nnmag/storefront/internal/domain/dto"
	"github.com/nnmag/storefront/internal/domain/model"
	"github.com/nnmag/storefront/internal/i18n"
	"github.com/nnmag/storefront/internal/metrics"
	"github.com/nnmag/storefront/internal/service"
)

// maxUploadBytes caps issue PDF uploads at 64 MiB.
const maxUploadBytes = 64 << 20

// IssuesHandler provides HTTP handlers for the magazine issue routes.
//
// Download endpoints respond with the signed URL as plain text; the reader app
// follows it directly. Metadata endpoints use JSON.
type IssuesHandler struct {
	issueService service.IssueService
}

// NewIssuesHandler creates a new issues handler.
func NewIssuesHandler(issueService service.IssueService) *IssuesHandler {
	return &IssuesHandler{
		issueService: issueService,
	}
}

// Count handles GET /issue/count requests.
//
// @Summary      Count issues
// @Description  Returns the number of published issues.
// @Tags         Issues
// @Produce      json
// @Success      200 {object} dto.IssueCountResponse "Issue count"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /issue/count [get]
func (h *IssuesHandler) Count(c *gin.Context) {
	builder := NewResponseBuilder(c)

	count, err := h.issueService.Count(c.Request.Context())
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	c.JSON(http.StatusOK, dto.IssueCountResponse{Count: int(count)})
}

// Latest handles GET /issue/latest requests.
//
// @Summary      Latest issue download URL
// @Description  Returns a short-lived signed download URL for the most recent issue PDF, as plain text.
// @Tags         Issues
// @Produce      plain
// @Success      200 {string} string "Signed download URL"
// @Failure      404 {object} dto.ErrorResponse "No issues published yet"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /issue/latest [get]
func (h *IssuesHandler) Latest(c *gin.Context) {
	builder := NewResponseBuilder(c)

	url, err := h.issueService.LatestSignedURL(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrIssueNotFound) {
			builder.Error(http.StatusNotFound, i18n.ErrKeyNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	metrics.RecordIssueDownload("latest")
	c.String(http.StatusOK, url)
}

// ByNumber handles GET /issue/:number requests.
//
// @Summary      Issue download URL
// @Description  Returns a short-lived signed download URL for the given issue PDF, as plain text.
// @Tags         Issues
// @Produce      plain
// @Param        number path int true "Issue number"
// @Success      200 {string} string "Signed download URL"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid issue number"
// @Failure      404 {object} dto.ErrorResponse "Issue not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /issue/{number} [get]
func (h *IssuesHandler) ByNumber(c *gin.Context) {
	builder := NewResponseBuilder(c)

	number, ok := h.issueNumber(c)
	if !ok {
		return
	}

	url, err := h.issueService.SignedURL(c.Request.Context(), number)
	if err != nil {
		if errors.Is(err, service.ErrIssueNotFound) {
			builder.Error(http.StatusNotFound, i18n.ErrKeyNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	metrics.RecordIssueDownload("number")
	c.String(http.StatusOK, url)
}

// Data handles GET /issue_data/:number requests.
//
// @Summary      Issue metadata
// @Description  Returns the editorial metadata of an issue: title, blurb, and contributor credits.
// @Tags         Issues
// @Produce      json
// @Param        number path int true "Issue number"
// @Success      200 {object} dto.IssueDataResponse "Issue metadata"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid issue number"
// @Failure      404 {object} dto.ErrorResponse "Issue not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /issue_data/{number} [get]
func (h *IssuesHandler) Data(c *gin.Context) {
	builder := NewResponseBuilder(c)

	number, ok := h.issueNumber(c)
	if !ok {
		return
	}

	issue, err := h.issueService.Data(c.Request.Context(), number)
	if err != nil {
		if errors.Is(err, service.ErrIssueNotFound) {
			builder.Error(http.StatusNotFound, i18n.ErrKeyNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	c.JSON(http.StatusOK, issueDataResponse(issue))
}

// Upload handles POST /upload requests. Requires authentication.
//
// @Summary      Upload issue
// @Description  Stores an issue PDF and records it in the catalog. Re-uploading an existing issue number replaces it.
// @Tags         Issues
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Issue PDF"
// @Param        number formData int true "Issue number"
// @Param        title formData string true "Issue title"
// @Success      201 {object} dto.UploadIssueResponse "Stored issue"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /upload [post]
func (h *IssuesHandler) Upload(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.UploadIssueRequest
	if err := c.ShouldBind(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, errors.New("file is required"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, errors.New("file too large"))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}

	file, err := fileHeader.Open()
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	defer func() { _ = file.Close() }()

	uploadedBy := c.GetString("user_email")

	issue, err := h.issueService.Upload(c.Request.Context(), req.Number, req.Title, contentType, uploadedBy, file)
	if err != nil {
		metrics.RecordIssueUpload("error")
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	metrics.RecordIssueUpload("success")
	builder.SuccessCreated(dto.UploadIssueResponse{
		Number:    issue.Number,
		ObjectKey: issue.ObjectKey,
		SizeBytes: issue.SizeBytes,
	})
}

// issueNumber parses and validates the :number path parameter.
func (h *IssuesHandler) issueNumber(c *gin.Context) (int, bool) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number <= 0 {
		NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, errors.New("issue number must be a positive integer"))
		return 0, false
	}
	return number, true
}

// issueDataResponse converts an issue record into its public metadata shape.
func issueDataResponse(issue *model.Issue) dto.IssueDataResponse {
	contributors := make([]dto.ContributorDTO, 0, len(issue.Contributors))
	for _, contributor := range issue.Contributors {
		contributors = append(contributors, dto.ContributorDTO{
			Name: contributor.Name,
			Role: contributor.Role,
		})
	}

	resp := dto.IssueDataResponse{
		Number:       issue.Number,
		Title:        issue.Title,
		Blurb:        issue.Blurb,
		Contributors: contributors,
	}
	if !issue.PublishedAt.IsZero() {
		resp.PublishedAt = issue.PublishedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
