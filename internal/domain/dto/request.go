// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

// CheckoutLine is one desired line in a checkout replacement request. It is
// the client's view of a cart line; product_id is the storefront variant gid.
type CheckoutLine struct {
	// LineID is empty for lines not yet persisted remotely.
	LineID      string  `json:"line_id"`
	Title       string  `json:"title"`
	Handle      string  `json:"handle"`
	Description string  `json:"description"`
	Currency    string  `json:"currency"`
	Price       float64 `json:"price"`
	// ProductID is the variant identifier to purchase. Required.
	ProductID string `json:"product_id" example:"gid://shopify/ProductVariant/44161234567890"`
	// Quantity must be greater than 0.
	Quantity int `json:"quantity" example:"2" minimum:"1"`
} // @name CheckoutLine

// RequestCheckoutRequest represents the JSON request body for the checkout
// replacement endpoint. The items are the complete desired line set; the
// previous remote state is discarded, not merged.
//
// @Description Request to replace the checkout's line items
// @Example {"items": [{"product_id": "gid://shopify/ProductVariant/44161234567890", "quantity": 2}]}
type RequestCheckoutRequest struct {
	// Items is the full set of lines the checkout should contain.
	Items []CheckoutLine `json:"items" binding:"required"`
} // @name RequestCheckoutRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

var (
	// ErrEmptyItems is returned when a checkout request carries no lines.
	ErrEmptyItems = &ValidationError{
		Field:   "items",
		Message: "at least one line item is required",
	}
	// ErrInvalidQuantity is returned when a line quantity is not positive.
	ErrInvalidQuantity = &ValidationError{
		Field:   "quantity",
		Message: "must be a positive integer",
	}
	// ErrMissingProductID is returned when a line has no variant identifier.
	ErrMissingProductID = &ValidationError{
		Field:   "product_id",
		Message: "is required",
	}
)

// Validate performs custom validation on the request.
// Returns an error if validation fails, nil otherwise.
func (r *RequestCheckoutRequest) Validate() error {
	if len(r.Items) == 0 {
		return ErrEmptyItems
	}
	for _, line := range r.Items {
		if line.ProductID == "" {
			return ErrMissingProductID
		}
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// IssueCountResponse represents the JSON response body of the issue count
// endpoint.
type IssueCountResponse struct {
	// Count is the number of published issues.
	Count int `json:"count" example:"12"`
} // @name IssueCountResponse

// IssueDataResponse carries the editorial metadata of a single issue, as
// consumed by the storefront pages and the copywriter pipeline.
type IssueDataResponse struct {
	Number       int              `json:"number" example:"12"`
	Title        string           `json:"title" example:"The Slow Light Issue"`
	Blurb        string           `json:"blurb,omitempty"`
	Contributors []ContributorDTO `json:"contributors,omitempty"`
	PublishedAt  string           `json:"published_at,omitempty" example:"2025-06-01T00:00:00Z"`
} // @name IssueDataResponse

// ContributorDTO is a credited collaborator in issue responses.
type ContributorDTO struct {
	Name string `json:"name" example:"Ines Marchetti"`
	Role string `json:"role" example:"photography"`
} // @name ContributorDTO

// UploadIssueRequest represents the multipart form fields accompanying an
// issue PDF upload. The file itself travels in the "file" form part.
type UploadIssueRequest struct {
	// Number is the issue number being uploaded.
	Number int `form:"number" binding:"required,gt=0" example:"12"`
	// Title is the issue's display title.
	Title string `form:"title" binding:"required" example:"The Slow Light Issue"`
} // @name UploadIssueRequest

// UploadIssueResponse confirms a stored issue upload.
type UploadIssueResponse struct {
	Number    int    `json:"number" example:"12"`
	ObjectKey string `json:"object_key" example:"issues/issue_12.pdf"`
	SizeBytes int64  `json:"size_bytes" example:"10485760"`
} // @name UploadIssueResponse
