package domain

// APIError is the problem-details body returned for every failed request.
// Clients show Detail inline next to the form or table that triggered it.
type APIError struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Title
}

// validationMessages maps validator tags to messages used when no parameterised message applies
var validationMessages = map[string]string{
	"required":    "This field is required",
	"email":       "Must be a valid email address",
	"uuid":        "Must be a valid UUID",
	"oneof":       "Must be one of the allowed values",
	"hexcolor":    "Must be a hex color such as #1f77b4",
	"alphanum":    "Must contain only alphanumeric characters",
	"numeric":     "Must be a numeric value",
	"datetime":    "Must be a date in YYYY-MM-DD format",
	"unique":      "Must not contain duplicates",
	"required_if": "This field is required for the selected mode",
}

// GetValidationMessage returns a human-readable message for a validation tag
func GetValidationMessage(tag string) string {
	if msg, ok := validationMessages[tag]; ok {
		return msg
	}
	return "Validation failed: " + tag
}

// Problem types
const (
	ErrorTypeValidation             = "validation_error"
	ErrorTypeNotFound               = "not_found"
	ErrorTypeBadRequest             = "bad_request"
	ErrorTypeConflict               = "conflict"
	ErrorTypeUnauthorized           = "unauthorized"
	ErrorTypeForbidden              = "forbidden"
	ErrorTypePasswordChangeRequired = "password_change_required"
	ErrorTypeTooLarge               = "payload_too_large"
	ErrorTypeRateLimited            = "rate_limited"
	ErrorTypeInternal               = "internal_error"
)
