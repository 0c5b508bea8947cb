// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors from request binding.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation failed", Fields: fields}
}

// TemplateValidation carries the full per-element error list so the editor
// can highlight every problem at once.
type TemplateValidation struct {
	Detail string   `json:"detail"`
	Errors []string `json:"errors"`
}

func NewTemplateValidation(errs []string) *TemplateValidation {
	return &TemplateValidation{Detail: "template validation failed", Errors: errs}
}
