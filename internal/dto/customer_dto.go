package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CreateCustomerRequest: an empty Code (or the literal "auto") triggers
// monotonic code assignment; an explicit code is checked for collisions.
type CreateCustomerRequest struct {
	Code    string  `json:"code"    validate:"omitempty,max=6"`
	Name    string  `json:"name"    validate:"required,min=1,max=120"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	Address *string `json:"address"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name"    validate:"omitempty,min=1,max=120"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"   validate:"omitempty,email"`
	Address *string `json:"address"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CustomerResponse struct {
	ID      string  `json:"id"`
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
	Active  bool    `json:"active"`
}
