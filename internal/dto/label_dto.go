package dto

import "stocklabel/internal/label"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// PrintLabelRequest resolves a template (the default when TemplateID is nil)
// plus a product and sample barcode into a renderable layout.
type PrintLabelRequest struct {
	TemplateID *string `json:"template_id" validate:"omitempty,uuid"`
	ProductID  string  `json:"product_id"  validate:"required,uuid"`
	Code       *string `json:"code"        validate:"omitempty,len=6"`
	Scale      float64 `json:"scale"`
	Copies     int     `json:"copies"      validate:"omitempty,min=1,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LabelTemplateResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	WidthMm   float64         `json:"width"`
	HeightMm  float64         `json:"height"`
	Elements  []label.Element `json:"elements"`
	IsDefault bool            `json:"isDefault"`
	CreatedAt string          `json:"createdAt"`
	UpdatedAt string          `json:"updatedAt"`
}

// PrintLayoutResponse is the pixel layout the print view renders: one placed
// rectangle per element, plus the resolved text values per field.
type PrintLayoutResponse struct {
	TemplateID string                `json:"template_id"`
	Scale      float64               `json:"scale"`
	WidthPx    float64               `json:"width_px"`
	HeightPx   float64               `json:"height_px"`
	Elements   []label.PlacedElement `json:"elements"`
	Values     map[string]string     `json:"values"`
}
