// Package label holds the printable label template model, its geometric
// validation rules, and the pure layout math used to place elements on a
// pixel canvas. Everything here works in millimeters with a top-left origin.
package label

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Canvas size limits in millimeters.
const (
	MinDimensionMm = 10
	MaxDimensionMm = 500
	MaxNameLen     = 100
)

// ElementKind discriminates the element union.
type ElementKind string

const (
	KindText    ElementKind = "text"
	KindBarcode ElementKind = "barcode"
	KindImage   ElementKind = "image"
)

// Align is the horizontal text alignment of a text element.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Text element data sources.
const (
	FieldProductName = "productName"
	FieldFeatures    = "features"
	FieldPrice       = "price"
	FieldDate        = "date"
	FieldBarcode     = "barcode"
	FieldLogo        = "logo"
)

// Font size bounds for text elements.
const (
	MinFontSize     = 4
	MaxFontSize     = 72
	DefaultFontSize = 12
)

// TextAttrs carries the attributes that only exist on text elements.
type TextAttrs struct {
	FontSize float64
	Bold     bool
	Italic   bool
	Align    Align
}

// Element is one positioned item on a label. Kind discriminates the union:
// Text is non-nil iff Kind == KindText. Coordinates and sizes are millimeters
// relative to the label's top-left corner; slice order is z-order (later
// elements draw on top).
type Element struct {
	Kind   ElementKind
	Field  string
	X      float64
	Y      float64
	Width  float64
	Height float64
	Text   *TextAttrs
}

// Bounds returns the element rectangle.
func (e Element) Bounds() Rect {
	return Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// elementJSON is the flat wire shape used by the export/import boundary.
// Text attributes sit directly on the object; unknown extra fields are
// ignored on import.
type elementJSON struct {
	Type     string   `json:"type"`
	Field    string   `json:"field"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	FontSize *float64 `json:"fontSize,omitempty"`
	Bold     *bool    `json:"bold,omitempty"`
	Italic   *bool    `json:"italic,omitempty"`
	Align    *string  `json:"align,omitempty"`
}

func (e Element) MarshalJSON() ([]byte, error) {
	out := elementJSON{
		Type:   string(e.Kind),
		Field:  e.Field,
		X:      e.X,
		Y:      e.Y,
		Width:  e.Width,
		Height: e.Height,
	}
	if e.Kind == KindText && e.Text != nil {
		size := e.Text.FontSize
		align := string(e.Text.Align)
		out.FontSize = &size
		out.Bold = &e.Text.Bold
		out.Italic = &e.Text.Italic
		out.Align = &align
	}
	return json.Marshal(out)
}

func (e *Element) UnmarshalJSON(data []byte) error {
	var raw elementJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Kind = ElementKind(raw.Type)
	e.Field = raw.Field
	e.X = raw.X
	e.Y = raw.Y
	e.Width = raw.Width
	e.Height = raw.Height
	e.Text = nil
	if e.Kind == KindText {
		attrs := &TextAttrs{FontSize: DefaultFontSize, Align: AlignLeft}
		if raw.FontSize != nil {
			attrs.FontSize = *raw.FontSize
		}
		if raw.Bold != nil {
			attrs.Bold = *raw.Bold
		}
		if raw.Italic != nil {
			attrs.Italic = *raw.Italic
		}
		if raw.Align != nil {
			attrs.Align = Align(*raw.Align)
		}
		e.Text = attrs
	}
	return nil
}

// NewTextElement builds a text element with default attributes applied.
func NewTextElement(field string, x, y, w, h float64) Element {
	return Element{
		Kind: KindText, Field: field,
		X: x, Y: y, Width: w, Height: h,
		Text: &TextAttrs{FontSize: DefaultFontSize, Align: AlignLeft},
	}
}

// NewBarcodeElement builds a barcode placeholder element.
func NewBarcodeElement(x, y, w, h float64) Element {
	return Element{Kind: KindBarcode, Field: FieldBarcode, X: x, Y: y, Width: w, Height: h}
}

// NewImageElement builds a logo placeholder element.
func NewImageElement(x, y, w, h float64) Element {
	return Element{Kind: KindImage, Field: FieldLogo, X: x, Y: y, Width: w, Height: h}
}

// Template is a printable label layout: a millimeter canvas plus an ordered
// element list.
type Template struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	WidthMm   float64   `json:"width"`
	HeightMm  float64   `json:"height"`
	Elements  []Element `json:"elements"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidationResult accumulates every rule violation; IsValid is true iff the
// error list is empty.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Validate checks the template against the save-time rules, accumulating all
// violations instead of stopping at the first. Applies to authored, imported
// and duplicated templates alike.
func Validate(t *Template) ValidationResult {
	var errs []string

	name := strings.TrimSpace(t.Name)
	if name == "" {
		errs = append(errs, "template name is required")
	} else if len(name) > MaxNameLen {
		errs = append(errs, fmt.Sprintf("template name must be at most %d characters", MaxNameLen))
	}

	if t.WidthMm < MinDimensionMm || t.WidthMm > MaxDimensionMm {
		errs = append(errs, fmt.Sprintf("label width must be between %d and %d mm", MinDimensionMm, MaxDimensionMm))
	}
	if t.HeightMm < MinDimensionMm || t.HeightMm > MaxDimensionMm {
		errs = append(errs, fmt.Sprintf("label height must be between %d and %d mm", MinDimensionMm, MaxDimensionMm))
	}

	if len(t.Elements) == 0 {
		errs = append(errs, "template must contain at least one element")
	}

	for i, el := range t.Elements {
		n := i + 1 // 1-indexed in messages
		if el.Kind == "" {
			errs = append(errs, fmt.Sprintf("element %d: type is required", n))
		}
		if el.Field == "" {
			errs = append(errs, fmt.Sprintf("element %d: field is required", n))
		}
		if el.X < 0 || el.Y < 0 {
			errs = append(errs, fmt.Sprintf("element %d: position must not be negative", n))
		}
		if el.Width <= 0 || el.Height <= 0 {
			errs = append(errs, fmt.Sprintf("element %d: width and height must be positive", n))
		}
		if el.X+el.Width > t.WidthMm {
			errs = append(errs, fmt.Sprintf("element %d: extends beyond template width", n))
		}
		if el.Y+el.Height > t.HeightMm {
			errs = append(errs, fmt.Sprintf("element %d: extends beyond template height", n))
		}
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// Export serializes the template to its interchange JSON shape.
func Export(t *Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// Import decodes an interchange blob. Unknown fields are ignored; the caller
// must re-validate the result before persisting it.
func Import(blob []byte) (*Template, error) {
	var t Template
	if err := json.Unmarshal(blob, &t); err != nil {
		return nil, fmt.Errorf("label: decode template: %w", err)
	}
	return &t, nil
}
