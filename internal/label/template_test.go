package label

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTemplate() *Template {
	return &Template{
		Name: "shelf label", WidthMm: 60, HeightMm: 40,
		Elements: []Element{
			NewTextElement(FieldProductName, 0, 0, 40, 10),
			NewBarcodeElement(5, 15, 30, 15),
		},
	}
}

func TestValidateAcceptsValidTemplate(t *testing.T) {
	res := Validate(validTemplate())
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
}

func TestValidateAccumulatesAllErrors(t *testing.T) {
	tpl := &Template{
		Name: "   ", WidthMm: 5, HeightMm: 600,
		Elements: []Element{
			{Kind: "", Field: "", X: -1, Y: 0, Width: 0, Height: 10},
		},
	}
	res := Validate(tpl)
	require.False(t, res.IsValid)
	// name + width + height + element type + field + position + size
	assert.GreaterOrEqual(t, len(res.Errors), 7)
}

func TestValidateNameLength(t *testing.T) {
	tpl := validTemplate()
	tpl.Name = strings.Repeat("x", 101)
	res := Validate(tpl)
	require.False(t, res.IsValid)
	assert.Contains(t, res.Errors[0], "at most 100")
}

func TestValidateElementBounds(t *testing.T) {
	tpl := validTemplate()
	tpl.Elements = []Element{NewTextElement(FieldPrice, 55, 0, 10, 10)}
	res := Validate(tpl)
	require.False(t, res.IsValid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "beyond template width")

	// Exactly touching the edge is legal.
	tpl.Elements = []Element{NewTextElement(FieldPrice, 50, 0, 10, 10)}
	res = Validate(tpl)
	assert.True(t, res.IsValid)
}

func TestValidateElementHeightBounds(t *testing.T) {
	tpl := validTemplate()
	tpl.Elements = []Element{NewBarcodeElement(0, 35, 10, 10)}
	res := Validate(tpl)
	require.False(t, res.IsValid)
	assert.Contains(t, res.Errors[0], "beyond template height")
}

func TestValidateRequiresElements(t *testing.T) {
	tpl := validTemplate()
	tpl.Elements = nil
	res := Validate(tpl)
	require.False(t, res.IsValid)
	assert.Contains(t, res.Errors[0], "at least one element")
}

func TestExportImportRoundTrip(t *testing.T) {
	tpl := validTemplate()
	tpl.Elements[0].Text.Bold = true
	tpl.Elements[0].Text.Align = AlignCenter
	tpl.Elements[0].Text.FontSize = 9

	blob, err := Export(tpl)
	require.NoError(t, err)

	back, err := Import(blob)
	require.NoError(t, err)

	assert.Equal(t, tpl.Name, back.Name)
	assert.Equal(t, tpl.WidthMm, back.WidthMm)
	assert.Equal(t, tpl.HeightMm, back.HeightMm)
	require.Equal(t, tpl.Elements, back.Elements)
	assert.Equal(t, Validate(tpl).IsValid, Validate(back).IsValid)
}

func TestImportIgnoresUnknownFields(t *testing.T) {
	blob := []byte(`{
		"name": "promo", "width": 60, "height": 40,
		"someFutureField": {"nested": true},
		"elements": [
			{"type": "text", "field": "price", "x": 0, "y": 0, "width": 20, "height": 10, "extra": 1}
		]
	}`)
	tpl, err := Import(blob)
	require.NoError(t, err)
	require.Len(t, tpl.Elements, 1)
	assert.True(t, Validate(tpl).IsValid)
}

func TestImportAppliesTextDefaults(t *testing.T) {
	blob := []byte(`{
		"name": "promo", "width": 60, "height": 40,
		"elements": [{"type": "text", "field": "productName", "x": 0, "y": 0, "width": 20, "height": 10}]
	}`)
	tpl, err := Import(blob)
	require.NoError(t, err)
	el := tpl.Elements[0]
	require.NotNil(t, el.Text)
	assert.Equal(t, float64(DefaultFontSize), el.Text.FontSize)
	assert.Equal(t, AlignLeft, el.Text.Align)
	assert.False(t, el.Text.Bold)
	assert.False(t, el.Text.Italic)
}

func TestImportNonTextElementHasNoTextAttrs(t *testing.T) {
	blob := []byte(`{
		"name": "promo", "width": 60, "height": 40,
		"elements": [{"type": "barcode", "field": "barcode", "x": 0, "y": 0, "width": 30, "height": 15}]
	}`)
	tpl, err := Import(blob)
	require.NoError(t, err)
	assert.Nil(t, tpl.Elements[0].Text)
}
