package label

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// RenderBarcodePNG encodes a code as a Code128 barcode scaled to the given
// pixel box and returns it as PNG bytes.
func RenderBarcodePNG(code string, widthPx, heightPx int) ([]byte, error) {
	bc, err := code128.Encode(code)
	if err != nil {
		return nil, fmt.Errorf("label: encode barcode %q: %w", code, err)
	}

	scaled, err := barcode.Scale(bc, widthPx, heightPx)
	if err != nil {
		return nil, fmt.Errorf("label: scale barcode: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("label: encode png: %w", err)
	}
	return buf.Bytes(), nil
}
