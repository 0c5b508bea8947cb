package label

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBarcodePNG(t *testing.T) {
	data, err := RenderBarcodePNG("042317", 200, 80)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestRenderBarcodePNGRejectsTinyBox(t *testing.T) {
	// Code128 for 6 digits cannot fit in a 10px-wide box.
	_, err := RenderBarcodePNG("042317", 10, 10)
	assert.Error(t, err)
}
