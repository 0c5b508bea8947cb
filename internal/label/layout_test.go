package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMmToPx(t *testing.T) {
	assert.InDelta(t, 40.0, MmToPx(10, 1.0), 1e-9)
	assert.InDelta(t, 80.0, MmToPx(10, 2.0), 1e-9)
	assert.InDelta(t, 12.0, MmToPx(10, 0.3), 1e-9)
}

func TestPxToMmInvertsMmToPx(t *testing.T) {
	assert.InDelta(t, 17.5, PxToMm(MmToPx(17.5, 1.4), 1.4), 1e-9)
}

func TestClampScale(t *testing.T) {
	assert.Equal(t, MinScale, ClampScale(0.1))
	assert.Equal(t, MaxScale, ClampScale(12))
	assert.Equal(t, 1.5, ClampScale(1.5))
}

func TestSnapToGrid(t *testing.T) {
	assert.Equal(t, 5.0, SnapToGrid(6.2, 5))
	assert.Equal(t, 10.0, SnapToGrid(7.5, 5))
	assert.Equal(t, 0.0, SnapToGrid(2.4, 5))
	// non-positive grid disables snapping
	assert.Equal(t, 6.2, SnapToGrid(6.2, 0))
}

func TestClampPosition(t *testing.T) {
	x, y := ClampPosition(55, 35, 10, 10, 60, 40)
	assert.Equal(t, 50.0, x)
	assert.Equal(t, 30.0, y)

	x, y = ClampPosition(-3, -1, 10, 10, 60, 40)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
}

func TestClampPositionOversizedElementPinsToOrigin(t *testing.T) {
	// Element larger than the canvas: coordinate clamps to 0, never negative.
	x, y := ClampPosition(12, 7, 80, 60, 60, 40)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
}

func TestResizeSEPreservesTopLeft(t *testing.T) {
	rect := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	out := ResizeFromHandle(HandleSE, rect, Point{X: 40, Y: 40}, ResizeOptions{GridMm: 5})
	assert.Equal(t, Rect{X: 10, Y: 10, Width: 30, Height: 30}, out)
}

func TestResizeSWPreservesRightEdge(t *testing.T) {
	rect := Rect{X: 20, Y: 10, Width: 20, Height: 20}
	out := ResizeFromHandle(HandleSW, rect, Point{X: 10, Y: 35}, ResizeOptions{GridMm: 5})
	assert.Equal(t, 10.0, out.X)
	assert.Equal(t, 30.0, out.Width)
	assert.Equal(t, 40.0, out.X+out.Width, "right edge must stay fixed")
	assert.Equal(t, 25.0, out.Height)
}

func TestResizeNEPreservesBottomEdge(t *testing.T) {
	rect := Rect{X: 10, Y: 20, Width: 20, Height: 20}
	out := ResizeFromHandle(HandleNE, rect, Point{X: 45, Y: 10}, ResizeOptions{GridMm: 5})
	assert.Equal(t, 10.0, out.Y)
	assert.Equal(t, 30.0, out.Height)
	assert.Equal(t, 40.0, out.Y+out.Height, "bottom edge must stay fixed")
	assert.Equal(t, 35.0, out.Width)
}

func TestResizeNWPreservesBottomRightCorner(t *testing.T) {
	rect := Rect{X: 10, Y: 10, Width: 30, Height: 30}
	out := ResizeFromHandle(HandleNW, rect, Point{X: 20, Y: 20}, ResizeOptions{GridMm: 5})
	assert.Equal(t, Rect{X: 20, Y: 20, Width: 20, Height: 20}, out)
}

func TestResizeFloorsAtMinSize(t *testing.T) {
	rect := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	// Pointer dragged past the fixed corner; sides floor at the minimum.
	out := ResizeFromHandle(HandleSE, rect, Point{X: 5, Y: 5}, ResizeOptions{GridMm: 5})
	assert.Equal(t, DefaultMinSizeMm, out.Width)
	assert.Equal(t, DefaultMinSizeMm, out.Height)
}

func TestResizeReclampsToCanvas(t *testing.T) {
	rect := Rect{X: 40, Y: 20, Width: 10, Height: 10}
	out := ResizeFromHandle(HandleSE, rect, Point{X: 90, Y: 55},
		ResizeOptions{GridMm: 5, CanvasWidth: 60, CanvasHeight: 40})
	assert.Equal(t, 20.0, out.Width, "width shrinks to fit canvas")
	assert.Equal(t, 20.0, out.Height, "height shrinks to fit canvas")
}

func TestLayoutPxPreservesOrder(t *testing.T) {
	tpl := &Template{
		Name: "shelf", WidthMm: 60, HeightMm: 40,
		Elements: []Element{
			NewTextElement(FieldProductName, 0, 0, 40, 10),
			NewBarcodeElement(5, 15, 30, 15),
		},
	}
	placed := LayoutPx(tpl, 1.0)
	assert.Len(t, placed, 2)
	assert.Equal(t, KindText, placed[0].Element.Kind)
	assert.Equal(t, KindBarcode, placed[1].Element.Kind)
	assert.InDelta(t, 160.0, placed[0].WidthPx, 1e-9)
	assert.InDelta(t, 20.0, placed[1].XPx, 1e-9)
}
