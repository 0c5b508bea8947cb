package label

import "math"

// BasePxPerMm is the fixed base pixel density; the effective pixel scale is
// BasePxPerMm times the user zoom factor.
const BasePxPerMm = 4.0

// Zoom factor limits enforced at the call boundary.
const (
	MinScale = 0.3
	MaxScale = 3.0
)

// DefaultGridMm is the editor snap grid.
const DefaultGridMm = 5.0

// DefaultMinSizeMm is the smallest edge an element can be resized to.
const DefaultMinSizeMm = 5.0

// Rect is an axis-aligned rectangle in millimeters.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is a position in millimeters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Handle names the four corner resize handles.
type Handle string

const (
	HandleNW Handle = "nw"
	HandleNE Handle = "ne"
	HandleSW Handle = "sw"
	HandleSE Handle = "se"
)

// MmToPx converts millimeters to pixels at the given zoom factor.
func MmToPx(mm, scale float64) float64 {
	return mm * BasePxPerMm * scale
}

// PxToMm is the inverse of MmToPx, used to map pointer positions back onto
// the millimeter canvas.
func PxToMm(px, scale float64) float64 {
	return px / (BasePxPerMm * scale)
}

// ClampScale bounds a user zoom factor to the supported range.
func ClampScale(scale float64) float64 {
	return clamp(scale, MinScale, MaxScale)
}

// SnapToGrid rounds a millimeter value to the nearest grid multiple.
// A non-positive grid disables snapping.
func SnapToGrid(mm, gridMm float64) float64 {
	if gridMm <= 0 {
		return mm
	}
	return math.Round(mm/gridMm) * gridMm
}

// ClampPosition keeps an element of the given size fully inside the canvas.
// When the element is larger than the canvas the coordinate clamps to 0, so
// oversized elements pin to the top-left instead of going negative.
func ClampPosition(x, y, elementW, elementH, canvasW, canvasH float64) (float64, float64) {
	maxX := canvasW - elementW
	if maxX < 0 {
		maxX = 0
	}
	maxY := canvasH - elementH
	if maxY < 0 {
		maxY = 0
	}
	return clamp(x, 0, maxX), clamp(y, 0, maxY)
}

// ResizeOptions tunes ResizeFromHandle. Zero values fall back to the editor
// defaults; CanvasWidth/CanvasHeight of 0 disable the final bounds clamp.
type ResizeOptions struct {
	MinSizeMm    float64
	GridMm       float64
	CanvasWidth  float64
	CanvasHeight float64
}

func (o ResizeOptions) minSize() float64 {
	if o.MinSizeMm > 0 {
		return o.MinSizeMm
	}
	return DefaultMinSizeMm
}

// ResizeFromHandle computes the rectangle that results from dragging one
// corner handle to pointer. The edges opposite the handle stay fixed: se
// keeps the top-left corner, sw keeps the right and top edges, ne keeps the
// left and bottom edges, nw keeps the right and bottom edges. New edges snap
// to the grid and neither side shrinks below the minimum size. When canvas
// dimensions are given, a rect growing past the canvas is shrunk to fit.
func ResizeFromHandle(handle Handle, rect Rect, pointer Point, opt ResizeOptions) Rect {
	minSize := opt.minSize()
	grid := opt.GridMm

	right := rect.X + rect.Width
	bottom := rect.Y + rect.Height
	out := rect

	switch handle {
	case HandleSE:
		out.Width = math.Max(minSize, SnapToGrid(pointer.X-rect.X, grid))
		out.Height = math.Max(minSize, SnapToGrid(pointer.Y-rect.Y, grid))
	case HandleSW:
		newX := math.Min(SnapToGrid(pointer.X, grid), right-minSize)
		if newX < 0 {
			newX = 0
		}
		out.X = newX
		out.Width = right - newX
		out.Height = math.Max(minSize, SnapToGrid(pointer.Y-rect.Y, grid))
	case HandleNE:
		newY := math.Min(SnapToGrid(pointer.Y, grid), bottom-minSize)
		if newY < 0 {
			newY = 0
		}
		out.Y = newY
		out.Height = bottom - newY
		out.Width = math.Max(minSize, SnapToGrid(pointer.X-rect.X, grid))
	case HandleNW:
		newX := math.Min(SnapToGrid(pointer.X, grid), right-minSize)
		if newX < 0 {
			newX = 0
		}
		newY := math.Min(SnapToGrid(pointer.Y, grid), bottom-minSize)
		if newY < 0 {
			newY = 0
		}
		out.X = newX
		out.Y = newY
		out.Width = right - newX
		out.Height = bottom - newY
	}

	// Re-clamp the growing side so the rect stays on the canvas.
	if opt.CanvasWidth > 0 && out.X+out.Width > opt.CanvasWidth {
		out.Width = opt.CanvasWidth - out.X
	}
	if opt.CanvasHeight > 0 && out.Y+out.Height > opt.CanvasHeight {
		out.Height = opt.CanvasHeight - out.Y
	}
	return out
}

// PlacedElement is an element resolved to pixel coordinates for rendering.
type PlacedElement struct {
	Element  Element `json:"element"`
	XPx      float64 `json:"xPx"`
	YPx      float64 `json:"yPx"`
	WidthPx  float64 `json:"widthPx"`
	HeightPx float64 `json:"heightPx"`
}

// LayoutPx converts every element of a template into pixel rectangles at the
// given zoom factor, preserving z-order.
func LayoutPx(t *Template, scale float64) []PlacedElement {
	scale = ClampScale(scale)
	placed := make([]PlacedElement, 0, len(t.Elements))
	for _, el := range t.Elements {
		placed = append(placed, PlacedElement{
			Element:  el,
			XPx:      MmToPx(el.X, scale),
			YPx:      MmToPx(el.Y, scale),
			WidthPx:  MmToPx(el.Width, scale),
			HeightPx: MmToPx(el.Height, scale),
		})
	}
	return placed
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
