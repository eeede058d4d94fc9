package gl2d

// Point is an integer 2D point.
type Point struct {
	X, Y int
}

// FPoint is a 2D point with float32 components, the precision vertex
// data is compiled at.
type FPoint struct {
	X, Y float32
}

// Rect is an integer rectangle with its origin in the top-left corner.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// FRect is a rectangle with float32 components, used for destination
// geometry so sub-pixel placement survives compilation.
type FRect struct {
	X, Y, W, H float32
}

// RectToFRect widens an integer rectangle to float geometry.
func RectToFRect(r Rect) FRect {
	return FRect{X: float32(r.X), Y: float32(r.Y), W: float32(r.W), H: float32(r.H)}
}
