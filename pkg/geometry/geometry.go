// Package geometry provides the value types shared by all crop algorithms:
// points, sizes and rectangles in image-pixel space, plus the primitive
// operations (translate, anchored scale, containment) the algorithms compose.
package geometry

import "math"

// Point is a position in image-pixel space.
type Point struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// Size holds width and height in pixels (image or screen, per context).
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Ratio returns width divided by height, or 0 for a degenerate size.
func (s Size) Ratio() float64 {
	if s.Height == 0 {
		return 0
	}
	return s.Width / s.Height
}

// Empty reports whether either dimension is not strictly positive.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an axis-aligned rectangle in image-pixel space. It represents both
// the crop rectangle and the visible area; the two live in the same
// coordinate frame and obey the same arithmetic.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectFromSize returns a rectangle of the given size anchored at the origin.
func RectFromSize(s Size) Rect {
	return Rect{Width: s.Width, Height: s.Height}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Center returns the rectangle's center point.
func (r Rect) Center() Point {
	return Point{Left: r.Left + r.Width/2, Top: r.Top + r.Height/2}
}

// Ratio returns the width/height aspect ratio, or 0 for a degenerate rect.
func (r Rect) Ratio() float64 {
	return r.Size().Ratio()
}

// Translate returns a copy of the rectangle shifted by delta.
func (r Rect) Translate(delta Point) Rect {
	r.Left += delta.Left
	r.Top += delta.Top
	return r
}

// ScaleAbout scales the rectangle by factor keeping center fixed. A factor
// greater than 1 grows the rectangle.
func (r Rect) ScaleAbout(factor float64, center Point) Rect {
	return Rect{
		Left:   center.Left - (center.Left-r.Left)*factor,
		Top:    center.Top - (center.Top-r.Top)*factor,
		Width:  r.Width * factor,
		Height: r.Height * factor,
	}
}

// Contains reports whether other lies entirely inside r, allowing for a
// small tolerance to absorb floating point noise.
func (r Rect) Contains(other Rect) bool {
	const eps = 1e-9
	return other.Left >= r.Left-eps &&
		other.Top >= r.Top-eps &&
		other.Right() <= r.Right()+eps &&
		other.Bottom() <= r.Bottom()+eps
}

// Coefficient is the image-pixels-per-screen-pixel scale factor implied by
// rendering visibleArea inside boundaries.
func Coefficient(visibleArea Rect, boundaries Size) float64 {
	if boundaries.Width == 0 {
		return 0
	}
	return visibleArea.Width / boundaries.Width
}

// Clamp bounds value into [min, max]. When the interval is inverted the
// lower bound wins, which is the behavior every clamping algorithm here
// relies on (position beats size overshoot).
func Clamp(value, min, max float64) float64 {
	return math.Max(min, math.Min(value, max))
}
