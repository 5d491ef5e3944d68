// Package transforms implements the crop geometry algorithms: moving and
// resizing the crop rectangle, panning and zooming the visible area, and the
// fit/refine routines that reconcile both with their restrictions after any
// external change. Every function is pure: it takes a full state snapshot
// and returns a full replacement, holding nothing between calls.
package transforms

import (
	"math"

	"github.com/menta2k/crop-engine/pkg/geometry"
	"github.com/menta2k/crop-engine/pkg/restrictions"
)

// MoveEvent carries a translation delta in image pixels.
type MoveEvent struct {
	Delta geometry.Point
}

// Directions describe per-edge outward growth in image pixels. A positive
// Left grows the rectangle leftwards, a negative value shrinks that edge.
type Directions struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// ResizeEvent carries the per-edge growth produced by dragging a handle.
type ResizeEvent struct {
	Directions Directions
}

// Scale describes an anchored zoom. Factor multiplies the visible area's
// dimensions, so a factor above 1 zooms out. A nil Center anchors at the
// visible area's center.
type Scale struct {
	Factor float64
	Center *geometry.Point
}

// ImageTransform is the normalized pan/zoom gesture applied to the visible
// area. Move and Scale may both be present in a single sample (pinch).
type ImageTransform struct {
	Move  geometry.Point
	Scale Scale
}

// applyDirections grows a rectangle by per-edge deltas.
func applyDirections(r geometry.Rect, d Directions) geometry.Rect {
	return geometry.Rect{
		Left:   r.Left - d.Left,
		Top:    r.Top - d.Top,
		Width:  r.Width + d.Left + d.Right,
		Height: r.Height + d.Top + d.Bottom,
	}
}

// fitToBounds shifts a rectangle the minimal distance needed to satisfy the
// bounds, one axis at a time. When the rectangle is wider or taller than the
// bounds allow it is aligned to the left/top edge; size is never changed
// here, that is the caller's concern.
func fitToBounds(r geometry.Rect, b restrictions.Bounds) geometry.Rect {
	if r.Width <= b.Width() {
		r.Left = geometry.Clamp(r.Left, b.Left, b.Right-r.Width)
	} else if !math.IsInf(b.Left, -1) {
		r.Left = b.Left
	}
	if r.Height <= b.Height() {
		r.Top = geometry.Clamp(r.Top, b.Top, b.Bottom-r.Height)
	} else if !math.IsInf(b.Top, -1) {
		r.Top = b.Top
	}
	return r
}

// clampSize bounds the rectangle's dimensions into the size restrictions,
// keeping the center fixed.
func clampSize(r geometry.Rect, sr restrictions.SizeRestrictions) geometry.Rect {
	center := r.Center()
	r.Width = geometry.Clamp(r.Width, sr.MinWidth, sr.MaxWidth)
	r.Height = geometry.Clamp(r.Height, sr.MinHeight, sr.MaxHeight)
	r.Left = center.Left - r.Width/2
	r.Top = center.Top - r.Height/2
	return r
}
