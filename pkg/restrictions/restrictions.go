// Package restrictions derives the allowed ranges for crop size, crop
// position and visible area from the image dimensions, the container
// boundaries and a restriction mode, and reconciles conflicting limits.
package restrictions

import (
	"math"

	"github.com/menta2k/crop-engine/pkg/geometry"
)

// Mode governs whether the visible area and/or the crop rectangle may extend
// beyond the image bounds.
type Mode string

const (
	// ModeNone applies no clamping at all.
	ModeNone Mode = "none"
	// ModeStencil confines the crop rectangle to the image bounds but lets
	// the visible area roam free.
	ModeStencil Mode = "stencil"
	// ModeArea confines the visible area itself to the image bounds, which
	// transitively limits panning. This is the default.
	ModeArea Mode = "area"
)

// Valid reports whether m is a known restriction mode.
func (m Mode) Valid() bool {
	return m == ModeNone || m == ModeStencil || m == ModeArea
}

// Unit describes how a Limit value is interpreted.
type Unit string

const (
	// UnitPercent interprets the value as a percentage of the image dimension.
	UnitPercent Unit = "percent"
	// UnitPixels interprets the value as absolute image pixels.
	UnitPixels Unit = "pixels"
)

// Limit is an explicit size bound supplied by the host. The zero value means
// "unset": minimums default to 0 and maximums to unbounded.
type Limit struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// Set reports whether the limit carries an explicit value.
func (l Limit) Set() bool {
	return l.Value != 0
}

// Resolve converts the limit to image pixels against the given dimension.
func (l Limit) Resolve(dimension float64) float64 {
	if l.Unit == UnitPixels {
		return l.Value
	}
	return l.Value / 100 * dimension
}

// Limits bundles the explicit size bounds for both dimensions.
type Limits struct {
	MinWidth  Limit `json:"min_width"`
	MinHeight Limit `json:"min_height"`
	MaxWidth  Limit `json:"max_width"`
	MaxHeight Limit `json:"max_height"`
}

// SizeRestrictions is the allowed range for the crop rectangle's dimensions
// in image pixels. Unbounded maxima are +Inf.
type SizeRestrictions struct {
	MinWidth  float64
	MinHeight float64
	MaxWidth  float64
	MaxHeight float64
}

// Bounds is a set of edge limits in image-pixel space. Unbounded edges are
// ±Inf. It backs both PositionRestrictions (crop rectangle edges) and
// AreaRestrictions (visible area edges).
type Bounds struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// PositionRestrictions limits where the crop rectangle's edges may lie.
type PositionRestrictions = Bounds

// AreaRestrictions limits where the visible area's edges may lie.
type AreaRestrictions = Bounds

// Unbounded returns bounds that allow any position.
func Unbounded() Bounds {
	return Bounds{
		Left:   math.Inf(-1),
		Top:    math.Inf(-1),
		Right:  math.Inf(1),
		Bottom: math.Inf(1),
	}
}

// ImageBounds returns bounds matching the image extent.
func ImageBounds(imageSize geometry.Size) Bounds {
	return Bounds{Right: imageSize.Width, Bottom: imageSize.Height}
}

// Width returns the horizontal extent of the bounds (may be +Inf).
func (b Bounds) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of the bounds (may be +Inf).
func (b Bounds) Height() float64 {
	return b.Bottom - b.Top
}

// Intersect returns the tightest bounds satisfying both operands.
func (b Bounds) Intersect(other Bounds) Bounds {
	return Bounds{
		Left:   math.Max(b.Left, other.Left),
		Top:    math.Max(b.Top, other.Top),
		Right:  math.Min(b.Right, other.Right),
		Bottom: math.Min(b.Bottom, other.Bottom),
	}
}

// FromRect returns the bounds occupied by a rectangle.
func FromRect(r geometry.Rect) Bounds {
	return Bounds{Left: r.Left, Top: r.Top, Right: r.Right(), Bottom: r.Bottom()}
}

// Admits reports whether the rectangle lies entirely within the bounds,
// with a small tolerance for floating point noise.
func (b Bounds) Admits(r geometry.Rect) bool {
	const eps = 1e-9
	return r.Left >= b.Left-eps && r.Top >= b.Top-eps &&
		r.Right() <= b.Right+eps && r.Bottom() <= b.Bottom+eps
}

// AspectRatio constrains the crop rectangle's width/height ratio. Zero
// values mean unset; equal non-zero values lock the ratio.
type AspectRatio struct {
	Minimum float64 `json:"minimum"`
	Maximum float64 `json:"maximum"`
}

// Fixed returns a locked aspect ratio.
func Fixed(ratio float64) AspectRatio {
	return AspectRatio{Minimum: ratio, Maximum: ratio}
}

// Locked reports whether the ratio is pinned to a single value.
func (a AspectRatio) Locked() bool {
	return a.Minimum != 0 && a.Minimum == a.Maximum
}

// Admits reports whether ratio satisfies the constraint.
func (a AspectRatio) Admits(ratio float64) bool {
	const eps = 1e-9
	if a.Minimum != 0 && ratio < a.Minimum-eps {
		return false
	}
	if a.Maximum != 0 && ratio > a.Maximum+eps {
		return false
	}
	return true
}

// ClampRatio bounds ratio into the allowed interval.
func (a AspectRatio) ClampRatio(ratio float64) float64 {
	if a.Minimum != 0 && ratio < a.Minimum {
		return a.Minimum
	}
	if a.Maximum != 0 && ratio > a.Maximum {
		return a.Maximum
	}
	return ratio
}

// SizeRestrictionsFor resolves the explicit limits against the image size.
// In stencil and area modes maxima additionally cap at the image extent.
func SizeRestrictionsFor(imageSize geometry.Size, limits Limits, mode Mode) SizeRestrictions {
	sr := SizeRestrictions{
		MinWidth:  limits.MinWidth.Resolve(imageSize.Width),
		MinHeight: limits.MinHeight.Resolve(imageSize.Height),
		MaxWidth:  math.Inf(1),
		MaxHeight: math.Inf(1),
	}
	if limits.MaxWidth.Set() {
		sr.MaxWidth = limits.MaxWidth.Resolve(imageSize.Width)
	}
	if limits.MaxHeight.Set() {
		sr.MaxHeight = limits.MaxHeight.Resolve(imageSize.Height)
	}
	if mode != ModeNone {
		sr.MaxWidth = math.Min(sr.MaxWidth, imageSize.Width)
		sr.MaxHeight = math.Min(sr.MaxHeight, imageSize.Height)
	}
	return sr
}

// PositionRestrictionsFor returns the edge limits for the crop rectangle.
// Any mode other than none pins the rectangle inside the image.
func PositionRestrictionsFor(imageSize geometry.Size, mode Mode) PositionRestrictions {
	if mode == ModeNone {
		return Unbounded()
	}
	return ImageBounds(imageSize)
}

// AreaRestrictionsFor returns the edge limits for the visible area. Only
// area mode confines the visible window to the image; stencil containment
// is achieved through position restrictions instead.
func AreaRestrictionsFor(imageSize geometry.Size, mode Mode) AreaRestrictions {
	if mode == ModeArea {
		return ImageBounds(imageSize)
	}
	return Unbounded()
}

// Refine reconciles raw size restrictions against what the environment can
// actually display. A minimum that exceeds the position-restriction extent
// or the visible area is capped down rather than reported as an error, and
// min <= max is restored afterwards. This is a soft clamp by design of the
// data model, never a validation failure.
func Refine(sr SizeRestrictions, position PositionRestrictions, visibleArea geometry.Rect) SizeRestrictions {
	displayable := position.Intersect(FromRect(visibleArea))
	if w := displayable.Width(); !math.IsInf(w, 1) && w > 0 {
		sr.MinWidth = math.Min(sr.MinWidth, w)
		sr.MaxWidth = math.Min(sr.MaxWidth, math.Max(w, sr.MinWidth))
	}
	if h := displayable.Height(); !math.IsInf(h, 1) && h > 0 {
		sr.MinHeight = math.Min(sr.MinHeight, h)
		sr.MaxHeight = math.Min(sr.MaxHeight, math.Max(h, sr.MinHeight))
	}
	if sr.MaxWidth < sr.MinWidth {
		sr.MaxWidth = sr.MinWidth
	}
	if sr.MaxHeight < sr.MinHeight {
		sr.MaxHeight = sr.MinHeight
	}
	return sr
}
