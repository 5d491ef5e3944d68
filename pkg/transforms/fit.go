package transforms

import (
	"math"

	"github.com/menta2k/crop-engine/pkg/geometry"
	"github.com/menta2k/crop-engine/pkg/restrictions"
)

// DefaultVisibleArea returns the initial visible window: the smallest
// rectangle with the boundaries' aspect ratio that covers the whole image,
// centered on it. Area-mode clamping, when active, is applied afterwards by
// RefineVisibleArea.
func DefaultVisibleArea(imageSize, boundaries geometry.Size) geometry.Rect {
	ratio := boundaries.Ratio()
	if ratio == 0 {
		return geometry.RectFromSize(imageSize)
	}
	var width, height float64
	if imageSize.Ratio() > ratio {
		width = imageSize.Width
		height = width / ratio
	} else {
		height = imageSize.Height
		width = height * ratio
	}
	return geometry.Rect{
		Left:   (imageSize.Width - width) / 2,
		Top:    (imageSize.Height - height) / 2,
		Width:  width,
		Height: height,
	}
}

// RefineVisibleArea clamps a candidate visible area into the area
// restrictions while keeping the boundaries' aspect ratio: the ratio is
// restored first, then the window is scaled down about its center until it
// fits the restriction extents, then shifted inside.
func RefineVisibleArea(visibleArea geometry.Rect, boundaries geometry.Size, area restrictions.AreaRestrictions) geometry.Rect {
	out := visibleArea
	if ratio := boundaries.Ratio(); ratio > 0 && out.Width > 0 {
		center := out.Center()
		out.Height = out.Width / ratio
		out.Top = center.Top - out.Height/2
	}
	if factor := extentFactor(out, area); factor < 1 {
		out = out.ScaleAbout(factor, out.Center())
	}
	return fitToBounds(out, area)
}

// FitVisibleArea reconciles the visible area with fresh boundaries after a
// container resize. The window's width (and with it the on-screen scale) is
// preserved as closely as the restrictions allow; the height is re-derived
// from the new boundaries ratio about the center, the result is clamped, and
// finally shifted minimally to keep the crop rectangle visible.
func FitVisibleArea(boundaries geometry.Size, visibleArea, coordinates geometry.Rect, area restrictions.AreaRestrictions) geometry.Rect {
	out := RefineVisibleArea(visibleArea, boundaries, area)
	out = containShift(out, coordinates)
	return fitToBounds(out, area)
}

// FitCoordinates reclamps the crop rectangle into the refreshed visible area
// and restrictions, adjusting size before position so a constrained aspect
// ratio wins over placement. It is idempotent for already-valid input.
func FitCoordinates(visibleArea, coordinates geometry.Rect, aspect restrictions.AspectRatio, position restrictions.PositionRestrictions, size restrictions.SizeRestrictions) geometry.Rect {
	size = restrictions.Refine(size, position, visibleArea)

	width, height := coordinates.Width, coordinates.Height
	if height > 0 && !aspect.Admits(width/height) {
		ratio := aspect.ClampRatio(width / height)
		width, height = sizeForRatio(width, ratio, size)
	} else {
		width = geometry.Clamp(width, size.MinWidth, size.MaxWidth)
		height = geometry.Clamp(height, size.MinHeight, size.MaxHeight)
		if height > 0 && !aspect.Admits(width/height) {
			ratio := aspect.ClampRatio(width / height)
			width, height = sizeForRatio(width, ratio, size)
		}
	}

	center := coordinates.Center()
	out := geometry.Rect{
		Left:   center.Left - width/2,
		Top:    center.Top - height/2,
		Width:  width,
		Height: height,
	}
	limits := position.Intersect(restrictions.FromRect(visibleArea))
	return fitToBounds(out, limits)
}

// sizeForRatio finds dimensions with the given ratio inside the size
// restrictions, starting from the given width. If the derived height lands
// outside its range it is clamped and the width re-derived from it; a still
// infeasible pair degrades to the plain clamp.
func sizeForRatio(width, ratio float64, size restrictions.SizeRestrictions) (float64, float64) {
	width = geometry.Clamp(width, size.MinWidth, size.MaxWidth)
	height := width / ratio
	if height < size.MinHeight || height > size.MaxHeight {
		height = geometry.Clamp(height, size.MinHeight, size.MaxHeight)
		width = geometry.Clamp(height*ratio, size.MinWidth, size.MaxWidth)
	}
	return width, height
}

// DefaultCoordinates derives the initial crop rectangle: sized as a fraction
// of the displayable extent (the intersection of visible area and position
// restrictions), shrunk to the aspect ratio, clamped into the size
// restrictions and centered in the visible area. The result is already
// consistent, but callers run it through FitCoordinates anyway as the last
// reset step.
func DefaultCoordinates(visibleArea geometry.Rect, fraction float64, aspect restrictions.AspectRatio, position restrictions.PositionRestrictions, size restrictions.SizeRestrictions) geometry.Rect {
	if fraction <= 0 {
		fraction = 0.8
	}
	displayable := position.Intersect(restrictions.FromRect(visibleArea))

	width := displayable.Width() * fraction
	height := displayable.Height() * fraction
	if math.IsInf(width, 1) {
		width = visibleArea.Width * fraction
	}
	if math.IsInf(height, 1) {
		height = visibleArea.Height * fraction
	}
	if height > 0 && !aspect.Admits(width/height) {
		// Shrink one dimension, never grow past the displayable extent.
		ratio := aspect.ClampRatio(width / height)
		if width/height > ratio {
			width = height * ratio
		} else {
			height = width / ratio
		}
	}

	out := geometry.Rect{Width: width, Height: height}
	out = clampSize(out, restrictions.Refine(size, position, visibleArea))
	center := visibleArea.Center()
	out.Left = center.Left - out.Width/2
	out.Top = center.Top - out.Height/2
	return out
}
