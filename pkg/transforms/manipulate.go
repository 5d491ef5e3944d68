package transforms

import (
	"math"

	"github.com/menta2k/crop-engine/pkg/geometry"
	"github.com/menta2k/crop-engine/pkg/restrictions"
)

// ManipulateImage applies a pan and/or anchored zoom to the visible area and
// keeps the crop rectangle consistent with it in the same atomic step.
//
// Pan translates the visible area, clamps it into the area restrictions and
// moves the crop rectangle by the same effective (post-clamp) delta, so the
// stencil stays fixed on screen. Zoom scales the visible area about the
// anchor point; the factor is pre-clamped against the area extent, and, when
// adjustStencil is set, against the crop rectangle's own size restrictions
// so the stencil scaling with the image can never leave the allowed range.
func ManipulateImage(visibleArea, coordinates geometry.Rect, area restrictions.AreaRestrictions, size restrictions.SizeRestrictions, position restrictions.PositionRestrictions, adjustStencil bool, event ImageTransform) (geometry.Rect, geometry.Rect) {
	moved := visibleArea.Translate(event.Move)

	factor := event.Scale.Factor
	if factor <= 0 {
		factor = 1
	}
	anchor := moved.Center()
	if event.Scale.Center != nil {
		anchor = *event.Scale.Center
	}

	scaled := moved
	if factor != 1 {
		factor = clampFactor(factor, moved, coordinates, area, size, adjustStencil)
		scaled = moved.ScaleAbout(factor, anchor)
	}

	newArea := fitToBounds(scaled, area)
	shift := geometry.Point{Left: newArea.Left - scaled.Left, Top: newArea.Top - scaled.Top}

	crop := coordinates.Translate(event.Move)
	if factor != 1 {
		if adjustStencil {
			crop = crop.ScaleAbout(factor, anchor)
		} else {
			crop = renormalize(crop, moved, scaled)
		}
	}
	crop = crop.Translate(shift)

	limits := position.Intersect(restrictions.FromRect(newArea))
	crop = clampSize(crop, restrictions.Refine(size, position, newArea))
	crop = fitToBounds(crop, limits)

	return newArea, crop
}

// clampFactor bounds the zoom factor so the scaled visible area fits the
// area restrictions and, when the stencil scales along, so the crop
// rectangle stays within its size restrictions.
func clampFactor(factor float64, visibleArea, coordinates geometry.Rect, area restrictions.AreaRestrictions, size restrictions.SizeRestrictions, adjustStencil bool) float64 {
	if w := area.Width(); !math.IsInf(w, 1) && visibleArea.Width > 0 {
		factor = math.Min(factor, w/visibleArea.Width)
	}
	if h := area.Height(); !math.IsInf(h, 1) && visibleArea.Height > 0 {
		factor = math.Min(factor, h/visibleArea.Height)
	}
	if adjustStencil && coordinates.Width > 0 && coordinates.Height > 0 {
		if !math.IsInf(size.MaxWidth, 1) {
			factor = math.Min(factor, size.MaxWidth/coordinates.Width)
		}
		if !math.IsInf(size.MaxHeight, 1) {
			factor = math.Min(factor, size.MaxHeight/coordinates.Height)
		}
		if size.MinWidth > 0 {
			factor = math.Max(factor, size.MinWidth/coordinates.Width)
		}
		if size.MinHeight > 0 {
			factor = math.Max(factor, size.MinHeight/coordinates.Height)
		}
	}
	return factor
}

// renormalize keeps the crop rectangle's size but restores its relative
// position within the visible area after a zoom that does not scale the
// stencil.
func renormalize(crop, before, after geometry.Rect) geometry.Rect {
	if before.Width == 0 || before.Height == 0 {
		return crop
	}
	center := crop.Center()
	relLeft := (center.Left - before.Left) / before.Width
	relTop := (center.Top - before.Top) / before.Height
	crop.Left = after.Left + relLeft*after.Width - crop.Width/2
	crop.Top = after.Top + relTop*after.Height - crop.Height/2
	return crop
}
