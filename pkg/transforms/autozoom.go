package transforms

import (
	"math"

	"github.com/menta2k/crop-engine/pkg/geometry"
	"github.com/menta2k/crop-engine/pkg/restrictions"
)

// AutoZoom expands the visible area minimally so the crop rectangle is fully
// contained, preserving the boundaries' aspect ratio, then clamps into the
// area restrictions. It is idempotent: a crop rectangle that already fits
// returns the visible area unchanged.
func AutoZoom(visibleArea, coordinates geometry.Rect, area restrictions.AreaRestrictions, boundaries geometry.Size) geometry.Rect {
	if visibleArea.Contains(coordinates) {
		return visibleArea
	}

	out := visibleArea
	if ratio := boundaries.Ratio(); ratio > 0 && out.Width > 0 {
		center := out.Center()
		out.Height = out.Width / ratio
		out.Top = center.Top - out.Height/2
	}

	factor := 1.0
	if out.Width > 0 {
		factor = math.Max(factor, coordinates.Width/out.Width)
	}
	if out.Height > 0 {
		factor = math.Max(factor, coordinates.Height/out.Height)
	}
	if factor != 1 {
		out = out.ScaleAbout(factor, out.Center())
	}

	// Stay displayable before shifting: a grown window larger than the area
	// extent is scaled back down about its center.
	if shrink := extentFactor(out, area); shrink < 1 {
		out = out.ScaleAbout(shrink, out.Center())
	}

	out = containShift(out, coordinates)
	return fitToBounds(out, area)
}

// extentFactor returns the scale (at most 1) bringing a rectangle within the
// extents of the bounds.
func extentFactor(r geometry.Rect, b restrictions.Bounds) float64 {
	factor := 1.0
	if w := b.Width(); !math.IsInf(w, 1) && r.Width > w {
		factor = math.Min(factor, w/r.Width)
	}
	if h := b.Height(); !math.IsInf(h, 1) && r.Height > h {
		factor = math.Min(factor, h/r.Height)
	}
	return factor
}

// containShift moves outer the minimal distance so inner lies within it,
// aligning to inner's near edge when outer is too small on an axis.
func containShift(outer, inner geometry.Rect) geometry.Rect {
	if inner.Left < outer.Left {
		outer.Left = inner.Left
	} else if inner.Right() > outer.Right() {
		outer.Left = inner.Right() - outer.Width
	}
	if inner.Top < outer.Top {
		outer.Top = inner.Top
	} else if inner.Bottom() > outer.Bottom() {
		outer.Top = inner.Bottom() - outer.Height
	}
	return outer
}
