package transforms

import (
	"math"

	"github.com/menta2k/crop-engine/pkg/geometry"
	"github.com/menta2k/crop-engine/pkg/restrictions"
)

// Resize applies a handle drag to the crop rectangle. The event's directions
// carry raw per-edge growth; the result honors the size restrictions, the
// position restrictions and the aspect ratio, keeping the edges opposite the
// dragged handle anchored. When a locked ratio cannot be satisfied even
// after re-deriving the secondary dimension, the whole sample is a no-op
// rather than letting the rectangle oscillate.
func Resize(coordinates geometry.Rect, size restrictions.SizeRestrictions, position restrictions.PositionRestrictions, aspect restrictions.AspectRatio, event ResizeEvent) geometry.Rect {
	if coordinates.Width <= 0 || coordinates.Height <= 0 {
		return coordinates
	}

	directions := clampDirections(coordinates, event.Directions, size, position)

	width := coordinates.Width + directions.Left + directions.Right
	height := coordinates.Height + directions.Top + directions.Bottom

	if height > 0 && !aspect.Admits(width/height) {
		target := aspect.ClampRatio(width / height)
		directions = restoreRatio(coordinates, event.Directions, directions, target)
		directions = clampDirections(coordinates, directions, size, position)

		width = coordinates.Width + directions.Left + directions.Right
		height = coordinates.Height + directions.Top + directions.Bottom
		if height <= 0 || !aspect.Admits(width/height) {
			return coordinates
		}
	}

	return fitToBounds(applyDirections(coordinates, directions), position)
}

// clampDirections limits per-edge growth so that every edge stays inside the
// position restrictions and the resulting dimensions stay inside the size
// restrictions. Size overshoot is resolved by scaling the axis' directions
// proportionally, which keeps a corner drag feeling uniform.
func clampDirections(r geometry.Rect, d Directions, size restrictions.SizeRestrictions, position restrictions.PositionRestrictions) Directions {
	if r.Left-d.Left < position.Left {
		d.Left = r.Left - position.Left
	}
	if r.Top-d.Top < position.Top {
		d.Top = r.Top - position.Top
	}
	if r.Right()+d.Right > position.Right {
		d.Right = position.Right - r.Right()
	}
	if r.Bottom()+d.Bottom > position.Bottom {
		d.Bottom = position.Bottom - r.Bottom()
	}

	if growth := d.Left + d.Right; growth != 0 {
		width := r.Width + growth
		target := geometry.Clamp(width, math.Max(size.MinWidth, 0), size.MaxWidth)
		if target != width {
			scale := math.Max(0, (target-r.Width)/growth)
			d.Left *= scale
			d.Right *= scale
		}
	}
	if growth := d.Top + d.Bottom; growth != 0 {
		height := r.Height + growth
		target := geometry.Clamp(height, math.Max(size.MinHeight, 0), size.MaxHeight)
		if target != height {
			scale := math.Max(0, (target-r.Height)/growth)
			d.Top *= scale
			d.Bottom *= scale
		}
	}
	return d
}

// restoreRatio re-derives the secondary axis of clamped directions so the
// resulting rectangle hits the target ratio. The dominant axis is the one
// with the larger relative change in the raw gesture; the correction is
// distributed over the edges the gesture actually touched, or split evenly
// when it touched neither (symmetric growth).
func restoreRatio(r geometry.Rect, raw, clamped Directions, ratio float64) Directions {
	widthChange := math.Abs(raw.Left+raw.Right) / r.Width
	heightChange := math.Abs(raw.Top+raw.Bottom) / r.Height

	if widthChange >= heightChange {
		width := r.Width + clamped.Left + clamped.Right
		needed := width/ratio - r.Height
		clamped.Top, clamped.Bottom = distribute(raw.Top, raw.Bottom, needed)
	} else {
		height := r.Height + clamped.Top + clamped.Bottom
		needed := height*ratio - r.Width
		clamped.Left, clamped.Right = distribute(raw.Left, raw.Right, needed)
	}
	return clamped
}

// distribute splits a total growth over two opposing edges, favoring the
// edges the gesture touched so the anchor stays put.
func distribute(first, second, total float64) (float64, float64) {
	switch {
	case first != 0 && second != 0:
		return total / 2, total / 2
	case first != 0:
		return total, 0
	case second != 0:
		return 0, total
	default:
		return total / 2, total / 2
	}
}
