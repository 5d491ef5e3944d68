package transforms

import (
	"math"

	"github.com/menta2k/crop-engine/pkg/geometry"
	"github.com/menta2k/crop-engine/pkg/restrictions"
)

// RoundCoordinates snaps the crop rectangle to the integer pixel grid
// without violating restrictions that were already satisfied: dimensions
// round towards the nearest value still inside the size range, position is
// rounded and then the rectangle is shifted back inside the position bounds.
func RoundCoordinates(coordinates geometry.Rect, size restrictions.SizeRestrictions, position restrictions.PositionRestrictions) geometry.Rect {
	width := math.Round(coordinates.Width)
	if width > size.MaxWidth {
		width = math.Floor(coordinates.Width)
	} else if width < size.MinWidth {
		width = math.Ceil(coordinates.Width)
	}

	height := math.Round(coordinates.Height)
	if height > size.MaxHeight {
		height = math.Floor(coordinates.Height)
	} else if height < size.MinHeight {
		height = math.Ceil(coordinates.Height)
	}

	out := geometry.Rect{
		Left:   math.Round(coordinates.Left),
		Top:    math.Round(coordinates.Top),
		Width:  width,
		Height: height,
	}
	return fitToBounds(out, position)
}
