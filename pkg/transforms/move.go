package transforms

import (
	"github.com/menta2k/crop-engine/pkg/geometry"
	"github.com/menta2k/crop-engine/pkg/restrictions"
)

// Move translates the crop rectangle by the event's delta and clamps each
// axis independently into the position restrictions. Width and height are
// never changed: a delta that would push an edge past its bound saturates
// at the bound instead of overshooting.
func Move(coordinates geometry.Rect, position restrictions.PositionRestrictions, event MoveEvent) geometry.Rect {
	return fitToBounds(coordinates.Translate(event.Delta), position)
}
