// Package gestures normalizes heterogeneous input sources (single-pointer
// drags, multi-touch pinches, wheel steps) into the canonical delta+anchor
// events the transform algorithms consume. All conversions go through the
// current coefficient (image pixels per screen pixel); gestures never touch
// engine state.
package gestures

import (
	"math"

	"github.com/menta2k/crop-engine/pkg/geometry"
	"github.com/menta2k/crop-engine/pkg/transforms"
)

// Handle identifies which part of the stencil a resize drag grabbed.
type Handle string

const (
	HandleNorth     Handle = "north"
	HandleSouth     Handle = "south"
	HandleEast      Handle = "east"
	HandleWest      Handle = "west"
	HandleNorthEast Handle = "north-east"
	HandleNorthWest Handle = "north-west"
	HandleSouthEast Handle = "south-east"
	HandleSouthWest Handle = "south-west"
)

// Drag is a single-pointer movement between two samples, in screen pixels.
type Drag struct {
	Previous geometry.Point
	Current  geometry.Point
}

// Move converts the drag into a move event in image pixels.
func (d Drag) Move(coefficient float64) transforms.MoveEvent {
	return transforms.MoveEvent{Delta: geometry.Point{
		Left: (d.Current.Left - d.Previous.Left) * coefficient,
		Top:  (d.Current.Top - d.Previous.Top) * coefficient,
	}}
}

// ResizeDrag is a handle drag in screen pixels. MinExtent is an optional UI
// affordance policy: a screen-pixel floor under which the host does not want
// the stencil to shrink, regardless of the geometric size restrictions. Zero
// disables it.
type ResizeDrag struct {
	Handle    Handle
	Delta     geometry.Point
	MinExtent float64
}

// Resize converts the handle drag into per-edge growth directions in image
// pixels. Dragging the west or north edge outward means a negative screen
// delta, hence the sign flips on those edges.
func (d ResizeDrag) Resize(coefficient float64, coordinates geometry.Rect) transforms.ResizeEvent {
	dx := d.Delta.Left * coefficient
	dy := d.Delta.Top * coefficient

	var dir transforms.Directions
	switch d.Handle {
	case HandleEast:
		dir.Right = dx
	case HandleWest:
		dir.Left = -dx
	case HandleNorth:
		dir.Top = -dy
	case HandleSouth:
		dir.Bottom = dy
	case HandleNorthEast:
		dir.Top, dir.Right = -dy, dx
	case HandleNorthWest:
		dir.Top, dir.Left = -dy, -dx
	case HandleSouthEast:
		dir.Bottom, dir.Right = dy, dx
	case HandleSouthWest:
		dir.Bottom, dir.Left = dy, -dx
	}

	if d.MinExtent > 0 {
		floor := d.MinExtent * coefficient
		dir = limitShrink(dir, coordinates, floor)
	}
	return transforms.ResizeEvent{Directions: dir}
}

// limitShrink caps shrinking directions so the rectangle keeps at least the
// given extent on each axis.
func limitShrink(d transforms.Directions, r geometry.Rect, floor float64) transforms.Directions {
	if width := r.Width + d.Left + d.Right; width < floor && d.Left+d.Right < 0 {
		scale := math.Max(0, (floor-r.Width)/(d.Left+d.Right))
		d.Left *= scale
		d.Right *= scale
	}
	if height := r.Height + d.Top + d.Bottom; height < floor && d.Top+d.Bottom < 0 {
		scale := math.Max(0, (floor-r.Height)/(d.Top+d.Bottom))
		d.Top *= scale
		d.Bottom *= scale
	}
	return d
}

// Pinch converts two multi-touch samples into a combined pan/zoom transform.
// The pan follows the centroid, the factor follows the mean spread (fingers
// moving apart produce a factor below 1, i.e. zoom in), and the anchor is
// the image point under the current centroid so it stays fixed on screen.
func Pinch(previous, current []geometry.Point, visibleArea geometry.Rect, boundaries geometry.Size) transforms.ImageTransform {
	if len(previous) == 0 || len(current) == 0 {
		return transforms.ImageTransform{}
	}
	coefficient := geometry.Coefficient(visibleArea, boundaries)

	prevCenter := centroid(previous)
	curCenter := centroid(current)

	// The image follows the fingers, so the window moves the opposite way.
	move := geometry.Point{
		Left: (prevCenter.Left - curCenter.Left) * coefficient,
		Top:  (prevCenter.Top - curCenter.Top) * coefficient,
	}

	transform := transforms.ImageTransform{Move: move}
	if len(previous) > 1 && len(current) > 1 {
		prevSpread := spread(previous, prevCenter)
		curSpread := spread(current, curCenter)
		if prevSpread > 0 && curSpread > 0 {
			anchor := geometry.Point{
				Left: visibleArea.Left + move.Left + curCenter.Left*coefficient,
				Top:  visibleArea.Top + move.Top + curCenter.Top*coefficient,
			}
			transform.Scale = transforms.Scale{
				Factor: prevSpread / curSpread,
				Center: &anchor,
			}
		}
	}
	return transform
}

// Wheel converts a wheel delta into an anchored zoom transform. Positive
// deltas (scrolling down) zoom out. Speed is the per-step factor increment;
// zero uses the conventional 0.1.
func Wheel(delta float64, position geometry.Point, speed float64, visibleArea geometry.Rect, boundaries geometry.Size) transforms.ImageTransform {
	if speed <= 0 {
		speed = 0.1
	}
	coefficient := geometry.Coefficient(visibleArea, boundaries)
	anchor := geometry.Point{
		Left: visibleArea.Left + position.Left*coefficient,
		Top:  visibleArea.Top + position.Top*coefficient,
	}

	factor := 1 + speed*math.Abs(delta)/100
	if delta < 0 {
		factor = 1 / factor
	}
	return transforms.ImageTransform{Scale: transforms.Scale{Factor: factor, Center: &anchor}}
}

func centroid(points []geometry.Point) geometry.Point {
	var c geometry.Point
	for _, p := range points {
		c.Left += p.Left
		c.Top += p.Top
	}
	c.Left /= float64(len(points))
	c.Top /= float64(len(points))
	return c
}

func spread(points []geometry.Point, center geometry.Point) float64 {
	var total float64
	for _, p := range points {
		total += math.Hypot(p.Left-center.Left, p.Top-center.Top)
	}
	return total / float64(len(points))
}
