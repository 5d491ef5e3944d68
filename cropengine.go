// Package cropengine provides a constraint-based geometry engine for
// interactive image cropping.
//
// The engine turns raw interaction deltas (dragging or resizing the
// selection rectangle, panning and zooming the underlying image) into a
// new, always-valid crop rectangle and visible-image window. Rendering,
// event capture and image decoding are external collaborators: the engine
// receives normalized geometric events and returns new geometric state, and
// never touches pixels or the DOM-equivalent.
//
// Basic usage:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		cropengine "github.com/menta2k/crop-engine"
//		"github.com/menta2k/crop-engine/pkg/geometry"
//	)
//
//	func main() {
//		cropper := cropengine.New()
//
//		// Tell the engine what it is cropping and where.
//		if err := cropper.SetImage(geometry.Size{Width: 1000, Height: 800}); err != nil {
//			log.Fatal(err)
//		}
//		if err := cropper.SetContainer(geometry.Size{Width: 500, Height: 400}); err != nil {
//			log.Fatal(err)
//		}
//
//		// Apply a gesture and read back the always-valid result.
//		cropper.Move(geometry.Point{Left: 120, Top: -40})
//		fmt.Printf("crop: %+v\n", cropper.Coordinates())
//	}
//
// The engine consists of four geometry packages:
//
// 1. Geometry (pkg/geometry): shared value types and primitive operations
// 2. Restrictions (pkg/restrictions): allowed ranges per restriction mode
// 3. Transforms (pkg/transforms): move/resize/pan/zoom/fit/round algorithms
// 4. Gestures (pkg/gestures): raw input to canonical delta+anchor events
//
// plus pkg/render, which applies the resulting crop rectangle to an actual
// decoded image for hosts that want a full pipeline.
//
// Every algorithm is a pure function over an explicit snapshot; the Cropper
// type is the stateful convenience wrapper a host would otherwise write
// itself. Calls for one gesture stream must be serialized by the host.
package cropengine

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/menta2k/crop-engine/pkg/geometry"
	"github.com/menta2k/crop-engine/pkg/gestures"
	"github.com/menta2k/crop-engine/pkg/restrictions"
	"github.com/menta2k/crop-engine/pkg/transforms"
)

// Version of the crop engine library
const Version = "1.0.0"

// DefaultSizeFunc computes the initial crop size for a freshly reset state.
// Results outside the size restrictions are logged as a warning in
// diagnostic setups and silently clamped by the subsequent fit step.
type DefaultSizeFunc func(visibleArea geometry.Rect, imageSize geometry.Size) geometry.Size

// Algorithms is the pluggable strategy set. Zero fields fall back to the
// default implementations from pkg/transforms.
type Algorithms struct {
	Move            func(geometry.Rect, restrictions.PositionRestrictions, transforms.MoveEvent) geometry.Rect
	Resize          func(geometry.Rect, restrictions.SizeRestrictions, restrictions.PositionRestrictions, restrictions.AspectRatio, transforms.ResizeEvent) geometry.Rect
	ManipulateImage func(geometry.Rect, geometry.Rect, restrictions.AreaRestrictions, restrictions.SizeRestrictions, restrictions.PositionRestrictions, bool, transforms.ImageTransform) (geometry.Rect, geometry.Rect)
	AutoZoom        func(geometry.Rect, geometry.Rect, restrictions.AreaRestrictions, geometry.Size) geometry.Rect
	FitCoordinates  func(geometry.Rect, geometry.Rect, restrictions.AspectRatio, restrictions.PositionRestrictions, restrictions.SizeRestrictions) geometry.Rect
	FitVisibleArea  func(geometry.Size, geometry.Rect, geometry.Rect, restrictions.AreaRestrictions) geometry.Rect
	DefaultSize     DefaultSizeFunc
}

// Settings configures the engine's constraint model.
type Settings struct {
	// Mode is the restriction mode; empty defaults to area.
	Mode restrictions.Mode
	// Limits are the explicit size bounds (percent of image by default).
	Limits restrictions.Limits
	// AspectRatio constrains the crop rectangle's proportions.
	AspectRatio restrictions.AspectRatio
	// DefaultSize is the initial crop size as a fraction of the displayable
	// extent; zero defaults to 0.8.
	DefaultSize float64
	// AdjustStencil lets the crop rectangle scale together with the image
	// during zoom.
	AdjustStencil bool
	// FitContainer shrinks the boundaries to the image's aspect ratio
	// instead of filling the whole container.
	FitContainer bool
	// WheelSpeed is the per-step zoom increment for wheel gestures.
	WheelSpeed float64
	// MinResizeExtent is a screen-pixel floor under which handle drags do
	// not shrink the stencil. Zero disables it.
	MinResizeExtent float64
}

// DefaultSettings returns the engine defaults: area restriction mode,
// stencil scaling with the image, no explicit limits.
func DefaultSettings() Settings {
	return Settings{
		Mode:          restrictions.ModeArea,
		DefaultSize:   0.8,
		AdjustStencil: true,
	}
}

// Cropper owns the geometry state a host presentation layer would hold
// between gesture samples, and routes each operation through the configured
// algorithms. It is not safe for concurrent use: the host serializes calls
// per gesture stream.
type Cropper struct {
	settings   Settings
	algorithms Algorithms
	logger     zerolog.Logger

	imageSize   geometry.Size
	container   geometry.Size
	boundaries  geometry.Size
	visibleArea geometry.Rect
	coordinates geometry.Rect
	ready       bool
}

// New creates a Cropper with default settings and algorithms.
func New() *Cropper {
	return NewWithConfig(DefaultSettings(), Algorithms{})
}

// NewWithConfig creates a Cropper with custom settings and algorithm
// overrides. Unset algorithm fields use the defaults from pkg/transforms.
func NewWithConfig(settings Settings, algorithms Algorithms) *Cropper {
	if settings.Mode == "" {
		settings.Mode = restrictions.ModeArea
	}
	if settings.DefaultSize <= 0 {
		settings.DefaultSize = 0.8
	}
	if algorithms.Move == nil {
		algorithms.Move = transforms.Move
	}
	if algorithms.Resize == nil {
		algorithms.Resize = transforms.Resize
	}
	if algorithms.ManipulateImage == nil {
		algorithms.ManipulateImage = transforms.ManipulateImage
	}
	if algorithms.AutoZoom == nil {
		algorithms.AutoZoom = transforms.AutoZoom
	}
	if algorithms.FitCoordinates == nil {
		algorithms.FitCoordinates = transforms.FitCoordinates
	}
	if algorithms.FitVisibleArea == nil {
		algorithms.FitVisibleArea = transforms.FitVisibleArea
	}
	return &Cropper{
		settings:   settings,
		algorithms: algorithms,
		logger:     zerolog.Nop(),
	}
}

// SetLogger installs a logger for diagnostic warnings. The engine itself
// never logs on the hot path.
func (c *Cropper) SetLogger(logger zerolog.Logger) {
	c.logger = logger
}

// SetImage installs a freshly loaded image's dimensions and resets the
// geometry when a container is already known.
func (c *Cropper) SetImage(imageSize geometry.Size) error {
	if imageSize.Empty() {
		return fmt.Errorf("set image: dimensions %gx%g are not positive", imageSize.Width, imageSize.Height)
	}
	c.imageSize = imageSize
	c.ready = false
	if !c.container.Empty() {
		return c.Reset()
	}
	return nil
}

// SetContainer installs the container's on-screen size. The first call
// resets the geometry; later calls refresh it, preserving the current view
// as closely as the restrictions allow.
func (c *Cropper) SetContainer(container geometry.Size) error {
	c.container = container
	if c.imageSize.Empty() {
		return nil
	}
	if c.ready {
		return c.Refresh()
	}
	return c.Reset()
}

// Reset recomputes the whole geometry from scratch. The order is fixed:
// boundaries, then restrictions, then the visible area, then the default
// coordinates, because position restrictions depend on the visible area,
// which must exist before coordinates are derived.
func (c *Cropper) Reset() error {
	boundaries, err := c.computeBoundaries()
	if err != nil {
		c.ready = false
		return err
	}
	c.boundaries = boundaries

	area := restrictions.AreaRestrictionsFor(c.imageSize, c.settings.Mode)
	position := restrictions.PositionRestrictionsFor(c.imageSize, c.settings.Mode)
	size := restrictions.SizeRestrictionsFor(c.imageSize, c.settings.Limits, c.settings.Mode)

	c.visibleArea = transforms.RefineVisibleArea(
		transforms.DefaultVisibleArea(c.imageSize, boundaries), boundaries, area)

	c.coordinates = c.defaultCoordinates(position, size)
	c.coordinates = c.algorithms.FitCoordinates(c.visibleArea, c.coordinates, c.settings.AspectRatio, position, size)
	c.ready = true
	return nil
}

// Refresh reconciles the geometry with new boundaries after a container
// resize, keeping the on-screen scale where possible.
func (c *Cropper) Refresh() error {
	boundaries, err := c.computeBoundaries()
	if err != nil {
		c.ready = false
		return err
	}
	c.boundaries = boundaries

	area := restrictions.AreaRestrictionsFor(c.imageSize, c.settings.Mode)
	position := restrictions.PositionRestrictionsFor(c.imageSize, c.settings.Mode)
	size := restrictions.SizeRestrictionsFor(c.imageSize, c.settings.Limits, c.settings.Mode)

	c.visibleArea = c.algorithms.FitVisibleArea(boundaries, c.visibleArea, c.coordinates, area)
	c.coordinates = c.algorithms.FitCoordinates(c.visibleArea, c.coordinates, c.settings.AspectRatio, position, size)
	return nil
}

// Move translates the crop rectangle by a delta in image pixels, clamped
// against the mode's position restrictions. When the rectangle leaves the
// visible area, the view scrolls or grows to follow it.
func (c *Cropper) Move(delta geometry.Point) {
	if !c.ready {
		return
	}
	position := restrictions.PositionRestrictionsFor(c.imageSize, c.settings.Mode)
	c.coordinates = c.algorithms.Move(c.coordinates, position, transforms.MoveEvent{Delta: delta})
	c.containCoordinates()
}

// Resize applies per-edge growth to the crop rectangle, clamped against the
// mode's position restrictions; the visible area follows afterwards.
func (c *Cropper) Resize(event transforms.ResizeEvent) {
	if !c.ready {
		return
	}
	position := restrictions.PositionRestrictionsFor(c.imageSize, c.settings.Mode)
	size := restrictions.SizeRestrictionsFor(c.imageSize, c.settings.Limits, c.settings.Mode)
	c.coordinates = c.algorithms.Resize(c.coordinates, size, position, c.settings.AspectRatio, event)
	c.containCoordinates()
}

// ResizeHandle applies a screen-space handle drag, normalizing it through
// the current coefficient first. Drags without an explicit MinExtent inherit
// the configured MinResizeExtent.
func (c *Cropper) ResizeHandle(drag gestures.ResizeDrag) {
	if !c.ready {
		return
	}
	if drag.MinExtent == 0 {
		drag.MinExtent = c.settings.MinResizeExtent
	}
	c.Resize(drag.Resize(c.Coefficient(), c.coordinates))
}

// ManipulateImage applies a combined pan/zoom transform to the visible area
// and the crop rectangle in one atomic step.
func (c *Cropper) ManipulateImage(event transforms.ImageTransform) {
	if !c.ready {
		return
	}
	area := restrictions.AreaRestrictionsFor(c.imageSize, c.settings.Mode)
	position := restrictions.PositionRestrictionsFor(c.imageSize, c.settings.Mode)
	size := restrictions.SizeRestrictionsFor(c.imageSize, c.settings.Limits, c.settings.Mode)
	c.visibleArea, c.coordinates = c.algorithms.ManipulateImage(
		c.visibleArea, c.coordinates, area, size, position, c.settings.AdjustStencil, event)
}

// Zoom scales the view by the requested zoom (above 1 zooms in) about an
// optional anchor in image pixels. Internally the visible area is scaled by
// the reciprocal factor.
func (c *Cropper) Zoom(zoom float64, anchor *geometry.Point) {
	if zoom <= 0 {
		return
	}
	c.ManipulateImage(transforms.ImageTransform{Scale: transforms.Scale{Factor: 1 / zoom, Center: anchor}})
}

// MoveImage pans the visible area by a delta in image pixels.
func (c *Cropper) MoveImage(delta geometry.Point) {
	c.ManipulateImage(transforms.ImageTransform{Move: delta})
}

// Wheel applies a wheel zoom at a screen position.
func (c *Cropper) Wheel(delta float64, position geometry.Point) {
	if !c.ready {
		return
	}
	c.ManipulateImage(gestures.Wheel(delta, position, c.settings.WheelSpeed, c.visibleArea, c.boundaries))
}

// Pinch applies a multi-touch pan/zoom sample given the previous and
// current touch points in screen pixels.
func (c *Cropper) Pinch(previous, current []geometry.Point) {
	if !c.ready {
		return
	}
	c.ManipulateImage(gestures.Pinch(previous, current, c.visibleArea, c.boundaries))
}

// Coordinates returns the crop rectangle snapped to the integer pixel grid,
// still satisfying all restrictions.
func (c *Cropper) Coordinates() geometry.Rect {
	size := restrictions.Refine(
		restrictions.SizeRestrictionsFor(c.imageSize, c.settings.Limits, c.settings.Mode),
		c.positionLimits(), c.visibleArea)
	return transforms.RoundCoordinates(c.coordinates, size, c.positionLimits())
}

// RawCoordinates returns the crop rectangle without rounding.
func (c *Cropper) RawCoordinates() geometry.Rect {
	return c.coordinates
}

// VisibleArea returns the current visible window in image pixels.
func (c *Cropper) VisibleArea() geometry.Rect {
	return c.visibleArea
}

// Boundaries returns the computed rendering boundaries in screen pixels.
func (c *Cropper) Boundaries() geometry.Size {
	return c.boundaries
}

// ImageSize returns the installed image dimensions.
func (c *Cropper) ImageSize() geometry.Size {
	return c.imageSize
}

// Coefficient returns the current image-pixels-per-screen-pixel factor.
func (c *Cropper) Coefficient() float64 {
	return geometry.Coefficient(c.visibleArea, c.boundaries)
}

// Ready reports whether the engine holds a consistent geometry.
func (c *Cropper) Ready() bool {
	return c.ready
}

func (c *Cropper) computeBoundaries() (geometry.Size, error) {
	if c.settings.FitContainer {
		return transforms.FitBoundaries(c.container, c.imageSize)
	}
	return transforms.FillBoundaries(c.container, c.imageSize)
}

// positionLimits intersects the mode's position restrictions with the
// current visible area. Gesture clamping uses the mode restrictions alone;
// this tighter bound applies only to the rounded output, so a snapped crop
// cannot poke one pixel outside the screen.
func (c *Cropper) positionLimits() restrictions.PositionRestrictions {
	return restrictions.PositionRestrictionsFor(c.imageSize, c.settings.Mode).
		Intersect(restrictions.FromRect(c.visibleArea))
}

// containCoordinates scrolls or grows the visible area when a move or resize
// pushed the crop rectangle beyond it.
func (c *Cropper) containCoordinates() {
	area := restrictions.AreaRestrictionsFor(c.imageSize, c.settings.Mode)
	c.visibleArea = c.algorithms.AutoZoom(c.visibleArea, c.coordinates, area, c.boundaries)
}

func (c *Cropper) defaultCoordinates(position restrictions.PositionRestrictions, size restrictions.SizeRestrictions) geometry.Rect {
	if c.algorithms.DefaultSize != nil {
		requested := c.algorithms.DefaultSize(c.visibleArea, c.imageSize)
		refined := restrictions.Refine(size, position, c.visibleArea)
		if requested.Width < refined.MinWidth || requested.Width > refined.MaxWidth ||
			requested.Height < refined.MinHeight || requested.Height > refined.MaxHeight {
			c.logger.Warn().
				Float64("width", requested.Width).
				Float64("height", requested.Height).
				Msg("default size outside restrictions, clamping")
		}
		center := c.visibleArea.Center()
		return geometry.Rect{
			Left:   center.Left - requested.Width/2,
			Top:    center.Top - requested.Height/2,
			Width:  requested.Width,
			Height: requested.Height,
		}
	}
	return transforms.DefaultCoordinates(c.visibleArea, c.settings.DefaultSize, c.settings.AspectRatio, position, size)
}
