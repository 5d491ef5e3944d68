package transforms

import (
	"errors"
	"fmt"

	"github.com/menta2k/crop-engine/pkg/geometry"
)

// ErrZeroBoundaries is returned when the container resolves to zero width or
// height and no boundaries can be computed. This is the one hard failure of
// the engine; the host must catch it and degrade (hide the widget, retry
// after layout settles) rather than crash.
var ErrZeroBoundaries = errors.New("container has zero size, cannot compute boundaries")

// FillBoundaries uses the full container as the rendering boundaries.
func FillBoundaries(container, imageSize geometry.Size) (geometry.Size, error) {
	if container.Empty() {
		return geometry.Size{}, fmt.Errorf("fill boundaries %gx%g: %w", container.Width, container.Height, ErrZeroBoundaries)
	}
	return container, nil
}

// FitBoundaries shrinks the container to the image's aspect ratio, so the
// rendered area always matches the image's shape.
func FitBoundaries(container, imageSize geometry.Size) (geometry.Size, error) {
	if container.Empty() {
		return geometry.Size{}, fmt.Errorf("fit boundaries %gx%g: %w", container.Width, container.Height, ErrZeroBoundaries)
	}
	if imageSize.Empty() {
		return container, nil
	}
	out := container
	if imageSize.Ratio() > container.Ratio() {
		out.Height = container.Width / imageSize.Ratio()
	} else {
		out.Width = container.Height * imageSize.Ratio()
	}
	return out, nil
}
