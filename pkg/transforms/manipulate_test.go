package transforms

import (
	"math"
	"testing"

	"github.com/menta2k/crop-engine/pkg/geometry"
	"github.com/menta2k/crop-engine/pkg/restrictions"
)

func TestManipulateImagePan(t *testing.T) {
	area := restrictions.Bounds{Right: 2000, Bottom: 1600}
	position := restrictions.Bounds{Right: 2000, Bottom: 1600}
	visibleArea := geometry.Rect{Left: 500, Top: 200, Width: 1000, Height: 800}
	coordinates := geometry.Rect{Left: 700, Top: 300, Width: 200, Height: 200}

	t.Run("free pan moves crop rigidly", func(t *testing.T) {
		newArea, crop := ManipulateImage(visibleArea, coordinates, area, unboundedSize(), position, true,
			ImageTransform{Move: geometry.Point{Left: 100, Top: 50}})

		if newArea.Left != 600 || newArea.Top != 250 {
			t.Errorf("visible area = %+v", newArea)
		}
		if crop.Left != 800 || crop.Top != 350 {
			t.Errorf("crop = %+v", crop)
		}
	})

	t.Run("clamped pan applies effective delta", func(t *testing.T) {
		// A -600 delta can only move the window 500 before hitting the
		// area's left bound; the crop must follow the effective -500.
		newArea, crop := ManipulateImage(visibleArea, coordinates, area, unboundedSize(), position, true,
			ImageTransform{Move: geometry.Point{Left: -600}})

		if newArea.Left != 0 {
			t.Errorf("visible area left = %f, want 0", newArea.Left)
		}
		if crop.Left != 200 {
			t.Errorf("crop left = %f, want 200", crop.Left)
		}
		if crop.Size() != coordinates.Size() {
			t.Errorf("pan changed crop size: %+v", crop.Size())
		}
	})
}

func TestManipulateImageZoomAnchor(t *testing.T) {
	boundaries := geometry.Size{Width: 500, Height: 400}
	visibleArea := geometry.Rect{Left: 0, Top: 0, Width: 1000, Height: 800}
	coordinates := geometry.Rect{Left: 200, Top: 200, Width: 400, Height: 300}
	anchor := geometry.Point{Left: 300, Top: 200}

	newArea, _ := ManipulateImage(visibleArea, coordinates, restrictions.Unbounded(), unboundedSize(), restrictions.Unbounded(), true,
		ImageTransform{Scale: Scale{Factor: 0.5, Center: &anchor}})

	// The anchor's screen projection must not drift by more than a pixel.
	before := (anchor.Left - visibleArea.Left) / geometry.Coefficient(visibleArea, boundaries)
	after := (anchor.Left - newArea.Left) / geometry.Coefficient(newArea, boundaries)
	if math.Abs(before-after) >= 1 {
		t.Errorf("anchor drifted on screen: before %f, after %f", before, after)
	}

	if newArea.Width != 500 || newArea.Height != 400 {
		t.Errorf("zoomed area = %+v", newArea)
	}
}

func TestManipulateImageZoomAdjustsStencil(t *testing.T) {
	visibleArea := geometry.Rect{Left: 0, Top: 0, Width: 1000, Height: 800}
	coordinates := geometry.Rect{Left: 400, Top: 300, Width: 200, Height: 200}

	_, crop := ManipulateImage(visibleArea, coordinates, restrictions.Unbounded(), unboundedSize(), restrictions.Unbounded(), true,
		ImageTransform{Scale: Scale{Factor: 0.5}})

	if crop.Width != 100 || crop.Height != 100 {
		t.Errorf("stencil did not scale with the image: %+v", crop.Size())
	}
}

func TestManipulateImageZoomKeepsStencilSize(t *testing.T) {
	visibleArea := geometry.Rect{Left: 0, Top: 0, Width: 1000, Height: 800}
	coordinates := geometry.Rect{Left: 400, Top: 300, Width: 200, Height: 200}

	newArea, crop := ManipulateImage(visibleArea, coordinates, restrictions.Unbounded(), unboundedSize(), restrictions.Unbounded(), false,
		ImageTransform{Scale: Scale{Factor: 0.5}})

	if crop.Size() != coordinates.Size() {
		t.Errorf("stencil size changed: %+v", crop.Size())
	}
	// Relative placement within the window is preserved: both were centered.
	wantCenter := newArea.Center()
	if math.Abs(crop.Center().Left-wantCenter.Left) > 1e-9 || math.Abs(crop.Center().Top-wantCenter.Top) > 1e-9 {
		t.Errorf("crop center = %+v, want %+v", crop.Center(), wantCenter)
	}
}

func TestManipulateImageZoomOutClampsToArea(t *testing.T) {
	area := restrictions.Bounds{Right: 1000, Bottom: 800}
	visibleArea := geometry.Rect{Left: 100, Top: 100, Width: 500, Height: 400}
	coordinates := geometry.Rect{Left: 200, Top: 200, Width: 100, Height: 100}

	// A 10x zoom out cannot exceed the image area: the factor is clamped to
	// what the area extent allows (2x) and the window stays inside.
	newArea, crop := ManipulateImage(visibleArea, coordinates, area, unboundedSize(), area, true,
		ImageTransform{Scale: Scale{Factor: 10}})

	if !area.Admits(newArea) {
		t.Errorf("visible area %+v outside area restrictions", newArea)
	}
	if newArea.Width != 1000 || newArea.Height != 800 {
		t.Errorf("factor not clamped to extent: %+v", newArea.Size())
	}
	if !area.Admits(crop) {
		t.Errorf("crop %+v outside position restrictions", crop)
	}
}

func TestManipulateImageZoomRespectsStencilMinimum(t *testing.T) {
	size := restrictions.SizeRestrictions{MinWidth: 100, MinHeight: 100, MaxWidth: math.Inf(1), MaxHeight: math.Inf(1)}
	visibleArea := geometry.Rect{Left: 0, Top: 0, Width: 1000, Height: 800}
	coordinates := geometry.Rect{Left: 400, Top: 300, Width: 200, Height: 200}

	// Zooming in 10x would shrink the scaled stencil to 20px; the factor is
	// floored so the stencil never drops below its minimum.
	_, crop := ManipulateImage(visibleArea, coordinates, restrictions.Unbounded(), size, restrictions.Unbounded(), true,
		ImageTransform{Scale: Scale{Factor: 0.1}})

	if crop.Width < size.MinWidth-1e-9 || crop.Height < size.MinHeight-1e-9 {
		t.Errorf("stencil below minimum: %+v", crop.Size())
	}
}

func BenchmarkManipulateImage(b *testing.B) {
	area := restrictions.Bounds{Right: 2000, Bottom: 1600}
	visibleArea := geometry.Rect{Left: 200, Top: 200, Width: 1000, Height: 800}
	coordinates := geometry.Rect{Left: 500, Top: 400, Width: 300, Height: 200}
	anchor := geometry.Point{Left: 700, Top: 500}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ManipulateImage(visibleArea, coordinates, area, unboundedSize(), area, true,
			ImageTransform{Move: geometry.Point{Left: 5, Top: -3}, Scale: Scale{Factor: 0.99, Center: &anchor}})
	}
}
