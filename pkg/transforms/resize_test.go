package transforms

import (
	"math"
	"testing"

	"github.com/menta2k/crop-engine/pkg/geometry"
	"github.com/menta2k/crop-engine/pkg/restrictions"
)

func unboundedSize() restrictions.SizeRestrictions {
	return restrictions.SizeRestrictions{MaxWidth: math.Inf(1), MaxHeight: math.Inf(1)}
}

func TestResizeSingleEdge(t *testing.T) {
	position := restrictions.Bounds{Right: 1000, Bottom: 800}
	start := geometry.Rect{Left: 100, Top: 100, Width: 200, Height: 100}

	tests := []struct {
		name       string
		directions Directions
		want       geometry.Rect
	}{
		{
			name:       "grow east",
			directions: Directions{Right: 100},
			want:       geometry.Rect{Left: 100, Top: 100, Width: 300, Height: 100},
		},
		{
			name:       "grow west keeps east anchored",
			directions: Directions{Left: 50},
			want:       geometry.Rect{Left: 50, Top: 100, Width: 250, Height: 100},
		},
		{
			name:       "shrink south",
			directions: Directions{Bottom: -40},
			want:       geometry.Rect{Left: 100, Top: 100, Width: 200, Height: 60},
		},
		{
			name:       "corner drag",
			directions: Directions{Right: 100, Bottom: 50},
			want:       geometry.Rect{Left: 100, Top: 100, Width: 300, Height: 150},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resize(start, unboundedSize(), position, restrictions.AspectRatio{}, ResizeEvent{Directions: tt.directions})
			if got != tt.want {
				t.Errorf("Resize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResizePositionClamp(t *testing.T) {
	position := restrictions.Bounds{Right: 500, Bottom: 500}
	start := geometry.Rect{Left: 100, Top: 100, Width: 300, Height: 300}

	// Growing east past the bound saturates at the bound.
	got := Resize(start, unboundedSize(), position, restrictions.AspectRatio{}, ResizeEvent{Directions: Directions{Right: 500}})
	if got.Right() != position.Right {
		t.Errorf("right edge = %f, want %f", got.Right(), position.Right)
	}
	if got.Left != start.Left {
		t.Errorf("anchor moved: left = %f", got.Left)
	}
}

func TestResizeSizeClamp(t *testing.T) {
	position := restrictions.Unbounded()
	size := restrictions.SizeRestrictions{MinWidth: 50, MinHeight: 50, MaxWidth: 400, MaxHeight: 400}
	start := geometry.Rect{Left: 0, Top: 0, Width: 200, Height: 200}

	t.Run("max width", func(t *testing.T) {
		got := Resize(start, size, position, restrictions.AspectRatio{}, ResizeEvent{Directions: Directions{Right: 1000}})
		if got.Width != size.MaxWidth {
			t.Errorf("width = %f, want %f", got.Width, size.MaxWidth)
		}
	})

	t.Run("min height", func(t *testing.T) {
		got := Resize(start, size, position, restrictions.AspectRatio{}, ResizeEvent{Directions: Directions{Bottom: -1000}})
		if got.Height != size.MinHeight {
			t.Errorf("height = %f, want %f", got.Height, size.MinHeight)
		}
	})

	t.Run("corner clamp scales both directions", func(t *testing.T) {
		got := Resize(start, size, position, restrictions.AspectRatio{}, ResizeEvent{Directions: Directions{Left: 500, Right: 500}})
		if got.Width != size.MaxWidth {
			t.Errorf("width = %f, want %f", got.Width, size.MaxWidth)
		}
		// Symmetric gesture stays symmetric after the proportional clamp.
		if math.Abs(got.Center().Left-start.Center().Left) > 1e-9 {
			t.Errorf("center drifted: %f", got.Center().Left)
		}
	})
}

func TestResizeLockedRatio(t *testing.T) {
	position := restrictions.Bounds{Right: 1000, Bottom: 800}
	aspect := restrictions.Fixed(2)
	start := geometry.Rect{Left: 100, Top: 100, Width: 200, Height: 100}

	got := Resize(start, unboundedSize(), position, aspect, ResizeEvent{Directions: Directions{Right: 100}})

	if ratio := got.Ratio(); math.Abs(ratio-2) > 1e-9 {
		t.Errorf("ratio = %f, want 2", ratio)
	}
	if got.Width != 300 {
		t.Errorf("width = %f, want 300", got.Width)
	}
	if got.Height != 150 {
		t.Errorf("height = %f, want 150", got.Height)
	}
}

func TestResizeLockedRatioCornerDrag(t *testing.T) {
	position := restrictions.Unbounded()
	aspect := restrictions.Fixed(1)
	start := geometry.Rect{Left: 0, Top: 0, Width: 100, Height: 100}

	got := Resize(start, unboundedSize(), position, aspect, ResizeEvent{Directions: Directions{Right: 60, Bottom: 20}})
	if ratio := got.Ratio(); math.Abs(ratio-1) > 1e-9 {
		t.Errorf("ratio = %f, want 1", ratio)
	}
}

func TestResizeFreezesWhenRatioInfeasible(t *testing.T) {
	// No vertical room: a locked square cannot absorb horizontal growth, so
	// the sample must be a no-op instead of oscillating.
	position := restrictions.Bounds{Right: 200, Bottom: 100}
	aspect := restrictions.Fixed(1)
	start := geometry.Rect{Left: 0, Top: 0, Width: 100, Height: 100}

	got := Resize(start, unboundedSize(), position, aspect, ResizeEvent{Directions: Directions{Right: 100}})
	if got != start {
		t.Errorf("expected frozen sample, got %+v", got)
	}
}

func TestResizeOutputsSatisfyRestrictions(t *testing.T) {
	position := restrictions.Bounds{Right: 1000, Bottom: 800}
	size := restrictions.SizeRestrictions{MinWidth: 50, MinHeight: 50, MaxWidth: 900, MaxHeight: 700}
	start := geometry.Rect{Left: 300, Top: 200, Width: 400, Height: 300}

	gestures := []Directions{
		{Right: 5000},
		{Left: 5000},
		{Top: 5000, Bottom: 5000},
		{Left: -5000, Right: -5000},
		{Left: 123, Top: -45, Right: 678, Bottom: 90},
	}

	for _, d := range gestures {
		got := Resize(start, size, position, restrictions.AspectRatio{}, ResizeEvent{Directions: d})
		if !position.Admits(got) {
			t.Errorf("directions %+v: result %+v outside position restrictions", d, got)
		}
		if got.Width < size.MinWidth || got.Width > size.MaxWidth ||
			got.Height < size.MinHeight || got.Height > size.MaxHeight {
			t.Errorf("directions %+v: size %fx%f outside size restrictions", d, got.Width, got.Height)
		}
	}
}

func BenchmarkResize(b *testing.B) {
	position := restrictions.Bounds{Right: 1000, Bottom: 800}
	size := restrictions.SizeRestrictions{MinWidth: 50, MinHeight: 50, MaxWidth: 900, MaxHeight: 700}
	start := geometry.Rect{Left: 300, Top: 200, Width: 400, Height: 300}
	aspect := restrictions.Fixed(4.0 / 3.0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Resize(start, size, position, aspect, ResizeEvent{Directions: Directions{Right: 10, Bottom: 5}})
	}
}
