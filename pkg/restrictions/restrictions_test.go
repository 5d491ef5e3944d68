package restrictions

import (
	"math"
	"testing"

	"github.com/menta2k/crop-engine/pkg/geometry"
)

func TestLimitResolve(t *testing.T) {
	tests := []struct {
		name      string
		limit     Limit
		dimension float64
		want      float64
	}{
		{"percent", Limit{Value: 50, Unit: UnitPercent}, 1000, 500},
		{"percent default unit", Limit{Value: 10}, 1000, 100},
		{"pixels", Limit{Value: 50, Unit: UnitPixels}, 1000, 50},
		{"unset", Limit{}, 1000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.limit.Resolve(tt.dimension); got != tt.want {
				t.Errorf("Resolve() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestSizeRestrictionsFor(t *testing.T) {
	imageSize := geometry.Size{Width: 1000, Height: 800}

	t.Run("defaults", func(t *testing.T) {
		sr := SizeRestrictionsFor(imageSize, Limits{}, ModeArea)
		if sr.MinWidth != 0 || sr.MinHeight != 0 {
			t.Errorf("minimums = %f x %f, want 0", sr.MinWidth, sr.MinHeight)
		}
		// Restricted modes cap maxima at the image extent.
		if sr.MaxWidth != 1000 || sr.MaxHeight != 800 {
			t.Errorf("maximums = %f x %f", sr.MaxWidth, sr.MaxHeight)
		}
	})

	t.Run("none mode is unbounded", func(t *testing.T) {
		sr := SizeRestrictionsFor(imageSize, Limits{}, ModeNone)
		if !math.IsInf(sr.MaxWidth, 1) || !math.IsInf(sr.MaxHeight, 1) {
			t.Errorf("maximums = %f x %f, want +Inf", sr.MaxWidth, sr.MaxHeight)
		}
	})

	t.Run("explicit limits", func(t *testing.T) {
		limits := Limits{
			MinWidth: Limit{Value: 10},
			MaxWidth: Limit{Value: 400, Unit: UnitPixels},
		}
		sr := SizeRestrictionsFor(imageSize, limits, ModeArea)
		if sr.MinWidth != 100 {
			t.Errorf("MinWidth = %f, want 100", sr.MinWidth)
		}
		if sr.MaxWidth != 400 {
			t.Errorf("MaxWidth = %f, want 400", sr.MaxWidth)
		}
	})
}

func TestPositionRestrictionsFor(t *testing.T) {
	imageSize := geometry.Size{Width: 1000, Height: 800}

	pr := PositionRestrictionsFor(imageSize, ModeStencil)
	if pr.Left != 0 || pr.Top != 0 || pr.Right != 1000 || pr.Bottom != 800 {
		t.Errorf("stencil mode = %+v", pr)
	}

	pr = PositionRestrictionsFor(imageSize, ModeNone)
	if !math.IsInf(pr.Left, -1) || !math.IsInf(pr.Right, 1) {
		t.Errorf("none mode = %+v, want unbounded", pr)
	}
}

func TestAreaRestrictionsFor(t *testing.T) {
	imageSize := geometry.Size{Width: 1000, Height: 800}

	ar := AreaRestrictionsFor(imageSize, ModeArea)
	if ar.Right != 1000 || ar.Bottom != 800 {
		t.Errorf("area mode = %+v", ar)
	}

	// Stencil containment comes from position restrictions, not the area.
	ar = AreaRestrictionsFor(imageSize, ModeStencil)
	if !math.IsInf(ar.Right, 1) {
		t.Errorf("stencil mode = %+v, want unbounded", ar)
	}
}

func TestBoundsIntersect(t *testing.T) {
	a := Bounds{Left: 0, Top: 0, Right: 1000, Bottom: 800}
	b := Bounds{Left: 100, Top: -50, Right: 900, Bottom: 1000}

	got := a.Intersect(b)
	want := Bounds{Left: 100, Top: 0, Right: 900, Bottom: 800}
	if got != want {
		t.Errorf("Intersect() = %+v, want %+v", got, want)
	}

	if got := a.Intersect(Unbounded()); got != a {
		t.Errorf("intersect with unbounded = %+v, want %+v", got, a)
	}
}

func TestBoundsAdmits(t *testing.T) {
	b := Bounds{Right: 1000, Bottom: 800}

	if !b.Admits(geometry.Rect{Left: 0, Top: 0, Width: 1000, Height: 800}) {
		t.Error("exact fit not admitted")
	}
	if b.Admits(geometry.Rect{Left: 500, Top: 0, Width: 600, Height: 100}) {
		t.Error("overhanging rect admitted")
	}
}

func TestAspectRatio(t *testing.T) {
	t.Run("unset admits everything", func(t *testing.T) {
		var a AspectRatio
		for _, ratio := range []float64{0.1, 1, 100} {
			if !a.Admits(ratio) {
				t.Errorf("unset aspect rejected %f", ratio)
			}
		}
	})

	t.Run("locked", func(t *testing.T) {
		a := Fixed(1.5)
		if !a.Locked() {
			t.Error("Fixed ratio not locked")
		}
		if !a.Admits(1.5) || a.Admits(1.6) {
			t.Error("locked ratio admits wrong values")
		}
		if got := a.ClampRatio(2); got != 1.5 {
			t.Errorf("ClampRatio(2) = %f, want 1.5", got)
		}
	})

	t.Run("range", func(t *testing.T) {
		a := AspectRatio{Minimum: 1, Maximum: 2}
		if a.Locked() {
			t.Error("range reported locked")
		}
		if got := a.ClampRatio(0.5); got != 1 {
			t.Errorf("ClampRatio(0.5) = %f, want 1", got)
		}
		if got := a.ClampRatio(1.5); got != 1.5 {
			t.Errorf("ClampRatio(1.5) = %f, want 1.5", got)
		}
	})
}

func TestRefine(t *testing.T) {
	visibleArea := geometry.Rect{Left: 0, Top: 0, Width: 500, Height: 400}
	position := Bounds{Right: 1000, Bottom: 800}

	t.Run("infeasible minimum capped to displayable extent", func(t *testing.T) {
		sr := SizeRestrictions{MinWidth: 5000, MinHeight: 50, MaxWidth: 5000, MaxHeight: 800}
		got := Refine(sr, position, visibleArea)
		if got.MinWidth != 500 {
			t.Errorf("MinWidth = %f, want 500", got.MinWidth)
		}
		if got.MinHeight != 50 {
			t.Errorf("MinHeight = %f, want untouched 50", got.MinHeight)
		}
	})

	t.Run("min never exceeds max", func(t *testing.T) {
		sr := SizeRestrictions{MinWidth: 600, MaxWidth: 300, MinHeight: 0, MaxHeight: 800}
		got := Refine(sr, position, visibleArea)
		if got.MinWidth > got.MaxWidth {
			t.Errorf("min %f > max %f after refine", got.MinWidth, got.MaxWidth)
		}
	})

	t.Run("unbounded maximum capped to displayable extent", func(t *testing.T) {
		sr := SizeRestrictions{MinWidth: 100, MinHeight: 100, MaxWidth: math.Inf(1), MaxHeight: math.Inf(1)}
		got := Refine(sr, position, visibleArea)
		if got.MinWidth != 100 || got.MinHeight != 100 {
			t.Errorf("minimums changed: %+v", got)
		}
		if got.MaxWidth != 500 || got.MaxHeight != 400 {
			t.Errorf("maximums = %f x %f, want 500x400", got.MaxWidth, got.MaxHeight)
		}
	})
}
