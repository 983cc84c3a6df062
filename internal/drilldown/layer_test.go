package drilldown

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestStyleFor_TopmostIsFullSizeAndInteractive(t *testing.T) {
	t.Parallel()

	for total := 1; total <= 12; total++ {
		st := StyleFor(total-1, total)
		if !st.Interactive {
			t.Fatalf("total=%d: expected topmost interactive", total)
		}
		if !approx(st.Scale, 1) || !approx(st.Opacity, 1) {
			t.Fatalf("total=%d: expected scale=1 opacity=1 for topmost; got %+v", total, st)
		}
	}
}

func TestStyleFor_CoveredLayersShrinkAndDim(t *testing.T) {
	t.Parallel()

	// Five layers: indexes 1..3 are covered and shrink with depth; index 0 is
	// covered too but shrinks by 0*0.02 = 0.
	total := 5
	wantScale := []float64{1, 0.98, 0.96, 0.94}
	for i := 0; i < 4; i++ {
		st := StyleFor(i, total)
		if st.Interactive {
			t.Fatalf("index %d: expected covered layer inert", i)
		}
		if !approx(st.Scale, wantScale[i]) {
			t.Fatalf("index %d: expected scale %v; got %v", i, wantScale[i], st.Scale)
		}
		if !approx(st.Opacity, 0.7) {
			t.Fatalf("index %d: expected opacity 0.7; got %v", i, st.Opacity)
		}
	}
}

func TestStyleFor_ShrinkSaturatesAtIndexFive(t *testing.T) {
	t.Parallel()

	total := 12
	at5 := StyleFor(5, total)
	if !approx(at5.Scale, 0.9) {
		t.Fatalf("expected scale 0.9 at index 5; got %v", at5.Scale)
	}
	for i := 6; i < total-1; i++ {
		if st := StyleFor(i, total); !approx(st.Scale, at5.Scale) {
			t.Fatalf("index %d: expected saturated scale %v; got %v", i, at5.Scale, st.Scale)
		}
	}
}

func TestStyleFor_ZOrderStrictlyIncreases(t *testing.T) {
	t.Parallel()

	total := 7
	prev := StyleFor(0, total).ZIndex
	if prev != BaseZ {
		t.Fatalf("expected bottom layer at BaseZ=%d; got %d", BaseZ, prev)
	}
	for i := 1; i < total; i++ {
		z := StyleFor(i, total).ZIndex
		if z <= prev {
			t.Fatalf("index %d: expected z-order above %d; got %d", i, prev, z)
		}
		prev = z
	}
}

func TestKnownTag_ClosedSet(t *testing.T) {
	t.Parallel()

	for _, tag := range Tags() {
		if !KnownTag(tag) {
			t.Fatalf("expected %q known", tag)
		}
	}
	if KnownTag(Tag("campaign-detail")) {
		t.Fatalf("expected unknown tag outside the closed set")
	}
	if KnownTag(Tag("")) {
		t.Fatalf("expected empty tag unknown")
	}
}
