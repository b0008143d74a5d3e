package quadrature

import (
	"math"
	"testing"
)

func TestSampleSubSegmentInterior(t *testing.T) {
	// Parent grid: 10 unit cells on [0, 10]. Sub-limits away from any
	// boundary resolve toward the interior: [2.3, 7.6] -> cells 2..7.
	sub, err := SampleSubSegment(0, 10, 2.3, 7.6, 1, StepAbsolute, 0.1)
	if err != nil {
		t.Fatalf("SampleSubSegment failed: %v", err)
	}
	if sub.StartCell != 2 {
		t.Errorf("expected start cell 2, got %d", sub.StartCell)
	}
	if len(sub.K) != 6 {
		t.Fatalf("expected 6 samples, got %d", len(sub.K))
	}
	for j, k := range sub.K {
		want := 2.5 + float64(j)
		if math.Abs(k-want) > 1e-12 {
			t.Errorf("sample %d: expected %v, got %v", j, want, k)
		}
		if sub.Indices[j] != 2+j {
			t.Errorf("sample %d: expected index %d, got %d", j, 2+j, sub.Indices[j])
		}
	}
}

func TestSampleSubSegmentSnapsToBoundary(t *testing.T) {
	// Sub-limits within margin of a cell boundary snap onto it instead
	// of dragging in a half-covered cell.
	sub, err := SampleSubSegment(0, 10, 2.05, 7.95, 1, StepAbsolute, 0.1)
	if err != nil {
		t.Fatalf("SampleSubSegment failed: %v", err)
	}
	if sub.StartCell != 2 || len(sub.K) != 6 {
		t.Errorf("expected cells 2..7, got start %d count %d", sub.StartCell, len(sub.K))
	}
}

func TestSampleSubSegmentDefaultsAndClipping(t *testing.T) {
	// NaN sub-limits fall back to the segment bounds
	sub, err := SampleSubSegment(0, 10, math.NaN(), math.NaN(), 1, StepAbsolute, 0.1)
	if err != nil {
		t.Fatalf("SampleSubSegment failed: %v", err)
	}
	if sub.StartCell != 0 || len(sub.K) != 10 {
		t.Errorf("expected the full grid, got start %d count %d", sub.StartCell, len(sub.K))
	}

	// Out-of-range sub-limits are clipped, not rejected
	sub, err = SampleSubSegment(0, 10, -5, 15, 1, StepAbsolute, 0.1)
	if err != nil {
		t.Fatalf("SampleSubSegment failed: %v", err)
	}
	if sub.StartCell != 0 || len(sub.K) != 10 {
		t.Errorf("expected the full grid after clipping, got start %d count %d", sub.StartCell, len(sub.K))
	}
}

func TestSampleSubSegmentErrors(t *testing.T) {
	if _, err := SampleSubSegment(5, 5, 0, 1, 1, StepAbsolute, 0.1); err == nil {
		t.Error("expected error for empty parent segment")
	}
	if _, err := SampleSubSegment(0, 10, 2, 7, 0, StepAbsolute, 0.1); err == nil {
		t.Error("expected error for non-positive step")
	}
	if _, err := SampleSubSegment(0, 10, 2, 7, 1, StepAbsolute, -0.1); err == nil {
		t.Error("expected error for negative margin")
	}
	if _, err := SampleSubSegment(0, 10, 7, 2, 1, StepAbsolute, 0.1); err == nil {
		t.Error("expected error for inverted sub-limits")
	}
	// Both bounds snap to the same boundary: no cell remains
	if _, err := SampleSubSegment(0, 10, 2.96, 3.04, 1, StepAbsolute, 0.1); err == nil {
		t.Error("expected error for sub-limits covering no cell")
	}
}
