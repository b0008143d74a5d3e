package quadrature

import (
	"math"
	"testing"
)

func TestSampleSegmentMidpoints(t *testing.T) {
	// Step 3 on a length-10 segment snaps to 4 cells of 2.5
	seg, err := SampleSegment(0, 10, 3, StepAbsolute, RuleSum)
	if err != nil {
		t.Fatalf("SampleSegment failed: %v", err)
	}
	if seg.Cells != 4 {
		t.Fatalf("expected 4 cells, got %d", seg.Cells)
	}
	if math.Abs(seg.Resolution-2.5) > 1e-12 {
		t.Fatalf("expected resolution 2.5, got %v", seg.Resolution)
	}
	want := []float64{1.25, 3.75, 6.25, 8.75}
	if len(seg.K) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(seg.K))
	}
	for i, k := range seg.K {
		if math.Abs(k-want[i]) > 1e-12 {
			t.Errorf("sample %d: expected %v, got %v", i, want[i], k)
		}
	}
}

func TestSampleSegmentRelativeStep(t *testing.T) {
	// A relative step of 0.3 also snaps to 4 cells regardless of length
	seg, err := SampleSegment(2, 12, 0.3, StepRelative, RuleSum)
	if err != nil {
		t.Fatalf("SampleSegment failed: %v", err)
	}
	if seg.Cells != 4 {
		t.Errorf("expected 4 cells, got %d", seg.Cells)
	}
	if math.Abs(seg.K[0]-3.25) > 1e-12 {
		t.Errorf("first midpoint should be 3.25, got %v", seg.K[0])
	}
}

func TestSampleSegmentSimpson(t *testing.T) {
	// Step 2 would give 5 cells; Simpson rounds up to 6 and samples edges
	seg, err := SampleSegment(0, 10, 2, StepAbsolute, RuleSimps)
	if err != nil {
		t.Fatalf("SampleSegment failed: %v", err)
	}
	if seg.Cells != 6 {
		t.Fatalf("expected 6 cells, got %d", seg.Cells)
	}
	if len(seg.K) != 7 {
		t.Fatalf("expected 7 edge samples, got %d", len(seg.K))
	}
	if seg.K[0] != 0 || seg.K[6] != 10 {
		t.Errorf("endpoints should be pinned to the bounds, got %v and %v", seg.K[0], seg.K[6])
	}
}

func TestSampleSegmentRomberg(t *testing.T) {
	// Step 2 would give 5 cells; Romberg rounds up to the next power of two
	seg, err := SampleSegment(0, 10, 2, StepAbsolute, RuleRomb)
	if err != nil {
		t.Fatalf("SampleSegment failed: %v", err)
	}
	if seg.Cells != 8 {
		t.Fatalf("expected 8 cells, got %d", seg.Cells)
	}
	if len(seg.K) != 9 {
		t.Fatalf("expected 9 edge samples, got %d", len(seg.K))
	}
	if math.Abs(seg.Resolution-1.25) > 1e-12 {
		t.Errorf("expected resolution 1.25, got %v", seg.Resolution)
	}
}

func TestSampleSegmentCoarseStep(t *testing.T) {
	// A step larger than the segment still yields at least one cell
	seg, err := SampleSegment(0, 1, 50, StepAbsolute, RuleSum)
	if err != nil {
		t.Fatalf("SampleSegment failed: %v", err)
	}
	if seg.Cells != 1 || len(seg.K) != 1 {
		t.Errorf("expected a single midpoint, got %d cells, %d samples", seg.Cells, len(seg.K))
	}
	if seg.K[0] != 0.5 {
		t.Errorf("expected midpoint 0.5, got %v", seg.K[0])
	}

	// Simpson still needs an even count
	seg, err = SampleSegment(0, 1, 50, StepAbsolute, RuleSimps)
	if err != nil {
		t.Fatalf("SampleSegment failed: %v", err)
	}
	if seg.Cells != 2 {
		t.Errorf("expected 2 cells for Simpson, got %d", seg.Cells)
	}
}

func TestSampleSegmentErrors(t *testing.T) {
	if _, err := SampleSegment(5, 5, 1, StepAbsolute, RuleSum); err == nil {
		t.Error("expected error for empty segment")
	}
	if _, err := SampleSegment(5, 4, 1, StepAbsolute, RuleSum); err == nil {
		t.Error("expected error for inverted segment")
	}
	if _, err := SampleSegment(0, 10, 0, StepAbsolute, RuleSum); err == nil {
		t.Error("expected error for zero step")
	}
	if _, err := SampleSegment(0, 10, -1, StepAbsolute, RuleSum); err == nil {
		t.Error("expected error for negative step")
	}
}
