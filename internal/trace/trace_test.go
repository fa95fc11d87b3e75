package trace

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBaseline(t *testing.T) {
	tr := &Trace{Samples: []float64{0.25, 0.75, 0.25, 0.75, 5.0, 5.0}}

	zero, err := tr.Baseline(4)
	if err != nil {
		t.Fatalf("Failed to compute baseline: %v", err)
	}
	if zero != 0.5 {
		t.Errorf("Expected zero offset 0.5, got %g", zero)
	}
}

func TestBaseline_InsufficientData(t *testing.T) {
	tr := &Trace{Samples: []float64{0.1, 0.2}}

	if _, err := tr.Baseline(1000); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData, got %v", err)
	}
}

func TestBaseline_InvalidWindow(t *testing.T) {
	tr := &Trace{Samples: []float64{0.1, 0.2}}

	if _, err := tr.Baseline(0); err == nil {
		t.Error("Expected an error for a zero-sized window")
	}
}

func TestCorrected(t *testing.T) {
	raw := []float64{0.25, 0.25, 1.25, -0.75}
	tr := &Trace{Samples: raw}

	corrected, err := tr.Corrected(2)
	if err != nil {
		t.Fatalf("Failed to correct baseline: %v", err)
	}

	want := []float64{0, 0, 1.0, -1.0}
	if diff := cmp.Diff(want, corrected); diff != "" {
		t.Errorf("Corrected samples mismatch (-want +got):\n%s", diff)
	}

	// The raw recording must survive untouched for polarity detection.
	if diff := cmp.Diff([]float64{0.25, 0.25, 1.25, -0.75}, tr.Samples); diff != "" {
		t.Errorf("Raw samples were modified (-want +got):\n%s", diff)
	}
}
