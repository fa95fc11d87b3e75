// Package trace loads and conditions oscilloscope strain-gauge recordings.
package trace

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientData is returned when a recording is shorter than a window
// the computation needs.
var ErrInsufficientData = errors.New("insufficient data")

// Trace is a single-channel voltage recording sampled at a fixed time step.
// Samples are addressed by absolute sample index throughout the pipeline.
type Trace struct {
	TimeStep float64   // Oscilloscope time step in seconds
	Samples  []float64 // Raw channel voltages in volts
}

// Baseline returns the "no signal" zero offset: the mean voltage over the
// first window samples, recorded before any pulse arrives.
func (t *Trace) Baseline(window int) (float64, error) {
	if window <= 0 {
		return 0, fmt.Errorf("invalid baseline window: %d", window)
	}
	if len(t.Samples) < window {
		return 0, fmt.Errorf("%w: %d samples, baseline window needs %d",
			ErrInsufficientData, len(t.Samples), window)
	}
	return stat.Mean(t.Samples[:window], nil), nil
}

// Corrected returns a copy of the samples with the baseline zero offset
// subtracted from every sample. The raw samples are left untouched; pulse
// polarity detection still needs them.
func (t *Trace) Corrected(window int) ([]float64, error) {
	zero, err := t.Baseline(window)
	if err != nil {
		return nil, err
	}

	corrected := make([]float64, len(t.Samples))
	for i, v := range t.Samples {
		corrected[i] = v - zero
	}
	return corrected, nil
}
