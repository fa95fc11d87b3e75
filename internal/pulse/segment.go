package pulse

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoPulse is returned when a detection step runs out of recording before
// finding the pulse feature it scans for.
var ErrNoPulse = errors.New("no pulse detected")

// Params tunes pulse detection for one recording.
type Params struct {
	TriggerVoltage float64 // V; |corrected| above this counts as a real pulse
	ZeroVoltage    float64 // V; |corrected| below this counts as quiescent
	NoiseDelay     int     // samples skipped after incident start before the reflected search; 0 starts at incident end
}

// Windows holds the detected pulse boundaries as absolute sample indices
// into the corrected recording. Only the start of the reflected pulse is
// needed downstream.
type Windows struct {
	IncidentStart  int
	IncidentEnd    int
	ReflectedStart int
}

// Segment detects the incident and reflected pulse boundaries in a
// baseline-corrected recording. raw is the uncorrected recording, consulted
// once to decide pulse polarity.
//
// The returned signal is the corrected recording, inverted when the incident
// pulse arrived negative-going, so peak extraction downstream never cares
// about rig polarity.
func Segment(corrected, raw []float64, p Params) (Windows, []float64, error) {
	var w Windows
	if len(corrected) != len(raw) {
		return w, nil, fmt.Errorf("corrected and raw recordings differ in length: %d vs %d",
			len(corrected), len(raw))
	}

	aboveTrigger := func(v float64) bool { return math.Abs(v) > p.TriggerVoltage }

	// Incident trigger: the first sample past the trigger threshold.
	trigger, ok := First(Matches(corrected, aboveTrigger))
	if !ok {
		return w, nil, fmt.Errorf("%w: no sample above trigger voltage %gV in %d samples",
			ErrNoPulse, p.TriggerVoltage, len(corrected))
	}

	// Compressive pulses show up negative-going on some rigs. The raw
	// voltage at the trigger decides; the working signal is flipped so the
	// incident pulse is always positive-going.
	signal := corrected
	if raw[trigger] < 0 {
		signal = make([]float64, len(corrected))
		for i, v := range corrected {
			signal[i] = -v
		}
	}

	// The pulse begins at the last noise-level sign flip before the real
	// signal rises past the trigger.
	start, ok := Last(SignChanges(signal[:trigger]))
	if !ok {
		return w, nil, fmt.Errorf("%w: no sign change before incident trigger at sample %d",
			ErrNoPulse, trigger)
	}
	w.IncidentStart = start

	// The first sign change after the start is the pulse's own rising-edge
	// crossing; the second is the true trailing edge.
	end, ok := Nth(SignChanges(signal[start:]), 1)
	if !ok {
		return w, nil, fmt.Errorf("%w: incident pulse starting at sample %d never settles",
			ErrNoPulse, start)
	}
	w.IncidentEnd = start + end

	// Skip residual incident-pulse noise before looking for the reflection.
	searchStart := w.IncidentEnd
	if p.NoiseDelay > 0 {
		searchStart = start + p.NoiseDelay
	}
	if searchStart >= len(signal) {
		return w, nil, fmt.Errorf("%w: reflected search start %d is beyond the recording (%d samples)",
			ErrNoPulse, searchStart, len(signal))
	}

	// Second crossing, not first: tolerates a single spurious sample
	// crossing the threshold before the genuine reflected pulse.
	relTrigger, ok := Nth(Matches(signal[searchStart:], aboveTrigger), 1)
	if !ok {
		return w, nil, fmt.Errorf("%w: no reflected pulse found after sample %d",
			ErrNoPulse, searchStart)
	}
	reflTrigger := searchStart + relTrigger

	// The reflected pulse begins at the last quiescent sample before its
	// trigger.
	quiet := func(v float64) bool { return math.Abs(v) < p.ZeroVoltage }
	relStart, ok := Last(Matches(signal[searchStart:reflTrigger], quiet))
	if !ok {
		return w, nil, fmt.Errorf("%w: no quiescent sample between %d and reflected trigger %d",
			ErrNoPulse, searchStart, reflTrigger)
	}
	w.ReflectedStart = searchStart + relStart

	return w, signal, nil
}
