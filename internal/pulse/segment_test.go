package pulse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticTrace builds a corrected recording with hand-placed features:
// noise-level sign flips up to index 4, an incident pulse triggering at
// index 8 and peaking at index 9, a trailing-edge zero crossing into index
// 14, a spurious spike at index 31 and the genuine reflected pulse
// triggering at index 36. With a noise delay of 20 the reflected search
// starts at index 24 and its last quiescent sample is index 34.
func syntheticTrace() []float64 {
	s := []float64{
		0.002, 0.002, 0.002, 0.002, // 0-3: quiet
		-0.002,              // 4: last noise flip -> incident start
		0.002, 0.02, 0.04,   // 5-7: rising edge
		0.06,                // 8: incident trigger
		0.30,                // 9: incident peak
		0.25, 0.15, 0.08, 0.02, // 10-13: falling edge
		-0.005, // 14: trailing-edge crossing -> incident end at 13
	}
	for i := 15; i < 31; i++ {
		s = append(s, -0.004)
	}
	s = append(s,
		0.08,           // 31: spurious spike above trigger
		-0.004, -0.004, // 32-33
		0.005, // 34: last quiescent sample -> reflected start
		0.02,  // 35: rising past zero threshold
		0.30,  // 36: reflected trigger (second crossing)
		0.35, 0.20, 0.05, 0.01, 0.0, // 37-41: reflected pulse body
	)
	return s
}

func testParams() Params {
	return Params{
		TriggerVoltage: 0.05,
		ZeroVoltage:    0.01,
		NoiseDelay:     20,
	}
}

func TestSegment_SyntheticTrace(t *testing.T) {
	corrected := syntheticTrace()

	windows, signal, err := Segment(corrected, corrected, testParams())
	require.NoError(t, err)

	assert.Equal(t, Windows{IncidentStart: 4, IncidentEnd: 13, ReflectedStart: 34}, windows)
	assert.Equal(t, corrected, signal, "positive-going pulse must not be flipped")
}

func TestSegment_PolarityInversion(t *testing.T) {
	corrected := syntheticTrace()

	inverted := make([]float64, len(corrected))
	for i, v := range corrected {
		inverted[i] = -v
	}

	windows, signal, err := Segment(inverted, inverted, testParams())
	require.NoError(t, err)

	assert.Equal(t, Windows{IncidentStart: 4, IncidentEnd: 13, ReflectedStart: 34}, windows,
		"negating the whole trace must not move the pulse boundaries")
	assert.Equal(t, 0.30, signal[9], "flipped signal must carry a positive-going incident peak")
}

func TestSegment_NoiseDelayDisabled(t *testing.T) {
	corrected := syntheticTrace()

	p := testParams()
	p.NoiseDelay = 0 // reflected search starts at incident end

	windows, _, err := Segment(corrected, corrected, p)
	require.NoError(t, err)

	assert.Equal(t, Windows{IncidentStart: 4, IncidentEnd: 13, ReflectedStart: 34}, windows)
}

func TestSegment_NoPulse(t *testing.T) {
	corrected := make([]float64, 100)
	for i := range corrected {
		corrected[i] = 0.003 // noise only, never past the trigger
	}

	_, _, err := Segment(corrected, corrected, testParams())
	require.ErrorIs(t, err, ErrNoPulse)
}

func TestSegment_NoReflectedPulse(t *testing.T) {
	// Incident pulse only: nothing ever crosses the trigger again.
	corrected := syntheticTrace()[:31]
	for i := 24; i < len(corrected); i++ {
		corrected[i] = 0.002
	}

	_, _, err := Segment(corrected, corrected, testParams())
	require.ErrorIs(t, err, ErrNoPulse)
	assert.Contains(t, err.Error(), "no reflected pulse found after sample 24")
}

func TestSegment_SingleReflectedCrossing(t *testing.T) {
	// One crossing after the search start is treated as spurious; the
	// genuine reflected pulse needs a second.
	corrected := syntheticTrace()[:36]

	_, _, err := Segment(corrected, corrected, testParams())
	require.ErrorIs(t, err, ErrNoPulse)
}

func TestSegment_TriggerAtRecordingStart(t *testing.T) {
	corrected := []float64{0.5, 0.4, 0.1, -0.1}

	_, _, err := Segment(corrected, corrected, testParams())
	require.ErrorIs(t, err, ErrNoPulse, "no quiescent samples before the trigger to anchor the pulse start")
}

func TestSegment_SearchStartBeyondRecording(t *testing.T) {
	corrected := syntheticTrace()[:20]

	p := testParams()
	p.NoiseDelay = 100

	_, _, err := Segment(corrected, corrected, p)
	require.ErrorIs(t, err, ErrNoPulse)
}

func TestSegment_LengthMismatch(t *testing.T) {
	corrected := syntheticTrace()

	_, _, err := Segment(corrected, corrected[:10], testParams())
	require.Error(t, err)
}
