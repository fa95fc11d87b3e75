// Package gauge computes the gauge factor and elastic wave speed of an SHPB
// input pressure bar from a single strain-gauge voltage recording.
package gauge

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/avanlerberghe/shpb/internal/pulse"
	"github.com/avanlerberghe/shpb/internal/trace"
)

// mmPerMeter converts the configured bar length, which the lab records in
// millimeters, into the meters the wave-speed formula works in.
const mmPerMeter = 1000

// ErrComputation is returned when the detected pulses produce degenerate
// physics, such as a zero time of flight.
var ErrComputation = errors.New("degenerate computation")

// Result is the outcome of one gauge-factor computation. GaugeFactor and
// WaveSpeed are the headline pair; the remaining fields are the diagnostic
// intermediates they were derived from.
type Result struct {
	GaugeFactor  float64       // Gauge factor of the input bar, dimensionless
	WaveSpeed    float64       // Elastic wave speed in the bar, m/s
	PeakVoltage  float64       // Signed corrected voltage at the incident peak, V
	VoltageRatio float64       // |peak voltage| over the bridge supply voltage
	TimeOfFlight float64       // Incident-to-reflected transit time, s
	BarStrain    float64       // Theoretical bar strain from the striker velocity
	Pulses       pulse.Windows // Detected pulse boundaries, absolute sample indices
	TimeStep     float64       // Oscilloscope time step, s
	SampleCount  int           // Samples retained from the capture
}

// Option configures a computation.
type Option func(*computer)

// WithLogger sets the logger for stage diagnostics. Without it the
// computation is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(c *computer) {
		c.logger = logger
	}
}

type computer struct {
	logger *slog.Logger
}

// Compute runs the full pipeline on one capture file: load the channel,
// correct the baseline, segment the pulses and derive the physics. It is a
// single deterministic pass; identical inputs produce bit-identical results.
func Compute(exp Experiment, path string, channel int, opts ...Option) (Result, error) {
	c := computer{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&c)
	}

	var res Result
	if err := exp.Validate(); err != nil {
		return res, fmt.Errorf("invalid experiment: %w", err)
	}

	tr, err := trace.Load(path, channel, exp.AnalysisWindow)
	if err != nil {
		return res, fmt.Errorf("loading channel %d: %w", channel, err)
	}
	res.TimeStep = tr.TimeStep
	res.SampleCount = len(tr.Samples)
	c.logger.Debug("trace loaded",
		slog.Int("samples", len(tr.Samples)),
		slog.Float64("timeStep", tr.TimeStep))

	corrected, err := tr.Corrected(exp.BaselineWindow)
	if err != nil {
		return res, fmt.Errorf("correcting baseline: %w", err)
	}

	windows, signal, err := pulse.Segment(corrected, tr.Samples, pulse.Params{
		TriggerVoltage: exp.TriggerVoltage,
		ZeroVoltage:    exp.ZeroVoltage,
		NoiseDelay:     exp.NoiseDelay,
	})
	if err != nil {
		return res, fmt.Errorf("segmenting pulses: %w", err)
	}
	res.Pulses = windows
	c.logger.Debug("pulses detected",
		slog.Int("incidentStart", windows.IncidentStart),
		slog.Int("incidentEnd", windows.IncidentEnd),
		slog.Int("reflectedStart", windows.ReflectedStart))

	if err = derive(exp, tr.TimeStep, signal, windows, &res); err != nil {
		return res, err
	}
	return res, nil
}

// derive turns pulse boundaries and the incident peak voltage into the wave
// speed and gauge factor.
func derive(exp Experiment, timeStep float64, signal []float64, w pulse.Windows, res *Result) error {
	// Flat voltage on top of the incident pulse: the sample of largest
	// magnitude within the pulse window, signed value recorded.
	peak := signal[w.IncidentStart]
	for _, v := range signal[w.IncidentStart : w.IncidentEnd+1] {
		if math.Abs(v) > math.Abs(peak) {
			peak = v
		}
	}
	res.PeakVoltage = peak
	res.VoltageRatio = math.Abs(peak / exp.InputVoltage)

	res.TimeOfFlight = math.Abs(float64(w.ReflectedStart-w.IncidentStart)) * timeStep
	if res.TimeOfFlight == 0 {
		return fmt.Errorf("%w: incident and reflected pulses coincide at sample %d",
			ErrComputation, w.IncidentStart)
	}

	// The wave travels from the gauge to the reflection interface and back,
	// hence the factor of two.
	res.WaveSpeed = 2 * (exp.BarLength / mmPerMeter) / res.TimeOfFlight
	if res.WaveSpeed == 0 {
		return fmt.Errorf("%w: zero wave speed", ErrComputation)
	}

	res.BarStrain = exp.StrikerVelocity / (2 * res.WaveSpeed)
	if res.BarStrain == 0 {
		return fmt.Errorf("%w: zero theoretical bar strain", ErrComputation)
	}

	res.GaugeFactor = 2 * res.VoltageRatio / (res.BarStrain * exp.Amplification)
	return nil
}
