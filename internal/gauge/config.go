package gauge

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Experiment holds the bar geometry, instrumentation and detection constants
// for one gauge-factor measurement. Values are immutable for the lifetime of
// a computation.
type Experiment struct {
	BarLength       float64 `yaml:"barLength"`       // Gauge-to-reflection-interface length in mm
	StrikerVelocity float64 `yaml:"strikerVelocity"` // Striker velocity from the speed trap in m/s
	InputVoltage    float64 `yaml:"inputVoltage"`    // Bridge supply voltage in V
	Amplification   float64 `yaml:"amplification"`   // Input bar amplifier gain
	TriggerVoltage  float64 `yaml:"triggerVoltage"`  // Pulse detection threshold in V
	ZeroVoltage     float64 `yaml:"zeroVoltage"`     // Quiescent-signal threshold in V
	NoiseDelay      int     `yaml:"noiseDelay"`      // Samples skipped before the reflected-pulse search; 0 disables
	BaselineWindow  int     `yaml:"baselineWindow"`  // Samples averaged for the zero offset
	AnalysisWindow  int     `yaml:"analysisWindow"`  // Maximum samples retained from a capture
}

// DefaultExperiment returns the lab defaults for the input pressure bar.
func DefaultExperiment() Experiment {
	return Experiment{
		BarLength:       1000,
		StrikerVelocity: 5.5,
		InputVoltage:    4,
		Amplification:   10,
		TriggerVoltage:  0.05,
		ZeroVoltage:     0.01,
		NoiseDelay:      370,
		BaselineWindow:  1000,
		AnalysisWindow:  50000,
	}
}

// LoadExperiment reads an experiment configuration from a YAML file. Parsing
// starts from the defaults, so a partial file overrides only what it names.
func LoadExperiment(path string) (Experiment, error) {
	e := DefaultExperiment()

	data, err := os.ReadFile(path)
	if err != nil {
		return e, fmt.Errorf("reading experiment config: %w", err)
	}
	if err = yaml.Unmarshal(data, &e); err != nil {
		return e, fmt.Errorf("parsing experiment config '%s': %w", path, err)
	}
	if err = e.Validate(); err != nil {
		return e, fmt.Errorf("invalid experiment config '%s': %w", path, err)
	}
	return e, nil
}

// Validate reports the first constant that cannot parameterize a computation.
func (e Experiment) Validate() error {
	switch {
	case e.BarLength <= 0:
		return fmt.Errorf("bar length must be positive, got %g", e.BarLength)
	case e.StrikerVelocity <= 0:
		return fmt.Errorf("striker velocity must be positive, got %g", e.StrikerVelocity)
	case e.InputVoltage <= 0:
		return fmt.Errorf("input voltage must be positive, got %g", e.InputVoltage)
	case e.Amplification <= 0:
		return fmt.Errorf("amplification must be positive, got %g", e.Amplification)
	case e.TriggerVoltage <= 0:
		return fmt.Errorf("trigger voltage must be positive, got %g", e.TriggerVoltage)
	case e.ZeroVoltage <= 0:
		return fmt.Errorf("zero voltage must be positive, got %g", e.ZeroVoltage)
	case e.NoiseDelay < 0:
		return fmt.Errorf("noise time delay must not be negative, got %d", e.NoiseDelay)
	case e.BaselineWindow <= 0:
		return fmt.Errorf("baseline window must be positive, got %d", e.BaselineWindow)
	case e.AnalysisWindow <= e.BaselineWindow:
		return fmt.Errorf("analysis window %d must exceed baseline window %d",
			e.AnalysisWindow, e.BaselineWindow)
	}
	return nil
}
