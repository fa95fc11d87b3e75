package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/avanlerberghe/shpb/internal/gauge"
)

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	exp := gauge.DefaultExperiment()
	if config.ExperimentFile != "" {
		var err error
		if exp, err = gauge.LoadExperiment(config.ExperimentFile); err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	result, err := gauge.Compute(exp, config.CaptureFile, config.Channel, gauge.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("computing gauge factor: %w", err)
	}

	rate, suffix := humanize.ComputeSI(1 / result.TimeStep)
	logger.Info("capture processed",
		slog.String("file", config.CaptureFile),
		slog.Int("channel", config.Channel),
		slog.String("samples", humanize.Comma(int64(result.SampleCount))),
		slog.String("sampleRate", fmt.Sprintf("%.2f%sHz", rate, suffix)),
		slog.Group("pulses",
			slog.Int("incidentStart", result.Pulses.IncidentStart),
			slog.Int("incidentEnd", result.Pulses.IncidentEnd),
			slog.Int("reflectedStart", result.Pulses.ReflectedStart),
		),
		slog.Group("physics",
			slog.String("peakVoltage", fmt.Sprintf("%.4fV", result.PeakVoltage)),
			slog.String("timeOfFlight", fmt.Sprintf("%.4gs", result.TimeOfFlight)),
			slog.String("barStrain", fmt.Sprintf("%.4g", result.BarStrain)),
		))

	banner(os.Stdout, config.CaptureFile)
	fmt.Fprint(os.Stdout, result.Summary(config.CaptureFile))
	return nil
}

// banner prints the processing header the lab scripts have always printed
// before the results.
func banner(w io.Writer, path string) {
	rule := strings.Repeat("-", 80)
	fmt.Fprintf(w, "%s\nPROCESSING GAUGE FACTOR & WAVE SPEED\n%s\n", rule, rule)
	fmt.Fprintf(w, "Original file path: %s\n", path)
}
