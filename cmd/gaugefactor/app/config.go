package app

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
)

const (
	channelMin = 1
	channelMax = 4
)

// Config represents the command line configuration of one analysis run.
type Config struct {
	CaptureFile    string
	Channel        int
	ExperimentFile string
	Verbose        bool
}

func NewConfig() *Config {
	return &Config{
		Channel: channelMin,
	}
}

// NewConfigFromCLI builds the run configuration from command line flags.
func NewConfigFromCLI() (*Config, error) {
	c := NewConfig()

	flag.StringVar(&c.CaptureFile, "f", "", "Path to the oscilloscope capture file")
	flag.IntVar(&c.Channel, "ch", channelMin, "Input bar oscilloscope channel. [1-4]")
	flag.StringVar(&c.ExperimentFile, "c", "", "Path to the experiment configuration file (lab defaults when omitted)")
	flag.BoolVar(&c.Verbose, "verbose", false, "Enable more verbose output")
	flag.Parse()

	var err error
	if c.CaptureFile == "" {
		err = errors.New("capture file is required")
	} else if c.Channel < channelMin || c.Channel > channelMax {
		err = fmt.Errorf("invalid channel: %d", c.Channel)
	}

	if err != nil {
		flag.Usage()
		return nil, err
	}
	return c, nil
}

// LogLevel maps the verbosity flag onto the slog level for the run.
func (c *Config) LogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
