package trace

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	// headerLines is the fixed instrument header the oscilloscope prepends
	// to every export.
	headerLines = 9

	// fieldSeparator between the time column and the channel columns.
	fieldSeparator = ";"

	// channelCount is the number of channel columns in an export:
	// Time;Ch1;Ch2;Ch3;Ch4.
	channelCount = 4
)

// ErrDataFormat is returned when a capture file does not match the expected
// oscilloscope export layout.
var ErrDataFormat = errors.New("malformed capture file")

// Load reads one channel of an oscilloscope capture and returns its trace.
//
// The export is semicolon-delimited with a fixed 9-line instrument header.
// The first record after the header is an instrument artifact and is
// discarded; at most window samples are retained after it. The time step is
// derived from the first two retained records, which the instrument
// guarantees to be uniform across the recording.
func Load(path string, channel, window int) (*Trace, error) {
	if channel < 1 || channel > channelCount {
		return nil, fmt.Errorf("%w: channel %d out of range 1..%d", ErrDataFormat, channel, channelCount)
	}
	if window < 2 {
		return nil, fmt.Errorf("invalid analysis window: %d", window)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening capture file: %w", err)
	}
	defer f.Close()

	var (
		samples []float64
		times   [2]float64
		line    int
		records int
	)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line++
		if line <= headerLines {
			continue
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue // trailing blank line
		}

		records++
		if records == 1 {
			continue // instrument artifact record
		}
		if len(samples) == window {
			break // analysis window reached
		}

		fields := strings.Split(text, fieldSeparator)
		if len(fields) <= channel {
			return nil, fmt.Errorf("%w: line %d has %d fields, channel %d needs %d",
				ErrDataFormat, line, len(fields), channel, channel+1)
		}

		if len(samples) < len(times) {
			if times[len(samples)], err = strconv.ParseFloat(strings.TrimSpace(fields[0]), 64); err != nil {
				return nil, fmt.Errorf("%w: bad time value on line %d: %v", ErrDataFormat, line, err)
			}
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(fields[channel]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad voltage value on line %d: %v", ErrDataFormat, line, err)
		}
		samples = append(samples, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading capture file: %w", err)
	}

	if len(samples) < 2 {
		return nil, fmt.Errorf("%w: %d samples, need at least 2 to derive the time step",
			ErrInsufficientData, len(samples))
	}

	step := times[1] - times[0]
	if step <= 0 {
		return nil, fmt.Errorf("%w: non-increasing time base (step %g)", ErrDataFormat, step)
	}

	return &Trace{TimeStep: step, Samples: samples}, nil
}
