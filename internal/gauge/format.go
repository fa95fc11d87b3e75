package gauge

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

// Summary renders the human-readable outcome for a capture file, with both
// values rounded to the nearest integer.
func (r Result) Summary(sourceFile string) string {
	name := strings.TrimSuffix(filepath.Base(sourceFile), filepath.Ext(sourceFile))

	var b strings.Builder
	fmt.Fprintf(&b, "Input bar calibration from %s\n", name)
	fmt.Fprintf(&b, "Gauge factor: %.0f\n", math.Round(r.GaugeFactor))
	fmt.Fprintf(&b, "Wave speed: %.0f m/s\n", math.Round(r.WaveSpeed))
	return b.String()
}
