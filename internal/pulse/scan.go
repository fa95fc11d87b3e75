// Package pulse locates the incident and reflected strain pulses in a
// baseline-corrected strain-gauge recording.
package pulse

import "iter"

// Matches returns a lazy sequence of the indices whose sample satisfies
// pred. The sequence is finite and restartable; every range re-scans from
// the start of the slice.
func Matches(samples []float64, pred func(float64) bool) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, v := range samples {
			if pred(v) && !yield(i) {
				return
			}
		}
	}
}

// SignChanges returns a lazy sequence of the indices i where the sign of
// samples[i+1] differs from the sign of samples[i]. Zero is its own sign
// class, so a sample at exactly zero registers a change on both sides.
func SignChanges(samples []float64) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i+1 < len(samples); i++ {
			if signOf(samples[i]) != signOf(samples[i+1]) && !yield(i) {
				return
			}
		}
	}
}

// First returns the first index produced by seq.
func First(seq iter.Seq[int]) (int, bool) {
	return Nth(seq, 0)
}

// Nth returns the n-th (zero-based) index produced by seq, stopping the
// scan as soon as it is found.
func Nth(seq iter.Seq[int], n int) (int, bool) {
	var i int
	for idx := range seq {
		if i == n {
			return idx, true
		}
		i++
	}
	return 0, false
}

// Last returns the final index produced by seq.
func Last(seq iter.Seq[int]) (int, bool) {
	var last int
	var ok bool
	for idx := range seq {
		last, ok = idx, true
	}
	return last, ok
}

func signOf(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
