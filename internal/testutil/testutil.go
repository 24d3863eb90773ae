// Package testutil provides tolerance assertions and deterministic test
// signals shared by the dsp package tests.
package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// NaiveSquareDiffs returns the discontinuity magnitudes of a naive square
// wave toggling between +amp and -amp every half period of period naive
// samples, as consumed by Paste: diffs[i] is nonzero only where the
// waveform switches level at naive index i.
func NaiveSquareDiffs(length, period int, amp float64) []float64 {
	out := make([]float64, length)
	level := -amp
	half := period / 2
	for i := 0; i < length; i += half {
		out[i] = -2 * level
		level = -level
	}
	return out
}
