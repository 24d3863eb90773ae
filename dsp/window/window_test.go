package window

import (
	"math"
	"testing"
)

func TestGenerateLengths(t *testing.T) {
	if got := Generate(TypeBlackman, 0); got != nil {
		t.Fatalf("length 0: got %v, want nil", got)
	}
	if got := Generate(TypeBlackman, -3); got != nil {
		t.Fatalf("negative length: got %v, want nil", got)
	}
	if got := Generate(TypeHann, 1); len(got) != 1 {
		t.Fatalf("length 1: len = %d, want 1", len(got))
	}
}

func TestBlackmanShape(t *testing.T) {
	w := Generate(TypeBlackman, 65)

	// Symmetric form: near-zero endpoints, unity midpoint.
	if math.Abs(w[0]) > 1e-12 || math.Abs(w[64]) > 1e-12 {
		t.Fatalf("endpoints = %v, %v, want ~0", w[0], w[64])
	}
	if math.Abs(w[32]-1) > 1e-12 {
		t.Fatalf("midpoint = %v, want 1", w[32])
	}
	for i := range 32 {
		if math.Abs(w[i]-w[64-i]) > 1e-12 {
			t.Fatalf("asymmetric at %d: %v vs %v", i, w[i], w[64-i])
		}
	}
}

func TestRectangular(t *testing.T) {
	for _, v := range Generate(TypeRectangular, 16) {
		if v != 1 {
			t.Fatalf("rectangular coefficient = %v, want 1", v)
		}
	}
}

func TestKaiserBetaZeroIsFlat(t *testing.T) {
	w := Generate(TypeKaiser, 33, WithBeta(0))
	for i, v := range w {
		if v != 1 {
			t.Fatalf("index %d: got %v, want 1", i, v)
		}
	}
}

func TestKaiserValidation(t *testing.T) {
	if _, err := Kaiser(0, 8.6); err == nil {
		t.Fatal("expected error for size 0")
	}
	if _, err := Kaiser(64, -1); err == nil {
		t.Fatal("expected error for negative beta")
	}
	w, err := Kaiser(64, 8.6)
	if err != nil {
		t.Fatalf("Kaiser() error = %v", err)
	}
	if len(w) != 64 {
		t.Fatalf("len = %d, want 64", len(w))
	}
}

func TestPeriodicForm(t *testing.T) {
	// Periodic Hann never reaches the right endpoint zero.
	w := Generate(TypeHann, 16, WithPeriodic())
	if math.Abs(w[0]) > 1e-12 {
		t.Fatalf("w[0] = %v, want 0", w[0])
	}
	if w[15] == 0 {
		t.Fatal("periodic form should not close the window")
	}
}

func TestNamedWrappers(t *testing.T) {
	for _, tc := range []struct {
		name string
		fn   func(int, ...Option) ([]float64, error)
	}{
		{"hann", Hann},
		{"hamming", Hamming},
		{"blackman", Blackman},
	} {
		w, err := tc.fn(33)
		if err != nil {
			t.Fatalf("%s error = %v", tc.name, err)
		}
		if len(w) != 33 {
			t.Fatalf("%s len = %d, want 33", tc.name, len(w))
		}
		if _, err := tc.fn(0); err == nil {
			t.Fatalf("%s: expected error for size 0", tc.name)
		}
	}
}

func TestApply(t *testing.T) {
	buf := []float64{1, 1, 1, 1, 1}
	Apply(TypeHann, buf)

	want := Generate(TypeHann, 5)
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, buf[i], want[i])
		}
	}

	// Zero-length input must be a no-op.
	Apply(TypeHann, nil)
}

func TestTypeString(t *testing.T) {
	if got := TypeBlackman.String(); got != "blackman" {
		t.Fatalf("String() = %q, want blackman", got)
	}
	if got := Type(99).String(); got != "unknown" {
		t.Fatalf("String() = %q, want unknown", got)
	}
}
