package minblep

import (
	"errors"
	"testing"
)

func TestResolveScaleDerived(t *testing.T) {
	tests := []struct {
		naive, out, want int
	}{
		{4, 6, 2},
		{6, 4, 3},
		{9, 6, 3},
		{44100, 44100, 1},
		{126000, 48000, 21},
		{44100, 48000, 147},
	}
	for _, tc := range tests {
		got, err := ResolveScale(tc.naive, tc.out, 0)
		if err != nil {
			t.Fatalf("ResolveScale(%d,%d,0) error = %v", tc.naive, tc.out, err)
		}
		if got != tc.want {
			t.Fatalf("ResolveScale(%d,%d,0) = %d, want %d", tc.naive, tc.out, got, tc.want)
		}
	}
}

func TestResolveScaleGCDProperty(t *testing.T) {
	for a := 1; a <= 24; a++ {
		for b := 1; b <= 24; b++ {
			got, err := ResolveScale(a, b, 0)
			if err != nil {
				t.Fatalf("ResolveScale(%d,%d,0) error = %v", a, b, err)
			}
			if want := a / gcd(a, b); got != want {
				t.Fatalf("ResolveScale(%d,%d,0) = %d, want %d", a, b, got, want)
			}
		}
	}
}

func TestResolveScaleOverride(t *testing.T) {
	if _, err := ResolveScale(4, 6, 3); !errors.Is(err, ErrScaleMismatch) {
		t.Fatalf("override 3: error = %v, want ErrScaleMismatch", err)
	}

	got, err := ResolveScale(4, 6, 2)
	if err != nil {
		t.Fatalf("override 2: error = %v", err)
	}
	if got != 2 {
		t.Fatalf("override 2: got %d, want 2", got)
	}
}

func TestResolveScaleInvalidRates(t *testing.T) {
	for _, tc := range [][2]int{{0, 48000}, {48000, 0}, {-1, 48000}, {48000, -1}} {
		if _, err := ResolveScale(tc[0], tc[1], 0); !errors.Is(err, ErrInvalidRate) {
			t.Fatalf("ResolveScale(%d,%d,0) error = %v, want ErrInvalidRate", tc[0], tc[1], err)
		}
	}
}
