package minblep

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-minblep/internal/testutil"
)

func BenchmarkPaste(b *testing.B) {
	tbl, err := New(126000, 48000)
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}

	// Discontinuity density typical of an oscillator block: one edge per
	// period samples.
	for _, period := range []int{32, 128, 1024} {
		diff := testutil.NaiveSquareDiffs(8192, period, 1)
		out := make([]float64, tbl.OutCount(0, len(diff))+tbl.MixinSize())

		b.Run(fmt.Sprintf("period=%d", period), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				tbl.Paste(0, diff, out)
			}
		})
	}
}

func BenchmarkOutCount(b *testing.B) {
	tbl, err := New(126000, 48000)
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = tbl.OutCount(i%tbl.NaiveRate(), 8192)
	}
}

func BenchmarkNew(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := New(126000, 48000); err != nil {
			b.Fatalf("New() error = %v", err)
		}
	}
}
