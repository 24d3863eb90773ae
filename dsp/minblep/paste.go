package minblep

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for the SIMD paste path.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) *scratchBuf {
	buf := scratchPool.Get().(*scratchBuf)
	if cap(buf.data) < n {
		buf.data = make([]float64, n)
	} else {
		buf.data = buf.data[:n]
	}
	return buf
}

// OutCount returns the number of output samples produced while consuming
// naiveN naive samples starting at naivex. naivex must lie in
// [0, NaiveRate); naiveN may span any number of one-second periods.
func (t *Table) OutCount(naivex, naiveN int) int {
	out0 := int(t.naivex2outx[naivex])

	naivex += naiveN
	shift := naivex / t.naiveRate
	out0 -= t.outRate * shift
	naivex -= t.naiveRate * shift

	// Subtract from the first output sample the block cannot produce.
	return int(t.naivex2outx[naivex]) - out0
}

// MinNaiveN returns the minimum number of additional naive samples that
// guarantees outCount valid output samples from naivex.
func (t *Table) MinNaiveN(naivex, outCount int) int {
	outx := int(t.naivex2outx[naivex]) + outCount

	shift := outx / t.outRate
	outx -= t.outRate * shift
	naivex -= t.naiveRate * shift

	return int(t.outx2minnaivex[outx]) - naivex
}

// Paste accumulates a band-limited correction into out for every nonzero
// discontinuity magnitude in diff. diff[i] is the discontinuity at naive
// index naivex+i; its phase-selected mixin run, scaled by the magnitude,
// is added to out starting at the output index mapped from that naive
// index, clipped to the bounds of out. out[0] is aligned with the output
// index of naivex.
//
// Paste performs read-modify-write accumulation: concurrent calls into
// the same buffer need external locking.
func (t *Table) Paste(naivex int, diff, out []float64) {
	if len(out) == 0 {
		return
	}

	// SIMD pays off only above a few samples per span; clipped edge
	// spans fall back to the scalar loop.
	const simdThreshold = 4

	buf := getScratch(t.mixinSize)
	defer scratchPool.Put(buf)

	out0 := int(t.naivex2outx[naivex])

	for i, amp := range diff {
		if amp == 0 {
			continue
		}

		nx := naivex + i
		outShift := 0
		if shift := nx / t.naiveRate; shift > 0 {
			nx -= t.naiveRate * shift
			outShift = t.outRate * shift
		}

		outx := int(t.naivex2outx[nx]) + outShift - out0
		if outx >= len(out) {
			continue
		}

		off := int(t.naivex2off[nx])
		mixin := t.demultiplexed[off : off+t.mixinSize]

		// Clip the span to the output buffer.
		lo, hi := 0, t.mixinSize
		if outx < 0 {
			lo = -outx
		}
		if outx+hi > len(out) {
			hi = len(out) - outx
		}
		if lo >= hi {
			continue
		}

		if hi-lo >= simdThreshold {
			scratch := buf.data[:hi-lo]
			vecmath.ScaleBlock(scratch, mixin[lo:hi], amp)
			vecmath.AddBlockInPlace(out[outx+lo:outx+hi], scratch)
		} else {
			for k := lo; k < hi; k++ {
				out[outx+k] += amp * mixin[k]
			}
		}
	}
}
