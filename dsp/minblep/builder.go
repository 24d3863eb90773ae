package minblep

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-minblep/dsp/window"
)

// minMagnitude floors spectral magnitudes before the cepstrum logarithm
// so exact-zero bins cannot produce -Inf.
var minMagnitude = math.Exp(-100)

func build(naiveRate, outRate, scale int, cfg config) (*Table, error) {
	if cfg.cutoff <= 0 || cfg.cutoff > 0.5 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidCutoff, cfg.cutoff)
	}
	if cfg.transition <= 0 || cfg.transition >= 1 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidTransition, cfg.transition)
	}

	step, mixinSize, err := buildStepTable(scale, cfg)
	if err != nil {
		return nil, err
	}

	t := &Table{
		naiveRate:     naiveRate,
		outRate:       outRate,
		scale:         scale,
		cutoff:        cfg.cutoff,
		transition:    cfg.transition,
		mixinSize:     mixinSize,
		minblep:       step,
		demultiplexed: demultiplex(step, scale, mixinSize),
	}

	t.buildIndexMaps()

	return t, nil
}

// buildStepTable derives the padded minimum-phase band-limited step via
// the real-cepstrum method and returns it with the per-phase run length.
func buildStepTable(scale int, cfg config) ([]float64, int, error) {
	// Closest even order to 4/transition, rounding half up.
	order := 2 * int(math.Floor(4/cfg.transition/2+0.5))
	kernelSize := order*scale + 1
	if order <= 0 || kernelSize <= 1 {
		return nil, 0, fmt.Errorf("%w: derived filter order %d", ErrInvalidTransition, order)
	}

	// The transforms need a power-of-two size.
	size := 1
	for size < kernelSize {
		size <<= 1
	}
	midpoint := size / 2

	// Windowed sinc over [-order*cutoff, order*cutoff], normalized for
	// unity passband gain after spreading across scale phases.
	win := window.Generate(cfg.window, kernelSize, window.WithBeta(cfg.beta))
	bli := make([]float64, kernelSize)
	for i := range bli {
		x := (float64(i)/float64(kernelSize-1)*2 - 1) * float64(order) * cfg.cutoff
		bli[i] = win[i] * sinc(x) / float64(scale) * cfg.cutoff * 2
	}

	// Zero-pad centered on the midpoint. The left pad takes the extra
	// sample of the odd difference.
	rpad := (size - kernelSize) / 2
	lpad := rpad + 1

	padded := make([]complex128, size)
	for i, v := range bli {
		padded[lpad+i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, 0, fmt.Errorf("minblep: failed to create FFT plan: %w", err)
	}

	// Magnitude spectrum; phase is discarded here.
	spec := make([]complex128, size)
	if err := plan.Forward(spec, padded); err != nil {
		return nil, 0, fmt.Errorf("minblep: forward FFT failed: %w", err)
	}

	for i, v := range spec {
		spec[i] = complex(math.Log(math.Max(minMagnitude, cmplx.Abs(v))), 0)
	}

	// The real cepstrum is symmetric apart from its first element.
	cepstrum := make([]complex128, size)
	if err := plan.Inverse(cepstrum, spec); err != nil {
		return nil, 0, fmt.Errorf("minblep: inverse FFT failed: %w", err)
	}

	// Fold the maximum-phase half onto the minimum-phase half. Indices 0
	// and midpoint are shared between halves and stay untouched.
	for i := 1; i < midpoint; i++ {
		cepstrum[i] *= 2
	}
	for i := midpoint + 1; i < size; i++ {
		cepstrum[i] = 0
	}

	if err := plan.Forward(spec, cepstrum); err != nil {
		return nil, 0, fmt.Errorf("minblep: forward FFT failed: %w", err)
	}

	for i, v := range spec {
		spec[i] = cmplx.Exp(v)
	}

	if err := plan.Inverse(cepstrum, spec); err != nil {
		return nil, 0, fmt.Errorf("minblep: inverse FFT failed: %w", err)
	}

	// Integrate the minimum-phase impulse into the band-limited step,
	// prepend zeros to simplify the naive-to-output index mapping, and
	// append ones so all phase runs share one length.
	total := scale - 1 + size
	ones := (scale - total%scale) % scale
	step := make([]float64, scale-1, total+ones)

	sum := 0.0
	for _, v := range cepstrum {
		sum += real(v)
		step = append(step, sum)
	}

	for range ones {
		step = append(step, 1)
	}

	return step, len(step) / scale, nil
}

// demultiplex rearranges the step table into scale contiguous phase runs:
// run i holds every scale-th sample starting at offset i.
func demultiplex(step []float64, scale, mixinSize int) []float64 {
	out := make([]float64, len(step))
	for i := range scale {
		for j := range mixinSize {
			out[i*mixinSize+j] = step[i+j*scale]
		}
	}

	return out
}

// buildIndexMaps precomputes the forward and inverse maps between the
// naive and output time axes. Both grids line up exactly at one second,
// so every map is read modulo its rate.
func (t *Table) buildIndexMaps() {
	dualScale := t.outRate / gcd(t.naiveRate, t.outRate)

	t.naivex2outx = make([]int32, t.naiveRate)
	t.naivex2shape = make([]int32, t.naiveRate)
	t.naivex2off = make([]int32, t.naiveRate)

	for n := range t.naiveRate {
		nearest := n * dualScale
		outx := nearest / t.scale
		shape := outx*t.scale - nearest + t.scale - 1

		t.naivex2outx[n] = int32(outx)
		t.naivex2shape[n] = int32(shape)
		t.naivex2off[n] = int32(shape * t.mixinSize)
	}

	// Descending so the smallest naive index mapping to each output
	// index wins.
	t.outx2minnaivex = make([]int32, t.outRate)
	for n := t.naiveRate - 1; n >= 0; n-- {
		t.outx2minnaivex[t.naivex2outx[n]] = int32(n)
	}
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	px := math.Pi * x

	return math.Sin(px) / px
}
