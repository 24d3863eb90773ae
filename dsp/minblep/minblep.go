package minblep

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-minblep/dsp/minblep/tablecache"
	"github.com/cwbudde/algo-minblep/dsp/window"
)

// Default filter parameters, as a fraction of the naive-rate Nyquist
// frequency and of the total bandwidth respectively.
const (
	DefaultCutoff     = 0.475
	DefaultTransition = 0.05
)

// Option configures table construction.
type Option func(*config)

type config struct {
	scale      int
	cutoff     float64
	transition float64
	window     window.Type
	beta       float64
}

func defaultConfig() config {
	return config{
		cutoff:     DefaultCutoff,
		transition: DefaultTransition,
		window:     window.TypeBlackman,
		beta:       8.6,
	}
}

// WithScale asserts the expected conversion scale. Construction fails if
// the value differs from the gcd-derived ideal scale.
func WithScale(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.scale = n
		}
	}
}

// WithCutoff overrides the low-pass cutoff in range (0, 0.5].
func WithCutoff(v float64) Option {
	return func(cfg *config) {
		cfg.cutoff = v
	}
}

// WithTransition overrides the fractional transition-band width in
// range (0, 1). Smaller values lengthen the kernel.
func WithTransition(v float64) Option {
	return func(cfg *config) {
		cfg.transition = v
	}
}

// WithWindow selects the design window applied to the sinc kernel.
func WithWindow(t window.Type) Option {
	return func(cfg *config) {
		cfg.window = t
	}
}

// WithKaiserBeta overrides the Kaiser window beta parameter. Only
// effective together with WithWindow(window.TypeKaiser).
func WithKaiserBeta(beta float64) Option {
	return func(cfg *config) {
		if beta >= 0 {
			cfg.beta = beta
		}
	}
}

// Table is an immutable minBLEP correction table for one rational rate
// pair. All slices are computed at construction and never mutated, so a
// Table is safe for unsynchronized concurrent reads.
type Table struct {
	naiveRate int
	outRate   int
	scale     int

	cutoff     float64
	transition float64

	mixinSize int

	minblep       []float64
	demultiplexed []float64

	naivex2outx    []int32
	naivex2shape   []int32
	naivex2off     []int32
	outx2minnaivex []int32
}

// ResolveScale validates the conversion scale for a rate pair.
// A zero scale derives the ideal value naiveRate / gcd(naiveRate, outRate);
// a nonzero scale must match that ideal exactly.
func ResolveScale(naiveRate, outRate, scale int) (int, error) {
	if naiveRate <= 0 || outRate <= 0 {
		return 0, fmt.Errorf("%w: naive %d, out %d", ErrInvalidRate, naiveRate, outRate)
	}

	ideal := naiveRate / gcd(naiveRate, outRate)
	if scale != 0 && scale != ideal {
		return 0, fmt.Errorf("%w: requested %d, ideal %d", ErrScaleMismatch, scale, ideal)
	}

	return ideal, nil
}

// New constructs a table for converting naiveRate samples to outRate
// samples, bypassing any cache.
func New(naiveRate, outRate int, opts ...Option) (*Table, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	scale, err := ResolveScale(naiveRate, outRate, cfg.scale)
	if err != nil {
		return nil, err
	}

	return build(naiveRate, outRate, scale, cfg)
}

// LoadOrCreate returns the table for the given parameters, loading a
// previously published snapshot from store when one exists and building
// and publishing it otherwise. Store I/O and decode failures propagate;
// the atomic publish contract of tablecache.Store guarantees a loaded
// entry is always complete.
func LoadOrCreate(store tablecache.Store, naiveRate, outRate int, opts ...Option) (*Table, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	scale, err := ResolveScale(naiveRate, outRate, cfg.scale)
	if err != nil {
		return nil, err
	}

	key := cacheKey(naiveRate, outRate, scale, cfg)

	ok, err := store.Exists(key)
	if err != nil {
		return nil, err
	}

	if ok {
		data, err := store.Load(key)
		if err != nil {
			return nil, err
		}

		t := new(Table)
		if err := t.UnmarshalBinary(data); err != nil {
			return nil, err
		}

		return t, nil
	}

	t, err := build(naiveRate, outRate, scale, cfg)
	if err != nil {
		return nil, err
	}

	data, err := t.MarshalBinary()
	if err != nil {
		return nil, err
	}

	if err := store.AtomicStore(key, data); err != nil {
		return nil, err
	}

	return t, nil
}

// cacheKey canonically encodes the parameters that determine table
// contents. Float parameters use the shortest exact decimal form so the
// same parameters always hit the same entry.
func cacheKey(naiveRate, outRate, scale int, cfg config) string {
	var b strings.Builder

	b.WriteString("minblep(")
	b.WriteString(strconv.Itoa(naiveRate))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(outRate))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(scale))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(cfg.cutoff, 'g', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(cfg.transition, 'g', -1, 64))

	if cfg.window != window.TypeBlackman {
		b.WriteByte(',')
		b.WriteString(cfg.window.String())
		if cfg.window == window.TypeKaiser {
			b.WriteByte(',')
			b.WriteString(strconv.FormatFloat(cfg.beta, 'g', -1, 64))
		}
	}

	b.WriteByte(')')

	return b.String()
}

// NaiveRate returns the naive-grid sample rate.
func (t *Table) NaiveRate() int { return t.naiveRate }

// OutRate returns the output-grid sample rate.
func (t *Table) OutRate() int { return t.outRate }

// Scale returns the integer conversion scale naiveRate/gcd(naiveRate, outRate).
func (t *Table) Scale() int { return t.scale }

// MixinSize returns the length of each polyphase correction run.
func (t *Table) MixinSize() int { return t.mixinSize }

// Cutoff returns the configured low-pass cutoff.
func (t *Table) Cutoff() float64 { return t.cutoff }

// Transition returns the configured transition-band width.
func (t *Table) Transition() float64 { return t.transition }

// StepTable returns a copy of the padded minimum-phase step response.
func (t *Table) StepTable() []float64 {
	out := make([]float64, len(t.minblep))
	copy(out, t.minblep)

	return out
}

// Mixin returns a copy of the correction run selected by the phase of
// naivex. naivex must lie in [0, NaiveRate).
func (t *Table) Mixin(naivex int) []float64 {
	off := int(t.naivex2off[naivex])
	out := make([]float64, t.mixinSize)
	copy(out, t.demultiplexed[off:off+t.mixinSize])

	return out
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}
