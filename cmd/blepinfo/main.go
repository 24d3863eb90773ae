// Command blepinfo inspects minBLEP correction tables and pre-generates
// cache entries.
//
// Usage:
//
//	blepinfo [flags]
//
// Examples:
//
//	blepinfo -naiverate 126000 -outrate 48000
//	blepinfo -naiverate 126000 -outrate 48000 -transition 0.02
//	blepinfo -naiverate 126000 -outrate 48000 -cache ~/.cache/algo-minblep
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-minblep/dsp/minblep"
	"github.com/cwbudde/algo-minblep/dsp/minblep/tablecache"
)

func main() {
	naiveRate := flag.Int("naiverate", 126000, "naive (oscillator) sample rate")
	outRate := flag.Int("outrate", 48000, "output sample rate")
	scale := flag.Int("scale", 0, "expected conversion scale (0 = derive)")
	cutoff := flag.Float64("cutoff", minblep.DefaultCutoff, "low-pass cutoff, fraction of Nyquist")
	transition := flag.Float64("transition", minblep.DefaultTransition, "transition-band width fraction")
	cacheDir := flag.String("cache", "", "cache directory; empty builds without persisting, \"default\" uses the user cache dir")
	flag.Parse()

	opts := []minblep.Option{
		minblep.WithCutoff(*cutoff),
		minblep.WithTransition(*transition),
	}
	if *scale > 0 {
		opts = append(opts, minblep.WithScale(*scale))
	}

	tbl, cached, err := load(*cacheDir, *naiveRate, *outRate, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "blepinfo:", err)
		os.Exit(1)
	}

	step := tbl.StepTable()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "naive rate\t%d\n", tbl.NaiveRate())
	fmt.Fprintf(w, "output rate\t%d\n", tbl.OutRate())
	fmt.Fprintf(w, "scale\t%d\n", tbl.Scale())
	fmt.Fprintf(w, "cutoff\t%g\n", tbl.Cutoff())
	fmt.Fprintf(w, "transition\t%g\n", tbl.Transition())
	fmt.Fprintf(w, "mixin size\t%d\n", tbl.MixinSize())
	fmt.Fprintf(w, "step table\t%d samples\n", len(step))
	fmt.Fprintf(w, "step tail\t%.6f\n", step[len(step)-1])
	fmt.Fprintf(w, "cached\t%v\n", cached)
	w.Flush()
}

func load(cacheDir string, naiveRate, outRate int, opts []minblep.Option) (*minblep.Table, bool, error) {
	if cacheDir == "" {
		tbl, err := minblep.New(naiveRate, outRate, opts...)
		return tbl, false, err
	}

	var store *tablecache.DirStore
	if cacheDir == "default" {
		var err error
		if store, err = tablecache.DefaultDirStore(); err != nil {
			return nil, false, err
		}
	} else {
		store = tablecache.NewDirStore(cacheDir)
	}

	tbl, err := minblep.LoadOrCreate(store, naiveRate, outRate, opts...)
	return tbl, err == nil, err
}
