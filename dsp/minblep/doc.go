// Package minblep builds and applies minimum-phase band-limited step
// (minBLEP) correction tables for rational sample-rate conversion of
// signals with discontinuities.
//
// A naively generated waveform edge (a square or saw oscillator
// transition) aliases badly when rendered at an output rate. A minBLEP
// table replaces each edge with a band-limited step sharing the magnitude
// response of a windowed-sinc low-pass filter, rearranged into polyphase
// runs so a discontinuity at any sub-sample offset can be mixed into the
// output with a single contiguous accumulation.
//
// Construction runs once per (naive rate, output rate, cutoff, transition)
// combination:
//
//	tbl, err := minblep.New(126000, 48000)
//	...
//	tbl.Paste(naivex, diff, out)
//
// Tables are immutable after construction and safe for unsynchronized
// concurrent reads. Concurrent Paste calls into the same output buffer
// need external locking, since Paste accumulates.
//
// Construction cost is dominated by four FFTs of the power-of-two kernel
// size; LoadOrCreate persists finished tables through a tablecache.Store
// so repeated runs skip the transform pipeline entirely.
package minblep
