package minblep

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Snapshot format: little-endian, fully explicit so any reader can decode
// it deterministically without reflection.
//
//	magic       [4]byte "MBLP"
//	version     uint32
//	naiveRate   uint32
//	outRate     uint32
//	scale       uint32
//	mixinSize   uint32
//	cutoff      float64
//	transition  float64
//	minblep        uint32 length + float64 values
//	demultiplexed  uint32 length + float64 values
//	naivex2outx    uint32 length + int32 values
//	naivex2shape   uint32 length + int32 values
//	naivex2off     uint32 length + int32 values
//	outx2minnaivex uint32 length + int32 values
var snapshotMagic = [4]byte{'M', 'B', 'L', 'P'}

const snapshotVersion uint32 = 1

// MarshalBinary encodes the table into its versioned snapshot format.
func (t *Table) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer

	buf.Write(snapshotMagic[:])

	scalars := []uint32{
		snapshotVersion,
		uint32(t.naiveRate),
		uint32(t.outRate),
		uint32(t.scale),
		uint32(t.mixinSize),
	}
	for _, v := range scalars {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}

	for _, v := range []float64{t.cutoff, t.transition} {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}

	for _, arr := range [][]float64{t.minblep, t.demultiplexed} {
		if err := writeFloats(&buf, arr); err != nil {
			return nil, err
		}
	}

	for _, arr := range [][]int32{t.naivex2outx, t.naivex2shape, t.naivex2off, t.outx2minnaivex} {
		if err := writeInts(&buf, arr); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a snapshot produced by MarshalBinary and
// validates its internal consistency.
func (t *Table) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)

	var magic [4]byte
	if _, err := r.Read(magic[:]); err != nil || magic != snapshotMagic {
		return fmt.Errorf("%w: bad magic", ErrInvalidSnapshot)
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("%w: truncated header", ErrInvalidSnapshot)
	}
	if version != snapshotVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidSnapshot, version)
	}

	var naiveRate, outRate, scale, mixinSize uint32
	for _, p := range []*uint32{&naiveRate, &outRate, &scale, &mixinSize} {
		if err := binary.Read(r, binary.LittleEndian, p); err != nil {
			return fmt.Errorf("%w: truncated header", ErrInvalidSnapshot)
		}
	}

	var cutoff, transition float64
	for _, p := range []*float64{&cutoff, &transition} {
		if err := binary.Read(r, binary.LittleEndian, p); err != nil {
			return fmt.Errorf("%w: truncated header", ErrInvalidSnapshot)
		}
	}

	minblep, err := readFloats(r)
	if err != nil {
		return err
	}

	demultiplexed, err := readFloats(r)
	if err != nil {
		return err
	}

	intArrays := make([][]int32, 4)
	for i := range intArrays {
		if intArrays[i], err = readInts(r); err != nil {
			return err
		}
	}

	if r.Len() != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrInvalidSnapshot, r.Len())
	}

	decoded := Table{
		naiveRate:      int(naiveRate),
		outRate:        int(outRate),
		scale:          int(scale),
		mixinSize:      int(mixinSize),
		cutoff:         cutoff,
		transition:     transition,
		minblep:        minblep,
		demultiplexed:  demultiplexed,
		naivex2outx:    intArrays[0],
		naivex2shape:   intArrays[1],
		naivex2off:     intArrays[2],
		outx2minnaivex: intArrays[3],
	}

	if err := decoded.validateSnapshot(); err != nil {
		return err
	}

	*t = decoded

	return nil
}

// validateSnapshot cross-checks the invariants that tie the arrays to the
// scalar parameters.
func (t *Table) validateSnapshot() error {
	if t.naiveRate <= 0 || t.outRate <= 0 || t.scale <= 0 || t.mixinSize <= 0 {
		return fmt.Errorf("%w: non-positive parameters", ErrInvalidSnapshot)
	}
	if t.scale != t.naiveRate/gcd(t.naiveRate, t.outRate) {
		return fmt.Errorf("%w: scale %d inconsistent with rates %d/%d",
			ErrInvalidSnapshot, t.scale, t.naiveRate, t.outRate)
	}
	if len(t.minblep) != t.scale*t.mixinSize {
		return fmt.Errorf("%w: step table length %d, want %d",
			ErrInvalidSnapshot, len(t.minblep), t.scale*t.mixinSize)
	}
	if len(t.demultiplexed) != len(t.minblep) {
		return fmt.Errorf("%w: demultiplexed length %d, want %d",
			ErrInvalidSnapshot, len(t.demultiplexed), len(t.minblep))
	}
	if len(t.naivex2outx) != t.naiveRate || len(t.naivex2shape) != t.naiveRate ||
		len(t.naivex2off) != t.naiveRate {
		return fmt.Errorf("%w: naive index maps must have %d entries",
			ErrInvalidSnapshot, t.naiveRate)
	}
	if len(t.outx2minnaivex) != t.outRate {
		return fmt.Errorf("%w: inverse index map must have %d entries",
			ErrInvalidSnapshot, t.outRate)
	}

	return nil
}

func writeFloats(buf *bytes.Buffer, arr []float64) error {
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(arr))); err != nil {
		return err
	}

	return binary.Write(buf, binary.LittleEndian, arr)
}

func writeInts(buf *bytes.Buffer, arr []int32) error {
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(arr))); err != nil {
		return err
	}

	return binary.Write(buf, binary.LittleEndian, arr)
}

func readFloats(r *bytes.Reader) ([]float64, error) {
	n, err := readLen(r, 8)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	if err := binary.Read(r, binary.LittleEndian, out); err != nil {
		return nil, fmt.Errorf("%w: truncated float array", ErrInvalidSnapshot)
	}

	return out, nil
}

func readInts(r *bytes.Reader) ([]int32, error) {
	n, err := readLen(r, 4)
	if err != nil {
		return nil, err
	}

	out := make([]int32, n)
	if err := binary.Read(r, binary.LittleEndian, out); err != nil {
		return nil, fmt.Errorf("%w: truncated int array", ErrInvalidSnapshot)
	}

	return out, nil
}

func readLen(r *bytes.Reader, elemSize int) (int, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return 0, fmt.Errorf("%w: truncated array header", ErrInvalidSnapshot)
	}

	if int(n) > r.Len()/elemSize {
		return 0, fmt.Errorf("%w: array length %d exceeds remaining data", ErrInvalidSnapshot, n)
	}

	return int(n), nil
}
