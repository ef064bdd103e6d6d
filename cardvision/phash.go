package cardvision

import (
	"bytes"
	"encoding/gob"
	"image"
	"sort"

	"github.com/disintegration/imaging"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Hash is a fixed-width perceptual hash: a packed bit-string with a Hamming
// distance operator. Consumers treat it as opaque.
type Hash struct {
	bits []byte
	n    int
}

func newHash(n int) Hash {
	return Hash{bits: make([]byte, (n+7)/8), n: n}
}

func (h *Hash) setBit(i int) {
	h.bits[i/8] |= 1 << uint(i%8)
}

// Bit reports whether bit i is set.
func (h Hash) Bit(i int) bool {
	return h.bits[i/8]&(1<<uint(i%8)) != 0
}

// Len returns the number of bits in the hash.
func (h Hash) Len() int {
	return h.n
}

// Bytes returns the packed bit representation, for storage.
func (h Hash) Bytes() []byte {
	return h.bits
}

// HashFromBytes reconstructs a Hash of n bits from its packed form.
func HashFromBytes(b []byte, n int) Hash {
	out := newHash(n)
	copy(out.bits, b)
	return out
}

// GobEncode lets Hash round-trip through a gob-encoded reference database
// despite its fields being unexported.
func (h Hash) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(h.n); err != nil {
		return nil, err
	}
	if err := enc.Encode(h.bits); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode is the counterpart to GobEncode.
func (h *Hash) GobDecode(data []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&h.n); err != nil {
		return err
	}
	return dec.Decode(&h.bits)
}

// Distance returns the Hamming distance between h and o, over the shorter
// of the two bit lengths.
func (h Hash) Distance(o Hash) int {
	n := h.n
	if o.n < n {
		n = o.n
	}
	dist := 0
	for i := 0; i < n; i++ {
		if h.Bit(i) != o.Bit(i) {
			dist++
		}
	}
	return dist
}

// PerceptualHash computes a size*size-bit perceptual hash of img: resize to
// size x size, greyscale, 2D type-II DCT, then threshold every coefficient
// against the median of all coefficients excluding the DC term.
func PerceptualHash(img image.Image, size int) Hash {
	resized := imaging.Resize(img, size, size, imaging.Lanczos)
	gray := ToGray(resized)

	vals := make([][]float64, size)
	for y := 0; y < size; y++ {
		vals[y] = make([]float64, size)
		for x := 0; x < size; x++ {
			vals[y][x] = float64(gray.GrayAt(x, y).Y)
		}
	}

	coeffs := dct2D(vals, size)

	flat := make([]float64, 0, size*size)
	for y := 0; y < size; y++ {
		flat = append(flat, coeffs[y]...)
	}

	median := medianExcludingDC(flat)

	h := newHash(size * size)
	for i, v := range flat {
		if v > median {
			h.setBit(i)
		}
	}
	return h
}

// dct2D applies a 2D type-II DCT to an n x n grid by running gonum's 1D
// DCT along rows, then along the resulting columns.
func dct2D(vals [][]float64, n int) [][]float64 {
	t := fourier.NewDCT(n)

	rowsT := make([][]float64, n)
	for y := 0; y < n; y++ {
		rowsT[y] = t.Transform(nil, vals[y])
	}

	out := make([][]float64, n)
	for y := 0; y < n; y++ {
		out[y] = make([]float64, n)
	}
	col := make([]float64, n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			col[y] = rowsT[y][x]
		}
		colT := t.Transform(nil, col)
		for y := 0; y < n; y++ {
			out[y][x] = colT[y]
		}
	}
	return out
}

func medianExcludingDC(flat []float64) float64 {
	vals := make([]float64, 0, len(flat)-1)
	for i, v := range flat {
		if i == 0 {
			continue
		}
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		return 0
	}
	sort.Float64s(vals)
	n := len(vals)
	if n%2 == 1 {
		return vals[n/2]
	}
	return (vals[n/2-1] + vals[n/2]) / 2
}
