package cardvision

import (
	"image"
	"image/color"
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// ErrDegenerateQuad is returned when a quad is too thin or self-intersecting
// to produce a usable homography.
var ErrDegenerateQuad = errors.New("degenerate quad: cannot compute homography")

// RectifyQuad performs a perspective rectification of src inside the
// 4-vertex polygon quad, producing a canonical top-down view. Vertices are
// ordered by angle around their centroid first; that order fixes relative
// corner positions but not which vertex is "top-left" — callers compensate
// by trying all 4 rotations downstream (see Recognizer.Recognize).
func RectifyQuad(src image.Image, quad []r2.Point) (*image.RGBA, error) {
	if len(quad) != 4 {
		return nil, ErrDegenerateQuad
	}
	ordered := OrderPointsByAngle(quad)
	v0, v1, v2, v3 := ordered[0], ordered[1], ordered[2], ordered[3]

	w := int(math.Round(math.Max(v0.Sub(v1).Norm(), v3.Sub(v2).Norm())))
	h := int(math.Round(math.Max(v0.Sub(v3).Norm(), v1.Sub(v2).Norm())))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := []r2.Point{
		{X: 0, Y: 0},
		{X: float64(w - 1), Y: 0},
		{X: float64(w - 1), Y: float64(h - 1)},
		{X: 0, Y: float64(h - 1)},
	}

	// Solve the homography mapping destination coordinates back to source
	// coordinates directly, so warping needs no matrix inversion.
	invH, err := computeHomography(dst, ordered)
	if err != nil {
		return nil, err
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	bounds := src.Bounds()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx, sy := applyHomography(invH, float64(x), float64(y))
			out.Set(x, y, bilinearSample(src, bounds, sx, sy))
		}
	}
	return out, nil
}

// computeHomography solves for the 3x3 projective transform (as an 8-value
// vector, with h22 fixed at 1) mapping each src[i] to dst[i], via Gaussian
// elimination on the standard 8x8 linear system.
func computeHomography(src, dst []r2.Point) ([8]float64, error) {
	var a [8][9]float64
	for i := 0; i < 4; i++ {
		sx, sy := src[i].X, src[i].Y
		dx, dy := dst[i].X, dst[i].Y

		a[2*i] = [9]float64{sx, sy, 1, 0, 0, 0, -sx * dx, -sy * dx, dx}
		a[2*i+1] = [9]float64{0, 0, 0, sx, sy, 1, -sx * dy, -sy * dy, dy}
	}

	h, ok := solve8x8(a)
	if !ok {
		return [8]float64{}, ErrDegenerateQuad
	}
	return h, nil
}

// solve8x8 runs Gaussian elimination with partial pivoting on an 8x9
// augmented matrix, returning the 8 unknowns.
func solve8x8(a [8][9]float64) ([8]float64, bool) {
	const n = 8
	for col := 0; col < n; col++ {
		pivot := col
		maxVal := math.Abs(a[col][col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(a[r][col]); v > maxVal {
				maxVal = v
				pivot = r
			}
		}
		if maxVal < 1e-12 {
			return [8]float64{}, false
		}
		a[col], a[pivot] = a[pivot], a[col]

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := a[r][col] / a[col][col]
			for c := col; c <= n; c++ {
				a[r][c] -= factor * a[col][c]
			}
		}
	}

	var out [8]float64
	for i := 0; i < n; i++ {
		out[i] = a[i][n] / a[i][i]
	}
	return out, true
}

// applyHomography maps (x, y) through the 8-parameter homography h
// (h22 implicitly 1).
func applyHomography(h [8]float64, x, y float64) (float64, float64) {
	denom := h[6]*x + h[7]*y + 1
	if math.Abs(denom) < 1e-12 {
		denom = 1e-12
	}
	outX := (h[0]*x + h[1]*y + h[2]) / denom
	outY := (h[3]*x + h[4]*y + h[5]) / denom
	return outX, outY
}

// bilinearSample samples img at fractional coordinates (x, y), returning
// transparent black if the sample falls outside bounds.
func bilinearSample(img image.Image, bounds image.Rectangle, x, y float64) color.Color {
	if x < float64(bounds.Min.X) || x > float64(bounds.Max.X-1) ||
		y < float64(bounds.Min.Y) || y > float64(bounds.Max.Y-1) {
		return color.RGBA{}
	}

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	x1 := clampInt(x0+1, bounds.Min.X, bounds.Max.X-1)
	y1 := clampInt(y0+1, bounds.Min.Y, bounds.Max.Y-1)
	x0 = clampInt(x0, bounds.Min.X, bounds.Max.X-1)
	y0 = clampInt(y0, bounds.Min.Y, bounds.Max.Y-1)

	fx := x - float64(x0)
	fy := y - float64(y0)

	c00 := colorToFloat(img.At(x0, y0))
	c10 := colorToFloat(img.At(x1, y0))
	c01 := colorToFloat(img.At(x0, y1))
	c11 := colorToFloat(img.At(x1, y1))

	var out [4]float64
	for k := 0; k < 4; k++ {
		top := c00[k]*(1-fx) + c10[k]*fx
		bottom := c01[k]*(1-fx) + c11[k]*fx
		out[k] = top*(1-fy) + bottom*fy
	}
	return color.RGBA{
		R: uint8(clampFloat(out[0], 0, 255)),
		G: uint8(clampFloat(out[1], 0, 255)),
		B: uint8(clampFloat(out[2], 0, 255)),
		A: uint8(clampFloat(out[3], 0, 255)),
	}
}

func colorToFloat(c color.Color) [4]float64 {
	r, g, b, a := c.RGBA()
	return [4]float64{float64(r >> 8), float64(g >> 8), float64(b >> 8), float64(a >> 8)}
}
