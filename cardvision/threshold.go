package cardvision

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/mat"
)

// ThresholdMode selects which channel(s) a contour-extraction pass
// thresholds.
type ThresholdMode int

const (
	// ThresholdGray applies a single fixed-level threshold to greyscale
	// luminance.
	ThresholdGray ThresholdMode = iota
	// ThresholdAdaptive applies a local-mean threshold to greyscale
	// luminance, tolerating uneven lighting across the frame.
	ThresholdAdaptive
	// ThresholdRGB thresholds the red, green, and blue channels
	// independently, catching card edges that have low contrast in
	// luminance but stand out in one channel.
	ThresholdRGB
	// ThresholdAll runs every mode above and merges their contour passes.
	ThresholdAll
)

// ToGray converts img to 8-bit greyscale.
func ToGray(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Set(x, y, img.At(x, y))
		}
	}
	return gray
}

// ThresholdFixed returns a binary mask (1 where gray >= level) as a
// mat.Dense, the form FindContours expects.
func ThresholdFixed(gray *image.Gray, level uint8) *mat.Dense {
	b := gray.Bounds()
	rows, cols := b.Dy(), b.Dx()
	out := mat.NewDense(rows, cols, nil)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y
			if v >= level {
				out.Set(y, x, 1)
			}
		}
	}
	return out
}

// ThresholdAdaptiveGaussian thresholds each pixel against a Gaussian-weighted
// local neighborhood mean minus a constant offset, tolerating gradients in
// scene lighting that a fixed level would miscall.
func ThresholdAdaptiveGaussian(gray *image.Gray, windowSize int, c float64) *mat.Dense {
	if windowSize%2 == 0 {
		windowSize++
	}
	b := gray.Bounds()
	rows, cols := b.Dy(), b.Dx()

	kernel := gaussianKernel1D(windowSize)
	blurred := separableBlur(gray, kernel)

	out := mat.NewDense(rows, cols, nil)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := float64(gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			local := blurred[y][x]
			if v >= local-c {
				out.Set(y, x, 1)
			}
		}
	}
	return out
}

// ThresholdChannelMasks runs ThresholdFixed independently on the red, green,
// and blue channels of img, feeding the "rgb" contour mode.
func ThresholdChannelMasks(img image.Image, level uint8) [3]*mat.Dense {
	b := img.Bounds()
	rows, cols := b.Dy(), b.Dx()
	var masks [3]*mat.Dense
	for k := 0; k < 3; k++ {
		masks[k] = mat.NewDense(rows, cols, nil)
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			channels := [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(bl >> 8)}
			for k, v := range channels {
				if v >= level {
					masks[k].Set(y, x, 1)
				}
			}
		}
	}
	return masks
}

// EnhanceContrastCLAHE applies tile-based contrast-limited histogram
// equalization to img's Lab luminance channel, leaving chrominance
// untouched, and returns the re-composited image.
func EnhanceContrastCLAHE(img image.Image, clipLimit float64, tileGrid int) *image.RGBA {
	b := img.Bounds()
	rows, cols := b.Dy(), b.Dx()

	lChannel := make([][]float64, rows)
	aChannel := make([][]float64, rows)
	bChannel := make([][]float64, rows)
	for y := 0; y < rows; y++ {
		lChannel[y] = make([]float64, cols)
		aChannel[y] = make([]float64, cols)
		bChannel[y] = make([]float64, cols)
		for x := 0; x < cols; x++ {
			c, _ := colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y))
			l, a, bb := c.Lab()
			lChannel[y][x] = l
			aChannel[y][x] = a
			bChannel[y][x] = bb
		}
	}

	enhanced := claheChannel(lChannel, clipLimit, tileGrid, 0, 100)

	out := image.NewRGBA(b)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := colorful.Lab(enhanced[y][x], aChannel[y][x], bChannel[y][x]).Clamped()
			out.Set(b.Min.X+x, b.Min.Y+y, c)
		}
	}
	return out
}

// EnhanceChannelCLAHE applies the same tile-histogram equalization directly
// to one of img's raw R (0), G (1), or B (2) channels, used by the "rgb"
// contour mode in place of Lab luminance.
func EnhanceChannelCLAHE(img image.Image, channel int, clipLimit float64, tileGrid int) *image.Gray {
	b := img.Bounds()
	rows, cols := b.Dy(), b.Dx()

	vals := make([][]float64, rows)
	for y := 0; y < rows; y++ {
		vals[y] = make([]float64, cols)
		for x := 0; x < cols; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			rgb := [3]uint32{r, g, bl}
			vals[y][x] = float64(rgb[channel] >> 8)
		}
	}

	enhanced := claheChannel(vals, clipLimit, tileGrid, 0, 255)

	out := image.NewGray(b)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := uint8(math.Round(clampFloat(enhanced[y][x], 0, 255)))
			out.SetGray(b.Min.X+x, b.Min.Y+y, color.Gray{Y: v})
		}
	}
	return out
}

// claheChannel runs contrast-limited adaptive histogram equalization on a
// single-channel value grid in [lo, hi], tile by tile, with bilinear
// blending between neighboring tile mappings to avoid block artifacts.
func claheChannel(vals [][]float64, clipLimit float64, tileGrid int, lo, hi float64) [][]float64 {
	rows := len(vals)
	if rows == 0 {
		return vals
	}
	cols := len(vals[0])
	if tileGrid < 1 {
		tileGrid = 1
	}

	tileH := (rows + tileGrid - 1) / tileGrid
	tileW := (cols + tileGrid - 1) / tileGrid
	const nBins = 256
	scale := float64(nBins-1) / (hi - lo)

	// Per-tile cumulative mapping, clipped and redistributed.
	mappings := make([][][nBins]float64, tileGrid)
	for ty := 0; ty < tileGrid; ty++ {
		mappings[ty] = make([][nBins]float64, tileGrid)
		for tx := 0; tx < tileGrid; tx++ {
			y0, y1 := ty*tileH, min(rows, (ty+1)*tileH)
			x0, x1 := tx*tileW, min(cols, (tx+1)*tileW)

			var hist [nBins]int
			count := 0
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					bin := int(clampFloat((vals[y][x]-lo)*scale, 0, nBins-1))
					hist[bin]++
					count++
				}
			}
			if count == 0 {
				continue
			}

			clip := int(clipLimit * float64(count) / float64(nBins))
			if clip < 1 {
				clip = 1
			}
			excess := 0
			for i := range hist {
				if hist[i] > clip {
					excess += hist[i] - clip
					hist[i] = clip
				}
			}
			redistribute := excess / nBins
			for i := range hist {
				hist[i] += redistribute
			}

			cum := 0
			for i := 0; i < nBins; i++ {
				cum += hist[i]
				mappings[ty][tx][i] = lo + (hi-lo)*float64(cum)/float64(count)
			}
		}
	}

	out := make([][]float64, rows)
	for y := 0; y < rows; y++ {
		out[y] = make([]float64, cols)
		for x := 0; x < cols; x++ {
			out[y][x] = bilinearTileLookup(vals[y][x], x, y, tileW, tileH, tileGrid, lo, hi, scale, mappings)
		}
	}
	return out
}

func bilinearTileLookup(
	v float64, x, y, tileW, tileH, tileGrid int, lo, hi, scale float64, mappings [][][256]float64,
) float64 {
	bin := int(clampFloat((v-lo)*scale, 0, 255))

	fx := float64(x)/float64(tileW) - 0.5
	fy := float64(y)/float64(tileH) - 0.5
	tx0 := int(math.Floor(fx))
	ty0 := int(math.Floor(fy))
	dx := fx - float64(tx0)
	dy := fy - float64(ty0)

	lookup := func(ty, tx int) float64 {
		ty = clampInt(ty, 0, tileGrid-1)
		tx = clampInt(tx, 0, tileGrid-1)
		return mappings[ty][tx][bin]
	}

	top := lookup(ty0, tx0)*(1-dx) + lookup(ty0, tx0+1)*dx
	bottom := lookup(ty0+1, tx0)*(1-dx) + lookup(ty0+1, tx0+1)*dx
	return top*(1-dy) + bottom*dy
}

func gaussianKernel1D(size int) []float64 {
	sigma := float64(size) / 6.0
	if sigma < 1e-6 {
		sigma = 1
	}
	half := size / 2
	kernel := make([]float64, size)
	sum := 0.0
	for i := -half; i <= half; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+half] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// separableBlur applies a 1D kernel along rows then columns, a standard
// Gaussian-blur decomposition.
func separableBlur(gray *image.Gray, kernel []float64) [][]float64 {
	b := gray.Bounds()
	rows, cols := b.Dy(), b.Dx()
	half := len(kernel) / 2

	horiz := make([][]float64, rows)
	for y := 0; y < rows; y++ {
		horiz[y] = make([]float64, cols)
		for x := 0; x < cols; x++ {
			sum := 0.0
			for k, w := range kernel {
				sx := clampInt(x+k-half, 0, cols-1)
				sum += w * float64(gray.GrayAt(b.Min.X+sx, b.Min.Y+y).Y)
			}
			horiz[y][x] = sum
		}
	}

	out := make([][]float64, rows)
	for y := 0; y < rows; y++ {
		out[y] = make([]float64, cols)
	}
	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			sum := 0.0
			for k, w := range kernel {
				sy := clampInt(y+k-half, 0, rows-1)
				sum += w * horiz[sy][x]
			}
			out[y][x] = sum
		}
	}
	return out
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
