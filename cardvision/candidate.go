package cardvision

import (
	"image"

	"github.com/golang/geo/r2"
)

// CardCandidate is one candidate card region found during segmentation,
// mutated in place as recognition and deduplication proceed.
type CardCandidate struct {
	// Warped is the canonical top-down view produced by rectification.
	Warped image.Image
	// BoundingQuad is the 4-vertex polygon in original-image coordinates.
	BoundingQuad []r2.Point
	// ImageAreaFraction is the quad's area divided by the full image area.
	ImageAreaFraction float64
	// IsRecognized reports whether C7 matched this candidate to a
	// reference entry.
	IsRecognized bool
	// RecognitionScore is non-negative; 0 while unrecognized.
	RecognitionScore float64
	// IsFragment marks a candidate suppressed as a duplicate or partial
	// view of another candidate.
	IsFragment bool
	// Name is the canonicalized reference name; empty while unrecognized.
	Name string
}

// Area returns the Shoelace area of the candidate's bounding quad.
func (c *CardCandidate) Area() float64 {
	return ShoelaceArea(c.BoundingQuad)
}

// TestImage is one decoded image submitted to the pipeline, downscaled per
// the configured maximum input dimension before segmentation begins.
type TestImage struct {
	// Source is the (possibly downscaled) pixel buffer segmentation runs
	// over.
	Source image.Image
	// Area is Source's pixel area, cached because it is read on every
	// contour characterization.
	Area float64
}

// NewTestImage wraps img, downscaling it proportionally with area
// averaging if its shortest side exceeds maxDimension.
func NewTestImage(img image.Image, maxDimension int) TestImage {
	scaled := downscaleToMax(img, maxDimension)
	b := scaled.Bounds()
	return TestImage{Source: scaled, Area: float64(b.Dx() * b.Dy())}
}
