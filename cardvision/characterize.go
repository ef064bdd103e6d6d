package cardvision

import (
	"github.com/golang/geo/r2"
)

// CharacterizationResult is the outcome of characterizing one raw contour
// against the current segmentation state.
type CharacterizationResult struct {
	// Continue reports whether the caller should keep examining further
	// (smaller) contours in this segmentation pass.
	Continue bool
	// IsCandidate reports whether this contour should become a card
	// candidate.
	IsCandidate bool
	// BoundingQuad is the fitted 4-vertex polygon, valid only if
	// IsCandidate.
	BoundingQuad []r2.Point
	// CropFactor shrinks BoundingQuad about its centroid before
	// rectification, trimming background bleed at rounded corners.
	CropFactor float64
}

// CharacterizeContour implements the accept/reject decision for one raw
// contour: convex-hull it, fit an enclosing quad, score how well the hull
// fills the quad's corners, and accept only shapes with card-like
// proportions.
func CharacterizeContour(contour []r2.Point, maxSegmentArea, imageArea float64, cfg Config) CharacterizationResult {
	hull := ConvexHull(contour)
	hullArea := ShoelaceArea(hull)

	sizeFloor := 0.1 * maxSegmentArea
	if f := imageArea / 1000; f > sizeFloor {
		sizeFloor = f
	}
	if hullArea < sizeFloor {
		return CharacterizationResult{Continue: false, CropFactor: 1.0}
	}

	simplified := SimplifyPolygon(hull, cfg.SimplifyLengthCutoff, 0)
	quad, err := MinAreaEnclosingQuad(simplified)
	if err != nil {
		return CharacterizationResult{Continue: true, CropFactor: 1.0}
	}

	qcDiff, ok := cornerDiff(hull, quad)
	if !ok {
		return CharacterizationResult{Continue: true, CropFactor: 1.0}
	}

	cropFactor := 1.0 - cfg.CropSlope*qcDiff
	if cropFactor > 1.0 {
		cropFactor = 1.0
	}

	quadArea := ShoelaceArea(quad)
	perim := Perimeter(quad)
	minEdge := MinEdgeLength(quad)
	var formFactor float64
	if perim > 0 && minEdge > 0 {
		formFactor = quadArea / (perim * minEdge)
	}

	isCandidate := quadArea > 0.1*maxSegmentArea &&
		quadArea < 0.99*imageArea &&
		qcDiff < cfg.CornerDiffCeiling &&
		formFactor > cfg.FormFactorMin &&
		formFactor < cfg.FormFactorMax

	return CharacterizationResult{
		Continue:     true,
		IsCandidate:  isCandidate,
		BoundingQuad: quad,
		CropFactor:   cropFactor,
	}
}

// cornerDiff measures how poorly hull fills the four corner regions of
// quad. For each quad vertex, it builds a triangular corner region bounded
// by the two adjacent quad edges and a cut line through the interior point
// at 0.9 of the vertex's distance from the quad centroid (0.1 of the way from
// the vertex toward it), orthogonal to the corner-to-center direction. qc_diff is 1 minus the fraction of the summed
// corner-triangle area that the hull actually covers.
func cornerDiff(hull, quad []r2.Point) (float64, bool) {
	n := len(quad)
	if n != 4 {
		return 0, false
	}
	center := Centroid(quad)

	var quadCornerArea, hullCornerArea float64
	for i := 0; i < n; i++ {
		prev := quad[(i-1+n)%n]
		cur := quad[i]
		next := quad[(i+1)%n]

		toCenter := center.Sub(cur)
		cutPoint := center.Add(cur.Sub(center).Mul(0.9))
		normal := r2.Point{X: -toCenter.Y, Y: toCenter.X}
		far := cutPoint.Add(normal)

		triangle := []r2.Point{cur, cutAlongEdge(cur, prev, cutPoint, far), cutPoint, cutAlongEdge(cur, next, cutPoint, far)}
		triangle = ensureCCW(triangle)
		area := ShoelaceArea(triangle)
		quadCornerArea += area

		overlap := IntersectionArea(ensureCCW(hull), triangle)
		hullCornerArea += overlap
	}

	if quadCornerArea <= 0 {
		return 0, false
	}
	diff := 1 - hullCornerArea/quadCornerArea
	if diff < 0 {
		diff = 0
	}
	if diff > 1 {
		diff = 1
	}
	return diff, true
}

// cutAlongEdge intersects the line through (corner, along) with the cut
// line through (cutPoint, far), falling back to a point partway along the
// edge if the geometry is degenerate.
func cutAlongEdge(corner, along, cutPoint, far r2.Point) r2.Point {
	p, ok := LineIntersection(corner, along, cutPoint, far)
	if !ok {
		return corner.Add(along.Sub(corner).Mul(0.1))
	}
	return p
}
