package cardvision

import (
	"image"
	"math"

	"github.com/golang/geo/r2"
)

// PointDistance returns the Euclidean distance between two image points.
func PointDistance(a, b image.Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// PointAngle returns the angle in radians from a to b, in (-pi, pi].
func PointAngle(a, b image.Point) float64 {
	return math.Atan2(float64(b.Y-a.Y), float64(b.X-a.X))
}

// Center returns the bounding-box center of pts, discarding the point
// farthest from the running box center whenever the box's width or height
// exceeds maxDist, until the remaining cluster fits or a single point is
// left. This keeps a handful of outlier points from dragging the estimate
// away from the main cluster.
func Center(pts []image.Point, maxDist float64) image.Point {
	if len(pts) == 0 {
		return image.Point{}
	}
	working := make([]image.Point, len(pts))
	copy(working, pts)

	for {
		box := BoundingBox(working)
		center := image.Point{X: (box.Min.X + box.Max.X) / 2, Y: (box.Min.Y + box.Max.Y) / 2}
		if len(working) == 1 || (float64(box.Dx()) <= maxDist && float64(box.Dy()) <= maxDist) {
			return center
		}
		farIdx, farDist := 0, -1.0
		for i, p := range working {
			d := PointDistance(center, p)
			if d > farDist {
				farDist = d
				farIdx = i
			}
		}
		working = append(working[:farIdx], working[farIdx+1:]...)
	}
}

// BoundingBox returns the smallest axis-aligned rectangle containing pts.
func BoundingBox(pts []image.Point) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	r := image.Rect(pts[0].X, pts[0].Y, pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		if p.X < r.Min.X {
			r.Min.X = p.X
		}
		if p.Y < r.Min.Y {
			r.Min.Y = p.Y
		}
		if p.X > r.Max.X {
			r.Max.X = p.X
		}
		if p.Y > r.Max.Y {
			r.Max.Y = p.Y
		}
	}
	return r
}

// R2PointToImagePoint rounds an r2.Point to the nearest integer image.Point.
func R2PointToImagePoint(p r2.Point) image.Point {
	return image.Point{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

// ImagePointToR2 converts an image.Point to an r2.Point.
func ImagePointToR2(p image.Point) r2.Point {
	return r2.Point{X: float64(p.X), Y: float64(p.Y)}
}

// R2RectToImageRect converts an r2.Rect to an image.Rectangle by rounding
// each bound to the nearest integer; the result need not enclose r.
func R2RectToImageRect(r r2.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X.Lo)),
		int(math.Round(r.Y.Lo)),
		int(math.Round(r.X.Hi)),
		int(math.Round(r.Y.Hi)),
	)
}

// TranslateR2Rect returns r shifted by delta.
func TranslateR2Rect(r r2.Rect, delta r2.Point) r2.Rect {
	return r2.RectFromPoints(
		r2.Point{X: r.X.Lo + delta.X, Y: r.Y.Lo + delta.Y},
		r2.Point{X: r.X.Hi + delta.X, Y: r.Y.Hi + delta.Y},
	)
}
