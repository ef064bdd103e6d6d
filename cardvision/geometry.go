package cardvision

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
)

// OrderPointsByAngle orders points around their centroid by ascending
// atan2(y-ybar, x-xbar). The resulting order is consistently CW or CCW but
// does not distinguish a canonical starting vertex.
func OrderPointsByAngle(pts []r2.Point) []r2.Point {
	if len(pts) == 0 {
		return nil
	}
	c := Centroid(pts)
	out := make([]r2.Point, len(pts))
	copy(out, pts)
	sort.Slice(out, func(i, j int) bool {
		ai := math.Atan2(out[i].Y-c.Y, out[i].X-c.X)
		aj := math.Atan2(out[j].Y-c.Y, out[j].X-c.X)
		return ai < aj
	})
	return out
}

// Centroid returns the mean of the polygon's vertices.
func Centroid(pts []r2.Point) r2.Point {
	var sum r2.Point
	for _, p := range pts {
		sum = sum.Add(p)
	}
	if len(pts) == 0 {
		return r2.Point{}
	}
	return sum.Mul(1.0 / float64(len(pts)))
}

// LineIntersection computes the intersection of the infinite lines through
// (a1,a2) and (b1,b2) using the determinant form. ok is false when the lines
// are parallel (or nearly so, within a small numerical tolerance).
func LineIntersection(a1, a2, b1, b2 r2.Point) (r2.Point, bool) {
	x1, y1, x2, y2 := a1.X, a1.Y, a2.X, a2.Y
	x3, y3, x4, y4 := b1.X, b1.Y, b2.X, b2.Y

	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if math.Abs(denom) < 1e-9 {
		return r2.Point{}, false
	}

	a := x1*y2 - y1*x2
	b := x3*y4 - y3*x4
	px := (a*(x3-x4) - (x1-x2)*b) / denom
	py := (a*(y3-y4) - (y1-y2)*b) / denom
	return r2.Point{X: px, Y: py}, true
}

// ShoelaceArea returns the unsigned area of a simple polygon.
func ShoelaceArea(poly []r2.Point) float64 {
	return math.Abs(SignedArea(poly))
}

// SignedArea returns the signed area of a simple polygon: positive for CCW
// vertex order, negative for CW.
func SignedArea(poly []r2.Point) float64 {
	n := len(poly)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return sum / 2
}

// Perimeter returns the sum of edge lengths of a closed polygon ring.
func Perimeter(poly []r2.Point) float64 {
	n := len(poly)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += poly[i].Sub(poly[j]).Norm()
	}
	return total
}

// MinEdgeLength returns the length of the shortest edge of a closed polygon.
func MinEdgeLength(poly []r2.Point) float64 {
	n := len(poly)
	if n < 2 {
		return 0
	}
	min := math.Inf(1)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		l := poly[i].Sub(poly[j]).Norm()
		if l < min {
			min = l
		}
	}
	return min
}

// PointInPolygon reports whether pt lies inside poly using ray casting.
func PointInPolygon(pt r2.Point, poly []r2.Point) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		pi, pj := poly[i], poly[j]
		if (pi.Y > pt.Y) != (pj.Y > pt.Y) {
			xIntersect := (pj.X-pi.X)*(pt.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if pt.X < xIntersect {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// ContainsPolygon reports whether every vertex of inner lies within outer.
// This is an approximation adequate for convex or near-convex polygons, as
// documented in the design notes: exact containment of one arbitrary simple
// polygon within another is not required anywhere in this pipeline.
func ContainsPolygon(outer, inner []r2.Point) bool {
	for _, p := range inner {
		if !PointInPolygon(p, outer) && !onBoundary(p, outer) {
			return false
		}
	}
	return true
}

func onBoundary(p r2.Point, poly []r2.Point) bool {
	n := len(poly)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a, b := poly[i], poly[j]
		// Cross product near zero and p between a and b.
		cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
		if math.Abs(cross) > 1e-6 {
			continue
		}
		dot := (p.X-a.X)*(b.X-a.X) + (p.Y-a.Y)*(b.Y-a.Y)
		sq := a.Sub(b).Norm2()
		if dot >= 0 && dot <= sq {
			return true
		}
	}
	return false
}

// ScalePolygon returns poly scaled by factor about its centroid.
func ScalePolygon(poly []r2.Point, factor float64) []r2.Point {
	c := Centroid(poly)
	out := make([]r2.Point, len(poly))
	for i, p := range poly {
		out[i] = c.Add(p.Sub(c).Mul(factor))
	}
	return out
}

// ConvexHull returns the convex hull of points in CCW order, computed with
// Andrew's monotone chain algorithm.
func ConvexHull(points []r2.Point) []r2.Point {
	pts := make([]r2.Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	pts = dedupPoints(pts)
	n := len(pts)
	if n < 3 {
		return pts
	}

	cross := func(o, a, b r2.Point) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	lower := make([]r2.Point, 0, n)
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	upper := make([]r2.Point, 0, n)
	for i := n - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	lower = lower[:len(lower)-1]
	upper = upper[:len(upper)-1]
	return append(lower, upper...)
}

func dedupPoints(sorted []r2.Point) []r2.Point {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, p := range sorted[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

// IntersectConvex clips convex polygon subject against convex polygon
// clip using Sutherland-Hodgman. Both polygons must be given in CCW order.
// This is only required to produce a conservative overlap-area estimate
// (see spec §9 design notes); it is not a general polygon clipper.
func IntersectConvex(subject, clip []r2.Point) []r2.Point {
	output := subject
	n := len(clip)
	for i := 0; i < n; i++ {
		if len(output) == 0 {
			return nil
		}
		a := clip[i]
		b := clip[(i+1)%n]
		input := output
		output = nil
		m := len(input)
		for j := 0; j < m; j++ {
			cur := input[j]
			prev := input[(j-1+m)%m]
			curIn := isLeft(a, b, cur)
			prevIn := isLeft(a, b, prev)
			if curIn {
				if !prevIn {
					if ip, ok := LineIntersection(prev, cur, a, b); ok {
						output = append(output, ip)
					}
				}
				output = append(output, cur)
			} else if prevIn {
				if ip, ok := LineIntersection(prev, cur, a, b); ok {
					output = append(output, ip)
				}
			}
		}
	}
	return output
}

func isLeft(a, b, p r2.Point) bool {
	return (b.X-a.X)*(p.Y-a.Y)-(b.Y-a.Y)*(p.X-a.X) >= 0
}

// IntersectionArea returns the area of overlap between two convex polygons,
// each given in either winding order (both are normalized to CCW internally).
func IntersectionArea(a, b []r2.Point) float64 {
	ca := ensureCCW(a)
	cb := ensureCCW(b)
	poly := IntersectConvex(ca, cb)
	if len(poly) < 3 {
		return 0
	}
	return ShoelaceArea(poly)
}

func ensureCCW(poly []r2.Point) []r2.Point {
	if SignedArea(poly) >= 0 {
		return poly
	}
	out := make([]r2.Point, len(poly))
	for i, p := range poly {
		out[len(poly)-1-i] = p
	}
	return out
}
