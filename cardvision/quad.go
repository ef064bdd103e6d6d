package cardvision

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// ErrNoEnclosingQuad is returned when no 4-edge subset of a simplified
// polygon produces a quad that strictly encloses it.
var ErrNoEnclosingQuad = errors.New("no enclosing quadrilateral found")

// SimplifyPolygon iteratively collapses the shortest edge of poly while it
// has more than 4 vertices and that edge is shorter than
// lengthCutoff*perimeter(poly). Collapsing an edge replaces its two
// endpoints with the intersection of the adjacent edges, extended as lines;
// simplification stops early if those edges are parallel.
func SimplifyPolygon(poly []r2.Point, lengthCutoff float64, maxIter int) []r2.Point {
	working := make([]r2.Point, len(poly))
	copy(working, poly)

	iter := 0
	for len(working) > 4 {
		if maxIter > 0 && iter >= maxIter {
			break
		}
		n := len(working)
		perim := Perimeter(working)
		cutoff := lengthCutoff * perim

		shortIdx := -1
		shortLen := math.Inf(1)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			l := working[i].Sub(working[j]).Norm()
			if l < shortLen {
				shortLen = l
				shortIdx = i
			}
		}
		if shortLen >= cutoff {
			break
		}

		// The edge to collapse is (a=working[shortIdx], b=working[shortIdx+1]);
		// its neighbors are the edge ending at a and the edge starting at b.
		prev := working[(shortIdx-1+n)%n]
		a := working[shortIdx]
		b := working[(shortIdx+1)%n]
		next := working[(shortIdx+2)%n]

		isect, ok := LineIntersection(prev, a, b, next)
		if !ok {
			break
		}

		// Rebuild the ring starting right after b and ending at prev, then
		// append isect: this reproduces the cyclic adjacency prev-isect-next
		// without needing to reason about wraparound insertion indices.
		out := make([]r2.Point, 0, n-1)
		i := (shortIdx + 2) % n
		for count := 0; count < n-2; count++ {
			out = append(out, working[i])
			i = (i + 1) % n
		}
		out = append(out, isect)
		working = out
		iter++
	}
	return working
}

// MinAreaEnclosingQuad enumerates every unordered 4-subset of poly's edges,
// intersects consecutive chosen edges as infinite lines to form a candidate
// quad, rejects candidates that don't strictly enclose a 0.9999-scaled copy
// of poly, and returns the surviving candidate of minimum Shoelace area.
func MinAreaEnclosingQuad(poly []r2.Point) ([]r2.Point, error) {
	n := len(poly)
	if n < 4 {
		return nil, ErrNoEnclosingQuad
	}
	if n == 4 {
		return poly, nil
	}

	shrunk := ScalePolygon(poly, 0.9999)

	var best []r2.Point
	bestArea := math.Inf(1)

	edges := make([][2]r2.Point, n)
	for i := 0; i < n; i++ {
		edges[i] = [2]r2.Point{poly[i], poly[(i+1)%n]}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				for l := k + 1; l < n; l++ {
					idx := [4]int{i, j, k, l}
					quad, ok := quadFromEdges(edges, idx)
					if !ok {
						continue
					}
					if !ContainsPolygon(quad, shrunk) {
						continue
					}
					area := ShoelaceArea(quad)
					if area < bestArea {
						bestArea = area
						best = quad
					}
				}
			}
		}
	}

	if best == nil {
		return nil, ErrNoEnclosingQuad
	}
	return best, nil
}

// quadFromEdges intersects each pair of consecutive chosen edges (as
// infinite lines) to produce the 4 vertices of a candidate quad.
func quadFromEdges(edges [][2]r2.Point, idx [4]int) ([]r2.Point, bool) {
	quad := make([]r2.Point, 4)
	for k := 0; k < 4; k++ {
		e1 := edges[idx[k]]
		e2 := edges[idx[(k+1)%4]]
		p, ok := LineIntersection(e1[0], e1[1], e2[0], e2[1])
		if !ok {
			return nil, false
		}
		quad[k] = p
	}
	return quad, true
}
