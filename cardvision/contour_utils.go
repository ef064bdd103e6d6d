package cardvision

import (
	"image"
	"math"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/mat"
)

// neighborOffsets walks the 8-neighborhood clockwise starting from the
// pixel directly to the right, the fixed ordering border following searches
// over.
var neighborOffsets = [8][2]int{
	{0, 1}, {1, 1}, {1, 0}, {1, -1},
	{0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
}

func dirIndexOf(dRow, dCol int) int {
	for k, o := range neighborOffsets {
		if o[0] == dRow && o[1] == dCol {
			return k
		}
	}
	return 0
}

func valueAt(f [][]int, r, c, rows, cols int) int {
	if r < 0 || r >= rows || c < 0 || c >= cols {
		return 0
	}
	return f[r][c]
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// FindContours traces every outer and hole border in a binary mask using
// border-following, returning each contour in pixel coordinates along with
// the containment hierarchy relating them. hierarchy[0] is the virtual frame
// border surrounding the whole image; hierarchy[k+1] describes contours[k].
func FindContours(binary *mat.Dense) ([]ContourFloat, []Node) {
	rows, cols := binary.Dims()
	f := make([][]int, rows)
	for r := 0; r < rows; r++ {
		f[r] = make([]int, cols)
		for c := 0; c < cols; c++ {
			if binary.At(r, c) != 0 {
				f[r][c] = 1
			}
		}
	}

	hierarchy := []Node{{parent: -1, firstChild: -1, nextSibling: -1, border: Border{borderType: Outer, seqNum: 1}}}
	nodeIndex := map[int]int{1: 0}
	var contoursInt [][]image.Point

	nbd := 1
	for i := 0; i < rows; i++ {
		lnbd := 1
		for j := 0; j < cols; j++ {
			fij := f[i][j]
			if fij == 0 {
				continue
			}

			var borderType, i2, j2 int
			isStart := false
			switch {
			case fij == 1 && (j == 0 || f[i][j-1] == 0):
				borderType, i2, j2, isStart = Outer, i, j-1, true
			case fij >= 1 && (j == cols-1 || f[i][j+1] == 0):
				borderType, i2, j2, isStart = Hole, i, j+1, true
				if fij > 1 {
					lnbd = fij
				}
			}

			if !isStart {
				if absInt(fij) != 1 {
					lnbd = absInt(fij)
				}
				continue
			}

			nbd++
			lnbdIdx, ok := nodeIndex[lnbd]
			if !ok {
				lnbdIdx = 0
			}
			var parentIdx int
			if hierarchy[lnbdIdx].border.borderType == borderType {
				parentIdx = hierarchy[lnbdIdx].parent
				if parentIdx < 0 {
					parentIdx = 0
				}
			} else {
				parentIdx = lnbdIdx
			}

			points := traceBorder(f, rows, cols, i, j, i2, j2, nbd)

			node := Node{parent: parentIdx, firstChild: -1, nextSibling: -1, border: Border{borderType: borderType, seqNum: nbd}}
			idx := len(hierarchy)
			if hierarchy[parentIdx].firstChild == -1 {
				hierarchy[parentIdx].firstChild = idx
			} else {
				c := hierarchy[parentIdx].firstChild
				for hierarchy[c].nextSibling != -1 {
					c = hierarchy[c].nextSibling
				}
				hierarchy[c].nextSibling = idx
			}
			hierarchy = append(hierarchy, node)
			nodeIndex[nbd] = idx
			contoursInt = append(contoursInt, points)

			if absInt(f[i][j]) != 1 {
				lnbd = absInt(f[i][j])
			}
		}
	}

	contours := make([]ContourFloat, len(contoursInt))
	for k, pts := range contoursInt {
		cf := make(ContourFloat, len(pts))
		for m, p := range pts {
			cf[m] = r2.Point{X: float64(p.X), Y: float64(p.Y)}
		}
		contours[k] = cf
	}
	return contours, hierarchy
}

// traceBorder follows one border starting at pixel (i,j), given the
// background pixel (i2,j2) whose adjacency triggered the border-start test.
// It marks traced pixels in f with ±nbd, following Suzuki and Abe's
// topological border-following procedure.
func traceBorder(f [][]int, rows, cols, i, j, i2, j2, nbd int) []image.Point {
	startDir := dirIndexOf(i2-i, j2-j)

	i1, j1, found := 0, 0, false
	for k := 1; k <= 8; k++ {
		d := neighborOffsets[(startDir+k)%8]
		ni, nj := i+d[0], j+d[1]
		if valueAt(f, ni, nj, rows, cols) != 0 {
			i1, j1 = ni, nj
			found = true
			break
		}
	}
	if !found {
		f[i][j] = -nbd
		return []image.Point{{X: j, Y: i}}
	}

	rightDirIdx := dirIndexOf(0, 1)
	i2c, j2c := i1, j1
	i3, j3 := i, j
	var out []image.Point
	for {
		fromDir := dirIndexOf(i2c-i3, j2c-j3)
		passedRight := false
		var i4, j4 int
		foundNext := false
		for k := 1; k <= 8; k++ {
			d := neighborOffsets[(fromDir-k+8)%8]
			ni, nj := i3+d[0], j3+d[1]
			if valueAt(f, ni, nj, rows, cols) != 0 {
				i4, j4 = ni, nj
				foundNext = true
				break
			}
			if (fromDir-k+8)%8 == rightDirIdx {
				passedRight = true
			}
		}

		if passedRight {
			f[i3][j3] = -nbd
		} else if f[i3][j3] == 1 {
			f[i3][j3] = nbd
		}
		out = append(out, image.Point{X: j3, Y: i3})

		if !foundNext {
			break
		}
		if i4 == i && j4 == j && i3 == i1 && j3 == j1 {
			break
		}
		i2c, j2c = i3, j3
		i3, j3 = i4, j4
	}
	return out
}

// ApproxContourDP simplifies an open polyline with the Douglas-Peucker
// algorithm: points within epsilon of the chord between the first and last
// points of the current span are dropped, recursing on the farthest point
// otherwise.
func ApproxContourDP(contour []r2.Point, epsilon float64) []r2.Point {
	if len(contour) < 3 {
		out := make([]r2.Point, len(contour))
		copy(out, contour)
		return out
	}

	first, last := contour[0], contour[len(contour)-1]
	maxDist := -1.0
	maxIdx := 0
	for i := 1; i < len(contour)-1; i++ {
		d := perpendicularDistance(contour[i], first, last)
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= epsilon {
		return []r2.Point{first, last}
	}

	left := ApproxContourDP(contour[:maxIdx+1], epsilon)
	right := ApproxContourDP(contour[maxIdx:], epsilon)
	return append(left[:len(left)-1], right...)
}

func perpendicularDistance(p, a, b r2.Point) float64 {
	line := b.Sub(a)
	length := line.Norm()
	if length < 1e-12 {
		return p.Sub(a).Norm()
	}
	cross := line.X*(p.Y-a.Y) - line.Y*(p.X-a.X)
	return math.Abs(cross) / length
}

// GetAreaCoveredByConvexContour returns the shoelace area of a convex
// contour given in (row, col) pixel coordinates.
func GetAreaCoveredByConvexContour(contour []PointMat) float64 {
	n := len(contour)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += float64(contour[i].Row)*float64(contour[j].Col) - float64(contour[j].Row)*float64(contour[i].Col)
	}
	return math.Abs(sum) / 2
}

// ArcLength returns the perimeter of a closed contour given in (row, col)
// pixel coordinates.
func ArcLength(contour []PointMat) float64 {
	n := len(contour)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		dr := float64(contour[j].Row - contour[i].Row)
		dc := float64(contour[j].Col - contour[i].Col)
		total += math.Hypot(dr, dc)
	}
	return total
}

// SortPointsQuad orders exactly 4 points into top-left, top-right,
// bottom-right, bottom-left order using the classic sum/difference rule:
// top-left minimizes x+y, bottom-right maximizes x+y, top-right maximizes
// x-y, bottom-left minimizes x-y.
func SortPointsQuad(pts []r2.Point) []r2.Point {
	if len(pts) != 4 {
		out := make([]r2.Point, len(pts))
		copy(out, pts)
		return out
	}
	out := make([]r2.Point, 4)
	minSum, maxSum := math.Inf(1), math.Inf(-1)
	minDiff, maxDiff := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		sum := p.X + p.Y
		diff := p.X - p.Y
		if sum < minSum {
			minSum = sum
			out[0] = p
		}
		if sum > maxSum {
			maxSum = sum
			out[2] = p
		}
		if diff > maxDiff {
			maxDiff = diff
			out[1] = p
		}
		if diff < minDiff {
			minDiff = diff
			out[3] = p
		}
	}
	return out
}

// SortPointCounterClockwise orders points by ascending angle about their
// centroid, producing a consistent counterclockwise ring.
func SortPointCounterClockwise(pts []r2.Point) []r2.Point {
	return OrderPointsByAngle(pts)
}

// GetPairOfFarthestPointsContour returns the two contour vertices with the
// greatest Euclidean separation, by brute-force search.
func GetPairOfFarthestPointsContour(contour ContourFloat) (ContourPoint, ContourPoint) {
	var best0, best1 ContourPoint
	maxDist := -1.0
	for i := 0; i < len(contour); i++ {
		for j := i + 1; j < len(contour); j++ {
			d := contour[i].Sub(contour[j]).Norm()
			if d > maxDist {
				maxDist = d
				best0 = ContourPoint{Point: contour[i], Idx: i}
				best1 = ContourPoint{Point: contour[j], Idx: j}
			}
		}
	}
	return best0, best1
}

// IsContourClosed reports whether the first and last points of contour lie
// within maxDist of each other.
func IsContourClosed(contour ContourFloat, maxDist float64) bool {
	if len(contour) < 2 {
		return true
	}
	d := contour[0].Sub(contour[len(contour)-1]).Norm()
	return d <= maxDist
}
