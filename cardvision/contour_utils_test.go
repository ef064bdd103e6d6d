package cardvision

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestBorderTypeValues(t *testing.T) {
	assert.Equal(t, Hole, 1)
	assert.Equal(t, Outer, 2)
}

func TestCreateBorders(t *testing.T) {
	hole := CreateHoleBorder()
	assert.Equal(t, hole.borderType, Hole)
	outer := CreateOuterBorder()
	assert.Equal(t, outer.borderType, Outer)
}

func TestPointMat(t *testing.T) {
	p := PointMat{
		Row: 0,
		Col: 0,
	}
	assert.Equal(t, p.Row, 0)
	assert.Equal(t, p.Col, 0)
	p.Set(1, 2)
	assert.Equal(t, p.Row, 1)
	assert.Equal(t, p.Col, 2)
	q := PointMat{
		Row: 1,
		Col: 2,
	}
	assert.True(t, p.SamePoint(&q))
	out := isPointOutOfBounds(&p, 2, 2)
	assert.True(t, out)
	out2 := isPointOutOfBounds(&p, 3, 3)
	assert.False(t, out2)
}

func TestNode(t *testing.T) {
	node := Node{
		parent:      0,
		firstChild:  0,
		nextSibling: 0,
		border:      Border{},
	}
	assert.Equal(t, node.parent, 0)
	assert.Equal(t, node.firstChild, 0)
	assert.Equal(t, node.nextSibling, 0)
	assert.Equal(t, node.border.borderType, 0)
	node.reset()
	assert.Equal(t, node.parent, -1)
	assert.Equal(t, node.firstChild, -1)
	assert.Equal(t, node.nextSibling, -1)
}

func TestMarkAsExamined(t *testing.T) {
	center := PointMat{Row: 1, Col: 1}
	mark0 := PointMat{Row: 1, Col: 2}
	mark1 := PointMat{Row: 2, Col: 1}
	mark2 := PointMat{Row: 1, Col: 0}
	mark3 := PointMat{Row: 0, Col: 1}
	checked := make([]bool, 4)
	assert.False(t, checked[0])
	markExamined(mark0, center, checked)
	assert.True(t, checked[0])
	assert.True(t, isExamined(checked))
	assert.False(t, checked[1])
	markExamined(mark1, center, checked)
	assert.True(t, checked[1])
	assert.False(t, checked[2])
	markExamined(mark2, center, checked)
	assert.True(t, checked[2])
	assert.False(t, checked[3])
	markExamined(mark3, center, checked)
	assert.True(t, checked[3])
}

// TestFindContours traces a 5x5 filled square with a single-pixel hole at
// its center, a fixture small enough to hand-verify: one outer border and
// one hole border nested directly beneath it.
func TestFindContours(t *testing.T) {
	const n = 5
	binary := mat.NewDense(n, n, nil)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			binary.Set(r, c, 1)
		}
	}
	binary.Set(2, 2, 0)

	contours, hierarchy := FindContours(binary)

	assert.Equal(t, 2, len(contours))
	assert.Equal(t, 3, len(hierarchy))
	assert.Equal(t, -1, hierarchy[0].parent)

	var outerIdx, holeIdx = -1, -1
	for i := 1; i < len(hierarchy); i++ {
		switch hierarchy[i].border.borderType {
		case Outer:
			outerIdx = i
		case Hole:
			holeIdx = i
		}
	}
	assert.NotEqual(t, -1, outerIdx)
	assert.NotEqual(t, -1, holeIdx)
	assert.Equal(t, outerIdx, hierarchy[holeIdx].parent)
	assert.True(t, len(contours[outerIdx-1]) > 0)
	assert.True(t, len(contours[holeIdx-1]) > 0)
}

func TestApproxContourDP(t *testing.T) {
	c1 := make([]r2.Point, 3)
	// half a 50x50 square contour
	c1[0] = r2.Point{X: 50, Y: 50}
	c1[1] = r2.Point{X: 100, Y: 50}
	c1[2] = r2.Point{X: 100, Y: 100}

	// small epsilon: c1 and its approximation should be equal
	c1Approx1 := ApproxContourDP(c1, 0.5)
	assert.Equal(t, c1[0], c1Approx1[0])
	assert.Equal(t, c1[1], c1Approx1[1])
	assert.Equal(t, c1[2], c1Approx1[2])
	// epsilon larger than square diagonal: approximation should be equal to diagonal
	c1Approx2 := ApproxContourDP(c1, 71)
	assert.Equal(t, len(c1Approx2), 2)
	assert.Equal(t, c1[0], c1Approx2[0])
	assert.Equal(t, c1[2], c1Approx2[1])
}

func TestGetAreaCoveredByConvexContour(t *testing.T) {
	// create the contour of a square 4x4
	contour := []PointMat{{Row: 0, Col: 0}, {Row: 0, Col: 4}, {Row: 4, Col: 4}, {Row: 4, Col: 0}}
	area := GetAreaCoveredByConvexContour(contour)
	assert.Equal(t, area, 16.)
}

func TestSortPointsQuad(t *testing.T) {
	pts1 := []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	out := SortPointsQuad(pts1)
	assert.Equal(t, out[0], r2.Point{X: 0, Y: 0})
	assert.Equal(t, out[1], r2.Point{X: 1, Y: 0})
	assert.Equal(t, out[2], r2.Point{X: 1, Y: 1})
	assert.Equal(t, out[3], r2.Point{X: 0, Y: 1})

	pts2 := []r2.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 4, Y: 5}, {X: 9, Y: 5}}
	out2 := SortPointsQuad(pts2)
	assert.Equal(t, out2[0], r2.Point{X: 0, Y: 0})
	assert.Equal(t, out2[1], r2.Point{X: 5, Y: 0})
	assert.Equal(t, out2[2], r2.Point{X: 9, Y: 5})
	assert.Equal(t, out2[3], r2.Point{X: 4, Y: 5})
}

func TestArcLength(t *testing.T) {
	// rectangle 10x5 -> perimeter = 2*(10+5) = 30
	contour := []PointMat{{Row: 0, Col: 0}, {Row: 0, Col: 10}, {Row: 5, Col: 10}, {Row: 5, Col: 0}}
	l := ArcLength(contour)
	assert.Equal(t, l, 30.0)
}
