package cardvision

import (
	"image"

	"github.com/golang/geo/r2"
)

// ContourFloat is a sequence of contour vertices in sub-pixel image
// coordinates, the form used once a traced contour feeds into polygon
// simplification and quad fitting.
type ContourFloat []r2.Point

// ContourInt is a sequence of contour vertices at integer pixel precision,
// as produced directly by border following over a binary mask.
type ContourInt []image.Point

// ContourPoint pairs a contour vertex with its position in the parent
// contour, so a subset of vertices (e.g. a farthest pair) can be reported
// without losing where they sit in the original sequence.
type ContourPoint struct {
	Point r2.Point
	Idx   int
}

// Border type constants, the inner/outer classification used by
// border-following contour tracing.
const (
	Hole = iota + 1
	Outer
)

// Border records the type and sequence number of one traced border.
type Border struct {
	borderType int
	seqNum     int
}

// CreateHoleBorder returns a hole-type border with no sequence number set.
func CreateHoleBorder() Border {
	return Border{borderType: Hole}
}

// CreateOuterBorder returns an outer-type border with no sequence number set.
func CreateOuterBorder() Border {
	return Border{borderType: Outer}
}

// Node is one entry of the border hierarchy tree produced by FindContours.
// Indices refer to positions in the hierarchy slice; -1 marks the absence of
// a parent, child, or sibling.
type Node struct {
	parent      int
	firstChild  int
	nextSibling int
	border      Border
}

// reset clears n back to a childless, parentless, unlinked node.
func (n *Node) reset() {
	n.parent = -1
	n.firstChild = -1
	n.nextSibling = -1
}

// PointMat is a pixel coordinate in (row, col) order, matching how mat.Dense
// indexes a binary mask, as opposed to the (x, y) order of image.Point.
type PointMat struct {
	Row, Col int
}

// Set updates p in place.
func (p *PointMat) Set(row, col int) {
	p.Row = row
	p.Col = col
}

// SamePoint reports whether p and q name the same pixel.
func (p *PointMat) SamePoint(q *PointMat) bool {
	return p.Row == q.Row && p.Col == q.Col
}

func isPointOutOfBounds(p *PointMat, nRows, nCols int) bool {
	return p.Row < 0 || p.Row >= nRows || p.Col < 0 || p.Col >= nCols
}

// markExamined records, in checked, which of the 4 axis-aligned neighbors of
// center was visited at mark. checked is indexed right, down, left, up.
func markExamined(mark, center PointMat, checked []bool) {
	dRow := mark.Row - center.Row
	dCol := mark.Col - center.Col
	switch {
	case dRow == 0 && dCol == 1:
		checked[0] = true
	case dRow == 1 && dCol == 0:
		checked[1] = true
	case dRow == 0 && dCol == -1:
		checked[2] = true
	case dRow == -1 && dCol == 0:
		checked[3] = true
	}
}

func isExamined(checked []bool) bool {
	for _, b := range checked {
		if b {
			return true
		}
	}
	return false
}
