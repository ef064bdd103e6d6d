package cardvision

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
)

func TestCharacterizeContourAcceptsCardShapedRectangle(t *testing.T) {
	// 63x88, the MTG card aspect ratio, yields form_factor ~0.29.
	rect := []r2.Point{{X: 0, Y: 0}, {X: 63, Y: 0}, {X: 63, Y: 88}, {X: 0, Y: 88}}
	cfg := DefaultConfig()

	result := CharacterizeContour(rect, 0, 1_000_000, cfg)
	assert.True(t, result.Continue)
	assert.True(t, result.IsCandidate)
	assert.InDelta(t, 1.0, result.CropFactor, 0.01)
	assert.InDelta(t, 63*88, ShoelaceArea(result.BoundingQuad), 10)
}

func TestCharacterizeContourRejectsSquare(t *testing.T) {
	// A square's form_factor is exactly 0.25, the rejection floor.
	square := []r2.Point{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 50, Y: 50}, {X: 0, Y: 50}}
	cfg := DefaultConfig()

	result := CharacterizeContour(square, 0, 1_000_000, cfg)
	assert.True(t, result.Continue)
	assert.False(t, result.IsCandidate)
}

func TestCharacterizeContourStopsOnTinyHull(t *testing.T) {
	tiny := []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	cfg := DefaultConfig()

	result := CharacterizeContour(tiny, 0, 1_000_000, cfg)
	assert.False(t, result.Continue)
	assert.False(t, result.IsCandidate)
}
