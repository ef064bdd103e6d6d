package cardvision

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDownscaleToMaxShrinksOversizedImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2000, 1000))
	out := downscaleToMax(img, 500)
	b := out.Bounds()
	assert.Equal(t, 1000, b.Dx())
	assert.Equal(t, 500, b.Dy())
}

func TestDownscaleToMaxLeavesSmallImageAlone(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))
	out := downscaleToMax(img, 500)
	assert.Equal(t, img.Bounds(), out.Bounds())
}

func TestRotateDegreesSwapsDimensionsAt90(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 30, 10))
	out := rotateDegrees(img, 90)
	b := out.Bounds()
	assert.Equal(t, 10, b.Dx())
	assert.Equal(t, 30, b.Dy())
}

func TestRotateDegreesZeroIsIdentity(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 5, 5))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	out := rotateDegrees(img, 0)
	assert.Equal(t, img, out)
}
