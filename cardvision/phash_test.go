package cardvision

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func checkerboardImage(size, cell int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 255})
			} else {
				img.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return img
}

func TestPerceptualHashIdenticalImagesMatch(t *testing.T) {
	img := checkerboardImage(64, 8)
	h1 := PerceptualHash(img, 32)
	h2 := PerceptualHash(img, 32)
	assert.Equal(t, 0, h1.Distance(h2))
}

func TestPerceptualHashDistinctImagesDiffer(t *testing.T) {
	checker := checkerboardImage(64, 8)
	solid := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			solid.SetGray(x, y, color.Gray{Y: 128})
		}
	}

	h1 := PerceptualHash(checker, 32)
	h2 := PerceptualHash(solid, 32)
	assert.Greater(t, h1.Distance(h2), 0)
}

func TestHashGobRoundTrip(t *testing.T) {
	img := checkerboardImage(64, 8)
	h := PerceptualHash(img, 32)

	entries := []ReferenceEntry{{Name: "Test Card", Hash: h}}
	path := t.TempDir() + "/ref.gob"
	assert.NoError(t, SaveReferenceDB(path, entries))

	loaded, err := LoadReferenceDB(path)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(loaded))
	assert.Equal(t, 0, h.Distance(loaded[0].Hash))
	assert.Equal(t, "Test Card", loaded[0].Name)
}
