package cardvision

import (
	"image"

	"github.com/disintegration/imaging"
)

// downscaleToMax proportionally downscales img with area averaging if its
// shortest side exceeds maxDimension; img is returned unchanged otherwise.
func downscaleToMax(img image.Image, maxDimension int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	shortest := w
	if h < shortest {
		shortest = h
	}
	if maxDimension <= 0 || shortest <= maxDimension {
		return img
	}

	scale := float64(maxDimension) / float64(shortest)
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	return imaging.Resize(img, newW, newH, imaging.Box)
}

// rotateDegrees rotates img by one of 0, 90, 180, or 270 degrees
// counterclockwise, the only rotations C7's recognition search uses.
func rotateDegrees(img image.Image, degrees int) image.Image {
	switch degrees % 360 {
	case 90:
		return imaging.Rotate90(img)
	case 180:
		return imaging.Rotate180(img)
	case 270:
		return imaging.Rotate270(img)
	default:
		return img
	}
}
