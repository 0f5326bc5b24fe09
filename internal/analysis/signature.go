package analysis

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"math"
	"os"
)

// signatureSize is the side length of the perceptual signature grid. Large
// enough to catch composition changes, small enough to diff thousands of
// frames without cost.
const signatureSize = 48

// signature is a downsampled grayscale rendering of a frame with intensities
// normalized to [0,1]. It exists only for cheap difference scoring during the
// keyframe scan and is discarded afterward.
type signature [signatureSize * signatureSize]float64

// loadSignature decodes a frame image and reduces it to its signature by
// averaging the pixels of each grid cell.
func loadSignature(path string) (signature, error) {
	var sig signature
	file, err := os.Open(path)
	if err != nil {
		return sig, fmt.Errorf("open frame: %w", err)
	}
	defer file.Close()
	decoded, _, err := image.Decode(file)
	if err != nil {
		return sig, fmt.Errorf("decode frame %s: %w", path, err)
	}
	return computeSignature(decoded), nil
}

func computeSignature(img image.Image) signature {
	var sig signature
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return sig
	}
	for cy := 0; cy < signatureSize; cy++ {
		y0 := bounds.Min.Y + cy*height/signatureSize
		y1 := bounds.Min.Y + (cy+1)*height/signatureSize
		if y1 <= y0 {
			y1 = y0 + 1
		}
		for cx := 0; cx < signatureSize; cx++ {
			x0 := bounds.Min.X + cx*width/signatureSize
			x1 := bounds.Min.X + (cx+1)*width/signatureSize
			if x1 <= x0 {
				x1 = x0 + 1
			}
			var total float64
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					r, g, b, _ := img.At(x, y).RGBA()
					// ITU-R BT.601 luma on 16-bit channel values.
					total += (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 65535.0
				}
			}
			sig[cy*signatureSize+cx] = total / float64((y1-y0)*(x1-x0))
		}
	}
	return sig
}

// signatureDiff is the mean absolute intensity difference between two
// signatures, in [0,1].
func signatureDiff(a, b signature) float64 {
	var total float64
	for i := range a {
		total += math.Abs(a[i] - b[i])
	}
	return total / float64(len(a))
}
