package recognize

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	_ "image/gif"
	_ "image/jpeg"
)

// binarizeCutoff separates ink from paper after contrast normalization.
const binarizeCutoff = 180

// cropMargin is the padding kept around the detected text block, in pixels.
const cropMargin = 10

// Preprocess applies the given filter to the image at inputPath and writes
// the result to outputPath as PNG.
func Preprocess(filter PreFilter, inputPath, outputPath string) error {
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	gray := toGray(src)
	switch filter {
	case PreMedium:
		normalize(gray)
	case PreStrong:
		normalize(gray)
		threshold(gray, binarizeCutoff)
	case PreStrongV3:
		equalize(gray)
		threshold(gray, binarizeCutoff)
	case PreCrop:
		normalize(gray)
		threshold(gray, binarizeCutoff)
		gray = cropToInk(gray, cropMargin)
	default:
		return fmt.Errorf("unknown pre-processing filter %d", filter)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, gray); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func toGray(src image.Image) *image.Gray {
	b := src.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(src.At(x, y)))
		}
	}
	return gray
}

// normalize linearly stretches pixel intensities to the full 0..255 range.
func normalize(gray *image.Gray) {
	lo, hi := uint8(255), uint8(0)
	for _, p := range gray.Pix {
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}
	if hi <= lo {
		return
	}
	span := int(hi) - int(lo)
	for i, p := range gray.Pix {
		gray.Pix[i] = uint8((int(p) - int(lo)) * 255 / span)
	}
}

// equalize applies global histogram equalization.
func equalize(gray *image.Gray) {
	var hist [256]int
	for _, p := range gray.Pix {
		hist[p]++
	}
	total := len(gray.Pix)
	if total == 0 {
		return
	}
	var lut [256]uint8
	cum := 0
	for i := 0; i < 256; i++ {
		cum += hist[i]
		lut[i] = uint8(cum * 255 / total)
	}
	for i, p := range gray.Pix {
		gray.Pix[i] = lut[p]
	}
}

// threshold binarizes the image: pixels at or above cut become paper white,
// the rest ink black.
func threshold(gray *image.Gray, cut uint8) {
	for i, p := range gray.Pix {
		if p >= cut {
			gray.Pix[i] = 255
		} else {
			gray.Pix[i] = 0
		}
	}
}

// cropToInk returns the sub-image bounding all ink pixels plus a margin.
// An all-white image is returned unchanged.
func cropToInk(gray *image.Gray, margin int) *image.Gray {
	b := gray.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if gray.GrayAt(x, y).Y == 0 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if maxX < minX || maxY < minY {
		return gray
	}

	rect := image.Rect(minX-margin, minY-margin, maxX+margin+1, maxY+margin+1).Intersect(b)
	cropped := image.NewGray(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			cropped.SetGray(x, y, gray.GrayAt(rect.Min.X+x, rect.Min.Y+y))
		}
	}
	return cropped
}
