package core

import (
	"image"
	"image/color"
	"math"
)

// Image is a linear floating point RGB raster. Pixels are stored row-major
// with (0, 0) at the top-left corner.
type Image struct {
	Width  int
	Height int
	Pixels []Vec3
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]Vec3, width*height),
	}
}

// InBounds reports whether (x, y) addresses a pixel of the image
func (img *Image) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < img.Width && y < img.Height
}

// SetPixel stores c at (x, y). Out of range coordinates are ignored and NaN
// channels are written as zero.
func (img *Image) SetPixel(x, y int, c Vec3) {
	if !img.InBounds(x, y) {
		return
	}
	img.Pixels[y*img.Width+x] = Vec3{X: scrubNaN(c.X), Y: scrubNaN(c.Y), Z: scrubNaN(c.Z)}
}

// At returns the pixel at (x, y), black when out of range
func (img *Image) At(x, y int) Vec3 {
	if !img.InBounds(x, y) {
		return Vec3{}
	}
	return img.Pixels[y*img.Width+x]
}

// AverageLuminance returns the mean linear luminance over all pixels
func (img *Image) AverageLuminance() float64 {
	if len(img.Pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range img.Pixels {
		total += p.Luminance()
	}
	return total / float64(len(img.Pixels))
}

// ToRGBA converts the raster to 8-bit sRGB-ish output using a gamma of 2
func (img *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.Pixels[y*img.Width+x]
			out.SetRGBA(x, y, color.RGBA{
				R: toByte(c.X),
				G: toByte(c.Y),
				B: toByte(c.Z),
				A: 255,
			})
		}
	}
	return out
}

func toByte(v float64) uint8 {
	v = math.Sqrt(math.Max(0, scrubNaN(v)))
	return uint8(256 * math.Min(v, 0.999))
}

func scrubNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
