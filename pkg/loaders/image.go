package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	"image/png"
	"os"

	"github.com/ngrafx/nray/pkg/core"
)

// LoadImage loads a PNG or JPEG file into a floating point raster. With
// linearize set the stored values are squared, undoing the gamma 2 the
// renderer applies on output.
func LoadImage(filename string, linearize bool) (*core.Image, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Format is detected from the file header
	src, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}

	bounds := src.Bounds()
	img := core.NewImage(bounds.Dx(), bounds.Dy())
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b, _ := src.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			c := core.NewVec3(float64(r)/65535.0, float64(g)/65535.0, float64(b)/65535.0)
			if linearize {
				c = c.MultiplyVec(c)
			}
			img.SetPixel(x, y, c)
		}
	}

	logger.Debugf("loaded %s image %s (%dx%d)", format, filename, img.Width, img.Height)
	return img, nil
}

// SavePNG writes img to path as an 8-bit PNG
func SavePNG(path string, img *core.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := png.Encode(file, img.ToRGBA()); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}
