package core

import (
	"math"
	"testing"
)

func TestImage_SetPixelIgnoresOutOfRange(t *testing.T) {
	img := NewImage(4, 3)
	c := NewVec3(0.25, 0.5, 0.75)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {100, 100}} {
		img.SetPixel(p[0], p[1], c)
	}
	for i, px := range img.Pixels {
		if px != (Vec3{}) {
			t.Fatalf("Pixel %d modified by out of range write: %v", i, px)
		}
	}

	img.SetPixel(3, 2, c)
	if img.At(3, 2) != c {
		t.Errorf("Expected %v at (3,2), got %v", c, img.At(3, 2))
	}
	if img.At(7, 7) != (Vec3{}) {
		t.Error("Out of range read should be black")
	}
}

func TestImage_SetPixelScrubsNaN(t *testing.T) {
	img := NewImage(1, 1)
	img.SetPixel(0, 0, NewVec3(math.NaN(), 0.5, math.NaN()))

	got := img.At(0, 0)
	if got.HasNaN() {
		t.Fatalf("NaN survived the write: %v", got)
	}
	if got != NewVec3(0, 0.5, 0) {
		t.Errorf("Expected (0, 0.5, 0), got %v", got)
	}
}

func TestImage_ToRGBA(t *testing.T) {
	img := NewImage(2, 1)
	img.SetPixel(0, 0, NewVec3(0.25, 0, 4))
	img.Pixels[1] = NewVec3(math.NaN(), -1, 1)

	rgba := img.ToRGBA()
	p := rgba.RGBAAt(0, 0)
	// sqrt(0.25) = 0.5 -> 128, values above one saturate at 255
	if p.R != 128 || p.G != 0 || p.B != 255 || p.A != 255 {
		t.Errorf("Unexpected pixel %v", p)
	}
	q := rgba.RGBAAt(1, 0)
	if q.R != 0 || q.G != 0 || q.B != 255 {
		t.Errorf("Unexpected pixel %v", q)
	}
}

func TestImage_AverageLuminance(t *testing.T) {
	img := NewImage(2, 2)
	img.SetPixel(0, 0, NewVec3(1, 0, 0))
	img.SetPixel(1, 0, NewVec3(0, 1, 0))
	img.SetPixel(0, 1, NewVec3(0, 0, 1))

	// (0.2126 + 0.7152 + 0.0722 + 0) / 4
	if got := img.AverageLuminance(); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("Expected average luminance 0.25, got %f", got)
	}
	if got := NewImage(0, 0).AverageLuminance(); got != 0 {
		t.Errorf("Expected zero for an empty image, got %f", got)
	}
}
