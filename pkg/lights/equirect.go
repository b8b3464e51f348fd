package lights

import (
	"math"

	"github.com/ngrafx/nray/pkg/core"
)

// Equirect is an environment backed by an equirectangular panorama. The top
// row of the image maps to +Y and the horizontal axis sweeps the azimuth.
type Equirect struct {
	Image *core.Image
}

// NewEquirect creates an environment over a loaded panorama
func NewEquirect(image *core.Image) *Equirect {
	return &Equirect{Image: image}
}

// Sample looks up the panorama texel the ray direction points at
func (e *Equirect) Sample(ray core.Ray) core.Vec3 {
	if e.Image == nil || e.Image.Width == 0 || e.Image.Height == 0 {
		return core.Vec3{}
	}

	u, v := DirectionToUV(ray.Direction)
	x := min(int(u*float64(e.Image.Width)), e.Image.Width-1)
	y := min(int(v*float64(e.Image.Height)), e.Image.Height-1)
	return e.Image.At(x, y)
}

// DirectionToUV maps a direction to panorama coordinates in [0, 1]. u follows
// the azimuth around +Y starting at -X, v runs from +Y (0) to -Y (1).
func DirectionToUV(direction core.Vec3) (float64, float64) {
	d := direction.Normalize()
	phi := math.Atan2(d.Z, d.X)
	theta := math.Acos(math.Max(-1, math.Min(1, d.Y)))
	u := 0.5 + phi/(2*math.Pi)
	v := theta / math.Pi
	return u, v
}
