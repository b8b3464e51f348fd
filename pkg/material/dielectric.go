package material

import (
	"math"

	"github.com/ngrafx/nray/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	Albedo          core.Vec3 // Tint applied on every bounce, white for clear glass
	RefractiveIndex float64   // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a clear dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return NewTintedDielectric(core.NewVec3(1, 1, 1), refractiveIndex)
}

// NewTintedDielectric creates a dielectric that attenuates by albedo
func NewTintedDielectric(albedo core.Vec3, refractiveIndex float64) *Dielectric {
	return &Dielectric{Albedo: albedo, RefractiveIndex: refractiveIndex}
}

// Scatter reflects on total internal reflection or with the Schlick
// probability, and refracts otherwise
func (d *Dielectric) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	// Entering the material from outside, or leaving it
	refractionRatio := d.RefractiveIndex
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()

	cosTheta := math.Min(-unitDirection.Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))

	cannotRefract := refractionRatio*sinTheta > 1.0

	var scattered core.Ray
	if cannotRefract || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		scattered = scatteredRay(rayIn, hit, Reflect(unitDirection, hit.Normal), core.RayReflect)
	} else {
		scattered = scatteredRay(rayIn, hit, Refract(unitDirection, hit.Normal, refractionRatio), core.RayRefract)
	}

	return core.ScatterResult{
		Scattered:   scattered,
		Attenuation: d.Albedo,
	}, true
}
