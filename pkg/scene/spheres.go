package scene

import (
	"math/rand"

	"github.com/ngrafx/nray/pkg/core"
	"github.com/ngrafx/nray/pkg/geometry"
	"github.com/ngrafx/nray/pkg/lights"
	"github.com/ngrafx/nray/pkg/material"
	"github.com/ngrafx/nray/pkg/renderer"
)

// NewRandomSpheres lays out a 22x22 grid of jittered small objects around
// three large spheres: glass in the middle, an emissive implicit sphere on
// the left and a mirror on the right
func NewRandomSpheres(opts Options) (*Description, error) {
	random := rand.New(rand.NewSource(opts.Seed))
	randomColor := func(lo, hi float64) core.Vec3 {
		return core.NewVec3(
			lo+(hi-lo)*random.Float64(),
			lo+(hi-lo)*random.Float64(),
			lo+(hi-lo)*random.Float64(),
		)
	}

	primitives := []core.Primitive{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	}

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := randomColor(0, 1).MultiplyVec(randomColor(0, 1))
				diffuse := material.NewLambertian(albedo)
				if random.Float64() < 0.3 {
					primitives = append(primitives, geometry.NewSDFBox(center, core.NewVec3(0.1, 0.35, 0.2), diffuse))
				} else {
					primitives = append(primitives, geometry.NewSphere(center, 0.2, diffuse))
				}
			case chooseMat < 0.95:
				albedo := randomColor(0.5, 1)
				fuzz := 0.5 * random.Float64()
				primitives = append(primitives, geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				primitives = append(primitives, geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	primitives = append(primitives,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
		geometry.NewSDFSphere(core.NewVec3(-4, 1, 0), 1, material.NewEmissive(core.NewVec3(5, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)),
	)

	return &Description{
		Primitives: primitives,
		Camera: renderer.CameraConfig{
			LookFrom:      core.NewVec3(13, 2, 3),
			LookAt:        core.NewVec3(0, 0, 0),
			VUp:           core.NewVec3(0, 1, 0),
			VFov:          20,
			Aperture:      0.1,
			FocusDistance: 10,
		},
		Environment: lights.NewUniform(core.NewVec3(0.6, 0.7, 0.9)),
	}, nil
}
