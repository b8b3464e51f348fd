package scene

import (
	"fmt"

	"github.com/ngrafx/nray/pkg/core"
	"github.com/ngrafx/nray/pkg/geometry"
	"github.com/ngrafx/nray/pkg/lights"
	"github.com/ngrafx/nray/pkg/loaders"
	"github.com/ngrafx/nray/pkg/material"
	"github.com/ngrafx/nray/pkg/renderer"
)

// NewSingleSphere is a unit sphere at the origin seen from z = 5
func NewSingleSphere(opts Options) (*Description, error) {
	return &Description{
		Primitives: []core.Primitive{
			geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		},
		Camera: renderer.CameraConfig{
			LookFrom: core.NewVec3(0, 0, 5),
			LookAt:   core.NewVec3(0, 0, 0),
			VUp:      core.NewVec3(0, 1, 0),
			VFov:     40,
		},
		Environment: lights.NewUniform(core.NewVec3(1, 1, 1)),
	}, nil
}

// mirrorBoxMesh is an axis aligned cube from -2 to 2, two triangles per face
func mirrorBoxMesh() (*geometry.TriangleMesh, error) {
	positions := []core.Vec3{
		core.NewVec3(-2, -2, -2), core.NewVec3(2, -2, -2), core.NewVec3(2, 2, -2), core.NewVec3(-2, 2, -2),
		core.NewVec3(-2, -2, 2), core.NewVec3(2, -2, 2), core.NewVec3(2, 2, 2), core.NewVec3(-2, 2, 2),
	}
	indices := []int{
		0, 2, 1, 0, 3, 2, // back
		4, 5, 6, 4, 6, 7, // front
		0, 4, 7, 0, 7, 3, // left
		1, 2, 6, 1, 6, 5, // right
		0, 1, 5, 0, 5, 4, // floor
		3, 7, 6, 3, 6, 2, // ceiling
	}
	return geometry.NewTriangleMesh(positions, nil, indices)
}

// NewMirrorBox closes a diffuse sphere and an emissive implicit sphere inside
// a cube of slightly fuzzy mirrors so paths run into the reflect ceiling
func NewMirrorBox(opts Options) (*Description, error) {
	mesh, err := mirrorBoxMesh()
	if err != nil {
		return nil, err
	}

	primitives := mesh.Triangles(material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.02))
	primitives = append(primitives,
		geometry.NewSphere(core.NewVec3(-0.6, -1.3, 0), 0.7, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.2))),
		geometry.NewSphere(core.NewVec3(0.8, -1.5, 0.6), 0.5, material.NewDielectric(1.5)),
		geometry.NewSDFSphere(core.NewVec3(0, 1.4, 0), 0.4, material.NewEmissive(core.NewVec3(4, 4, 4))),
	)

	return &Description{
		Primitives: primitives,
		Camera: renderer.CameraConfig{
			LookFrom: core.NewVec3(0, 0, 1.9),
			LookAt:   core.NewVec3(0, -0.5, 0),
			VUp:      core.NewVec3(0, 1, 0),
			VFov:     70,
		},
	}, nil
}

// NewMeshScene places the OBJ mesh from opts.MeshPath on a ground sphere and
// frames the camera on its bounding box
func NewMeshScene(opts Options) (*Description, error) {
	if opts.MeshPath == "" {
		return nil, ErrMissingMesh
	}
	mesh, err := loaders.LoadOBJFile(opts.MeshPath)
	if err != nil {
		return nil, err
	}
	if len(mesh.Positions) == 0 {
		return nil, fmt.Errorf("%w: %s has no vertices", loaders.ErrMalformedOBJ, opts.MeshPath)
	}

	bounds := core.NewAABBFromPoints(mesh.Positions...)
	center := bounds.Min.Add(bounds.Max).Multiply(0.5)
	radius := max(bounds.Max.Subtract(center).Length(), 1e-3)

	primitives := mesh.Triangles(material.NewLambertian(core.NewVec3(0.8, 0.8, 0.8)))
	groundRadius := 1000 * radius
	primitives = append(primitives, geometry.NewSphere(
		core.NewVec3(center.X, bounds.Min.Y-groundRadius, center.Z),
		groundRadius,
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)),
	))

	return &Description{
		Primitives: primitives,
		Camera: renderer.CameraConfig{
			LookFrom: center.Add(core.NewVec3(0, 0.6, 2.6).Multiply(radius)),
			LookAt:   center,
			VUp:      core.NewVec3(0, 1, 0),
			VFov:     40,
		},
		Environment: lights.NewUniform(core.NewVec3(0.8, 0.85, 0.9)),
	}, nil
}
