package integrator

import (
	"github.com/ngrafx/nray/pkg/core"
)

// hitEpsilon is the minimum hit distance; it keeps scattered rays from
// re-intersecting the surface they leave
const hitEpsilon = 0.001

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance arriving along a camera ray
	RayColor(ray core.Ray, sampler core.Sampler) core.Vec3
}

// Config holds the per-category recursion ceilings and limit behaviour
type Config struct {
	MaxDiffuseDepth      int
	MaxReflectDepth      int
	MaxRefractDepth      int
	UseBackgroundAtLimit bool // Return the environment instead of black past a ceiling
	Iterative            bool // Trace with the loop form instead of recursion
}

// Normals shades every hit with its normal remapped to [0, 1]
type Normals struct {
	root core.Primitive
}

// NewNormals creates a normals-only integrator over root
func NewNormals(root core.Primitive) *Normals {
	return &Normals{root: root}
}

// RayColor returns 0.5*n + 0.5 at the nearest hit and black on a miss
func (n *Normals) RayColor(ray core.Ray, sampler core.Sampler) core.Vec3 {
	hit, isHit := n.root.Hit(ray, hitEpsilon, ray.Limit())
	if !isHit {
		return core.Vec3{}
	}
	return hit.Normal.Multiply(0.5).Add(core.NewVec3(0.5, 0.5, 0.5))
}
