package integrator

import (
	"math"

	"github.com/ngrafx/nray/pkg/core"
	"github.com/ngrafx/nray/pkg/lights"
)

// BounceObserver is notified of every ray traced within its depth ceiling,
// along with the bounce depth it is traced at
type BounceObserver func(ray core.Ray, depth int)

// PathTracing implements unidirectional path tracing without light sampling:
// radiance is gathered only when a path hits an emitter or escapes to the
// environment
type PathTracing struct {
	root   core.Primitive
	env    core.Environment
	config Config

	// Observer, when set, sees every traced ray. It is called from render
	// workers concurrently and must be safe for that.
	Observer BounceObserver
}

// NewPathTracing creates a path tracer over root. env may be nil for a black
// environment.
func NewPathTracing(root core.Primitive, env core.Environment, config Config) *PathTracing {
	return &PathTracing{root: root, env: env, config: config}
}

// RayColor traces a camera ray from depth zero with the configured form
func (pt *PathTracing) RayColor(ray core.Ray, sampler core.Sampler) core.Vec3 {
	if pt.config.Iterative {
		return pt.TraceIterative(ray, 0, sampler)
	}
	return pt.Trace(ray, 0, sampler)
}

// ceiling returns the deepest bounce allowed for rays of kind
func (pt *PathTracing) ceiling(kind core.RayKind) int {
	switch kind {
	case core.RayDiffuse:
		return pt.config.MaxDiffuseDepth
	case core.RayReflect:
		return pt.config.MaxReflectDepth
	case core.RayRefract:
		return pt.config.MaxRefractDepth
	default:
		return math.MaxInt
	}
}

// limitColor is returned for rays past their ceiling
func (pt *PathTracing) limitColor(ray core.Ray) core.Vec3 {
	if pt.config.UseBackgroundAtLimit {
		return lights.SampleOrBlack(pt.env, ray)
	}
	return core.Vec3{}
}

// Trace computes the radiance along ray, which is the depth-th bounce of its path
func (pt *PathTracing) Trace(ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	if depth > pt.ceiling(ray.Kind) {
		return pt.limitColor(ray)
	}
	if pt.Observer != nil {
		pt.Observer(ray, depth)
	}

	hit, isHit := pt.root.Hit(ray, hitEpsilon, ray.Limit())
	if !isHit {
		return lights.SampleOrBlack(pt.env, ray)
	}

	emitted := core.Emitted(hit.Material)
	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return emitted
	}

	return emitted.Add(scatter.Attenuation.MultiplyVec(pt.Trace(scatter.Scattered, depth+1, sampler)))
}

// pathVertex is one scattering event of an iteratively traced path
type pathVertex struct {
	emitted     core.Vec3
	attenuation core.Vec3
}

// TraceIterative computes the same radiance as Trace with a loop instead of
// recursion. Vertices are folded back to front so the arithmetic, and the
// order random numbers are drawn in, match Trace exactly.
func (pt *PathTracing) TraceIterative(ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	var path []pathVertex
	var tail core.Vec3

	for {
		if depth > pt.ceiling(ray.Kind) {
			tail = pt.limitColor(ray)
			break
		}
		if pt.Observer != nil {
			pt.Observer(ray, depth)
		}

		hit, isHit := pt.root.Hit(ray, hitEpsilon, ray.Limit())
		if !isHit {
			tail = lights.SampleOrBlack(pt.env, ray)
			break
		}

		emitted := core.Emitted(hit.Material)
		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			tail = emitted
			break
		}

		path = append(path, pathVertex{emitted: emitted, attenuation: scatter.Attenuation})
		ray = scatter.Scattered
		depth++
	}

	color := tail
	for i := len(path) - 1; i >= 0; i-- {
		color = path[i].emitted.Add(path[i].attenuation.MultiplyVec(color))
	}
	return color
}
