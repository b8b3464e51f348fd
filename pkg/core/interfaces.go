package core

// Primitive is anything a ray can be intersected with. A returned hit always
// satisfies tMin < hit.T < tMax.
type Primitive interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
	// BoundingBox reports the box enclosing the primitive over the shutter
	// interval [t0, t1]; false when the primitive has none (an empty list).
	BoundingBox(t0, t1 float64) (AABB, bool)
}

// Material interface for objects that can scatter rays
type Material interface {
	Scatter(rayIn Ray, hit HitRecord, sampler Sampler) (ScatterResult, bool)
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emit() Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The scattered ray, tagged with its bounce kind
	Attenuation Vec3 // Color attenuation
}

// Emitted returns the radiance emitted by m, zero for non-emitters
func Emitted(m Material) Vec3 {
	if emitter, ok := m.(Emitter); ok {
		return emitter.Emit()
	}
	return Vec3{}
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Surface normal, always facing against the ray
	T         float64  // Parameter t along the ray
	FrontFace bool     // Whether ray hit the front face
	Material  Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// Camera generates primary rays for normalized screen coordinates (s, t),
// with s growing to the right and t growing upwards.
type Camera interface {
	GetRay(s, t float64, sampler Sampler) Ray
}

// Environment provides the radiance seen along rays that escape the scene
type Environment interface {
	Sample(ray Ray) Vec3
}
