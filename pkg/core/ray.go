package core

import "math"

// RayKind tags a ray with the kind of bounce that produced it. The integrator
// applies a separate depth ceiling per kind.
type RayKind int

const (
	RayPrimary RayKind = iota
	RayDiffuse
	RayReflect
	RayRefract
)

// String returns the lowercase name of the ray kind
func (k RayKind) String() string {
	switch k {
	case RayPrimary:
		return "primary"
	case RayDiffuse:
		return "diffuse"
	case RayReflect:
		return "reflect"
	case RayRefract:
		return "refract"
	default:
		return "unknown"
	}
}

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Kind      RayKind
	Time      float64 // Shutter time the ray was generated at
	TMax      float64 // Maximum travel distance along Direction
}

// NewRay creates a new unbounded primary ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, Kind: RayPrimary, TMax: math.Inf(1)}
}

// NewRayOfKind creates an unbounded ray of the given kind
func NewRayOfKind(origin, direction Vec3, kind RayKind, time float64) Ray {
	return Ray{Origin: origin, Direction: direction, Kind: kind, Time: time, TMax: math.Inf(1)}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Limit returns the ray's distance bound, treating an unset bound as unbounded
func (r Ray) Limit() float64 {
	if r.TMax <= 0 || math.IsNaN(r.TMax) {
		return math.Inf(1)
	}
	return r.TMax
}
