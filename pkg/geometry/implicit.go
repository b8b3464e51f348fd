package geometry

import (
	"math"

	"github.com/ngrafx/nray/pkg/core"
)

const (
	// maxMarchSteps bounds the sphere tracing loop
	maxMarchSteps = 512
	// marchEpsilon is single precision machine epsilon halved; a march has
	// converged once the distance drops below marchEpsilon times the distance travelled
	marchEpsilon = 0x1p-24
	// gradientDelta is the central difference step used to estimate normals
	gradientDelta = 1e-4
)

// SDF is a surface described by a signed distance function. Implementations
// must report an exact bounding box and the material the surface is shaded with.
type SDF interface {
	Distance(p core.Vec3) float64
	BoundingBox() core.AABB
	Material() core.Material
}

// Implicit ray-marches an SDF surface with sphere tracing
type Implicit struct {
	Shape SDF
}

// NewImplicit wraps an SDF shape into a primitive
func NewImplicit(shape SDF) *Implicit {
	return &Implicit{Shape: shape}
}

// Hit sphere-traces the ray through the distance field. Steps use the absolute
// distance so rays that start inside the surface (refraction) march to the exit.
func (im *Implicit) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	dirLength := ray.Direction.Length()
	if dirLength == 0 {
		return nil, false
	}

	t := tMin
	for i := 0; i < maxMarchSteps; i++ {
		h := math.Abs(im.Shape.Distance(ray.At(t)))
		if h < marchEpsilon*t*dirLength {
			if t <= tMin {
				return nil, false
			}
			return im.hitRecord(ray, t), true
		}
		t += h / dirLength
		if t >= tMax {
			return nil, false
		}
	}
	return nil, false
}

func (im *Implicit) hitRecord(ray core.Ray, t float64) *core.HitRecord {
	rec := &core.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Material: im.Shape.Material(),
	}
	rec.SetFaceNormal(ray, EstimateNormal(im.Shape, rec.Point))
	return rec
}

// BoundingBox returns the shape's exact box
func (im *Implicit) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return im.Shape.BoundingBox(), true
}

// EstimateNormal returns the normalized gradient of the distance field at p,
// estimated with central differences along each axis
func EstimateNormal(shape SDF, p core.Vec3) core.Vec3 {
	dx := core.NewVec3(gradientDelta, 0, 0)
	dy := core.NewVec3(0, gradientDelta, 0)
	dz := core.NewVec3(0, 0, gradientDelta)
	return core.NewVec3(
		shape.Distance(p.Add(dx))-shape.Distance(p.Subtract(dx)),
		shape.Distance(p.Add(dy))-shape.Distance(p.Subtract(dy)),
		shape.Distance(p.Add(dz))-shape.Distance(p.Subtract(dz)),
	).Normalize()
}

// SDFSphere is the distance field of a sphere
type SDFSphere struct {
	Center core.Vec3
	Radius float64
	Mat    core.Material
}

// NewSDFSphere creates an implicit sphere primitive
func NewSDFSphere(center core.Vec3, radius float64, material core.Material) *Implicit {
	return NewImplicit(&SDFSphere{Center: center, Radius: radius, Mat: material})
}

func (s *SDFSphere) Distance(p core.Vec3) float64 {
	return p.Subtract(s.Center).Length() - s.Radius
}

func (s *SDFSphere) BoundingBox() core.AABB {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}

func (s *SDFSphere) Material() core.Material { return s.Mat }

// SDFPlane is a horizontal plane at a fixed height, facing +Y
type SDFPlane struct {
	Height float64
	Mat    core.Material
}

// NewSDFPlane creates an implicit ground plane primitive
func NewSDFPlane(height float64, material core.Material) *Implicit {
	return NewImplicit(&SDFPlane{Height: height, Mat: material})
}

func (s *SDFPlane) Distance(p core.Vec3) float64 {
	return p.Y - s.Height
}

func (s *SDFPlane) BoundingBox() core.AABB {
	inf := math.Inf(1)
	return core.NewAABB(
		core.NewVec3(-inf, s.Height-gradientDelta, -inf),
		core.NewVec3(inf, s.Height+gradientDelta, inf),
	)
}

func (s *SDFPlane) Material() core.Material { return s.Mat }

// SDFBox is an axis-aligned box given by its center and half extents
type SDFBox struct {
	Center      core.Vec3
	HalfExtents core.Vec3
	Mat         core.Material
}

// NewSDFBox creates an implicit box primitive
func NewSDFBox(center, halfExtents core.Vec3, material core.Material) *Implicit {
	return NewImplicit(&SDFBox{Center: center, HalfExtents: halfExtents, Mat: material})
}

func (s *SDFBox) Distance(p core.Vec3) float64 {
	local := p.Subtract(s.Center)
	q := core.NewVec3(
		math.Abs(local.X)-s.HalfExtents.X,
		math.Abs(local.Y)-s.HalfExtents.Y,
		math.Abs(local.Z)-s.HalfExtents.Z,
	)
	outside := core.NewVec3(math.Max(q.X, 0), math.Max(q.Y, 0), math.Max(q.Z, 0)).Length()
	inside := math.Min(math.Max(q.X, math.Max(q.Y, q.Z)), 0)
	return outside + inside
}

func (s *SDFBox) BoundingBox() core.AABB {
	return core.NewAABB(s.Center.Subtract(s.HalfExtents), s.Center.Add(s.HalfExtents))
}

func (s *SDFBox) Material() core.Material { return s.Mat }
