package geometry

import (
	"github.com/ngrafx/nray/pkg/core"
)

// triangleBoxPadding keeps axis-aligned triangles from producing zero-thickness
// boxes, which the slab test rejects.
const triangleBoxPadding = 1e-7

// Triangle is a single face of a shared TriangleMesh
type Triangle struct {
	Mesh     *TriangleMesh
	V        [3]int // Vertex indices into Mesh.Positions
	Material core.Material
}

// NewTriangle creates a triangle referencing three vertices of mesh
func NewTriangle(mesh *TriangleMesh, v [3]int, material core.Material) *Triangle {
	return &Triangle{Mesh: mesh, V: v, Material: material}
}

func (t *Triangle) vertices() (core.Vec3, core.Vec3, core.Vec3) {
	p := t.Mesh.Positions
	return p[t.V[0]], p[t.V[1]], p[t.V[2]]
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	const epsilon = 1e-8

	v0, v1, v2 := t.vertices()
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// If determinant is near zero, ray lies in plane of triangle
	if a > -epsilon && a < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(v0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tHit := f * edge2.Dot(q)
	if tHit <= tMin || tHit >= tMax {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:        tHit,
		Point:    ray.At(tHit),
		Material: t.Material,
	}

	geometric := edge1.Cross(edge2).Normalize()
	hitRecord.SetFaceNormal(ray, geometric)

	if t.Mesh.Normals != nil {
		n := t.Mesh.Normals
		shading := n[t.V[0]].Multiply(1 - u - v).
			Add(n[t.V[1]].Multiply(u)).
			Add(n[t.V[2]].Multiply(v)).
			Normalize()
		if !shading.NearZero() {
			// Keep the shading normal on the same side as the face normal
			if shading.Dot(hitRecord.Normal) < 0 {
				shading = shading.Negate()
			}
			hitRecord.Normal = shading
		}
	}

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	v0, v1, v2 := t.vertices()
	return core.NewAABBFromPoints(v0, v1, v2).Expand(triangleBoxPadding), true
}

// Normal returns the triangle's geometric normal
func (t *Triangle) Normal() core.Vec3 {
	v0, v1, v2 := t.vertices()
	return v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
}
