package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ngrafx/nray/pkg/core"
	"github.com/ngrafx/nray/pkg/geometry"
	"github.com/ngrafx/nray/pkg/lights"
	"github.com/ngrafx/nray/pkg/material"
)

// nanMaterial scatters straight through with a NaN attenuation
type nanMaterial struct{}

func (nanMaterial) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{
		Scattered:   core.NewRayOfKind(hit.Point, rayIn.Direction, core.RayRefract, rayIn.Time),
		Attenuation: core.NewVec3(math.NaN(), 1, 1),
	}, true
}

func newSampler(seed int64) core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// mirrorBox surrounds the origin with a perfect mirror so every path
// reflects until a ceiling stops it
func mirrorBox() core.Primitive {
	return geometry.NewSphere(core.NewVec3(0, 0, 0), 10, material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0))
}

func TestPathTracing_ReflectCeiling(t *testing.T) {
	for _, iterative := range []bool{false, true} {
		config := Config{MaxDiffuseDepth: 50, MaxReflectDepth: 5, MaxRefractDepth: 50, Iterative: iterative}
		pt := NewPathTracing(mirrorBox(), lights.NewUniform(core.NewVec3(1, 1, 1)), config)

		reflects, maxDepth := 0, 0
		pt.Observer = func(ray core.Ray, depth int) {
			if ray.Kind == core.RayReflect {
				reflects++
			}
			maxDepth = max(maxDepth, depth)
		}

		color := pt.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0.3, 0.1, 1)), newSampler(1))

		if reflects != 5 {
			t.Errorf("iterative=%t: expected 5 reflect bounces, got %d", iterative, reflects)
		}
		if maxDepth != 5 {
			t.Errorf("iterative=%t: expected deepest bounce 5, got %d", iterative, maxDepth)
		}
		if color != (core.Vec3{}) {
			t.Errorf("iterative=%t: expected black past the ceiling, got %v", iterative, color)
		}
	}
}

func TestPathTracing_BackgroundAtLimit(t *testing.T) {
	env := lights.NewUniform(core.NewVec3(1, 1, 1))
	root := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	tests := []struct {
		name     string
		useBg    bool
		expected core.Vec3
	}{
		{"black at limit", false, core.Vec3{}},
		{"environment at limit", true, core.NewVec3(0.5, 0.5, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Diffuse ceiling zero: the first diffuse bounce is already past the limit
			pt := NewPathTracing(root, env, Config{MaxReflectDepth: 3, MaxRefractDepth: 3, UseBackgroundAtLimit: tt.useBg})
			if got := pt.RayColor(ray, newSampler(2)); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPathTracing_MissAndEmission(t *testing.T) {
	light := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewEmissive(core.NewVec3(4, 3, 2)))
	config := Config{MaxDiffuseDepth: 4, MaxReflectDepth: 4, MaxRefractDepth: 4}

	withEnv := NewPathTracing(light, lights.NewUniform(core.NewVec3(0.1, 0.2, 0.3)), config)
	if got := withEnv.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), newSampler(3)); got != core.NewVec3(0.1, 0.2, 0.3) {
		t.Errorf("Expected environment on a miss, got %v", got)
	}
	if got := withEnv.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), newSampler(3)); got != core.NewVec3(4, 3, 2) {
		t.Errorf("Expected emission on a light hit, got %v", got)
	}

	noEnv := NewPathTracing(light, nil, config)
	if got := noEnv.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), newSampler(3)); got != (core.Vec3{}) {
		t.Errorf("Expected black without an environment, got %v", got)
	}
}

func TestPathTracing_RespectsRayLimit(t *testing.T) {
	light := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewEmissive(core.NewVec3(1, 1, 1)))
	pt := NewPathTracing(light, nil, Config{})

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	ray.TMax = 1.5
	if got := pt.RayColor(ray, newSampler(4)); got != (core.Vec3{}) {
		t.Errorf("Expected the light beyond TMax to be ignored, got %v", got)
	}
}

func TestPathTracing_NaNReachesCaller(t *testing.T) {
	root := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, nanMaterial{})
	pt := NewPathTracing(root, lights.NewUniform(core.NewVec3(1, 1, 1)), Config{MaxRefractDepth: 4})

	got := pt.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), newSampler(5))
	if !math.IsNaN(got.X) {
		t.Errorf("Expected NaN to flow through the integrator, got %v", got)
	}
}

func TestPathTracing_IterativeMatchesRecursive(t *testing.T) {
	random := rand.New(rand.NewSource(99))
	var prims []core.Primitive
	mats := []core.Material{
		material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)),
		material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 0.2),
		material.NewDielectric(1.5),
		material.NewEmissive(core.NewVec3(3, 3, 3)),
	}
	for i := 0; i < 40; i++ {
		center := core.NewVec3(random.Float64()*8-4, random.Float64()*8-4, random.Float64()*8-4)
		prims = append(prims, geometry.NewSphere(center, 0.3+random.Float64()*0.7, mats[i%len(mats)]))
	}
	root, err := geometry.NewBVH(prims, geometry.BVHOptions{Seed: 1})
	if err != nil {
		t.Fatalf("NewBVH: %v", err)
	}

	env := lights.NewUniform(core.NewVec3(0.5, 0.6, 0.7))
	config := Config{MaxDiffuseDepth: 6, MaxReflectDepth: 8, MaxRefractDepth: 8, UseBackgroundAtLimit: true}
	pt := NewPathTracing(root, env, config)

	nonBlack := 0
	for i := 0; i < 500; i++ {
		dir := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1)
		ray := core.NewRay(core.NewVec3(0, 0, 9), dir)

		recursive := pt.Trace(ray, 0, newSampler(int64(i)))
		iterative := pt.TraceIterative(ray, 0, newSampler(int64(i)))
		if recursive != iterative {
			t.Fatalf("Ray %d: recursive %v, iterative %v", i, recursive, iterative)
		}
		if recursive != (core.Vec3{}) {
			nonBlack++
		}
	}
	if nonBlack == 0 {
		t.Fatal("Every path came back black")
	}
}

func TestNormals(t *testing.T) {
	root := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, nil)
	normals := NewNormals(root)

	got := normals.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), nil)
	if !got.ApproxEqual(core.NewVec3(0.5, 0.5, 1), 1e-12) {
		t.Errorf("Expected (0.5, 0.5, 1), got %v", got)
	}
	if got := normals.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), nil); got != (core.Vec3{}) {
		t.Errorf("Expected black on a miss, got %v", got)
	}
}
