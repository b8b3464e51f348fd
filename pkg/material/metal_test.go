package material

import (
	"math/rand"
	"testing"

	"github.com/ngrafx/nray/pkg/core"
)

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.8, 0.7)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	tests := []struct {
		name     string
		dir      core.Vec3
		normal   core.Vec3
		expected core.Vec3
	}{
		{"45 degrees", core.NewVec3(0, -1, -1), core.NewVec3(0, 0, 1), core.NewVec3(0, -1, 1).Normalize()},
		{"normal incidence", core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1)},
		{"grazing", core.NewVec3(1, 0, -0.01), core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0.01).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rayIn := core.NewRay(core.NewVec3(0, 1, 1), tt.dir)
			hit := core.HitRecord{Point: core.NewVec3(0, 0, 0), Normal: tt.normal, FrontFace: true}

			scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
			if !didScatter {
				t.Fatal("Expected mirror to scatter")
			}
			if !scatter.Scattered.Direction.ApproxEqual(tt.expected, 1e-12) {
				t.Errorf("Expected direction %v, got %v", tt.expected, scatter.Scattered.Direction)
			}
			if scatter.Scattered.Kind != core.RayReflect {
				t.Errorf("Expected reflect ray, got %v", scatter.Scattered.Kind)
			}
			if scatter.Scattered.Origin != hit.Point {
				t.Errorf("Expected origin at hit point, got %v", scatter.Scattered.Origin)
			}
			if scatter.Attenuation != albedo {
				t.Errorf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
			}
		})
	}
}

func TestMetal_FuzzyStaysWithinCone(t *testing.T) {
	metal := NewMetal(core.NewVec3(1, 1, 1), 0.3)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := core.HitRecord{Normal: core.NewVec3(0, 0, 1), FrontFace: true}
	mirror := Reflect(rayIn.Direction.Normalize(), hit.Normal)

	for i := 0; i < 500; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		offset := scatter.Scattered.Direction.Subtract(mirror).Length()
		if offset > 0.3+1e-12 {
			t.Fatalf("Perturbation %f exceeds fuzz", offset)
		}
		if didScatter != (scatter.Scattered.Direction.Dot(hit.Normal) > 0) {
			t.Fatal("Scatter flag must match the side of the perturbed direction")
		}
	}
}
