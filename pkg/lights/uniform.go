package lights

import (
	"github.com/ngrafx/nray/pkg/core"
)

// Uniform is an environment of constant radiance in every direction
type Uniform struct {
	Emission core.Vec3
}

// NewUniform creates a constant environment
func NewUniform(emission core.Vec3) *Uniform {
	return &Uniform{Emission: emission}
}

// Sample returns the same radiance regardless of direction
func (u *Uniform) Sample(ray core.Ray) core.Vec3 {
	return u.Emission
}

// SampleOrBlack returns env's radiance for ray, black when env is nil
func SampleOrBlack(env core.Environment, ray core.Ray) core.Vec3 {
	if env == nil {
		return core.Vec3{}
	}
	return env.Sample(ray)
}
