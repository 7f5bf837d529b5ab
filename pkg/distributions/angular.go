package distributions

import (
	"math"

	"github.com/df07/go-event-injector/pkg/core"
)

// AngularDistribution samples unit directions. The set is closed:
// UniformAngular and LowerHalfSphere.
type AngularDistribution interface {
	SampleDirection(sampler core.Sampler) core.Vec3

	isAngular()
}

// UniformAngular is isotropic over the full sphere
type UniformAngular struct{}

func (UniformAngular) isAngular() {}

// SampleDirection draws cosθ ~ U(-1, 1) and φ ~ U(0, 2π)
func (UniformAngular) SampleDirection(sampler core.Sampler) core.Vec3 {
	u := sampler.Get2D()
	return core.FromCosTheta(2*u.X-1, 2*math.Pi*u.Y)
}

// LowerHalfSphere is isotropic over the downward hemisphere only
type LowerHalfSphere struct{}

func (LowerHalfSphere) isAngular() {}

// SampleDirection draws θ = acos(U - 1), so cosθ lies in [-1, 0]
func (LowerHalfSphere) SampleDirection(sampler core.Sampler) core.Vec3 {
	u := sampler.Get2D()
	return core.FromSpherical(math.Acos(u.X-1), 2*math.Pi*u.Y)
}
