package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-event-injector/pkg/core"
)

// Sphere is a solid ball
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) (Sphere, error) {
	if radius <= 0 {
		return Sphere{}, fmt.Errorf("sphere radius=%g: %w", radius, ErrDegenerateShape)
	}
	return Sphere{Center: center, Radius: radius}, nil
}

func (Sphere) isVolume() {}

// Contains reports whether p is strictly closer to the center than the radius
func (s Sphere) Contains(p core.Vec3) bool {
	return p.Subtract(s.Center).Length() < s.Radius
}

// Volume returns 4/3·πr³
func (s Sphere) Volume() float64 {
	return 4.0 / 3.0 * math.Pi * s.Radius * s.Radius * s.Radius
}

// Sample returns a point uniformly distributed inside the sphere
func (s Sphere) Sample(sampler core.Sampler) core.Vec3 {
	return s.Center.Add(core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(s.Radius))
}

// Surface returns the boundary of the sphere
func (s Sphere) Surface() SphereSurface {
	return SphereSurface(s)
}

// SphereSurface is the boundary of a ball
type SphereSurface struct {
	Center core.Vec3
	Radius float64
}

// NewSphereSurface creates a new sphere surface
func NewSphereSurface(center core.Vec3, radius float64) (SphereSurface, error) {
	sphere, err := NewSphere(center, radius)
	if err != nil {
		return SphereSurface{}, err
	}
	return sphere.Surface(), nil
}

func (SphereSurface) isSurface() {}

// Solid returns the ball enclosed by this surface
func (s SphereSurface) Solid() Sphere {
	return Sphere(s)
}

// Area returns 4πr²
func (s SphereSurface) Area() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}

// Sample returns a point uniformly distributed on the sphere
func (s SphereSurface) Sample(sampler core.Sampler) core.Vec3 {
	return s.Center.Add(core.SampleOnUnitSphere(sampler.Get2D()).Multiply(s.Radius))
}

// Intersect computes where the ray pos + t·dir crosses the sphere
func (s SphereSurface) Intersect(pos, dir core.Vec3) Intersection {
	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	oc := pos.Subtract(s.Center)
	a := dir.Dot(dir)
	if a == 0 {
		return NoIntersection()
	}
	halfB := oc.Dot(dir)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant <= 0 {
		return NoIntersection()
	}

	sqrtD := math.Sqrt(discriminant)
	return NewIntersection((-halfB-sqrtD)/a, (-halfB+sqrtD)/a)
}

// ProjectedArea is πr² from every direction
func (s SphereSurface) ProjectedArea(float64) float64 {
	return math.Pi * s.Radius * s.Radius
}

// MaxProjectedArea is πr²
func (s SphereSurface) MaxProjectedArea() float64 {
	return math.Pi * s.Radius * s.Radius
}

// Acceptance returns 2π·πr²·(cosMax - cosMin)
func (s SphereSurface) Acceptance(cosMin, cosMax float64) (float64, error) {
	if err := validateCosRange(cosMin, cosMax); err != nil {
		return 0, err
	}
	return 2 * math.Pi * s.ProjectedArea(0) * (cosMax - cosMin), nil
}

// SampleFlux draws an impact point and a direction of travel as produced by a
// uniform flux with zenith cosine in [cosMin, cosMax]. The footprint is a disk.
func (s SphereSurface) SampleFlux(sampler core.Sampler, cosMin, cosMax float64, opts ...FluxOption) (core.Vec3, core.Vec3, error) {
	cfg := newFluxConfig(opts)
	if err := validateCosRange(cosMin, cosMax); err != nil {
		return core.Vec3{}, core.Vec3{}, err
	}

	cosTheta, err := sampleFluxCosTheta(sampler, s, cosMin, cosMax, cfg.maxTries)
	if err != nil {
		return core.Vec3{}, core.Vec3{}, err
	}
	phi := 2 * math.Pi * sampler.Get1D()
	theta := math.Acos(cosTheta)
	dir := core.FromCosTheta(cosTheta, phi)

	for i := 0; i < cfg.maxTries; i++ {
		x := core.SampleUniform(-s.Radius, s.Radius, sampler.Get1D())
		y := core.SampleUniform(-s.Radius, s.Radius, sampler.Get1D())
		if x*x+y*y > s.Radius*s.Radius {
			continue
		}

		pos, ok := snapToSurface(s, s.Center, core.NewVec3(y, x, 0), theta, phi, dir)
		if ok {
			return pos, dir, nil
		}
	}
	return core.Vec3{}, core.Vec3{}, fmt.Errorf("sphere footprint after %d tries: %w", cfg.maxTries, ErrRejectionNotConverged)
}
