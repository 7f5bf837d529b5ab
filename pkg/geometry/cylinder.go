package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-event-injector/pkg/core"
)

// Cylinder is a solid upright cylinder aligned with the Z axis
type Cylinder struct {
	Center core.Vec3
	Height float64
	Radius float64
}

// NewCylinder creates a new cylinder
func NewCylinder(center core.Vec3, height, radius float64) (Cylinder, error) {
	if height <= 0 || radius <= 0 {
		return Cylinder{}, fmt.Errorf("cylinder height=%g radius=%g: %w", height, radius, ErrDegenerateShape)
	}
	return Cylinder{Center: center, Height: height, Radius: radius}, nil
}

func (Cylinder) isVolume() {}

// Contains uses exclusive bounds on both the axial and the radial extent
func (c Cylinder) Contains(p core.Vec3) bool {
	rel := p.Subtract(c.Center)
	return math.Abs(rel.Z) < c.Height/2 && rel.X*rel.X+rel.Y*rel.Y < c.Radius*c.Radius
}

// Volume returns πr²h
func (c Cylinder) Volume() float64 {
	return math.Pi * c.Radius * c.Radius * c.Height
}

// Sample returns a point uniformly distributed inside the cylinder
func (c Cylinder) Sample(sampler core.Sampler) core.Vec3 {
	z := core.SampleUniform(-c.Height/2, c.Height/2, sampler.Get1D())
	disk := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.Radius)
	return c.Center.Add(core.NewVec3(disk.X, disk.Y, z))
}

// Surface returns the boundary of the cylinder
func (c Cylinder) Surface() CylinderSurface {
	return CylinderSurface(c)
}

// CylinderSurface is the closed boundary (mantle and both caps) of an upright cylinder
type CylinderSurface struct {
	Center core.Vec3
	Height float64
	Radius float64
}

// NewCylinderSurface creates a new cylinder surface
func NewCylinderSurface(center core.Vec3, height, radius float64) (CylinderSurface, error) {
	cyl, err := NewCylinder(center, height, radius)
	if err != nil {
		return CylinderSurface{}, err
	}
	return cyl.Surface(), nil
}

func (CylinderSurface) isSurface() {}

// Solid returns the cylinder enclosed by this surface
func (c CylinderSurface) Solid() Cylinder {
	return Cylinder(c)
}

func (c CylinderSurface) capArea() float64 {
	return 2 * math.Pi * c.Radius * c.Radius
}

func (c CylinderSurface) mantleArea() float64 {
	return 2 * math.Pi * c.Radius * c.Height
}

// Area returns the area of both caps plus the mantle
func (c CylinderSurface) Area() float64 {
	return c.capArea() + c.mantleArea()
}

// Sample returns a point uniformly distributed over caps and mantle
func (c CylinderSurface) Sample(sampler core.Sampler) core.Vec3 {
	capArea := c.capArea()
	if sampler.Get1D() < capArea/(capArea+c.mantleArea()) {
		z := c.Height / 2
		if sampler.Get1D() < 0.5 {
			z = -z
		}
		disk := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.Radius)
		return c.Center.Add(core.NewVec3(disk.X, disk.Y, z))
	}

	z := core.SampleUniform(-c.Height/2, c.Height/2, sampler.Get1D())
	phi := 2 * math.Pi * sampler.Get1D()
	return c.Center.Add(core.NewVec3(c.Radius*math.Cos(phi), c.Radius*math.Sin(phi), z))
}

// Intersect computes where the ray pos + t·dir crosses the closed cylinder.
// The mantle and endcap slabs are each solved in the zenith/azimuth frame of -dir
// and the hit is their overlap.
func (c CylinderSurface) Intersect(pos, dir core.Vec3) Intersection {
	if dir.LengthSquared() == 0 {
		return NoIntersection()
	}
	back := dir.Negate().Normalize()
	cosTheta := back.Z
	sinTheta := math.Hypot(back.X, back.Y)
	cosPhi, sinPhi := 1.0, 0.0
	if sinTheta != 0 {
		cosPhi, sinPhi = back.X/sinTheta, back.Y/sinTheta
	}

	rel := pos.Subtract(c.Center)
	x, y, z := rel.X, rel.Y, rel.Z
	halfHeight := c.Height / 2

	b := x*cosPhi + y*sinPhi
	dSquared := b*b + c.Radius*c.Radius - x*x - y*y
	if dSquared <= 0 {
		return NoIntersection()
	}
	d := math.Sqrt(dSquared)

	switch {
	case cosTheta == 0:
		// Horizontal ray: only the mantle bounds it
		if math.Abs(z) > halfHeight {
			return NoIntersection()
		}
		return NewIntersection((b-d)/sinTheta, (b+d)/sinTheta)
	case sinTheta == 0:
		// Vertical ray: only the caps bound it
		if x*x+y*y > c.Radius*c.Radius {
			return NoIntersection()
		}
		return NewIntersection((z-halfHeight)/cosTheta, (z+halfHeight)/cosTheta)
	}

	mantle := NewIntersection((b-d)/sinTheta, (b+d)/sinTheta)
	endcap := NewIntersection((z-halfHeight)/cosTheta, (z+halfHeight)/cosTheta)

	entry := math.Max(mantle.entry, endcap.entry)
	exit := math.Min(mantle.exit, endcap.exit)
	if entry >= exit {
		return NoIntersection()
	}
	return NewIntersection(entry, exit)
}

// ProjectedArea is the silhouette area of the cylinder seen at zenith cosine cosTheta:
// the caps contribute πr²|cosθ| and the mantle 2rh·sinθ.
func (c CylinderSurface) ProjectedArea(cosTheta float64) float64 {
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	return math.Pi*c.Radius*c.Radius*math.Abs(cosTheta) + 2*c.Radius*c.Height*sinTheta
}

// MaxProjectedArea evaluates ProjectedArea at θ* = atan(2h/(πr))
func (c CylinderSurface) MaxProjectedArea() float64 {
	thetaMax := math.Atan(2 * c.Height / (math.Pi * c.Radius))
	return c.ProjectedArea(math.Cos(thetaMax))
}

// Acceptance integrates 2π·ProjectedArea(cosθ) over [cosMin, cosMax] in closed form
func (c CylinderSurface) Acceptance(cosMin, cosMax float64) (float64, error) {
	if err := validateCosRange(cosMin, cosMax); err != nil {
		return 0, err
	}
	return c.acceptanceAntiderivative(cosMax) - c.acceptanceAntiderivative(cosMin), nil
}

func (c CylinderSurface) acceptanceAntiderivative(x float64) float64 {
	r, h := c.Radius, c.Height
	caps := math.Pi * math.Pi * r * r * x * math.Abs(x)
	mantle := 2 * math.Pi * r * h * (x*math.Sqrt(math.Max(0, 1-x*x)) + math.Asin(x))
	return caps + mantle
}

// SampleFlux draws an impact point on the cylinder and a direction of travel as they
// would be produced by a uniform flux with zenith cosine in [cosMin, cosMax].
func (c CylinderSurface) SampleFlux(sampler core.Sampler, cosMin, cosMax float64, opts ...FluxOption) (core.Vec3, core.Vec3, error) {
	cfg := newFluxConfig(opts)
	if err := validateCosRange(cosMin, cosMax); err != nil {
		return core.Vec3{}, core.Vec3{}, err
	}

	cosTheta, err := sampleFluxCosTheta(sampler, c, cosMin, cosMax, cfg.maxTries)
	if err != nil {
		return core.Vec3{}, core.Vec3{}, err
	}
	phi := 2 * math.Pi * sampler.Get1D()
	theta := math.Acos(cosTheta)
	dir := core.FromCosTheta(cosTheta, phi)

	// Silhouette: the axis projects to a band of half width a, the caps to ellipses
	// with semi-minor axis b along the same in-plane direction.
	a := math.Sin(theta) * c.Height / 2
	b := math.Abs(cosTheta) * c.Radius

	for i := 0; i < cfg.maxTries; i++ {
		x := core.SampleUniform(-c.Radius, c.Radius, sampler.Get1D())
		y := core.SampleUniform(-(a + b), a+b, sampler.Get1D())
		if math.Abs(y) > a+b*math.Sqrt(math.Max(0, 1-x*x/(c.Radius*c.Radius))) {
			continue
		}

		pos, ok := snapToSurface(c, c.Center, core.NewVec3(y, x, 0), theta, phi, dir)
		if ok {
			return pos, dir, nil
		}
	}
	return core.Vec3{}, core.Vec3{}, fmt.Errorf("cylinder footprint after %d tries: %w", cfg.maxTries, ErrRejectionNotConverged)
}
