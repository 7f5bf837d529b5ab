package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-event-injector/pkg/core"
)

var (
	// ErrDegenerateShape is returned when a shape is built with a non-positive dimension.
	ErrDegenerateShape = errors.New("geometry: degenerate shape")
	// ErrNoSurface is returned when a volume has no matching surface variant.
	ErrNoSurface = errors.New("geometry: volume has no surface")
	// ErrInvalidCosRange is returned for cosine ranges outside [-1, 1] or with min > max.
	ErrInvalidCosRange = errors.New("geometry: invalid cosine range")
	// ErrRejectionNotConverged is returned when a rejection loop exhausts its retry budget.
	ErrRejectionNotConverged = errors.New("geometry: rejection sampling did not converge")
)

// Volume is a closed set of 3D solids: Cylinder, Cuboid, Sphere and FixedPoint.
type Volume interface {
	// Contains reports whether p lies strictly inside the volume
	Contains(p core.Vec3) bool
	// Volume returns the exact volume
	Volume() float64
	// Sample returns a point uniformly distributed in the volume
	Sample(sampler core.Sampler) core.Vec3

	isVolume()
}

// Surface is a closed set of 2D boundaries: CylinderSurface and SphereSurface.
type Surface interface {
	// Area returns the total surface area
	Area() float64
	// Sample returns a point uniformly distributed on the surface
	Sample(sampler core.Sampler) core.Vec3
	// Intersect returns the distances along dir at which the ray from pos crosses the surface
	Intersect(pos, dir core.Vec3) Intersection
	// ProjectedArea returns the silhouette area seen along a direction with the given zenith cosine
	ProjectedArea(cosTheta float64) float64
	// MaxProjectedArea returns the largest silhouette area over all directions
	MaxProjectedArea() float64
	// Acceptance integrates 2π·ProjectedArea over [cosMin, cosMax]
	Acceptance(cosMin, cosMax float64) (float64, error)
	// SampleFlux draws an impact point and direction as produced by a uniform flux
	SampleFlux(sampler core.Sampler, cosMin, cosMax float64, opts ...FluxOption) (pos, dir core.Vec3, err error)

	isSurface()
}

// SurfaceOf returns the boundary of a volume
func SurfaceOf(v Volume) (Surface, error) {
	switch vol := v.(type) {
	case Cylinder:
		return vol.Surface(), nil
	case Sphere:
		return vol.Surface(), nil
	case Cuboid, FixedPoint:
		return nil, fmt.Errorf("%T: %w", v, ErrNoSurface)
	default:
		return nil, fmt.Errorf("unsupported volume %T: %w", v, ErrNoSurface)
	}
}

// VolumeOf returns the solid enclosed by a surface
func VolumeOf(s Surface) (Volume, error) {
	switch surf := s.(type) {
	case CylinderSurface:
		return surf.Solid(), nil
	case SphereSurface:
		return surf.Solid(), nil
	default:
		return nil, fmt.Errorf("unsupported surface %T", s)
	}
}

func validateCosRange(cosMin, cosMax float64) error {
	if cosMin < -1 || cosMax > 1 || cosMin > cosMax {
		return fmt.Errorf("[%g, %g]: %w", cosMin, cosMax, ErrInvalidCosRange)
	}
	return nil
}
