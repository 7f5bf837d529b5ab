package geometry

import (
	"fmt"

	"github.com/df07/go-event-injector/pkg/core"
)

// DefaultMaxTries bounds every rejection loop of the flux sampler
const DefaultMaxTries = 1_000_000

// FluxOption configures SampleFlux
type FluxOption func(*fluxConfig)

type fluxConfig struct {
	maxTries int
}

// WithMaxTries sets the retry budget of each rejection stage
func WithMaxTries(n int) FluxOption {
	return func(cfg *fluxConfig) {
		if n > 0 {
			cfg.maxTries = n
		}
	}
}

func newFluxConfig(opts []FluxOption) fluxConfig {
	cfg := fluxConfig{maxTries: DefaultMaxTries}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// sampleFluxCosTheta draws a zenith cosine in [cosMin, cosMax] with density
// proportional to the projected area, using the maximum area as a flat envelope.
func sampleFluxCosTheta(sampler core.Sampler, surface Surface, cosMin, cosMax float64, maxTries int) (float64, error) {
	envelope := surface.MaxProjectedArea()
	for i := 0; i < maxTries; i++ {
		cosTheta := cosMin
		if cosMax != cosMin {
			cosTheta = core.SampleUniform(cosMin, cosMax, sampler.Get1D())
		}
		if envelope*sampler.Get1D() <= surface.ProjectedArea(cosTheta) {
			return cosTheta, nil
		}
	}
	return 0, fmt.Errorf("zenith envelope over [%g, %g] after %d tries: %w", cosMin, cosMax, maxTries, ErrRejectionNotConverged)
}

// snapToSurface lifts a footprint point from the plane through center perpendicular
// to dir (polar rotation, then azimuthal rotation) and moves it back along dir onto
// the entry point of the surface.
func snapToSurface(surface Surface, center, footprint core.Vec3, theta, phi float64, dir core.Vec3) (core.Vec3, bool) {
	onPlane := footprint.RotateY(theta).RotateZ(phi).Add(center)
	entry, ok := surface.Intersect(onPlane, dir).Entry()
	if !ok {
		return core.Vec3{}, false
	}
	return onPlane.Add(dir.Multiply(entry)), true
}
