package injector

import (
	"fmt"

	"github.com/df07/go-event-injector/pkg/core"
	"github.com/df07/go-event-injector/pkg/geometry"
	"github.com/df07/go-event-injector/pkg/particle"
)

// SurfaceInjector places single particles on a surface with positions and
// directions distributed as an ambient flux crossing it
type SurfaceInjector struct {
	surface geometry.Surface
	dists   Distributions
	cosMin  float64
	cosMax  float64
	opts    []geometry.FluxOption
}

// SurfaceOption configures a SurfaceInjector
type SurfaceOption func(*SurfaceInjector)

// WithCosRange restricts the zenith cosine of injected directions
func WithCosRange(cosMin, cosMax float64) SurfaceOption {
	return func(s *SurfaceInjector) {
		s.cosMin, s.cosMax = cosMin, cosMax
	}
}

// WithFluxOptions forwards options to the flux sampler
func WithFluxOptions(opts ...geometry.FluxOption) SurfaceOption {
	return func(s *SurfaceInjector) {
		s.opts = append(s.opts, opts...)
	}
}

// NewSurfaceInjector creates a surface injector over the full cosine range [-1, 1]
func NewSurfaceInjector(surface geometry.Surface, dists Distributions, opts ...SurfaceOption) (*SurfaceInjector, error) {
	if surface == nil {
		return nil, fmt.Errorf("surface injector needs a surface")
	}
	if err := dists.validate(); err != nil {
		return nil, err
	}

	s := &SurfaceInjector{surface: surface, dists: dists, cosMin: -1, cosMax: 1}
	for _, opt := range opts {
		opt(s)
	}
	if _, err := surface.Acceptance(s.cosMin, s.cosMax); err != nil {
		return nil, err
	}
	return s, nil
}

func (*SurfaceInjector) isInjector() {}

// Surface returns the injection surface
func (s *SurfaceInjector) Surface() geometry.Surface {
	return s.surface
}

// Acceptance returns the flux acceptance of the configured cosine range
func (s *SurfaceInjector) Acceptance() float64 {
	acc, _ := s.surface.Acceptance(s.cosMin, s.cosMax)
	return acc
}

// Draw returns a single-particle event
func (s *SurfaceInjector) Draw(sampler core.Sampler) (particle.Event, error) {
	p := s.dists.sampleScalars(sampler)
	pos, dir, err := s.surface.SampleFlux(sampler, s.cosMin, s.cosMax, s.opts...)
	if err != nil {
		return particle.Event{}, fmt.Errorf("surface injection: %w", err)
	}
	p.Position, p.Direction = pos, dir
	return particle.NewEvent(p), nil
}
