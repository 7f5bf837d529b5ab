package injector

import (
	"fmt"

	"github.com/df07/go-event-injector/pkg/core"
	"github.com/df07/go-event-injector/pkg/distributions"
	"github.com/df07/go-event-injector/pkg/geometry"
	"github.com/df07/go-event-injector/pkg/particle"
)

// VolumeInjector places single particles uniformly inside a volume with
// independently drawn directions
type VolumeInjector struct {
	volume  geometry.Volume
	dists   Distributions
	angular distributions.AngularDistribution
}

// NewVolumeInjector creates a volume injector
func NewVolumeInjector(volume geometry.Volume, dists Distributions, angular distributions.AngularDistribution) (*VolumeInjector, error) {
	if volume == nil {
		return nil, fmt.Errorf("volume injector needs a volume")
	}
	if angular == nil {
		return nil, fmt.Errorf("angular: %w", ErrMissingDistribution)
	}
	if err := dists.validate(); err != nil {
		return nil, err
	}
	return &VolumeInjector{volume: volume, dists: dists, angular: angular}, nil
}

func (*VolumeInjector) isInjector() {}

// Volume returns the injection volume
func (v *VolumeInjector) Volume() geometry.Volume {
	return v.volume
}

// Draw returns a single-particle event
func (v *VolumeInjector) Draw(sampler core.Sampler) (particle.Event, error) {
	p := v.dists.sampleScalars(sampler)
	p.Position = v.volume.Sample(sampler)
	p.Direction = v.angular.SampleDirection(sampler)
	return particle.NewEvent(p), nil
}
