// Package injector composes geometry and distributions into event generators.
package injector

import (
	"errors"
	"fmt"

	"github.com/df07/go-event-injector/pkg/core"
	"github.com/df07/go-event-injector/pkg/distributions"
	"github.com/df07/go-event-injector/pkg/particle"
)

var (
	// ErrPoolExhausted is returned by LIInjector.Draw once every row has been drawn.
	ErrPoolExhausted = errors.New("injector: replay pool exhausted")
	// ErrMissingExclusionVolume is returned when starting-event filtering is requested without a volume.
	ErrMissingExclusionVolume = errors.New("injector: starting-event filter requires an exclusion volume")
	// ErrEmptyTable is returned when a replay injector is built from a table without rows.
	ErrEmptyTable = errors.New("injector: replay table is empty")
	// ErrMissingDistribution is returned when an injector is built without a required distribution.
	ErrMissingDistribution = errors.New("injector: missing distribution")
)

// Injector draws events. The set is closed: VolumeInjector, SurfaceInjector and LIInjector.
type Injector interface {
	Draw(sampler core.Sampler) (particle.Event, error)

	isInjector()
}

// Distributions bundles the per-particle scalar distributions shared by the
// geometric injectors
type Distributions struct {
	Energy distributions.Distribution
	Type   distributions.TypeDistribution
	Length distributions.Distribution
	Time   distributions.Distribution
}

func (d Distributions) validate() error {
	switch {
	case d.Energy == nil:
		return fmt.Errorf("energy: %w", ErrMissingDistribution)
	case d.Type == nil:
		return fmt.Errorf("type: %w", ErrMissingDistribution)
	case d.Length == nil:
		return fmt.Errorf("length: %w", ErrMissingDistribution)
	case d.Time == nil:
		return fmt.Errorf("time: %w", ErrMissingDistribution)
	}
	return nil
}

// sampleScalars draws energy, type, length and time in that order
func (d Distributions) sampleScalars(sampler core.Sampler) particle.Particle {
	return particle.Particle{
		Energy: d.Energy.Sample(sampler),
		Type:   d.Type.SampleType(sampler),
		Length: d.Length.Sample(sampler),
		Time:   d.Time.Sample(sampler),
	}
}

// IsStateless reports whether concurrent draws on inj are safe
func IsStateless(inj Injector) bool {
	switch inj.(type) {
	case *VolumeInjector, *SurfaceInjector:
		return true
	case *LIInjector:
		return false
	default:
		return false
	}
}
