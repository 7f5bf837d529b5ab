package config

import (
	"context"
	"fmt"

	"github.com/df07/go-event-injector/pkg/distributions"
	"github.com/df07/go-event-injector/pkg/geometry"
	"github.com/df07/go-event-injector/pkg/injector"
	"github.com/df07/go-event-injector/pkg/particle"
)

// Injector kinds
const (
	KindVolume  = "volume"
	KindSurface = "surface"
	KindLI      = "li"
)

// Build constructs the configured injector. loader is only used by LI
// injectors and may be nil otherwise.
func (ic InjectorCfg) Build(ctx context.Context, loader injector.ReplayLoader) (injector.Injector, error) {
	var (
		inj injector.Injector
		err error
	)
	switch ic.Kind {
	case KindVolume:
		inj, err = ic.buildVolume()
	case KindSurface:
		inj, err = ic.buildSurface()
	case KindLI:
		inj, err = ic.buildLI(ctx, loader)
	default:
		return nil, fmt.Errorf("injector %q: %w", ic.Kind, ErrUnknownKind)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s injector: %w", ic.Kind, err)
	}
	return inj, nil
}

func (ic InjectorCfg) buildVolume() (*injector.VolumeInjector, error) {
	volume, err := ic.Shape.BuildVolume()
	if err != nil {
		return nil, err
	}
	dists, err := ic.distributions()
	if err != nil {
		return nil, err
	}
	var angular distributions.AngularDistribution
	switch ic.Angular {
	case "", "uniform":
		angular = distributions.UniformAngular{}
	case "lowerHalfSphere":
		angular = distributions.LowerHalfSphere{}
	default:
		return nil, fmt.Errorf("angular distribution %q: %w", ic.Angular, ErrUnknownKind)
	}
	return injector.NewVolumeInjector(volume, dists, angular)
}

func (ic InjectorCfg) buildSurface() (*injector.SurfaceInjector, error) {
	surface, err := ic.Shape.BuildSurface()
	if err != nil {
		return nil, err
	}
	dists, err := ic.distributions()
	if err != nil {
		return nil, err
	}

	cosMin, cosMax := -1.0, 1.0
	if ic.CosMin != nil {
		cosMin = *ic.CosMin
	}
	if ic.CosMax != nil {
		cosMax = *ic.CosMax
	}
	opts := []injector.SurfaceOption{injector.WithCosRange(cosMin, cosMax)}
	if ic.MaxTries > 0 {
		opts = append(opts, injector.WithFluxOptions(geometry.WithMaxTries(ic.MaxTries)))
	}
	return injector.NewSurfaceInjector(surface, dists, opts...)
}

func (ic InjectorCfg) buildLI(ctx context.Context, loader injector.ReplayLoader) (*injector.LIInjector, error) {
	if loader == nil {
		return nil, fmt.Errorf("li injector needs a replay loader")
	}
	opts := injector.LoadOptions{FilterStartingEvents: ic.Replay.Filter}
	if ic.Shape.Kind != "" {
		exclusion, err := ic.Shape.BuildVolume()
		if err != nil {
			return nil, fmt.Errorf("exclusion volume: %w", err)
		}
		opts.Exclusion = exclusion
	}
	return injector.LoadLIInjector(ctx, loader, ic.Replay.Path, opts)
}

func (ic InjectorCfg) distributions() (injector.Distributions, error) {
	energy, err := ic.Energy.Build()
	if err != nil {
		return injector.Distributions{}, fmt.Errorf("energy: %w", err)
	}
	length, err := ic.Length.buildOrZero()
	if err != nil {
		return injector.Distributions{}, fmt.Errorf("length: %w", err)
	}
	time, err := ic.Time.buildOrZero()
	if err != nil {
		return injector.Distributions{}, fmt.Errorf("time: %w", err)
	}
	types, err := ic.Types.Build()
	if err != nil {
		return injector.Distributions{}, fmt.Errorf("types: %w", err)
	}
	return injector.Distributions{Energy: energy, Type: types, Length: length, Time: time}, nil
}

// BuildVolume constructs the described volume
func (sc ShapeCfg) BuildVolume() (geometry.Volume, error) {
	var (
		volume geometry.Volume
		err    error
	)
	switch sc.Kind {
	case "cylinder":
		volume, err = geometry.NewCylinder(sc.Center, sc.Height, sc.Radius)
	case "sphere":
		volume, err = geometry.NewSphere(sc.Center, sc.Radius)
	case "cuboid":
		volume, err = geometry.NewCuboid(sc.Center, sc.Size.X, sc.Size.Y, sc.Size.Z)
	case "point":
		volume = geometry.NewFixedPoint(sc.Center)
	default:
		return nil, fmt.Errorf("shape %q: %w", sc.Kind, ErrUnknownKind)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sc.Kind, err)
	}
	return volume, nil
}

// BuildSurface constructs the boundary of the described shape
func (sc ShapeCfg) BuildSurface() (geometry.Surface, error) {
	volume, err := sc.BuildVolume()
	if err != nil {
		return nil, err
	}
	return geometry.SurfaceOf(volume)
}

// Build constructs the described distribution
func (dc DistributionCfg) Build() (distributions.Distribution, error) {
	switch dc.Kind {
	case "constant":
		return distributions.Constant{Value: dc.Value}, nil
	case "uniform":
		return distributions.NewUniform(dc.Min, dc.Max)
	case "powerLaw":
		return distributions.NewPowerLaw(dc.Index, dc.Min, dc.Max)
	case "logUniform":
		return distributions.NewLogUniform(dc.Min, dc.Max)
	default:
		return nil, fmt.Errorf("distribution %q: %w", dc.Kind, ErrUnknownKind)
	}
}

// buildOrZero treats a missing distribution as the constant zero
func (dc DistributionCfg) buildOrZero() (distributions.Distribution, error) {
	if dc.Kind == "" {
		return distributions.Constant{}, nil
	}
	return dc.Build()
}

// Build constructs a fixed type for a single name and a categorical
// distribution otherwise. Missing weights mean equal weights.
func (tc TypesCfg) Build() (distributions.TypeDistribution, error) {
	if len(tc.Names) == 0 {
		return nil, fmt.Errorf("no particle types: %w", distributions.ErrInvalidParameters)
	}
	types := make([]particle.Type, len(tc.Names))
	for i, name := range tc.Names {
		t, err := particle.ParseType(name)
		if err != nil {
			return nil, err
		}
		types[i] = t
	}
	if len(types) == 1 && len(tc.Weights) == 0 {
		return distributions.FixedType{Type: types[0]}, nil
	}

	weights := tc.Weights
	if len(weights) == 0 {
		weights = make([]float64, len(types))
		for i := range weights {
			weights[i] = 1
		}
	}
	return distributions.NewCategorical(types, weights)
}
