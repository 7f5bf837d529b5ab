// Package distributions holds the samplable energy, length, time, particle-type
// and direction distributions handed to injectors.
package distributions

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-event-injector/pkg/core"
)

var (
	// ErrInvalidParameters is returned for distribution bounds that cannot be sampled.
	ErrInvalidParameters = errors.New("distributions: invalid parameters")
	// ErrInvalidWeights is returned for empty, negative or all-zero categorical weights.
	ErrInvalidWeights = errors.New("distributions: invalid weights")
)

// Distribution samples a scalar such as an energy, a length or a time
type Distribution interface {
	Sample(sampler core.Sampler) float64
}

// Constant always returns Value
type Constant struct {
	Value float64
}

func (c Constant) Sample(core.Sampler) float64 {
	return c.Value
}

// Uniform samples uniformly in [Min, Max)
type Uniform struct {
	Min, Max float64
}

// NewUniform creates a uniform distribution, rejecting Min > Max
func NewUniform(minVal, maxVal float64) (Uniform, error) {
	if minVal > maxVal {
		return Uniform{}, fmt.Errorf("uniform [%g, %g]: %w", minVal, maxVal, ErrInvalidParameters)
	}
	return Uniform{Min: minVal, Max: maxVal}, nil
}

func (u Uniform) Sample(sampler core.Sampler) float64 {
	return core.SampleUniform(u.Min, u.Max, sampler.Get1D())
}

// PowerLaw samples x in [Min, Max] with density proportional to x^-Index
type PowerLaw struct {
	Index    float64
	Min, Max float64
}

// NewPowerLaw creates a power-law distribution over 0 < Min <= Max
func NewPowerLaw(index, minVal, maxVal float64) (PowerLaw, error) {
	if minVal <= 0 || minVal > maxVal {
		return PowerLaw{}, fmt.Errorf("power law [%g, %g]: %w", minVal, maxVal, ErrInvalidParameters)
	}
	return PowerLaw{Index: index, Min: minVal, Max: maxVal}, nil
}

// Sample inverts the CDF; index 1 is the log-uniform limit
func (p PowerLaw) Sample(sampler core.Sampler) float64 {
	u := sampler.Get1D()
	if p.Index == 1 {
		return p.Min * math.Pow(p.Max/p.Min, u)
	}
	g := 1 - p.Index
	lo, hi := math.Pow(p.Min, g), math.Pow(p.Max, g)
	return math.Pow(lo+u*(hi-lo), 1/g)
}

// LogUniform samples uniformly in log(x) over [Min, Max]
type LogUniform struct {
	Min, Max float64
}

// NewLogUniform creates a log-uniform distribution over 0 < Min <= Max
func NewLogUniform(minVal, maxVal float64) (LogUniform, error) {
	if minVal <= 0 || minVal > maxVal {
		return LogUniform{}, fmt.Errorf("log-uniform [%g, %g]: %w", minVal, maxVal, ErrInvalidParameters)
	}
	return LogUniform{Min: minVal, Max: maxVal}, nil
}

func (l LogUniform) Sample(sampler core.Sampler) float64 {
	return PowerLaw{Index: 1, Min: l.Min, Max: l.Max}.Sample(sampler)
}
