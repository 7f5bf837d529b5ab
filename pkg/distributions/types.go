package distributions

import (
	"fmt"
	"sort"

	"github.com/df07/go-event-injector/pkg/core"
	"github.com/df07/go-event-injector/pkg/particle"
)

// TypeDistribution samples a particle type
type TypeDistribution interface {
	SampleType(sampler core.Sampler) particle.Type
}

// FixedType always returns Type
type FixedType struct {
	Type particle.Type
}

func (f FixedType) SampleType(core.Sampler) particle.Type {
	return f.Type
}

// Categorical samples from a finite set of types with fixed weights
type Categorical struct {
	types []particle.Type
	cdf   []float64
}

// NewCategorical normalises weights into a cumulative table
func NewCategorical(types []particle.Type, weights []float64) (*Categorical, error) {
	if len(types) == 0 || len(types) != len(weights) {
		return nil, fmt.Errorf("%d types with %d weights: %w", len(types), len(weights), ErrInvalidWeights)
	}

	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("negative weight %g: %w", w, ErrInvalidWeights)
		}
		total += w
	}
	if total == 0 {
		return nil, fmt.Errorf("weights sum to zero: %w", ErrInvalidWeights)
	}

	cdf := make([]float64, len(weights))
	running := 0.0
	for i, w := range weights {
		running += w / total
		cdf[i] = running
	}
	cdf[len(cdf)-1] = 1

	return &Categorical{
		types: append([]particle.Type(nil), types...),
		cdf:   cdf,
	}, nil
}

// Types returns the support of the distribution
func (c *Categorical) Types() []particle.Type {
	return append([]particle.Type(nil), c.types...)
}

func (c *Categorical) SampleType(sampler core.Sampler) particle.Type {
	u := sampler.Get1D()
	i := sort.SearchFloat64s(c.cdf, u)
	// Zero-weight entries share their cdf value with the previous entry; skip past them
	for i < len(c.cdf)-1 && c.cdf[i] <= u {
		i++
	}
	return c.types[i]
}
