package injector

import (
	"context"
	"fmt"
	"iter"

	"github.com/df07/go-event-injector/pkg/core"
	"github.com/df07/go-event-injector/pkg/particle"
)

// LIInjector replays pre-simulated interactions. Draw consumes rows at random
// without replacement; All walks the table in order without consuming anything.
// Draw is not safe for concurrent use.
type LIInjector struct {
	table  ReplayTable
	pool   *IndexPool
	lookup particle.Lookup
}

// LIOption configures an LIInjector
type LIOption func(*LIInjector)

// WithLookup sets the particle classification used to build events
func WithLookup(lookup particle.Lookup) LIOption {
	return func(li *LIInjector) {
		if lookup != nil {
			li.lookup = lookup
		}
	}
}

// NewLIInjector wraps a loaded replay table
func NewLIInjector(table ReplayTable, opts ...LIOption) (*LIInjector, error) {
	if len(table) == 0 {
		return nil, ErrEmptyTable
	}
	li := &LIInjector{
		table:  append(ReplayTable(nil), table...),
		pool:   NewIndexPool(len(table)),
		lookup: particle.DefaultLookup{},
	}
	for _, opt := range opts {
		opt(li)
	}
	return li, nil
}

// LoadLIInjector loads a replay table through loader and optionally drops rows
// starting inside the exclusion volume
func LoadLIInjector(ctx context.Context, loader ReplayLoader, source string, opts LoadOptions) (*LIInjector, error) {
	if opts.FilterStartingEvents && opts.Exclusion == nil {
		return nil, ErrMissingExclusionVolume
	}

	table, err := loader.LoadReplayTable(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("load replay table %q: %w", source, err)
	}
	if opts.FilterStartingEvents {
		table = table.ExcludeStartingIn(opts.Exclusion)
	}

	li, err := NewLIInjector(table, WithLookup(opts.Lookup))
	if err != nil {
		return nil, fmt.Errorf("replay table %q: %w", source, err)
	}
	return li, nil
}

func (*LIInjector) isInjector() {}

// Len returns the number of rows in the table
func (li *LIInjector) Len() int {
	return len(li.table)
}

// Remaining returns the number of rows Draw can still return
func (li *LIInjector) Remaining() int {
	return li.pool.Len()
}

// Draw picks an unconsumed row uniformly at random, consumes it and returns its event
func (li *LIInjector) Draw(sampler core.Sampler) (particle.Event, error) {
	i, ok := li.pool.Draw(sampler)
	if !ok {
		return particle.Event{}, fmt.Errorf("%d rows drawn: %w", li.pool.Size(), ErrPoolExhausted)
	}
	return li.event(li.table[i]), nil
}

// All yields every row's event in table order keyed by row ID. It ignores and
// never changes which rows Draw has consumed.
func (li *LIInjector) All() iter.Seq2[int, particle.Event] {
	return func(yield func(int, particle.Event) bool) {
		for _, row := range li.table {
			if !yield(row.ID, li.event(row)) {
				return
			}
		}
	}
}

// event turns a replay row into a single visible particle:
// neutral-current-like rows show the hadronic leg, track-like rows the lepton,
// and everything else one cascade carrying both legs' energy.
func (li *LIInjector) event(row ReplayRow) particle.Event {
	var p particle.Particle
	switch {
	case li.lookup.IsNeutrino(row.Final1.Type):
		p = particle.Particle{
			Position:  row.Final2.Position,
			Direction: row.Final2.Direction,
			Energy:    row.Final2.Energy,
			Type:      particle.Hadrons,
		}
	case li.lookup.Shape(row.Final1.Type) == particle.ShapeTrack:
		p = particle.Particle{
			Position:  row.Final1.Position,
			Direction: row.Final1.Direction,
			Energy:    row.Final1.Energy,
			Type:      row.Final1.Type,
		}
	default:
		p = particle.Particle{
			Position:  row.Final1.Position,
			Direction: row.Final1.Direction,
			Energy:    row.Final1.Energy + row.Final2.Energy,
			Type:      particle.Hadrons,
		}
	}

	ev := particle.NewEvent(p)
	ev.Annotations = &particle.Annotations{
		FluxWeight:     row.FluxWeight,
		OneWeight:      row.OneWeight,
		InitialEnergy:  row.Initial.Energy,
		SourceRowIndex: row.ID,
	}
	return ev
}
