package injector

import (
	"context"

	"github.com/df07/go-event-injector/pkg/core"
	"github.com/df07/go-event-injector/pkg/geometry"
	"github.com/df07/go-event-injector/pkg/particle"
)

// Leg is one particle of a pre-simulated interaction
type Leg struct {
	Position  core.Vec3
	Direction core.Vec3
	Energy    float64
	Type      particle.Type // only meaningful for the first final-state leg
}

// ReplayRow is one pre-simulated interaction: the incoming particle, two
// final-state particles and the generator's weights
type ReplayRow struct {
	ID         int // 1-based position in the loaded table
	Initial    Leg
	Final1     Leg
	Final2     Leg
	OneWeight  float64
	FluxWeight float64
}

// ReplayTable is a contiguous, row-ordered set of replay records
type ReplayTable []ReplayRow

// ExcludeStartingIn drops rows whose initial position lies inside volume.
// Surviving rows keep their IDs.
func (t ReplayTable) ExcludeStartingIn(volume geometry.Volume) ReplayTable {
	kept := make(ReplayTable, 0, len(t))
	for _, row := range t {
		if volume.Contains(row.Initial.Position) {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}

// ReplayLoader reads a replay table from external storage. Implementations
// concatenate every group in the source and assign IDs 1..N.
type ReplayLoader interface {
	LoadReplayTable(ctx context.Context, source string) (ReplayTable, error)
}

// LoadOptions configures LoadLIInjector
type LoadOptions struct {
	// FilterStartingEvents drops rows whose initial position is inside Exclusion
	FilterStartingEvents bool
	Exclusion            geometry.Volume
	Lookup               particle.Lookup
}
