package particle

import "github.com/df07/go-event-injector/pkg/core"

// Particle is a single injected particle
type Particle struct {
	Position  core.Vec3 `json:"position"`
	Direction core.Vec3 `json:"direction"` // unit length
	Time      float64   `json:"time"`
	Energy    float64   `json:"energy"`
	Length    float64   `json:"length"`
	Type      Type      `json:"type"`
}

// Annotations carries the per-row weights of a replayed interaction
type Annotations struct {
	FluxWeight     float64 `json:"flux_weight"`
	OneWeight      float64 `json:"one_weight"`
	InitialEnergy  float64 `json:"initial_energy"`
	SourceRowIndex int     `json:"source_row_index"`
}

// Event is an ordered list of particles plus optional replay annotations
type Event struct {
	Particles   []Particle   `json:"particles"`
	Annotations *Annotations `json:"annotations,omitempty"`
}

// NewEvent creates an event holding the given particles
func NewEvent(particles ...Particle) Event {
	return Event{Particles: particles}
}
