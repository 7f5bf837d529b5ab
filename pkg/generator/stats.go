package generator

import (
	"time"

	"github.com/df07/go-event-injector/pkg/particle"
)

// Stats contains statistics about a generation run
type Stats struct {
	Events      int                   // Number of events written
	Particles   int                   // Number of particles across all events
	Batches     int                   // Number of completed batches
	TotalEnergy float64               // Sum of particle energies
	ByType      map[particle.Type]int // Particle count per type
	Duration    time.Duration         // Wall time of the run
}

// Add accounts for one event
func (s *Stats) Add(ev particle.Event) {
	if s.ByType == nil {
		s.ByType = make(map[particle.Type]int)
	}
	s.Events++
	for _, p := range ev.Particles {
		s.Particles++
		s.TotalEnergy += p.Energy
		s.ByType[p.Type]++
	}
}

// Merge folds the counters of other into s
func (s *Stats) Merge(other Stats) {
	if s.ByType == nil {
		s.ByType = make(map[particle.Type]int)
	}
	s.Events += other.Events
	s.Particles += other.Particles
	s.Batches += other.Batches
	s.TotalEnergy += other.TotalEnergy
	for t, n := range other.ByType {
		s.ByType[t] += n
	}
}

// MeanEnergy returns the average particle energy
func (s *Stats) MeanEnergy() float64 {
	if s.Particles == 0 {
		return 0
	}
	return s.TotalEnergy / float64(s.Particles)
}
