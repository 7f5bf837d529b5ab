// Package generator draws events from an injector in parallel batches and
// writes them as JSON lines.
package generator

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/df07/go-event-injector/pkg/core"
	"github.com/df07/go-event-injector/pkg/injector"
)

// Config contains settings for a generation run
type Config struct {
	Seed      int64 // Batch b draws from a sampler seeded with Seed+b
	Events    int   // Total number of events
	BatchSize int   // Events per batch
	Workers   int   // Number of parallel workers
}

// Generator writes events drawn from one injector
type Generator struct {
	source    drawer
	stateless bool
	config    Config
	logger    core.Logger
}

// NewGenerator creates a generator. Stateful injectors are drawn under a lock,
// so their output depends on worker scheduling; stateless injectors produce the
// same stream for any worker count.
func NewGenerator(inj injector.Injector, config Config, logger core.Logger) (*Generator, error) {
	if inj == nil {
		return nil, fmt.Errorf("generator needs an injector")
	}
	if config.Events <= 0 {
		return nil, fmt.Errorf("event count must be positive, got %d", config.Events)
	}
	if config.BatchSize <= 0 {
		config.BatchSize = config.Events
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	g := &Generator{source: inj, stateless: injector.IsStateless(inj), config: config, logger: logger}
	if !g.stateless {
		g.source = &lockedDrawer{inner: inj}
	}
	return g, nil
}

// numBatches returns how many batches cover the requested events
func (g *Generator) numBatches() int {
	return (g.config.Events + g.config.BatchSize - 1) / g.config.BatchSize
}

// Run draws every batch and writes the events to w in batch order.
// Events of batches preceding a failure are still written.
func (g *Generator) Run(ctx context.Context, w io.Writer) (Stats, error) {
	start := time.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	numBatches := g.numBatches()
	pool := NewWorkerPool(g.source, numBatches, g.config.Workers)
	g.logger.Printf("Generating %d events in %d batches (using %d workers)...\n",
		g.config.Events, numBatches, pool.GetNumWorkers())

	pool.Start(ctx)
	defer pool.Stop()

	for batchID := 0; batchID < numBatches; batchID++ {
		count := g.config.BatchSize
		if remaining := g.config.Events - batchID*g.config.BatchSize; remaining < count {
			count = remaining
		}
		pool.SubmitTask(BatchTask{
			BatchID: batchID,
			Count:   count,
			Seed:    g.config.Seed + int64(batchID),
		})
	}

	buf := bufio.NewWriter(w)
	enc := json.NewEncoder(buf)

	var (
		stats   Stats
		failure error
		halted  bool
		next    int
		pending = make(map[int]BatchResult)
	)
	for received := 0; received < numBatches; received++ {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil && failure == nil {
			failure = fmt.Errorf("batch %d: %w", result.BatchID, result.Error)
			cancel()
		}
		pending[result.BatchID] = result

		// Flush batches that are next in order
		for !halted {
			ready, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++

			for _, ev := range ready.Events {
				if err := enc.Encode(ev); err != nil {
					cancel()
					return stats, fmt.Errorf("write event: %w", err)
				}
			}
			stats.Merge(ready.Stats)
			if ready.Error != nil {
				halted = true
			}
		}
	}

	if err := buf.Flush(); err != nil {
		return stats, fmt.Errorf("flush events: %w", err)
	}
	stats.Duration = time.Since(start)

	if failure != nil {
		g.logger.Printf("Generation stopped after %d events: %v\n", stats.Events, failure)
		return stats, failure
	}
	g.logger.Printf("Generated %d events (%d particles, mean energy %.4g) in %v\n",
		stats.Events, stats.Particles, stats.MeanEnergy(), stats.Duration)
	return stats, nil
}
