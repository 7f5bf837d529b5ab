package generator

import (
	"context"
	"runtime"
	"sync"

	"github.com/df07/go-event-injector/pkg/core"
	"github.com/df07/go-event-injector/pkg/particle"
)

// drawer is the part of an injector the workers need
type drawer interface {
	Draw(sampler core.Sampler) (particle.Event, error)
}

// lockedDrawer serializes draws from a stateful injector
type lockedDrawer struct {
	mu    sync.Mutex
	inner drawer
}

func (l *lockedDrawer) Draw(sampler core.Sampler) (particle.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Draw(sampler)
}

// BatchTask represents a batch of draws for the worker pool
type BatchTask struct {
	BatchID int   // For deterministic ordering
	Count   int   // Number of events to draw
	Seed    int64 // Seed of the batch's own sampler
}

// BatchResult contains the events drawn for one batch
type BatchResult struct {
	BatchID int
	Events  []particle.Event
	Stats   Stats
	Error   error
}

// WorkerPool manages parallel batch generation
type WorkerPool struct {
	taskQueue   chan BatchTask
	resultQueue chan BatchResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker draws the events of individual batches
type Worker struct {
	ID          int
	source      drawer
	taskQueue   chan BatchTask
	resultQueue chan BatchResult
}

// NewWorkerPool creates a worker pool sized for maxBatches queued batches
func NewWorkerPool(source drawer, maxBatches, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan BatchTask, maxBatches),
		resultQueue: make(chan BatchResult, maxBatches),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			source:      source,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a batch to the worker pool
func (wp *WorkerPool) SubmitTask(task BatchTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed batch
func (wp *WorkerPool) GetResult() (BatchResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop. A cancelled context turns every remaining
// batch into an error result so the collector still sees one result per task.
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if err := ctx.Err(); err != nil {
			w.resultQueue <- BatchResult{BatchID: task.BatchID, Error: err}
			continue
		}

		sampler := core.NewSeededSampler(task.Seed)
		result := BatchResult{BatchID: task.BatchID, Events: make([]particle.Event, 0, task.Count)}
		for i := 0; i < task.Count; i++ {
			ev, err := w.source.Draw(sampler)
			if err != nil {
				result.Error = err
				break
			}
			result.Events = append(result.Events, ev)
			result.Stats.Add(ev)
		}
		if result.Error == nil {
			result.Stats.Batches = 1
		}

		w.resultQueue <- result
	}
}
