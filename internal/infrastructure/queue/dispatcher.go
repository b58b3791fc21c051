package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/fintrack/finance-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes budget alert jobs to a fixed set of workers using
// consistent hashing on the owner id, so evaluations for one user never
// run concurrently with each other.
type Dispatcher struct {
	workers   []chan ports.BudgetAlertJob
	evaluator ports.AlertEvaluator
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, evaluator ports.AlertEvaluator, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.BudgetAlertJob, numWorkers),
		evaluator: evaluator,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.BudgetAlertJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a job to the worker responsible for its owner. Non-blocking
// up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job ports.BudgetAlertJob) {
	d.workers[d.shardIndex(job.OwnerID)] <- job
}

// shardIndex maps an owner id deterministically to a worker index.
func (d *Dispatcher) shardIndex(ownerID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ownerID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.BudgetAlertJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			if err := d.evaluator.Evaluate(ctx, job); err != nil {
				d.log.Error().Err(err).
					Str("user_id", job.OwnerID).
					Str("category", job.Category).
					Int("worker_id", id).
					Msg("budget alert evaluation failed")
			}
		}
	}
}
