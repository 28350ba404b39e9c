package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/founderflow/founderflow/internal/api/metrics"
	"github.com/founderflow/founderflow/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes assignment notifications to a fixed set of workers using
// consistent hashing on the recipient id, so a user's notifications are
// delivered in the order their tasks were created.
type Dispatcher struct {
	workers []chan ports.Notification
	service ports.NotificationService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NotificationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Notification, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a notification to the worker responsible for its recipient.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(n ports.Notification) {
	metrics.NotificationsEnqueuedTotal.Inc()
	d.workers[d.shardIndex(n.RecipientID)] <- n
}

// shardIndex maps a recipient id deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipientID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, n); err != nil {
				d.log.Error().Err(err).
					Str("recipient_id", n.RecipientID).
					Str("task_id", n.TaskID).
					Int("worker_id", id).
					Msg("notification delivery failed")
			}
		}
	}
}
