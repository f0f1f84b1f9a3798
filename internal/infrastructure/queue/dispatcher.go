package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicnavigator/clinic-portal/internal/api/metrics"
	"github.com/clinicnavigator/clinic-portal/internal/core/domain"
	"github.com/clinicnavigator/clinic-portal/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher writes activities off the request path. Activities are sharded
// by subject id so one user's trail is persisted in order.
type Dispatcher struct {
	workers []chan domain.Activity
	service ports.ActivityService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Activity, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Activity, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or when Close has drained their queue.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record implements ports.ActivityRecorder. It never blocks the caller: when
// the worker queue is full the activity is dropped and logged.
func (d *Dispatcher) Record(a domain.Activity) {
	idx := d.shardIndex(a.SubjectID)
	select {
	case d.workers[idx] <- a:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ActivitiesDroppedTotal.Inc()
		d.log.Warn().
			Str("kind", string(a.Kind)).
			Str("subject_id", a.SubjectID).
			Int("worker_id", idx).
			Msg("activity queue full, dropping activity")
	}
}

// Close stops accepting work and waits for the queues to drain.
func (d *Dispatcher) Close() {
	for _, ch := range d.workers {
		close(ch)
	}
	d.wg.Wait()
}

// shardIndex maps a subject id deterministically to a worker index.
func (d *Dispatcher) shardIndex(subjectID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subjectID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Activity) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case a, ok := <-ch:
			if !ok {
				return
			}
			metrics.ActivityQueueDepth.WithLabelValues(label).Set(float64(len(ch)))

			start := time.Now()
			kind := string(a.Kind)
			if err := d.service.Process(ctx, a); err != nil {
				kind = "error"
				d.log.Error().Err(err).
					Str("kind", string(a.Kind)).
					Str("subject_id", a.SubjectID).
					Int("worker_id", id).
					Msg("activity processing failed")
			}
			metrics.ActivityProcessingDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
		}
	}
}
