package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/domain"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/core/ports"
	"github.com/Misterious0572/CognifyzInternshipProject/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	defaultBuffer  = 64
	drainTimeout   = 5 * time.Second
)

// ErrQueueFull is returned when the target worker's buffer is saturated.
var ErrQueueFull = errors.New("notification queue full")

// Dispatcher fans reset notifications out to a fixed set of workers, sharded
// by recipient so messages to the same address are delivered in order. It
// implements ports.ResetNotifier by enqueueing; delivery goes to the wrapped
// notifier.
type Dispatcher struct {
	workers  []chan domain.PasswordResetMessage
	delivery ports.ResetNotifier
	log      zerolog.Logger
	wg       sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers, each
// buffering up to buffer messages. Non-positive values fall back to defaults.
func NewDispatcher(numWorkers, buffer int, delivery ports.ResetNotifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	d := &Dispatcher{
		workers:  make([]chan domain.PasswordResetMessage, numWorkers),
		delivery: delivery,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.PasswordResetMessage, buffer)
	}
	return d
}

var _ ports.ResetNotifier = (*Dispatcher)(nil)

// Start launches all worker goroutines. Workers stop when ctx is cancelled,
// delivering messages already buffered, after which Wait returns.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has exited.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// NotifyPasswordReset enqueues msg without blocking. A full queue is reported
// as ErrQueueFull so the caller can decide whether that matters.
func (d *Dispatcher) NotifyPasswordReset(_ context.Context, msg domain.PasswordResetMessage) error {
	idx := d.shardIndex(msg.To)
	select {
	case d.workers[idx] <- msg:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	default:
		metrics.NotificationsTotal.WithLabelValues("dropped").Inc()
		return ErrQueueFull
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.PasswordResetMessage) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			d.drain(ctx, id, ch)
			return
		case msg := <-ch:
			metrics.NotificationQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.deliver(ctx, id, msg)
		}
	}
}

// drain delivers whatever is still buffered once ctx is cancelled, bounded by
// drainTimeout so a stuck notifier cannot hold up shutdown.
func (d *Dispatcher) drain(ctx context.Context, id int, ch <-chan domain.PasswordResetMessage) {
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drainTimeout)
	defer cancel()
	label := strconv.Itoa(id)
	for {
		select {
		case msg := <-ch:
			if dctx.Err() != nil {
				metrics.NotificationsTotal.WithLabelValues("dropped").Inc()
				d.log.Warn().Int("worker_id", id).Msg("notification dropped at shutdown")
				continue
			}
			d.deliver(dctx, id, msg)
		default:
			metrics.NotificationQueueDepth.WithLabelValues(label).Set(0)
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, id int, msg domain.PasswordResetMessage) {
	if err := d.delivery.NotifyPasswordReset(ctx, msg); err != nil {
		metrics.NotificationsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		d.log.Error().Err(err).
			Int("worker_id", id).
			Msg("notification delivery failed")
		return
	}
	metrics.NotificationsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
}
