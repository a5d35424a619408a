package queue

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gnanalytica/website/internal/core/domain"
	"github.com/gnanalytica/website/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	recordTimeout  = 5 * time.Second
)

// Observer is notified when an audit event is dropped or fails to persist.
type Observer interface {
	AuditDropped()
	AuditFailed()
}

type noopObserver struct{}

func (noopObserver) AuditDropped() {}
func (noopObserver) AuditFailed()  {}

// Dispatcher moves sign-in audit events off the request path. Events are
// sharded by email across a fixed set of workers, so attempts against one
// account are persisted in the order they happened.
type Dispatcher struct {
	workers []chan domain.SignInEvent
	store   ports.AuditLog
	obs     Observer
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used. obs may be nil.
func NewDispatcher(numWorkers int, store ports.AuditLog, obs Observer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if obs == nil {
		obs = noopObserver{}
	}
	d := &Dispatcher{
		workers: make([]chan domain.SignInEvent, numWorkers),
		store:   store,
		obs:     obs,
		log:     log.With().Str("component", "audit_dispatcher").Logger(),
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.SignInEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. ctx only supplies values to the
// store calls: workers exit once Stop has closed and drained their queues,
// so events accepted before shutdown are still recorded.
func (d *Dispatcher) Start(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an event to the worker responsible for its email. It never
// blocks: when the shard is full or the dispatcher is stopped the event is
// dropped and counted.
func (d *Dispatcher) Enqueue(event domain.SignInEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.obs.AuditDropped()
		return
	}
	select {
	case d.workers[d.shardIndex(event.Email)] <- event:
	default:
		d.obs.AuditDropped()
		d.log.Warn().Str("email", event.Email).Msg("audit queue full, event dropped")
	}
}

// Stop closes the queues and waits for workers to drain them or for ctx to
// expire, whichever comes first.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps an email deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.SignInEvent) {
	defer d.wg.Done()
	for event := range ch {
		d.record(ctx, id, event)
	}
}

func (d *Dispatcher) record(ctx context.Context, id int, event domain.SignInEvent) {
	ctx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()
	if err := d.store.RecordSignIn(ctx, event); err != nil {
		d.obs.AuditFailed()
		d.log.Error().Err(err).
			Str("email", event.Email).
			Int("worker_id", id).
			Msg("audit record failed")
	}
}
