package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gnanalytica/website/internal/core/domain"
)

type recordingStore struct {
	mu     sync.Mutex
	events []domain.SignInEvent
	err    error
	block  chan struct{}
}

func (s *recordingStore) RecordSignIn(_ context.Context, e domain.SignInEvent) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return s.err
}

func (s *recordingStore) snapshot() []domain.SignInEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.SignInEvent(nil), s.events...)
}

type countingObserver struct {
	dropped atomic.Int64
	failed  atomic.Int64
}

func (o *countingObserver) AuditDropped() { o.dropped.Add(1) }
func (o *countingObserver) AuditFailed()  { o.failed.Add(1) }

func TestDispatcher_DrainsOnStop(t *testing.T) {
	store := &recordingStore{}
	d := NewDispatcher(3, store, nil, zerolog.Nop())
	d.Start(context.Background())

	for i := 0; i < 30; i++ {
		d.Enqueue(domain.SignInEvent{Email: fmt.Sprintf("user%d@example.com", i%5)})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if got := len(store.snapshot()); got != 30 {
		t.Fatalf("expected 30 recorded events, got %d", got)
	}
}

func TestDispatcher_DrainsAfterStartContextCancelled(t *testing.T) {
	store := &recordingStore{block: make(chan struct{})}
	d := NewDispatcher(1, store, nil, zerolog.Nop())

	runCtx, stopRun := context.WithCancel(context.Background())
	d.Start(runCtx)
	for i := 0; i < 20; i++ {
		d.Enqueue(domain.SignInEvent{Email: "client@igvpl.com"})
	}
	// Signal handling cancels the run context while the worker is busy and
	// before the queue is stopped.
	stopRun()
	close(store.block)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := d.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if got := len(store.snapshot()); got != 20 {
		t.Fatalf("expected 20 recorded events after shutdown, got %d", got)
	}
}

func TestDispatcher_PerEmailOrdering(t *testing.T) {
	store := &recordingStore{}
	d := NewDispatcher(4, store, nil, zerolog.Nop())
	d.Start(context.Background())

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 20; i++ {
		d.Enqueue(domain.SignInEvent{Email: "admin@gnanalytica.com", Timestamp: base.Add(time.Duration(i) * time.Second)})
	}
	_ = d.Stop(context.Background())

	events := store.snapshot()
	for i := 1; i < len(events); i++ {
		if events[i].Timestamp.Before(events[i-1].Timestamp) {
			t.Fatalf("events for one email out of order at %d", i)
		}
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(8, &recordingStore{}, nil, zerolog.Nop())
	first := d.shardIndex("client@igvpl.com")
	for i := 0; i < 10; i++ {
		if d.shardIndex("client@igvpl.com") != first {
			t.Fatalf("shard index changed between calls")
		}
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	store := &recordingStore{block: make(chan struct{})}
	obs := &countingObserver{}
	d := NewDispatcher(1, store, obs, zerolog.Nop())
	d.Start(context.Background())

	// one event is held by the blocked worker, channelBuffer more fill the queue
	total := channelBuffer + 10
	for i := 0; i < total; i++ {
		d.Enqueue(domain.SignInEvent{Email: "a@example.com"})
	}
	close(store.block)
	_ = d.Stop(context.Background())

	recorded := len(store.snapshot())
	dropped := int(obs.dropped.Load())
	if recorded+dropped != total {
		t.Fatalf("recorded %d + dropped %d != %d", recorded, dropped, total)
	}
	if dropped == 0 {
		t.Fatalf("expected drops once the queue filled")
	}
}

func TestDispatcher_CountsFailuresAndLateEvents(t *testing.T) {
	store := &recordingStore{err: errors.New("mongo down")}
	obs := &countingObserver{}
	d := NewDispatcher(2, store, obs, zerolog.Nop())
	d.Start(context.Background())

	d.Enqueue(domain.SignInEvent{Email: "a@example.com"})
	_ = d.Stop(context.Background())
	if obs.failed.Load() != 1 {
		t.Fatalf("expected 1 failure, got %d", obs.failed.Load())
	}

	d.Enqueue(domain.SignInEvent{Email: "late@example.com"})
	if obs.dropped.Load() != 1 {
		t.Fatalf("expected event after stop to be dropped")
	}
	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("second stop: %v", err)
	}
}
