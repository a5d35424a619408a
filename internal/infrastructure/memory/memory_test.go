package memory

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gnanalytica/website/internal/core/domain"
)

// --- UserDirectory ---

func TestUserDirectory_ExactMatch(t *testing.T) {
	dir := NewUserDirectory([]*domain.User{
		{ID: "2", Email: "client@igvpl.com", Role: domain.RoleClient, Applications: []string{"igvpl"}},
	})

	u, err := dir.FindByEmail(context.Background(), "client@igvpl.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID != "2" {
		t.Fatalf("expected user 2, got %q", u.ID)
	}

	u.Applications[0] = "tampered"
	again, _ := dir.FindByEmail(context.Background(), "client@igvpl.com")
	if again.Applications[0] != "igvpl" {
		t.Fatalf("directory entry was mutated through a returned copy")
	}

	for _, email := range []string{"CLIENT@igvpl.com", " client@igvpl.com", ""} {
		if _, err := dir.FindByEmail(context.Background(), email); !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("%q: expected ErrUserNotFound, got %v", email, err)
		}
	}
}

// --- RevocationStore ---

func TestRevocationStore_ExpiresAfterTTL(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewRevocationStore()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	if err := s.Revoke(ctx, "sid", time.Minute); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if ok, _ := s.IsRevoked(ctx, "sid"); !ok {
		t.Fatalf("expected sid to be revoked")
	}
	if ok, _ := s.IsRevoked(ctx, "other"); ok {
		t.Fatalf("unexpected revocation of other")
	}

	now = now.Add(time.Minute)
	if ok, _ := s.IsRevoked(ctx, "sid"); ok {
		t.Fatalf("revocation should lapse with the token")
	}
	if s.Len() != 0 {
		t.Fatalf("expected lazy removal, %d entries left", s.Len())
	}
}

func TestRevocationStore_IgnoresNonPositiveTTL(t *testing.T) {
	s := NewRevocationStore()
	_ = s.Revoke(context.Background(), "sid", 0)
	if s.Len() != 0 {
		t.Fatalf("expected no entry for zero ttl")
	}
}

func TestRevocationStore_Sweep(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewRevocationStore()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	_ = s.Revoke(ctx, "short", time.Second)
	_ = s.Revoke(ctx, "long", time.Hour)
	now = now.Add(time.Minute)

	if n := s.Sweep(); n != 1 {
		t.Fatalf("expected 1 swept entry, got %d", n)
	}
	if ok, _ := s.IsRevoked(ctx, "long"); !ok {
		t.Fatalf("long revocation should survive the sweep")
	}
}

func TestRevocationStore_Concurrent(t *testing.T) {
	s := NewRevocationStore()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Revoke(ctx, "sid", time.Hour)
		}()
		go func() {
			defer wg.Done()
			_, _ = s.IsRevoked(ctx, "sid")
		}()
	}
	wg.Wait()
	if ok, _ := s.IsRevoked(ctx, "sid"); !ok {
		t.Fatalf("expected sid to be revoked")
	}
}

// --- LogAudit ---

func TestLogAudit_WritesEvent(t *testing.T) {
	var buf bytes.Buffer
	a := NewLogAudit(zerolog.New(&buf))
	err := a.RecordSignIn(context.Background(), domain.SignInEvent{
		Email:   "admin@gnanalytica.com",
		Outcome: domain.OutcomeSuccess,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"outcome":"success"`, `"email":"admin@gnanalytica.com"`, `"component":"audit"`} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Fatalf("log line %s missing %s", out, want)
		}
	}
}
