package session

import (
	"context"
	"testing"
	"time"

	"bookline/models"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	s, err := store.GetOrCreate(ctx, "U1")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if s.Step != models.StepWelcome {
		t.Errorf("new session step = %s, want %s", s.Step, models.StepWelcome)
	}

	s.Step = models.StepCity
	s.City = "Delhi"
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("Save: %v", err)
	}

	again, err := store.GetOrCreate(ctx, "U1")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if again.Step != models.StepCity || again.City != "Delhi" {
		t.Errorf("session not persisted: %+v", again)
	}

	reset, err := store.Reset(ctx, "U1")
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if reset.Step != models.StepWelcome || reset.City != "" {
		t.Errorf("reset kept fields: %+v", reset)
	}

	if err := store.Delete(ctx, "U1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("Len after delete = %d, want 0", store.Len())
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	s, _ := store.GetOrCreate(ctx, "U1")
	s.Step = models.StepComment
	s.UpdatedAt = time.Now().Add(-time.Hour)

	// An expired session is replaced by a fresh one on access.
	fresh, err := store.GetOrCreate(ctx, "U1")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if fresh.Step != models.StepWelcome {
		t.Errorf("expired session not replaced: %+v", fresh)
	}
}

func TestMemoryStoreEvictExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	stale, _ := store.GetOrCreate(ctx, "stale")
	stale.UpdatedAt = time.Now().Add(-time.Hour)
	if _, err := store.GetOrCreate(ctx, "live"); err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	if n := store.EvictExpired(); n != 1 {
		t.Errorf("EvictExpired = %d, want 1", n)
	}
	if store.Len() != 1 {
		t.Errorf("Len after eviction = %d, want 1", store.Len())
	}
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	s, _ := store.GetOrCreate(ctx, "U1")
	s.Step = models.StepName
	s.UpdatedAt = time.Now().Add(-24 * time.Hour)

	again, _ := store.GetOrCreate(ctx, "U1")
	if again.Step != models.StepName {
		t.Errorf("zero TTL expired a session: %+v", again)
	}
	if n := store.EvictExpired(); n != 0 {
		t.Errorf("EvictExpired with zero TTL = %d, want 0", n)
	}
}
