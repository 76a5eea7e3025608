package store

import (
	"context"
	"errors"
	"testing"

	"portfolio-simulator/internal/models"
)

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	p := &models.Portfolio{ID: "pf-1", Cash: 2500.50, TotalValue: 2500.50}
	if err := s.Put(ctx, p); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "pf-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "pf-1" || got.Cash != 2500.50 {
		t.Errorf("got %+v", got)
	}
}

func TestMemoryStorePutOverwrites(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Put(ctx, &models.Portfolio{ID: "pf-1", Cash: 100}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, &models.Portfolio{ID: "pf-1", Cash: 42}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "pf-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Cash != 42 {
		t.Errorf("cash=%v want 42", got.Cash)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()

	if _, err := s.Get(context.Background(), "pf-missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err=%v want ErrNotFound", err)
	}
}
