package recognition

import (
	"context"
	"errors"
	"testing"

	"github.com/rollmark/rollmark/internal/storage"
	"github.com/rollmark/rollmark/internal/storage/mock"
)

func TestRegistry_LazyLoad(t *testing.T) {
	store := mock.NewStudentStore()
	if err := store.InsertStudent(context.Background(), storage.Student{
		Roll: "S1", Name: "Alice", Embedding: uniform(0.1),
	}); err != nil {
		t.Fatalf("seeding store: %v", err)
	}

	reg := NewRegistry(store)
	candidates, err := reg.All(context.Background())
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(candidates) != 1 || candidates[0].Roll != "S1" {
		t.Errorf("expected one candidate S1, got %+v", candidates)
	}
}

func TestRegistry_SkipsMalformedEmbeddings(t *testing.T) {
	store := mock.NewStudentStore()
	ctx := context.Background()
	students := []storage.Student{
		{Roll: "good1", Name: "A", Embedding: uniform(0.1)},
		{Roll: "short", Name: "B", Embedding: make([]float32, 64)},
		{Roll: "empty", Name: "C", Embedding: nil},
		{Roll: "good2", Name: "D", Embedding: uniform(0.2)},
	}
	for _, s := range students {
		if err := store.InsertStudent(ctx, s); err != nil {
			t.Fatalf("seeding store: %v", err)
		}
	}

	reg := NewRegistry(store)
	if err := reg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	candidates, err := reg.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 usable candidates, got %d", len(candidates))
	}
	if candidates[0].Roll != "good1" || candidates[1].Roll != "good2" {
		t.Errorf("expected candidates in storage order, got %+v", candidates)
	}
}

func TestRegistry_RefreshKeepsSnapshotOnError(t *testing.T) {
	store := mock.NewStudentStore()
	ctx := context.Background()
	if err := store.InsertStudent(ctx, storage.Student{Roll: "S1", Embedding: uniform(0)}); err != nil {
		t.Fatalf("seeding store: %v", err)
	}

	reg := NewRegistry(store)
	if err := reg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	store.ListError = errors.New("storage down")
	if err := reg.Refresh(ctx); err == nil {
		t.Fatal("expected refresh error")
	}

	// Previous snapshot must survive the failed refresh.
	candidates, err := reg.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(candidates) != 1 {
		t.Errorf("expected previous snapshot to remain, got %d candidates", len(candidates))
	}
}

func TestRegistry_AddRefreshes(t *testing.T) {
	store := mock.NewStudentStore()
	ctx := context.Background()
	reg := NewRegistry(store)

	if err := reg.Add(ctx, storage.Student{Roll: "S1", Name: "Alice", Embedding: uniform(0.3)}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	candidates, err := reg.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(candidates) != 1 || candidates[0].Name != "Alice" {
		t.Errorf("expected the new student to be matchable, got %+v", candidates)
	}
}

func TestRegistry_AddDuplicateRoll(t *testing.T) {
	store := mock.NewStudentStore()
	ctx := context.Background()
	reg := NewRegistry(store)

	if err := reg.Add(ctx, storage.Student{Roll: "S1", Name: "Alice", Embedding: uniform(0.3)}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	err := reg.Add(ctx, storage.Student{Roll: "S1", Name: "Impostor", Embedding: uniform(0.4)})
	if !errors.Is(err, storage.ErrDuplicateRoll) {
		t.Fatalf("expected ErrDuplicateRoll, got %v", err)
	}

	candidates, err := reg.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(candidates) != 1 || candidates[0].Name != "Alice" {
		t.Errorf("registry must be unchanged after duplicate enrollment, got %+v", candidates)
	}
}

func TestRegistry_AddRejectsBadDimension(t *testing.T) {
	reg := NewRegistry(mock.NewStudentStore())

	err := reg.Add(context.Background(), storage.Student{Roll: "S1", Embedding: make([]float32, 64)})
	if !errors.Is(err, ErrInvalidEmbedding) {
		t.Errorf("expected ErrInvalidEmbedding, got %v", err)
	}
}
