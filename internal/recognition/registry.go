package recognition

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/rollmark/rollmark/internal/storage"
)

// Registry is a read-mostly in-memory mirror of the enrolled students used
// for matching. It is loaded lazily on first use and refreshed after every
// enrollment. A refresh builds the full candidate list first and swaps it
// in under the lock, so readers never observe a half-populated snapshot.
type Registry struct {
	store storage.StudentStore

	mu         sync.RWMutex
	candidates []Candidate
	loaded     bool
}

// NewRegistry creates a registry backed by the given student store.
func NewRegistry(store storage.StudentStore) *Registry {
	return &Registry{store: store}
}

// Refresh reloads all students from storage. Students whose stored
// embedding does not have exactly Dim components are skipped with a
// warning; bad data for one student never aborts the reload. On storage
// error the previous snapshot is kept.
func (r *Registry) Refresh(ctx context.Context) error {
	students, err := r.store.ListStudents(ctx)
	if err != nil {
		return fmt.Errorf("listing students: %w", err)
	}

	candidates := make([]Candidate, 0, len(students))
	for _, s := range students {
		if len(s.Embedding) != Dim {
			log.Printf("registry: skipping student %q: embedding has %d components, want %d",
				s.Roll, len(s.Embedding), Dim)
			continue
		}
		candidates = append(candidates, Candidate{
			Roll:      s.Roll,
			Name:      s.Name,
			Embedding: s.Embedding,
		})
	}

	r.mu.Lock()
	r.candidates = candidates
	r.loaded = true
	r.mu.Unlock()
	return nil
}

// All returns the current snapshot, loading it from storage on first use.
// The returned slice is shared between callers and must not be modified.
func (r *Registry) All(ctx context.Context) ([]Candidate, error) {
	r.mu.RLock()
	loaded, candidates := r.loaded, r.candidates
	r.mu.RUnlock()
	if loaded {
		return candidates, nil
	}

	if err := r.Refresh(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	candidates = r.candidates
	r.mu.RUnlock()
	return candidates, nil
}

// Add enrolls a new student. Uniqueness of the roll is enforced by the
// store (storage.ErrDuplicateRoll); on conflict the registry is unchanged.
// On success the snapshot is refreshed so the student is matchable right
// away.
func (r *Registry) Add(ctx context.Context, s storage.Student) error {
	if len(s.Embedding) != Dim {
		return fmt.Errorf("%w: got %d components, want %d", ErrInvalidEmbedding, len(s.Embedding), Dim)
	}
	if err := r.store.InsertStudent(ctx, s); err != nil {
		return err
	}
	return r.Refresh(ctx)
}
