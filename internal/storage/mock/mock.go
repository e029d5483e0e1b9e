// Package mock provides in-memory implementations of the storage
// interfaces for testing.
package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/rollmark/rollmark/internal/storage"
)

// StudentStore is an in-memory implementation of storage.StudentStore.
type StudentStore struct {
	mu       sync.Mutex
	students []storage.Student

	// Error injection
	ListError   error
	InsertError error
}

// NewStudentStore creates an empty in-memory student store.
func NewStudentStore() *StudentStore {
	return &StudentStore{}
}

// ListStudents returns all students in insertion order.
func (m *StudentStore) ListStudents(ctx context.Context) ([]storage.Student, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]storage.Student, len(m.students))
	copy(out, m.students)
	return out, nil
}

// InsertStudent adds a student, enforcing roll uniqueness.
func (m *StudentStore) InsertStudent(ctx context.Context, s storage.Student) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.students {
		if existing.Roll == s.Roll {
			return storage.ErrDuplicateRoll
		}
	}
	m.students = append(m.students, s)
	return nil
}

// CountStudents returns the number of stored students.
func (m *StudentStore) CountStudents(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.students), nil
}

// AttendanceStore is an in-memory implementation of storage.AttendanceStore.
// InsertIfAbsent holds the mutex across the existence check and the write,
// mirroring the atomicity the real store gets from its unique constraint.
type AttendanceStore struct {
	mu      sync.Mutex
	records map[string]storage.AttendanceRecord // keyed by roll + "|" + date

	// Error injection
	InsertError error
	ListError   error

	// InsertCalls counts InsertIfAbsent invocations, including conflicts.
	InsertCalls int
}

// NewAttendanceStore creates an empty in-memory attendance store.
func NewAttendanceStore() *AttendanceStore {
	return &AttendanceStore{records: make(map[string]storage.AttendanceRecord)}
}

// InsertIfAbsent writes rec unless a record for (roll, date) exists.
func (m *AttendanceStore) InsertIfAbsent(ctx context.Context, rec storage.AttendanceRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertCalls++
	if m.InsertError != nil {
		return false, m.InsertError
	}
	key := rec.Roll + "|" + rec.Date
	if _, exists := m.records[key]; exists {
		return false, nil
	}
	m.records[key] = rec
	return true, nil
}

// ListByDate returns records for one day ordered by time.
func (m *AttendanceStore) ListByDate(ctx context.Context, date string) ([]storage.AttendanceRecord, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []storage.AttendanceRecord
	for _, rec := range m.records {
		if rec.Date == date {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

// ListAll returns every record ordered by date then time.
func (m *AttendanceStore) ListAll(ctx context.Context) ([]storage.AttendanceRecord, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]storage.AttendanceRecord, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}
