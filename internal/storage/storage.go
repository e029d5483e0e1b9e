// Package storage defines the durable storage contracts for students and
// attendance records, plus the sentinel errors repositories translate
// database conflicts into. Implementations live in the postgres and mock
// subpackages.
package storage

import (
	"context"
	"errors"
)

// ErrDuplicateRoll is returned when inserting a student whose roll is
// already enrolled.
var ErrDuplicateRoll = errors.New("roll already enrolled")

// StudentStore persists enrolled students.
type StudentStore interface {
	// ListStudents returns all students in enrollment order.
	ListStudents(ctx context.Context) ([]Student, error)

	// InsertStudent enrolls a new student. Returns ErrDuplicateRoll if the
	// roll already exists; the store is left unchanged in that case.
	InsertStudent(ctx context.Context, s Student) error

	// CountStudents returns the number of enrolled students.
	CountStudents(ctx context.Context) (int, error)
}

// AttendanceStore persists attendance records.
type AttendanceStore interface {
	// InsertIfAbsent writes rec unless a record for (rec.Roll, rec.Date)
	// already exists. Returns true if the record was written, false if one
	// already existed. The check and the insert are a single atomic unit,
	// backed by the (roll, date) uniqueness constraint.
	InsertIfAbsent(ctx context.Context, rec AttendanceRecord) (bool, error)

	// ListByDate returns all records for one calendar day ("2006-01-02"),
	// ordered by time of day.
	ListByDate(ctx context.Context, date string) ([]AttendanceRecord, error)

	// ListAll returns every attendance record, ordered by date then time.
	ListAll(ctx context.Context) ([]AttendanceRecord, error)
}
