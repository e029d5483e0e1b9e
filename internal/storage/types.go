package storage

import (
	"time"
)

// Student represents an enrolled identity as stored in the database.
// The embedding is produced once at enrollment and never updated;
// re-enrollment requires a new roll.
type Student struct {
	Roll      string
	Name      string
	ClassName string
	Section   string
	Embedding []float32
	CreatedAt time.Time
}

// AttendanceRecord is one attendance row. At most one record exists per
// (Roll, Date) pair; that uniqueness is enforced by the database, not by
// application code. Roll is an informational reference: records stay valid
// even after the student is removed.
type AttendanceRecord struct {
	ID        string
	Roll      string
	Name      string // snapshot of the student name at mark time
	Date      string // calendar day, "2006-01-02"
	Time      string // time of day, "15:04:05"
	CreatedAt time.Time
}
