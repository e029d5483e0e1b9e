package postgres

import (
	"context"
	"fmt"

	"github.com/rollmark/rollmark/internal/storage"
)

// AttendanceRepository provides PostgreSQL-backed attendance storage.
type AttendanceRepository struct {
	pool *Pool
}

// NewAttendanceRepository creates a new attendance repository.
func NewAttendanceRepository(pool *Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// InsertIfAbsent writes rec unless a record for (roll, date) already
// exists. The (roll, date) unique constraint makes the check and the
// insert one atomic statement; a conflicting concurrent insert simply
// reports zero rows affected here.
func (r *AttendanceRepository) InsertIfAbsent(ctx context.Context, rec storage.AttendanceRecord) (bool, error) {
	query := `
		INSERT INTO attendance (id, roll, name, date, time)
		VALUES ($1, $2, $3, $4::date, $5::time)
		ON CONFLICT (roll, date) DO NOTHING
	`

	result, err := r.pool.Exec(ctx, query, rec.ID, rec.Roll, rec.Name, rec.Date, rec.Time)
	if err != nil {
		return false, fmt.Errorf("insert attendance: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert attendance rows affected: %w", err)
	}
	return affected == 1, nil
}

// ListByDate returns all records for one calendar day, ordered by time.
func (r *AttendanceRepository) ListByDate(ctx context.Context, date string) ([]storage.AttendanceRecord, error) {
	query := `
		SELECT id, roll, name, to_char(date, 'YYYY-MM-DD'), to_char(time, 'HH24:MI:SS'), created_at
		FROM attendance
		WHERE date = $1::date
		ORDER BY time
	`

	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("query attendance by date: %w", err)
	}
	defer rows.Close()
	return scanAttendance(rows)
}

// ListAll returns every attendance record, ordered by date then time.
func (r *AttendanceRepository) ListAll(ctx context.Context) ([]storage.AttendanceRecord, error) {
	query := `
		SELECT id, roll, name, to_char(date, 'YYYY-MM-DD'), to_char(time, 'HH24:MI:SS'), created_at
		FROM attendance
		ORDER BY date, time
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query attendance: %w", err)
	}
	defer rows.Close()
	return scanAttendance(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanAttendance(rows rowScanner) ([]storage.AttendanceRecord, error) {
	var records []storage.AttendanceRecord
	for rows.Next() {
		var rec storage.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.Roll, &rec.Name, &rec.Date, &rec.Time, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance records: %w", err)
	}
	return records, nil
}
