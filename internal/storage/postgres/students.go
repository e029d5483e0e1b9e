package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/rollmark/rollmark/internal/storage"
)

// pq error code for unique constraint violations.
const uniqueViolation = "23505"

// StudentRepository provides PostgreSQL-backed student storage.
type StudentRepository struct {
	pool *Pool
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(pool *Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// ListStudents returns all students in enrollment order.
func (r *StudentRepository) ListStudents(ctx context.Context) ([]storage.Student, error) {
	query := `
		SELECT roll, name, class_name, section, embedding, created_at
		FROM students
		ORDER BY created_at, roll
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	var students []storage.Student
	for rows.Next() {
		var s storage.Student
		var vec pgvector.Vector
		if err := rows.Scan(&s.Roll, &s.Name, &s.ClassName, &s.Section, &vec, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		s.Embedding = vec.Slice()
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}
	return students, nil
}

// InsertStudent enrolls a new student. A unique violation on the roll is
// translated to storage.ErrDuplicateRoll.
func (r *StudentRepository) InsertStudent(ctx context.Context, s storage.Student) error {
	query := `
		INSERT INTO students (roll, name, class_name, section, embedding)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, s.Roll, s.Name, s.ClassName, s.Section,
		pgvector.NewVector(s.Embedding))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("roll %q: %w", s.Roll, storage.ErrDuplicateRoll)
		}
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

// CountStudents returns the number of enrolled students.
func (r *StudentRepository) CountStudents(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM students").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}
