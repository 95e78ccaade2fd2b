package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"ballotbox/internal/roster/models"
	id "ballotbox/pkg/domain"
	"ballotbox/pkg/platform/sentinel"
)

// Schema creates the students table.
const Schema = `
CREATE TABLE IF NOT EXISTS students (
	student_id    TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL,
	department    TEXT NOT NULL,
	academic_year TEXT NOT NULL,
	registered_at TIMESTAMPTZ NOT NULL,
	status        TEXT NOT NULL DEFAULT 'active'
);
`

const uniqueViolation = "23505"

// PostgresStore keeps the roster in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, student models.Student) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO students (student_id, name, email, department, academic_year, registered_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		string(student.ID),
		student.Name,
		student.Email,
		student.Department,
		student.Year,
		student.RegisteredAt,
		string(student.Status),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: student %s already registered", sentinel.ErrConflict, student.ID)
		}
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, student models.Student) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE students
		SET name = $2, email = $3, department = $4, academic_year = $5, status = $6
		WHERE student_id = $1
	`,
		string(student.ID),
		student.Name,
		student.Email,
		student.Department,
		student.Year,
		string(student.Status),
	)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return requireAffected(res, "update student")
}

func (s *PostgresStore) Delete(ctx context.Context, voterID id.VoterID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE student_id = $1`, string(voterID))
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return requireAffected(res, "delete student")
}

func (s *PostgresStore) Get(ctx context.Context, voterID id.VoterID) (*models.Student, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT student_id, name, email, department, academic_year, registered_at, status
		FROM students
		WHERE student_id = $1
	`, string(voterID))
	student, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	return student, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Student, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT student_id, name, email, department, academic_year, registered_at, status
		FROM students
		ORDER BY student_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var out []models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		out = append(out, *student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(row scanner) (*models.Student, error) {
	var (
		student   models.Student
		studentID string
		status    string
	)
	if err := row.Scan(
		&studentID,
		&student.Name,
		&student.Email,
		&student.Department,
		&student.Year,
		&student.RegisteredAt,
		&status,
	); err != nil {
		return nil, err
	}
	student.ID = id.VoterID(studentID)
	student.Status = models.StudentStatus(status)
	return &student, nil
}

func requireAffected(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
