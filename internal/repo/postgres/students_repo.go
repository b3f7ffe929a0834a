package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mwangikm/studenthub/internal/domain/student"
	"github.com/mwangikm/studenthub/internal/observability"
)

type StudentsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewStudentsRepo(pool *pgxpool.Pool, prom *observability.Prom) *StudentsRepo {
	return &StudentsRepo{pool: pool, prom: prom}
}

func (r *StudentsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// Create inserts a student. Email uniqueness is case-sensitive and
// enforced by a unique index; the insert itself is the check-and-insert
// unit, so two racing registrations cannot both succeed.
func (r *StudentsRepo) Create(ctx context.Context, req student.CreateStudentRequest) (student.Student, error) {
	s := student.Student{
		Name:  req.Name,
		Age:   req.Age,
		Email: req.Email,
	}

	err := r.observe("students.create", func() error {
		return r.pool.QueryRow(
			ctx,
			`INSERT INTO students (name, age, email)
			 VALUES ($1, $2, $3)
			 RETURNING id`,
			req.Name, req.Age, req.Email,
		).Scan(&s.ID)
	})

	if err != nil {
		if IsUniqueViolation(err) {
			return student.Student{}, student.ErrDuplicateEmail
		}

		return student.Student{}, err
	}

	return s, nil
}

func (r *StudentsRepo) GetByID(ctx context.Context, id int64) (student.Student, error) {
	var s student.Student

	err := r.observe("students.get_by_id", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT id, name, age, email FROM students WHERE id = $1`,
			id,
		).Scan(&s.ID, &s.Name, &s.Age, &s.Email)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return student.Student{}, student.ErrNotFound
		}

		return student.Student{}, err
	}

	return s, nil
}

// List returns students in id order. An empty filter query means plain
// pagination; a non-empty one matches name or email case-insensitively.
func (r *StudentsRepo) List(ctx context.Context, filter student.ListStudentsFilter) ([]student.Student, error) {
	q := `SELECT id, name, age, email
	      FROM students
	      ORDER BY id ASC
	      OFFSET $1 LIMIT $2`
	args := []any{filter.Skip, filter.Limit}

	if filter.Query != "" {
		q = `SELECT id, name, age, email
		     FROM students
		     WHERE name ILIKE '%' || $3 || '%' OR email ILIKE '%' || $3 || '%'
		     ORDER BY id ASC
		     OFFSET $1 LIMIT $2`
		args = append(args, filter.Query)
	}

	var rows pgx.Rows
	var err error

	err = r.observe("students.list", func() error {
		rows, err = r.pool.Query(ctx, q, args...)
		return err
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	out := make([]student.Student, 0)

	for rows.Next() {
		var s student.Student

		if scanErr := rows.Scan(&s.ID, &s.Name, &s.Age, &s.Email); scanErr != nil {
			return nil, scanErr
		}
		out = append(out, s)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return out, nil
}
