package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mwangikm/studenthub/internal/domain/course"
	"github.com/mwangikm/studenthub/internal/domain/enrollment"
	"github.com/mwangikm/studenthub/internal/domain/student"
	"github.com/mwangikm/studenthub/internal/observability"
)

type EnrollmentsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewEnrollmentsRepo(pool *pgxpool.Pool, prom *observability.Prom) *EnrollmentsRepo {
	return &EnrollmentsRepo{pool: pool, prom: prom}
}

func (r *EnrollmentsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// Enroll runs its checks and the insert inside one transaction, in a
// fixed order callers can rely on: missing student reported before
// missing course, both before an existing enrollment. The unique index
// on (student_id, course_id) is the backstop for two racing enrolls
// that both pass the duplicate check; the loser's 23505 is mapped to
// ErrAlreadyEnrolled too.
func (r *EnrollmentsRepo) Enroll(ctx context.Context, studentID, courseID int64) (enr enrollment.Enrollment, err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})

	if err != nil {
		return
	}

	defer func() { _ = tx.Rollback(ctx) }()

	var dummy int64

	err = r.observe("enrollments.enroll.student_check", func() error {
		return tx.QueryRow(ctx, `SELECT id FROM students WHERE id = $1`, studentID).Scan(&dummy)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = student.ErrNotFound
		}

		return
	}

	err = r.observe("enrollments.enroll.course_check", func() error {
		return tx.QueryRow(ctx, `SELECT id FROM courses WHERE id = $1`, courseID).Scan(&dummy)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = course.ErrNotFound
		}

		return
	}

	var exists bool

	err = r.observe("enrollments.enroll.duplicate_check", func() error {
		return tx.QueryRow(ctx, `SELECT EXISTS(
			SELECT 1 FROM enrollments
			WHERE student_id = $1 AND course_id = $2
		)`, studentID, courseID).Scan(&exists)
	})

	if err != nil {
		return
	}

	if exists {
		err = enrollment.ErrAlreadyEnrolled
		return
	}

	enr = enrollment.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
	}

	err = r.observe("enrollments.enroll.insert", func() error {
		return tx.QueryRow(ctx, `
			INSERT INTO enrollments (student_id, course_id)
			VALUES ($1, $2)
			RETURNING id, created_at
		`, studentID, courseID).Scan(&enr.ID, &enr.CreatedAt)
	})

	if err != nil {
		if IsUniqueViolation(err) {
			err = enrollment.ErrAlreadyEnrolled
		}

		return
	}

	err = tx.Commit(ctx)

	return
}

// ListCourseIDs returns the course ids a student is enrolled in, in
// insertion order. Unknown students are an error, not an empty list.
func (r *EnrollmentsRepo) ListCourseIDs(ctx context.Context, studentID int64) ([]int64, error) {
	var dummy int64

	err := r.observe("enrollments.list_course_ids.student_check", func() error {
		return r.pool.QueryRow(ctx, `SELECT id FROM students WHERE id = $1`, studentID).Scan(&dummy)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, student.ErrNotFound
		}

		return nil, err
	}

	var rows pgx.Rows

	err = r.observe("enrollments.list_course_ids", func() error {
		rows, err = r.pool.Query(ctx,
			`SELECT course_id FROM enrollments
			 WHERE student_id = $1
			 ORDER BY id ASC`,
			studentID,
		)
		return err
	})

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	ids := make([]int64, 0)

	for rows.Next() {
		var id int64

		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, scanErr
		}
		ids = append(ids, id)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return ids, nil
}
