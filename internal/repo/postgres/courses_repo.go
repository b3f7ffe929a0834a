package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mwangikm/studenthub/internal/domain/course"
	"github.com/mwangikm/studenthub/internal/observability"
)

type CoursesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewCoursesRepo(pool *pgxpool.Pool, prom *observability.Prom) *CoursesRepo {
	return &CoursesRepo{pool: pool, prom: prom}
}

func (r *CoursesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *CoursesRepo) Create(ctx context.Context, req course.CreateCourseRequest) (course.Course, error) {
	c := course.Course{
		Title:       req.Title,
		Description: req.Description,
	}

	err := r.observe("courses.create", func() error {
		return r.pool.QueryRow(
			ctx,
			`INSERT INTO courses (title, description)
			 VALUES ($1, $2)
			 RETURNING id`,
			req.Title, req.Description,
		).Scan(&c.ID)
	})

	if err != nil {
		return course.Course{}, err
	}

	return c, nil
}

func (r *CoursesRepo) GetByID(ctx context.Context, id int64) (course.Course, error) {
	var c course.Course

	err := r.observe("courses.get_by_id", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT id, title, description FROM courses WHERE id = $1`,
			id,
		).Scan(&c.ID, &c.Title, &c.Description)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return course.Course{}, course.ErrNotFound
		}

		return course.Course{}, err
	}

	return c, nil
}
