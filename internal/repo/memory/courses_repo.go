package memory

import (
	"context"
	"sync"

	"github.com/mwangikm/studenthub/internal/domain/course"
)

type CoursesRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  []course.Course
}

func NewCoursesRepo() *CoursesRepo {
	return &CoursesRepo{}
}

func (r *CoursesRepo) Create(_ context.Context, req course.CreateCourseRequest) (course.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	c := course.Course{
		ID:          r.nextID,
		Title:       req.Title,
		Description: req.Description,
	}
	r.items = append(r.items, c)

	return c, nil
}

func (r *CoursesRepo) GetByID(_ context.Context, id int64) (course.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.items {
		if c.ID == id {
			return c, nil
		}
	}

	return course.Course{}, course.ErrNotFound
}
