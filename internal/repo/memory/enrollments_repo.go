package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mwangikm/studenthub/internal/domain/enrollment"
)

// EnrollmentsRepo mirrors the postgres repo's check ordering: student,
// then course, then duplicate pair. The single mutex stands in for the
// store-level uniqueness constraint.
type EnrollmentsRepo struct {
	mu       sync.RWMutex
	nextID   int64
	students *StudentsRepo
	courses  *CoursesRepo
	items    []enrollment.Enrollment
}

func NewEnrollmentsRepo(students *StudentsRepo, courses *CoursesRepo) *EnrollmentsRepo {
	return &EnrollmentsRepo{
		students: students,
		courses:  courses,
	}
}

func (r *EnrollmentsRepo) Enroll(ctx context.Context, studentID, courseID int64) (enrollment.Enrollment, error) {
	if _, err := r.students.GetByID(ctx, studentID); err != nil {
		return enrollment.Enrollment{}, err
	}

	if _, err := r.courses.GetByID(ctx, courseID); err != nil {
		return enrollment.Enrollment{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.items {
		if e.StudentID == studentID && e.CourseID == courseID {
			return enrollment.Enrollment{}, enrollment.ErrAlreadyEnrolled
		}
	}

	r.nextID++
	e := enrollment.Enrollment{
		ID:        r.nextID,
		StudentID: studentID,
		CourseID:  courseID,
		CreatedAt: time.Now().UTC(),
	}
	r.items = append(r.items, e)

	return e, nil
}

func (r *EnrollmentsRepo) ListCourseIDs(ctx context.Context, studentID int64) ([]int64, error) {
	if _, err := r.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0)

	for _, e := range r.items {
		if e.StudentID == studentID {
			ids = append(ids, e.CourseID)
		}
	}

	return ids, nil
}
