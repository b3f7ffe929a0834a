package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/mwangikm/studenthub/internal/domain/student"
)

type StudentsRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  []student.Student
}

func NewStudentsRepo() *StudentsRepo {
	return &StudentsRepo{}
}

func (r *StudentsRepo) Create(_ context.Context, req student.CreateStudentRequest) (student.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.items {
		if s.Email == req.Email {
			return student.Student{}, student.ErrDuplicateEmail
		}
	}

	r.nextID++
	s := student.Student{
		ID:    r.nextID,
		Name:  req.Name,
		Age:   req.Age,
		Email: req.Email,
	}
	r.items = append(r.items, s)

	return s, nil
}

func (r *StudentsRepo) GetByID(_ context.Context, id int64) (student.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.items {
		if s.ID == id {
			return s, nil
		}
	}

	return student.Student{}, student.ErrNotFound
}

func (r *StudentsRepo) List(_ context.Context, filter student.ListStudentsFilter) ([]student.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]student.Student, 0, len(r.items))
	q := strings.ToLower(filter.Query)

	for _, s := range r.items {
		if q != "" &&
			!strings.Contains(strings.ToLower(s.Name), q) &&
			!strings.Contains(strings.ToLower(s.Email), q) {
			continue
		}
		matched = append(matched, s)
	}

	if filter.Skip >= len(matched) {
		return []student.Student{}, nil
	}
	matched = matched[filter.Skip:]

	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}
