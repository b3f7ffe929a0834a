package course

import "errors"

var ErrNotFound = errors.New("course not found")

type Course struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// No uniqueness constraint on title; two courses may share a name.
type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}
