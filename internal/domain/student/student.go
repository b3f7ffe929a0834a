package student

import "errors"

var (
	ErrNotFound       = errors.New("student not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type Student struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Email string `json:"email"`
}

type CreateStudentRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=120"`
	Age   int    `json:"age" binding:"required,gt=0"`
	Email string `json:"email" binding:"required,email"`
}

// Query is an optional case-insensitive match on name or email.
type ListStudentsFilter struct {
	Query string
	Skip  int
	Limit int
}
