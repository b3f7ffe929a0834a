package enrollment

import (
	"errors"
	"time"
)

// the (student_id, course_id) pair is unique; the store backs this
// with a unique index so concurrent enrolls cannot both land.
var ErrAlreadyEnrolled = errors.New("student already enrolled in course")

type Enrollment struct {
	ID        int64     `json:"id"`
	StudentID int64     `json:"student_id"`
	CourseID  int64     `json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateEnrollmentRequest struct {
	StudentID int64 `json:"student_id" binding:"required,gt=0"`
	CourseID  int64 `json:"course_id" binding:"required,gt=0"`
}
