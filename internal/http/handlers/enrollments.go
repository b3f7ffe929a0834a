package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mwangikm/studenthub/internal/config"
	"github.com/mwangikm/studenthub/internal/domain/course"
	"github.com/mwangikm/studenthub/internal/domain/enrollment"
	"github.com/mwangikm/studenthub/internal/domain/student"
)

type EnrollmentsStore interface {
	Enroll(ctx context.Context, studentID, courseID int64) (enrollment.Enrollment, error)
	ListCourseIDs(ctx context.Context, studentID int64) ([]int64, error)
}

type EnrollmentsHandler struct {
	repo EnrollmentsStore
}

func NewEnrollmentsHandler(repo EnrollmentsStore) *EnrollmentsHandler {
	return &EnrollmentsHandler{repo: repo}
}

// Enroll creates an enrollment. The failure order is part of the
// contract: a missing student is reported before a missing course, and
// both before an existing enrollment.
func (h *EnrollmentsHandler) Enroll(ctx *gin.Context) {
	var req enrollment.CreateEnrollmentRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	enr, err := h.repo.Enroll(cctx, req.StudentID, req.CourseID)

	if err != nil {
		switch {
		case errors.Is(err, student.ErrNotFound):
			RespondNotFound(ctx, "Student not found")
		case errors.Is(err, course.ErrNotFound):
			RespondNotFound(ctx, "Course not found")
		case errors.Is(err, enrollment.ErrAlreadyEnrolled):
			RespondConflict(ctx, "already_enrolled", "Student is already enrolled in this course.")
		default:
			RespondInternal(ctx, "Could not enroll student")
		}
		return
	}

	ctx.JSON(http.StatusCreated, enr)
}

func (h *EnrollmentsHandler) ListStudentCourses(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "student id")

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	ids, err := h.repo.ListCourseIDs(cctx, id)

	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			RespondNotFound(ctx, "Student not found")
			return
		}

		RespondInternal(ctx, "Could not list enrolled courses")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"enrolled_courses": ids,
	})
}
