package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mwangikm/studenthub/internal/config"
	"github.com/mwangikm/studenthub/internal/domain/student"
)

type StudentsStore interface {
	Create(ctx context.Context, req student.CreateStudentRequest) (student.Student, error)
	GetByID(ctx context.Context, id int64) (student.Student, error)
	List(ctx context.Context, filter student.ListStudentsFilter) ([]student.Student, error)
}

type StudentsHandler struct {
	repo StudentsStore
}

func NewStudentsHandler(repo StudentsStore) *StudentsHandler {
	return &StudentsHandler{repo: repo}
}

func (h *StudentsHandler) CreateStudent(ctx *gin.Context) {
	var req student.CreateStudentRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	s, err := h.repo.Create(cctx, req)

	if err != nil {
		if errors.Is(err, student.ErrDuplicateEmail) {
			RespondError(ctx, http.StatusBadRequest, "email_taken", "Email already registered.", nil)
			return
		}

		RespondInternal(ctx, "Could not create student")
		return
	}

	ctx.JSON(http.StatusCreated, s)
}

func (h *StudentsHandler) GetStudentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "student id")

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	s, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			RespondNotFound(ctx, "Student not found")
			return
		}

		RespondInternal(ctx, "Could not fetch student")
		return
	}

	ctx.JSON(http.StatusOK, s)
}

// ListStudents pages through students; an optional q parameter narrows
// the list with a case-insensitive match on name or email.
func (h *StudentsHandler) ListStudents(ctx *gin.Context) {
	skip := intQuery(ctx, "skip", 0)
	limit := intQuery(ctx, "limit", 100)

	if limit < 1 || limit > 500 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	filter := student.ListStudentsFilter{
		Query: ctx.Query("q"),
		Skip:  skip,
		Limit: limit,
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	students, err := h.repo.List(cctx, filter)

	if err != nil {
		RespondInternal(ctx, "Could not list students")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": students,
		"count": len(students),
	})
}

// shared param helpers

func parseIDParam(ctx *gin.Context, label string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil || id < 1 {
		RespondBadRequest(ctx, label+" must be a positive integer", nil)
		return 0, false
	}

	return id, true
}

func intQuery(ctx *gin.Context, key string, fallback int) int {
	v := ctx.Query(key)

	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)

	if err != nil {
		return fallback
	}

	return n
}
