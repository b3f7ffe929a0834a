package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mwangikm/studenthub/internal/config"
	"github.com/mwangikm/studenthub/internal/domain/course"
)

type CoursesStore interface {
	Create(ctx context.Context, req course.CreateCourseRequest) (course.Course, error)
	GetByID(ctx context.Context, id int64) (course.Course, error)
}

type CoursesHandler struct {
	repo CoursesStore
}

func NewCoursesHandler(repo CoursesStore) *CoursesHandler {
	return &CoursesHandler{repo: repo}
}

func (h *CoursesHandler) CreateCourse(ctx *gin.Context) {
	var req course.CreateCourseRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	c, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not create course")
		return
	}

	ctx.JSON(http.StatusCreated, c)
}

func (h *CoursesHandler) GetCourseByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "course id")

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	c, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			RespondNotFound(ctx, "Course not found")
			return
		}

		RespondInternal(ctx, "Could not fetch course")
		return
	}

	ctx.JSON(http.StatusOK, c)
}
