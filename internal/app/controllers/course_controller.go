package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/app/services"
	"github.com/ecakir/campushub/internal/middleware"
)

// CourseController handles course catalog and membership endpoints
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// GetCourses handles GET /api/courses
func (c *CourseController) GetCourses(ctx *gin.Context) {
	var search *string
	if s := ctx.Query("search"); s != "" {
		search = &s
	}

	courses, err := c.courseService.GetCourses(ctx.Request.Context(), search)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses))
}

// GetCourse handles GET /api/courses/:id
func (c *CourseController) GetCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course))
}

// GetMyCourses handles GET /api/courses/my
func (c *CourseController) GetMyCourses(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	courses, err := c.courseService.GetMyCourses(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses))
}

// CreateCourse handles POST /api/courses
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course))
}

// JoinCourse handles POST /api/courses/:id/join
func (c *CourseController) JoinCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)

	if err := c.courseService.JoinCourse(ctx.Request.Context(), courseID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.MessageResponse{Message: "Joined course"}))
}

// LeaveCourse handles DELETE /api/courses/:id/leave
func (c *CourseController) LeaveCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)

	if err := c.courseService.LeaveCourse(ctx.Request.Context(), courseID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Left course"}))
}

// GetCourseMembers handles GET /api/courses/:id/members
func (c *CourseController) GetCourseMembers(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	members, err := c.courseService.GetCourseMembers(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(members))
}

// parseIDParam reads a numeric path parameter, answering 400 on garbage
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid "+name+" parameter").WithField(name)))
		return 0, false
	}
	return id, true
}
