package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/app/services"
	"github.com/ecakir/campushub/internal/middleware"
)

// StudyGroupController handles study group endpoints
type StudyGroupController struct {
	groupService services.StudyGroupService
}

// NewStudyGroupController creates a new StudyGroupController
func NewStudyGroupController(groupService services.StudyGroupService) *StudyGroupController {
	return &StudyGroupController{groupService: groupService}
}

// GetGroups handles GET /api/study-groups
func (c *StudyGroupController) GetGroups(ctx *gin.Context) {
	groups, err := c.groupService.GetGroups(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(groups))
}

// GetMyGroups handles GET /api/study-groups/my
func (c *StudyGroupController) GetMyGroups(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	groups, err := c.groupService.GetMyGroups(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(groups))
}

// GetGroup handles GET /api/study-groups/:id
func (c *StudyGroupController) GetGroup(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	group, err := c.groupService.GetGroup(ctx.Request.Context(), groupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(group))
}

// CreateGroup handles POST /api/study-groups
func (c *StudyGroupController) CreateGroup(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.CreateStudyGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	group, err := c.groupService.CreateGroup(ctx.Request.Context(), &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(group))
}

// UpdateGroup handles PATCH /api/study-groups/:id
func (c *StudyGroupController) UpdateGroup(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.UpdateStudyGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	group, err := c.groupService.UpdateGroup(ctx.Request.Context(), groupID, &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(group))
}

// GetGroupMembers handles GET /api/study-groups/:id/members
func (c *StudyGroupController) GetGroupMembers(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	members, err := c.groupService.GetGroupMembers(ctx.Request.Context(), groupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(members))
}

// JoinGroup handles POST /api/study-groups/:id/join
func (c *StudyGroupController) JoinGroup(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)

	if err := c.groupService.JoinGroup(ctx.Request.Context(), groupID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.MessageResponse{Message: "Joined study group"}))
}

// LeaveGroup handles DELETE /api/study-groups/:id/leave
func (c *StudyGroupController) LeaveGroup(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)

	if err := c.groupService.LeaveGroup(ctx.Request.Context(), groupID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Left study group"}))
}

// ScheduleSession handles POST /api/study-groups/:id/sessions
func (c *StudyGroupController) ScheduleSession(ctx *gin.Context) {
	groupID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	created, err := c.groupService.ScheduleSession(ctx.Request.Context(), groupID, &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(gin.H{"eventsCreated": created}))
}
