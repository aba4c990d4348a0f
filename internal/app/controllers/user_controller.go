package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/app/services"
	"github.com/ecakir/campushub/internal/middleware"
)

// UserController handles profile and user search endpoints
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// UpdateProfile handles PUT /api/users/profile
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, err := c.userService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// UploadProfilePicture handles POST /api/users/profile-picture
func (c *UserController) UploadProfilePicture(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A file is required").WithField("file")))
		return
	}

	user, err := c.userService.UpdateProfilePicture(ctx.Request.Context(), userID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// GetUser handles GET /api/users/:id
func (c *UserController) GetUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.userService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// Search handles GET /api/users/search?q=
func (c *UserController) Search(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	users, err := c.userService.SearchUsers(ctx.Request.Context(), ctx.Query("q"), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(users))
}
