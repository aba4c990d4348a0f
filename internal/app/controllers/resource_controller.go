package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/app/services"
	"github.com/ecakir/campushub/internal/middleware"
	"github.com/ecakir/campushub/internal/pkg/helpers"
)

// ResourceController handles resource upload, listing and download
type ResourceController struct {
	resourceService services.ResourceService
}

// NewResourceController creates a new ResourceController
func NewResourceController(resourceService services.ResourceService) *ResourceController {
	return &ResourceController{resourceService: resourceService}
}

// GetResources handles GET /api/resources?courseId=&type=
func (c *ResourceController) GetResources(ctx *gin.Context) {
	filter := dto.ResourceFilter{
		CourseID: helpers.ParseOptionalInt64Query(ctx, "courseId"),
	}
	if t := ctx.Query("type"); t != "" {
		filter.Type = &t
	}

	resources, err := c.resourceService.GetResources(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resources))
}

// UploadResource handles POST /api/resources (multipart)
func (c *ResourceController) UploadResource(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.CreateResourceRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A file is required").WithField("file")))
		return
	}

	resource, err := c.resourceService.Upload(ctx.Request.Context(), &req, file, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resource))
}

// DownloadResource handles GET /api/resources/:id/download
func (c *ResourceController) DownloadResource(ctx *gin.Context) {
	resourceID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	download, err := c.resourceService.Download(ctx.Request.Context(), resourceID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.FileAttachment(download.Path, download.Resource.Title)
}
