package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/app/services"
	"github.com/ecakir/campushub/internal/middleware"
)

// DashboardController handles the aggregate dashboard endpoint
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GetDashboard handles GET /api/dashboard
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	dashboard, err := c.dashboardService.GetDashboard(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dashboard))
}
