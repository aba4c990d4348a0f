package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/app/services"
	"github.com/ecakir/campushub/internal/middleware"
	"github.com/ecakir/campushub/internal/pkg/helpers"
)

// CalendarController handles calendar event endpoints
type CalendarController struct {
	calendarService services.CalendarService
}

// NewCalendarController creates a new CalendarController
func NewCalendarController(calendarService services.CalendarService) *CalendarController {
	return &CalendarController{calendarService: calendarService}
}

// GetEvents handles GET /api/calendar/events?start=&end=
func (c *CalendarController) GetEvents(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	r := dto.CalendarRange{
		Start: helpers.ParseOptionalTimeQuery(ctx, "start"),
		End:   helpers.ParseOptionalTimeQuery(ctx, "end"),
	}
	events, err := c.calendarService.GetEvents(ctx.Request.Context(), userID, r)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// CreateEvent handles POST /api/calendar/events
func (c *CalendarController) CreateEvent(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.CreateCalendarEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	event, err := c.calendarService.CreateEvent(ctx.Request.Context(), &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event))
}

// GetEvent handles GET /api/calendar/events/:id
func (c *CalendarController) GetEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)

	event, err := c.calendarService.GetEvent(ctx.Request.Context(), eventID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// UpdateEvent handles PUT /api/calendar/events/:id
func (c *CalendarController) UpdateEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.UpdateCalendarEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	event, err := c.calendarService.UpdateEvent(ctx.Request.Context(), eventID, &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// CompleteEvent handles PATCH /api/calendar/events/:id/complete
func (c *CalendarController) CompleteEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.CompleteEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	event, err := c.calendarService.CompleteEvent(ctx.Request.Context(), eventID, req.Completed, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// DeleteEvent handles DELETE /api/calendar/events/:id
func (c *CalendarController) DeleteEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)

	if err := c.calendarService.DeleteEvent(ctx.Request.Context(), eventID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Event deleted"}))
}
