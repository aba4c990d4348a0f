package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/app/services"
	"github.com/ecakir/campushub/internal/middleware"
	"github.com/ecakir/campushub/internal/pkg/helpers"
)

// MessagingController handles conversation and message endpoints
type MessagingController struct {
	messagingService services.MessagingService
}

// NewMessagingController creates a new MessagingController
func NewMessagingController(messagingService services.MessagingService) *MessagingController {
	return &MessagingController{messagingService: messagingService}
}

// GetConversations handles GET /api/conversations
func (c *MessagingController) GetConversations(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	conversations, err := c.messagingService.GetConversations(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(conversations))
}

// CreateConversation handles POST /api/conversations
func (c *MessagingController) CreateConversation(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.CreateConversationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	conversation, err := c.messagingService.CreateConversation(ctx.Request.Context(), &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(conversation))
}

// UpdateConversation handles PATCH /api/conversations/:id
func (c *MessagingController) UpdateConversation(ctx *gin.Context) {
	conversationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.UpdateConversationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	conversation, err := c.messagingService.UpdateConversation(ctx.Request.Context(), conversationID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(conversation))
}

// GetConversationMembers handles GET /api/conversations/:id/members
func (c *MessagingController) GetConversationMembers(ctx *gin.Context) {
	conversationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)

	members, err := c.messagingService.GetConversationMembers(ctx.Request.Context(), conversationID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(members))
}

// AddConversationMember handles POST /api/conversations/:id/members
func (c *MessagingController) AddConversationMember(ctx *gin.Context) {
	conversationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	callerID, _ := middleware.CurrentUserID(ctx)

	var req dto.AddConversationMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	err := c.messagingService.AddConversationMember(ctx.Request.Context(), conversationID, callerID, req.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.MessageResponse{Message: "Member added"}))
}

// RemoveConversationMember handles DELETE /api/conversations/:id/members/:userId
func (c *MessagingController) RemoveConversationMember(ctx *gin.Context) {
	conversationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}
	callerID, _ := middleware.CurrentUserID(ctx)

	err := c.messagingService.RemoveConversationMember(ctx.Request.Context(), conversationID, callerID, memberID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Member removed"}))
}

// GetMessages handles GET /api/conversations/:id/messages
func (c *MessagingController) GetMessages(ctx *gin.Context) {
	conversationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)
	limit := helpers.ParseLimitQuery(ctx, "limit", 0)

	messages, err := c.messagingService.GetMessages(ctx.Request.Context(), conversationID, userID, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(messages))
}

// SendMessage handles POST /api/messages
func (c *MessagingController) SendMessage(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	message, err := c.messagingService.SendMessage(ctx.Request.Context(), &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}

func parseFormInt64(ctx *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(ctx.PostForm(name), 10, 64)
}

// SendFileMessage handles POST /api/messages/file (multipart)
func (c *MessagingController) SendFileMessage(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	conversationID := helpers.ParseOptionalInt64Query(ctx, "conversationId")
	if conversationID == nil {
		if v, err := parseFormInt64(ctx, "conversationId"); err == nil {
			conversationID = &v
		}
	}
	if conversationID == nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "conversationId is required").WithField("conversationId")))
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A file is required").WithField("file")))
		return
	}

	message, err := c.messagingService.SendFileMessage(ctx.Request.Context(), *conversationID, file, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}
