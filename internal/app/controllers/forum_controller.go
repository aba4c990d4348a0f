package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/app/services"
	"github.com/ecakir/campushub/internal/middleware"
	"github.com/ecakir/campushub/internal/pkg/helpers"
)

// ForumController handles forum category, post, reply and vote endpoints
type ForumController struct {
	forumService services.ForumService
}

// NewForumController creates a new ForumController
func NewForumController(forumService services.ForumService) *ForumController {
	return &ForumController{forumService: forumService}
}

// GetCategories handles GET /api/forum/categories
func (c *ForumController) GetCategories(ctx *gin.Context) {
	categories, err := c.forumService.GetCategories(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(categories))
}

// GetPosts handles GET /api/forum/posts?categoryId=&limit=
func (c *ForumController) GetPosts(ctx *gin.Context) {
	filter := dto.ForumPostFilter{
		CategoryID: helpers.ParseOptionalInt64Query(ctx, "categoryId"),
		Limit:      helpers.ParseLimitQuery(ctx, "limit", 0),
	}

	posts, err := c.forumService.GetPosts(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

// GetPost handles GET /api/forum/posts/:id
func (c *ForumController) GetPost(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	viewerID, _ := middleware.CurrentUserID(ctx)
	post, err := c.forumService.GetPost(ctx.Request.Context(), postID, viewerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// CreatePost handles POST /api/forum/posts
func (c *ForumController) CreatePost(ctx *gin.Context) {
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.CreateForumPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	post, err := c.forumService.CreatePost(ctx.Request.Context(), &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// CreateReply handles POST /api/forum/posts/:id/replies
func (c *ForumController) CreateReply(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.CreateForumReplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	reply, err := c.forumService.CreateReply(ctx.Request.Context(), postID, &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(reply))
}

// VotePost handles POST /api/forum/posts/:id/vote
func (c *ForumController) VotePost(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	result, err := c.forumService.VotePost(ctx.Request.Context(), postID, userID, req.VoteType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// VoteReply handles POST /api/forum/replies/:id/vote
func (c *ForumController) VoteReply(ctx *gin.Context) {
	replyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID, _ := middleware.CurrentUserID(ctx)

	var req dto.VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	result, err := c.forumService.VoteReply(ctx.Request.Context(), replyID, userID, req.VoteType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}
