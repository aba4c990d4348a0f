package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecakir/campushub/internal/app/models"
	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/app/services"
	"github.com/ecakir/campushub/internal/middleware"
)

// AuthController handles registration, login and session endpoints
type AuthController struct {
	authService services.AuthService
	cookieName  string
	sessionTTL  time.Duration
	secure      bool
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, cookieName string, sessionTTL time.Duration, secure bool) *AuthController {
	return &AuthController{
		authService: authService,
		cookieName:  cookieName,
		sessionTTL:  sessionTTL,
		secure:      secure,
	}
}

// Register handles POST /api/auth/register
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, session, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, session)
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.AuthResponse{User: user}))
}

// Login handles POST /api/auth/login
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, session, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, session)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.AuthResponse{User: user}))
}

// Logout handles POST /api/auth/logout
func (c *AuthController) Logout(ctx *gin.Context) {
	token, _ := ctx.Cookie(c.cookieName)
	if err := c.authService.Logout(ctx.Request.Context(), token); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.SetCookie(c.cookieName, "", -1, "/", "", c.secure, true)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MessageResponse{Message: "Logged out"}))
}

// Me handles GET /api/auth/me
func (c *AuthController) Me(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.AuthResponse{User: user}))
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, session *models.Session) {
	ctx.SetCookie(c.cookieName, session.Token, int(c.sessionTTL.Seconds()), "/", "", c.secure, true)
}
