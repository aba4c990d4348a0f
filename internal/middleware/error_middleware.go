package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ecakir/campushub/internal/app/models/dto"
	"github.com/ecakir/campushub/internal/pkg/apperrors"
	"github.com/ecakir/campushub/internal/pkg/logger"
)

// HandleAPIError maps service errors onto HTTP status codes and the
// standard error envelope. Unknown errors become a generic 500; their
// detail stays in the log.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, 401, dto.ErrorCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, apperrors.ErrSessionNotFound), errors.Is(err, apperrors.ErrSessionExpired):
		respondError(c, 401, dto.ErrorCodeSessionExpired, "Session invalid or expired")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, 403, dto.ErrorCodeForbidden, messageOf(err, "Permission denied"))
	case errors.Is(err, apperrors.ErrUserNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrCourseNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Course not found")
	case errors.Is(err, apperrors.ErrPostNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Post not found")
	case errors.Is(err, apperrors.ErrReplyNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Reply not found")
	case errors.Is(err, apperrors.ErrCategoryNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Category not found")
	case errors.Is(err, apperrors.ErrStudyGroupNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Study group not found")
	case errors.Is(err, apperrors.ErrConversationNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Conversation not found")
	case errors.Is(err, apperrors.ErrEventNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Calendar event not found")
	case errors.Is(err, apperrors.ErrMemberNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "Membership not found")
	case errors.Is(err, apperrors.ErrFileNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, "File not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, 404, dto.ErrorCodeResourceNotFound, messageOf(err, "Resource not found"))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, 409, dto.ErrorCodeResourceAlreadyExists, "Email already registered")
	case errors.Is(err, apperrors.ErrAlreadyMember):
		respondError(c, 409, dto.ErrorCodeResourceAlreadyExists, "Already a member")
	case errors.Is(err, apperrors.ErrGroupFull):
		respondError(c, 409, dto.ErrorCodeResourceAlreadyExists, "Study group is full")
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrResourceAlreadyExists):
		respondError(c, 409, dto.ErrorCodeResourceAlreadyExists, messageOf(err, "Conflict"))
	case errors.Is(err, apperrors.ErrEmptyMessage):
		respondError(c, 400, dto.ErrorCodeValidationFailed, "Message must have content or a file")
	case errors.Is(err, apperrors.ErrFileTooLarge):
		respondError(c, 400, dto.ErrorCodeValidationFailed, "File exceeds the maximum upload size")
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, 400, dto.ErrorCodeValidationFailed, messageOf(err, "Invalid request"))
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respondError(c, 500, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// HandleValidationError maps a gin binding error onto a 400 response
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(400, dto.NewErrorResponse(dto.HandleValidationError(err)))
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// messageOf prefers the wrapped CustomError message when one is present
func messageOf(err error, fallback string) string {
	var ce *apperrors.CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}
