package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gemura/gemura-backend/internal/apperrors"
	"github.com/gemura/gemura-backend/internal/core/domain"
	"github.com/gemura/gemura-backend/internal/core/services"
	"github.com/gemura/gemura-backend/internal/dto"
	"github.com/gemura/gemura-backend/internal/middleware"
)

// respondSuccess writes the uniform success envelope.
func respondSuccess(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, dto.Success(code, message, data))
}

// respondError maps any error onto the envelope. App-level messages pass
// through; raw infrastructure errors surface as a generic 500 and are logged.
func respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	message := "Internal server error"

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	} else if status != http.StatusInternalServerError {
		message = err.Error()
	}

	if status == http.StatusInternalServerError {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Request failed", slog.String("error", err.Error()))
	}
	c.JSON(status, dto.Error(status, message))
}

// respondBindError reports a request-shape failure.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.Error(http.StatusBadRequest, "Invalid request format: "+err.Error()))
}

// requireUserID pulls the authenticated user from the request context; the
// auth middleware guarantees it on protected routes.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.Error(http.StatusUnauthorized, "Unauthorized"))
		return "", false
	}
	return userID, true
}

// requireDefaultAccount resolves the caller's default account and verifies
// the given permission on it. A missing default account is a 400; a missing
// permission is a 403.
func requireDefaultAccount(c *gin.Context, accountSvc *services.AccountService, permission string) (string, *domain.Account, bool) {
	userID, ok := requireUserID(c)
	if !ok {
		return "", nil, false
	}

	account, err := accountSvc.ResolveDefaultAccount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return "", nil, false
	}
	if permission != "" {
		if err := accountSvc.Authorize(c.Request.Context(), userID, account.AccountID, permission); err != nil {
			respondError(c, err)
			return "", nil, false
		}
	}
	return userID, account, true
}
