package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/umaru-jpg/luvyn/internal/domain/errors"
	pkgAuth "github.com/umaru-jpg/luvyn/internal/pkg/auth"
	"github.com/umaru-jpg/luvyn/internal/server/http/dto"
	"github.com/umaru-jpg/luvyn/internal/server/http/middleware"
)

const (
	msgInvalidBody   = "Invalid request body"
	msgBodyTooLarge  = "Request body too large"
	msgValidation    = "Validation failed"
	msgInternalError = "Internal server error"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) string {
	val, ok := c.Get(middleware.ClaimsContextKey)
	if !ok {
		return ""
	}
	claims, _ := val.(pkgAuth.Claims)
	return claims.UserID
}

// bindJSON decodes the request body into dst, answering 413 when the body
// exceeds the middleware cap and 400 for anything else unreadable.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, dto.Fail(msgBodyTooLarge))
		return false
	}
	c.JSON(http.StatusBadRequest, dto.Fail(msgInvalidBody))
	return false
}

// writeError maps domain errors onto status codes. Anything unrecognised is
// logged and reported without detail.
func writeError(c *gin.Context, logger *slog.Logger, op string, err error) {
	var verr *domainErrors.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.Response{Message: msgValidation, Errors: dto.FieldErrors(verr)})
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, dto.Fail("Username or email already in use"))
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid email or password"))
	case errors.Is(err, domainErrors.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, dto.Fail("Order status cannot change from its current state to the requested one"))
	case errors.Is(err, domainErrors.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.Fail("Access denied, you can only access your own orders"))
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.Fail("Order not found"))
	default:
		logger.Error(op+" failed",
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, dto.Fail(msgInternalError))
	}
}
