package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/umaru-jpg/luvyn/internal/pkg/auth"
	"github.com/umaru-jpg/luvyn/internal/server/http/dto"
)

// ClaimsContextKey is a gin context key for the authenticated caller's claims.
const ClaimsContextKey = "claims"

// TokenParser verifies bearer tokens.
type TokenParser interface {
	ParseToken(token string) (pkgAuth.Claims, error)
}

// AuthRequired rejects requests without a valid bearer token.
// A missing token is 401, a token that fails verification is 403.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Access denied, token not found"))
			return
		}

		claims, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("Invalid token"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail("Internal server error"))
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
