package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/umaru-jpg/luvyn/internal/domain/model"
	"github.com/umaru-jpg/luvyn/internal/server/http/dto"
)

// AuthHandler processes registration and login.
type AuthHandler struct {
	facade AuthFacade
	logger *slog.Logger
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{facade: facade, logger: logger}
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.Registration
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.facade.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, "register", err)
		return
	}

	c.JSON(http.StatusCreated, dto.Response{
		Success: true,
		Message: "Account created",
		User:    dto.NewUserSummary(user),
	})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.Credentials
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.facade.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, "login", err)
		return
	}

	c.JSON(http.StatusOK, dto.Response{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    dto.NewUserSummary(user),
	})
}
