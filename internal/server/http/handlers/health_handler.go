package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/umaru-jpg/luvyn/internal/server/http/dto"
)

type HealthHandler struct {
	facade HealthFacade
	logger *slog.Logger
}

func NewHealthHandler(facade HealthFacade, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{facade: facade, logger: logger}
}

// Check handles GET /api/health. An unreachable backend yields 503.
func (h *HealthHandler) Check(c *gin.Context) {
	backend, err := h.facade.Health(c.Request.Context())
	if err != nil {
		h.logger.Warn("health check failed", slog.String("backend", backend), slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, dto.Response{Message: "Storage unavailable", Backend: backend})
		return
	}
	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "OK", Backend: backend})
}
