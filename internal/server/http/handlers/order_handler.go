package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/umaru-jpg/luvyn/internal/domain/model"
	"github.com/umaru-jpg/luvyn/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
	logger *slog.Logger
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{facade: facade, logger: logger}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req model.OrderDraft
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), CurrentUserID(c), req)
	if err != nil {
		writeError(c, h.logger, "create order", err)
		return
	}

	resp := dto.NewOrderResponse(*order)
	c.JSON(http.StatusCreated, dto.Response{Success: true, Message: "Order created", Order: &resp})
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		writeError(c, h.logger, "list orders", err)
		return
	}

	c.JSON(http.StatusOK, dto.OrderListResponse{
		Success: true,
		Message: "Orders retrieved",
		Orders:  dto.NewOrderList(orders),
	})
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, "get order", err)
		return
	}

	resp := dto.NewOrderResponse(*order)
	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Order retrieved", Order: &resp})
}

// UpdateStatus handles PUT /api/orders/:id/status.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.StatusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), CurrentUserID(c), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, h.logger, "update order status", err)
		return
	}

	resp := dto.NewOrderResponse(*order)
	c.JSON(http.StatusOK, dto.Response{Success: true, Message: "Order status updated", Order: &resp})
}
