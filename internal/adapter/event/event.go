// Package event defines the JSON payload published when an order is confirmed.
package event

import (
	"encoding/json"
	"time"

	"github.com/umaru-jpg/luvyn/internal/domain/model"
)

// TypeOrderConfirmed identifies confirmation events.
const TypeOrderConfirmed = "order.confirmed"

type OrderConfirmed struct {
	Type          string      `json:"type"`
	OrderID       string      `json:"orderId"`
	UserID        string      `json:"userId"`
	Email         string      `json:"email"`
	CustomerName  string      `json:"customerName"`
	Status        string      `json:"status"`
	TotalAmount   json.Number `json:"totalAmount"`
	ItemCount     int         `json:"itemCount"`
	PaymentMethod string      `json:"paymentMethod"`
	TransactionID string      `json:"transactionId,omitempty"`
	OrderDate     time.Time   `json:"orderDate"`
}

// FromConfirmation builds the event for a stored order and its owner.
func FromConfirmation(c model.OrderConfirmation) OrderConfirmed {
	return OrderConfirmed{
		Type:          TypeOrderConfirmed,
		OrderID:       c.Order.ID,
		UserID:        c.Order.UserID,
		Email:         c.Customer.Email,
		CustomerName:  c.Customer.DisplayName(),
		Status:        string(c.Order.Status),
		TotalAmount:   json.Number(c.Order.TotalAmount.String()),
		ItemCount:     c.Order.ItemCount(),
		PaymentMethod: c.Order.PaymentMethod,
		TransactionID: c.Order.TransactionID,
		OrderDate:     c.Order.OrderDate,
	}
}

// Encode marshals the event for a confirmation.
func Encode(c model.OrderConfirmation) ([]byte, error) {
	return json.Marshal(FromConfirmation(c))
}
