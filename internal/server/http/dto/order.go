package dto

import (
	"encoding/json"
	"time"

	"github.com/umaru-jpg/luvyn/internal/domain/model"
)

// OrderItemResponse is a line item as returned to clients.
type OrderItemResponse struct {
	ProductID string      `json:"productId"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	Price     json.Number `json:"price"`
}

// AddressResponse mirrors the shipping address request shape.
type AddressResponse struct {
	FullName   string `json:"fullName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// OrderResponse describes an order in API responses.
type OrderResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"userId"`
	Products        []OrderItemResponse `json:"products"`
	TotalAmount     json.Number         `json:"totalAmount"`
	Status          string              `json:"status"`
	ShippingAddress *AddressResponse    `json:"shippingAddress,omitempty"`
	PaymentMethod   string              `json:"paymentMethod"`
	TransactionID   string              `json:"transactionId,omitempty"`
	OrderDate       time.Time           `json:"orderDate"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// StatusRequest is the body of a status update.
type StatusRequest struct {
	Status string `json:"status"`
}

func NewOrderResponse(o model.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Products))
	for _, p := range o.Products {
		items = append(items, OrderItemResponse{
			ProductID: p.ProductID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			Price:     json.Number(p.Price.String()),
		})
	}
	resp := OrderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		Products:      items,
		TotalAmount:   json.Number(o.TotalAmount.String()),
		Status:        string(o.Status),
		PaymentMethod: o.PaymentMethod,
		TransactionID: o.TransactionID,
		OrderDate:     o.OrderDate,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	if a := o.ShippingAddress; a != nil {
		resp.ShippingAddress = &AddressResponse{
			FullName:   a.FullName,
			Address:    a.Address,
			City:       a.City,
			PostalCode: a.PostalCode,
			Country:    a.Country,
		}
	}
	return resp
}

// NewOrderList keeps an empty result as [] on the wire.
func NewOrderList(orders []model.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}
