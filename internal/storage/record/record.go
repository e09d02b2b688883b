// Package record holds the JSON shapes persisted by the storage backends.
package record

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/umaru-jpg/luvyn/internal/domain/model"
)

type LineItem struct {
	ProductID string      `json:"product_id"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	Price     json.Number `json:"price"`
}

type Address struct {
	FullName   string `json:"full_name,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	FullName     string    `json:"full_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	Products        []LineItem  `json:"products"`
	TotalAmount     json.Number `json:"total_amount"`
	Status          string      `json:"status"`
	ShippingAddress *Address    `json:"shipping_address,omitempty"`
	PaymentMethod   string      `json:"payment_method"`
	TransactionID   string      `json:"transaction_id,omitempty"`
	OrderDate       time.Time   `json:"order_date"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func FromUser(u *model.User) User {
	return User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r User) Model() *model.User {
	return &model.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		FullName:     r.FullName,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func FromLineItems(items []model.LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, LineItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     json.Number(it.Price.String()),
		})
	}
	return out
}

func LineItemsModel(items []LineItem) ([]model.LineItem, error) {
	out := make([]model.LineItem, 0, len(items))
	for _, it := range items {
		price, err := decimal.NewFromString(it.Price.String())
		if err != nil {
			return nil, fmt.Errorf("line item %q price: %w", it.ProductID, err)
		}
		out = append(out, model.LineItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     price,
		})
	}
	return out, nil
}

func FromAddress(a *model.Address) *Address {
	if a == nil {
		return nil
	}
	r := Address(*a)
	return &r
}

func (r *Address) Model() *model.Address {
	if r == nil {
		return nil
	}
	a := model.Address(*r)
	return &a
}

func FromOrder(o *model.Order) Order {
	return Order{
		ID:              o.ID,
		UserID:          o.UserID,
		Products:        FromLineItems(o.Products),
		TotalAmount:     json.Number(o.TotalAmount.String()),
		Status:          string(o.Status),
		ShippingAddress: FromAddress(o.ShippingAddress),
		PaymentMethod:   o.PaymentMethod,
		TransactionID:   o.TransactionID,
		OrderDate:       o.OrderDate,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func (r Order) Model() (*model.Order, error) {
	products, err := LineItemsModel(r.Products)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", r.ID, err)
	}
	total, err := decimal.NewFromString(r.TotalAmount.String())
	if err != nil {
		return nil, fmt.Errorf("order %s total: %w", r.ID, err)
	}
	return &model.Order{
		ID:              r.ID,
		UserID:          r.UserID,
		Products:        products,
		TotalAmount:     total,
		Status:          model.OrderStatus(r.Status),
		ShippingAddress: r.ShippingAddress.Model(),
		PaymentMethod:   r.PaymentMethod,
		TransactionID:   r.TransactionID,
		OrderDate:       r.OrderDate,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}, nil
}
