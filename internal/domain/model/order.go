package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order describes a purchase placed by a user.
type Order struct {
	ID              string
	UserID          string
	Products        []LineItem
	TotalAmount     decimal.Decimal
	Status          OrderStatus
	ShippingAddress *Address
	PaymentMethod   string
	TransactionID   string
	OrderDate       time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LineItem is a snapshot of a product at order time.
type LineItem struct {
	ProductID string
	Name      string
	Quantity  int
	Price     decimal.Decimal
}

// Subtotal returns price times quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Address is an optional shipping destination.
type Address struct {
	FullName   string
	Address    string
	City       string
	PostalCode string
	Country    string
}

// ItemCount sums quantities across all line items.
func (o *Order) ItemCount() int {
	n := 0
	for _, p := range o.Products {
		n += p.Quantity
	}
	return n
}

// OrderConfirmation bundles a stored order with its owner's contact details.
type OrderConfirmation struct {
	Order    Order
	Customer UserContact
}
