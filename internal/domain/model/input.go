package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Registration is the sign-up payload.
type Registration struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"max=100"`
}

// Normalize trims every field and lowercases the email.
func (r Registration) Normalize() Registration {
	return Registration{
		Username: strings.TrimSpace(r.Username),
		Email:    NormalizeEmail(r.Email),
		Password: r.Password,
		FullName: strings.TrimSpace(r.FullName),
	}
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// NormalizeEmail trims and lowercases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// OrderDraft is a client's request to place an order.
type OrderDraft struct {
	Products        []DraftItem     `json:"products" validate:"required,min=1,dive"`
	TotalAmount     decimal.Decimal `json:"totalAmount" validate:"gt=0"`
	ShippingAddress *DraftAddress   `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod" validate:"required"`
	TransactionID   string          `json:"transactionId"`
	Status          OrderStatus     `json:"status" validate:"omitempty,oneof=pending confirmed"`
}

type DraftItem struct {
	ProductID string          `json:"productId" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Quantity  int             `json:"quantity" validate:"min=1"`
	Price     decimal.Decimal `json:"price" validate:"gte=0"`
}

type DraftAddress struct {
	FullName   string `json:"fullName" validate:"max=100"`
	Address    string `json:"address" validate:"max=255"`
	City       string `json:"city" validate:"max=100"`
	PostalCode string `json:"postalCode" validate:"max=20"`
	Country    string `json:"country" validate:"max=100"`
}

// LineItems converts the draft products into stored line items.
func (d OrderDraft) LineItems() []LineItem {
	items := make([]LineItem, 0, len(d.Products))
	for _, p := range d.Products {
		items = append(items, LineItem{
			ProductID: strings.TrimSpace(p.ProductID),
			Name:      strings.TrimSpace(p.Name),
			Quantity:  p.Quantity,
			Price:     p.Price,
		})
	}
	return items
}

// Address returns the shipping destination, or nil when none was given.
func (d OrderDraft) Address() *Address {
	if d.ShippingAddress == nil {
		return nil
	}
	a := d.ShippingAddress
	return &Address{
		FullName:   strings.TrimSpace(a.FullName),
		Address:    strings.TrimSpace(a.Address),
		City:       strings.TrimSpace(a.City),
		PostalCode: strings.TrimSpace(a.PostalCode),
		Country:    strings.TrimSpace(a.Country),
	}
}
