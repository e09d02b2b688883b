package record

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umaru-jpg/luvyn/internal/domain/model"
)

func TestOrderRecordKeepsAmountsExact(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	order := &model.Order{
		ID:     "o-1",
		UserID: "u-1",
		Products: []model.LineItem{
			{ProductID: "p-1", Name: "Batik Shirt", Quantity: 2, Price: decimal.RequireFromString("100000.50")},
		},
		TotalAmount:     decimal.RequireFromString("250000.50"),
		Status:          model.OrderStatusConfirmed,
		ShippingAddress: &model.Address{City: "Bandung"},
		PaymentMethod:   "bank_transfer",
		OrderDate:       now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	raw, err := json.Marshal(FromOrder(order))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), `"total_amount":250000.5`), string(raw))
	assert.True(t, strings.Contains(string(raw), `"price":100000.5`), string(raw))

	var decoded Order
	require.NoError(t, json.Unmarshal(raw, &decoded))
	back, err := decoded.Model()
	require.NoError(t, err)

	assert.True(t, order.TotalAmount.Equal(back.TotalAmount))
	assert.True(t, order.Products[0].Price.Equal(back.Products[0].Price))
	assert.Equal(t, "Bandung", back.ShippingAddress.City)
	assert.Equal(t, model.OrderStatusConfirmed, back.Status)
}

func TestOrderRecordWithoutAddress(t *testing.T) {
	r := Order{ID: "o-2", TotalAmount: "10", Products: []LineItem{}}
	o, err := r.Model()
	require.NoError(t, err)
	assert.Nil(t, o.ShippingAddress)

	raw, err := json.Marshal(FromOrder(o))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "shipping_address")
}

func TestOrderRecordRejectsCorruptAmounts(t *testing.T) {
	_, err := Order{ID: "o-3", TotalAmount: "lots"}.Model()
	require.Error(t, err)

	_, err = Order{ID: "o-4", TotalAmount: "1", Products: []LineItem{{ProductID: "p", Price: "x"}}}.Model()
	require.Error(t, err)
}
