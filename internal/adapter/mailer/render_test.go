package mailer

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(0), "Rp 0"},
		{decimal.NewFromInt(999), "Rp 999"},
		{decimal.NewFromInt(100000), "Rp 100.000"},
		{decimal.NewFromInt(1250000), "Rp 1.250.000"},
		{decimal.RequireFromString("1250000.5"), "Rp 1.250.000,5"},
		{decimal.RequireFromString("10.257"), "Rp 10,26"},
		{decimal.NewFromInt(-15000), "Rp -15.000"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatRupiah(tc.in), tc.in.String())
	}
}

func TestRenderConfirmation(t *testing.T) {
	r := NewRenderer("Luvyn", "shop@example.com")
	r.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

	msg, err := r.Render(sampleConfirmation())
	require.NoError(t, err)

	assert.Equal(t, "shop@example.com", msg.From)
	assert.Equal(t, "alice@example.com", msg.To)
	assert.Equal(t, "Order Confirmation #o-42 - Toko Luvyn", msg.Subject)

	assert.Contains(t, msg.HTML, "Hello Alice Wonder,")
	assert.Contains(t, msg.HTML, "Songket &lt;Scarf&gt;")
	assert.Contains(t, msg.HTML, "Rp 200.000")
	assert.Contains(t, msg.HTML, "Rp 275.000")
	assert.Contains(t, msg.HTML, "trx-9")
	assert.Contains(t, msg.HTML, "Bandung")
	assert.Contains(t, msg.HTML, "2025 Toko Luvyn")

	assert.NotContains(t, msg.Text, "<table>")
	assert.Contains(t, msg.Text, "Batik Shirt")
	assert.Contains(t, msg.Text, "Rp 275.000")
}

func TestRenderWithoutShippingAddress(t *testing.T) {
	job := sampleConfirmation()
	job.Order.ShippingAddress = nil
	job.Order.TransactionID = ""
	job.Customer.FullName = ""

	msg, err := NewRenderer("Luvyn", "shop@example.com").Render(job)
	require.NoError(t, err)

	assert.Contains(t, msg.HTML, "No shipping address provided.")
	assert.Contains(t, msg.HTML, "Hello alice,")
	assert.False(t, strings.Contains(msg.HTML, "Transaction ID"))
}

func TestMessageBytesHeaders(t *testing.T) {
	msg := &Message{From: "shop@example.com", To: "alice@example.com", Subject: "Hi", Text: "plain", HTML: "<p>html</p>"}
	raw, err := msg.Bytes(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)

	s := string(raw)
	assert.Contains(t, s, "From: shop@example.com\r\n")
	assert.Contains(t, s, "To: alice@example.com\r\n")
	assert.Contains(t, s, "MIME-Version: 1.0\r\n")
	assert.Contains(t, s, "Date: Thu, 02 Jan 2025 03:04:05 +0000\r\n")
	assert.Contains(t, s, "multipart/alternative; boundary=")
}
