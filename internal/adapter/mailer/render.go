package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/shopspring/decimal"

	"github.com/umaru-jpg/luvyn/internal/domain/model"
)

const confirmationHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Order Confirmation</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f5f5f5; padding: 20px;">
<h1>Order Confirmation</h1>
<p>Thank you for shopping at Toko {{.StoreName}}!</p>
<h2>Hello {{.Customer.DisplayName}},</h2>
<p>Your order has been placed. Here are the details:</p>
<h3>Order Summary #{{.Order.ID}}</h3>
<p><strong>Order date:</strong> {{date .Order.OrderDate}}</p>
<p><strong>Status:</strong> {{.Order.Status}}</p>
<p><strong>Payment method:</strong> {{.Order.PaymentMethod}}</p>
{{- if .Order.TransactionID}}
<p><strong>Transaction ID:</strong> {{.Order.TransactionID}}</p>
{{- end}}
<h3>Products</h3>
<table>
<thead>
<tr><th>Product</th><th>Quantity</th><th>Unit price</th><th>Total</th></tr>
</thead>
<tbody>
{{- range .Order.Products}}
<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{rupiah .Price}}</td><td>{{rupiah .Subtotal}}</td></tr>
{{- end}}
</tbody>
</table>
<h3>Shipping address</h3>
{{- with .Order.ShippingAddress}}
<p><strong>Name:</strong> {{.FullName}}</p>
<p><strong>Address:</strong> {{.Address}}</p>
<p><strong>City:</strong> {{.City}}</p>
<p><strong>Postal code:</strong> {{.PostalCode}}</p>
<p><strong>Country:</strong> {{.Country}}</p>
{{- else}}
<p>No shipping address provided.</p>
{{- end}}
<p><strong>Total items:</strong> {{.ItemCount}}</p>
<p><strong>Total payment:</strong> {{rupiah .Order.TotalAmount}}</p>
<p>Please keep this email as proof of purchase. If you have any questions about your order, feel free to contact us.</p>
<p>&copy; {{.Year}} Toko {{.StoreName}}. All rights reserved.</p>
<p>This message was sent automatically, please do not reply.</p>
</body>
</html>
`

var confirmationTemplate = template.Must(template.New("confirmation").Funcs(template.FuncMap{
	"rupiah": FormatRupiah,
	"date":   formatDate,
}).Parse(confirmationHTML))

// Renderer turns confirmations into email messages.
type Renderer struct {
	storeName string
	from      string
	converter *md.Converter
	now       func() time.Time
}

// NewRenderer builds a renderer branded with storeName and sending as from.
func NewRenderer(storeName, from string) *Renderer {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &Renderer{storeName: storeName, from: from, converter: converter, now: time.Now}
}

type confirmationView struct {
	StoreName string
	Customer  model.UserContact
	Order     model.Order
	ItemCount int
	Year      int
}

// Render produces the HTML body and its plain-text counterpart.
func (r *Renderer) Render(job model.OrderConfirmation) (*Message, error) {
	var buf bytes.Buffer
	err := confirmationTemplate.Execute(&buf, confirmationView{
		StoreName: r.storeName,
		Customer:  job.Customer,
		Order:     job.Order,
		ItemCount: job.Order.ItemCount(),
		Year:      r.now().Year(),
	})
	if err != nil {
		return nil, fmt.Errorf("render confirmation: %w", err)
	}

	html := buf.String()
	text, err := r.converter.ConvertString(html)
	if err != nil {
		return nil, fmt.Errorf("convert confirmation to text: %w", err)
	}

	return &Message{
		From:    r.from,
		To:      job.Customer.Email,
		Subject: fmt.Sprintf("Order Confirmation #%s - Toko %s", job.Order.ID, r.storeName),
		HTML:    html,
		Text:    text,
	}, nil
}

// FormatRupiah renders an amount the Indonesian way, e.g. "Rp 1.250.000,5".
func FormatRupiah(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	amount = amount.Round(2)

	whole := amount.Truncate(0)
	digits := whole.String()
	var grouped strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(d)
	}

	out := "Rp " + sign + grouped.String()
	if frac := amount.Sub(whole); !frac.IsZero() {
		// "0.5" -> ",5"
		out += "," + strings.TrimPrefix(frac.String(), "0.")
	}
	return out
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006 15:04 MST")
}
