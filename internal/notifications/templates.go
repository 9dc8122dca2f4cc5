// Package notifications renders and dispatches transactional status email.
//
// Rendering is a lookup table from order status to a template builder with an
// explicit fallback: a status key without its own template renders the generic
// order-received message rather than failing. Delivery failures are advisory;
// they are reported to the caller as a Result and never abort the state
// transition that triggered the send.
package notifications

import (
	"bytes"
	"fmt"
	"html/template"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/model/rma"
)

// Message is a rendered subject/body pair in both HTML and plain text.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

var htmlWrapper = template.Must(template.New("email").Parse(`<!doctype html>
<html>
  <body style="font-family: sans-serif; color: #333;">
    <h2>{{.Heading}}</h2>
    <p>{{.Body}}</p>
    <p>Order <strong>{{.Reference}}</strong>{{if .Total}} &middot; {{.Total}}{{end}}</p>
  </body>
</html>
`))

type emailData struct {
	Heading   string
	Body      string
	Reference string
	Total     string
}

// formatAmount renders minor units with the currency code, e.g. "41.00 INR".
func formatAmount(amount int64, currency string) string {
	return fmt.Sprintf("%d.%02d %s", amount/100, amount%100, currency)
}

type statusCopy struct {
	subject string
	heading string
	body    string
}

// getStatusCopy returns the per-status wording for order lifecycle email.
// Statuses without an entry fall back to the order-received wording.
func getStatusCopy() map[order.Status]statusCopy {
	return map[order.Status]statusCopy{
		order.Confirmed: {
			subject: "Your order %s is confirmed",
			heading: "Order confirmed",
			body:    "We have received your payment and your order is confirmed. We will let you know as soon as it ships.",
		},
		order.Dispatched: {
			subject: "Your order %s has been dispatched",
			heading: "Order dispatched",
			body:    "Your order has left our warehouse and is on its way to the carrier.",
		},
		order.Shipped: {
			subject: "Your order %s has shipped",
			heading: "Order shipped",
			body:    "Your order has been handed to the carrier. Tracking details are available on your orders page.",
		},
		order.OutForDelivery: {
			subject: "Your order %s is out for delivery",
			heading: "Out for delivery",
			body:    "Your order is with the courier and should reach you today.",
		},
		order.Delivered: {
			subject: "Your order %s was delivered",
			heading: "Order delivered",
			body:    "Your order has been delivered. We hope you love it — if anything is wrong, you can start a return from your orders page.",
		},
		order.Cancelled: {
			subject: "Your order %s was cancelled",
			heading: "Order cancelled",
			body:    "Your order has been cancelled. If you were charged, the amount will be returned to your original payment method.",
		},
		order.Refunded: {
			subject: "Your order %s was refunded",
			heading: "Order refunded",
			body:    "Your refund has been issued to your original payment method. It can take a few business days to appear.",
		},
	}
}

// fallbackCopy is used for status keys with no template of their own.
var fallbackCopy = statusCopy{
	subject: "We received your order %s",
	heading: "Order received",
	body:    "Thanks for shopping with us. Your order has been received and is being processed.",
}

// BuildOrderStatusMessage renders the email for an order entering the target
// status. Unknown or untemplated statuses render the generic order-received
// message.
func BuildOrderStatusMessage(o *order.Order, target order.Status) Message {
	copyFor, ok := getStatusCopy()[target]
	if !ok {
		copyFor = fallbackCopy
	}

	return render(
		fmt.Sprintf(copyFor.subject, o.Number()),
		copyFor.heading,
		copyFor.body,
		o.Number(),
		formatAmount(o.Total(), o.Payment().Currency()),
	)
}

// BuildReturnReminderMessage renders the shipment reminder for a return
// sitting in awaiting_shipment.
func BuildReturnReminderMessage(rr *rma.ReturnRequest) Message {
	reference := rr.Number().String()
	return render(
		fmt.Sprintf("Reminder: ship your return %s", reference),
		"Your return is waiting",
		"We approved your return but have not received the items yet. Please ship them back so we can process your refund or exchange.",
		reference,
		"",
	)
}

func render(subject, heading, body, reference, total string) Message {
	var buf bytes.Buffer
	// Template execution over a bytes.Buffer cannot fail for this fixed template.
	_ = htmlWrapper.Execute(&buf, emailData{
		Heading:   heading,
		Body:      body,
		Reference: reference,
		Total:     total,
	})

	text := fmt.Sprintf("%s\n\n%s\n\nReference: %s", heading, body, reference)
	if total != "" {
		text += fmt.Sprintf("\nTotal: %s", total)
	}

	return Message{
		Subject: subject,
		HTML:    buf.String(),
		Text:    text,
	}
}
