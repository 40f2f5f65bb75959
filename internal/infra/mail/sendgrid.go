// internal/infra/mail/sendgrid.go
package mail

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	orderdom "onlineshop/internal/domain/order"
)

// SendGridMailer sends order confirmation mail through SendGrid.
type SendGridMailer struct {
	apiKey   string
	from     string
	fromName string
}

func NewSendGridMailer(apiKey, from string) *SendGridMailer {
	return &SendGridMailer{
		apiKey:   strings.TrimSpace(apiKey),
		from:     strings.TrimSpace(from),
		fromName: "Online Shop",
	}
}

func (m *SendGridMailer) SendOrderConfirmation(to string, o orderdom.Order) error {
	if m == nil || m.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if m.from == "" {
		return fmt.Errorf("from address is empty")
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	subject := fmt.Sprintf("Order confirmation %s", o.ID)
	body := buildConfirmationBody(o)

	message := sgmail.NewSingleEmail(
		sgmail.NewEmail(m.fromName, m.from),
		subject,
		sgmail.NewEmail("", to),
		body,
		fmt.Sprintf("<pre>%s</pre>", body),
	)

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		log.Printf("[sendgrid] error status=%d, body=%s", response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	log.Printf("[sendgrid] mail sent: status=%d to=%s order=%s", response.StatusCode, to, o.ID)
	return nil
}

func buildConfirmationBody(o orderdom.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order.\n\n")
	fmt.Fprintf(&b, "Order:  %s\n", o.ID)
	fmt.Fprintf(&b, "Placed: %s\n", o.PlacedAt().UTC().Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Status: %s\n\n", o.Status)

	// Map iteration order is not stable, sort for a deterministic body.
	keys := make([]string, 0, len(o.Items))
	for k := range o.Items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		it := o.Items[k]
		line := it.Title
		if it.Model != "" {
			line += " (" + it.Model + ")"
		}
		fmt.Fprintf(&b, "  %d x %s @ %.2f\n", it.Quantity, line, it.Price)
	}

	fmt.Fprintf(&b, "\nTotal: %.2f\n", o.TotalPrice)
	if o.Address != "" {
		fmt.Fprintf(&b, "Ship to: %s\n", o.Address)
	}
	fmt.Fprintf(&b, "Payment: %s\n", o.PaymentMethod)
	return b.String()
}
