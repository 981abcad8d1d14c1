package notification

import (
	"context"
	"fmt"

	mailjet "github.com/mailjet/mailjet-apiv3-go"

	"rentnest/internal/domain"
)

// MailjetSender sends transactional mail through the Mailjet v3.1 API.
type MailjetSender struct {
	client    *mailjet.Client
	fromEmail string
	fromName  string
}

func NewMailjetSender(apiKey, secretKey, fromEmail, fromName string) *MailjetSender {
	return &MailjetSender{
		client:    mailjet.NewMailjetClient(apiKey, secretKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *MailjetSender) BookingRequestReceived(ctx context.Context, owner *domain.User, property *domain.Property) error {
	subject := fmt.Sprintf("New booking request for %s", property.Title)
	body := fmt.Sprintf(
		"Hello %s,\n\nA tenant has requested to rent your property %q (%s, %s).\n"+
			"Log in to your dashboard to approve or reject the request.\n",
		owner.Name, property.Title, property.Address, property.City,
	)
	return s.send(ctx, owner, subject, body)
}

func (s *MailjetSender) BookingDecision(ctx context.Context, tenant *domain.User, property *domain.Property, approved bool) error {
	decision := "rejected"
	extra := ""
	if approved {
		decision = "approved"
		extra = " You can now proceed to payment from your dashboard."
	}
	subject := fmt.Sprintf("Your booking request was %s", decision)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour request for %q (%s, %s) was %s.%s\n",
		tenant.Name, property.Title, property.Address, property.City, decision, extra,
	)
	return s.send(ctx, tenant, subject, body)
}

func (s *MailjetSender) PaymentReceipt(ctx context.Context, tenant *domain.User, property *domain.Property, amount float64, receiptURL string) error {
	subject := fmt.Sprintf("Payment received for %s", property.Title)
	body := fmt.Sprintf(
		"Hello %s,\n\nWe received your payment of %.2f for %q (%s, %s).\n",
		tenant.Name, amount, property.Title, property.Address, property.City,
	)
	if receiptURL != "" {
		body += fmt.Sprintf("Your receipt: %s\n", receiptURL)
	}
	return s.send(ctx, tenant, subject, body)
}

func (s *MailjetSender) SubscriptionActivated(ctx context.Context, user *domain.User, pkg *domain.CreditPackage) error {
	subject := fmt.Sprintf("Your %s package is active", pkg.Plan)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour %s package is now active and %d credits were added to your account.\n",
		user.Name, pkg.Plan, pkg.Credits,
	)
	return s.send(ctx, user, subject, body)
}

func (s *MailjetSender) send(ctx context.Context, to *domain.User, subject, body string) error {
	if to == nil || to.Email == "" {
		return fmt.Errorf("mailjet: recipient email is empty")
	}

	messages := mailjet.MessagesV31{
		Info: []mailjet.InfoMessagesV31{
			{
				From: &mailjet.RecipientV31{
					Email: s.fromEmail,
					Name:  s.fromName,
				},
				To: &mailjet.RecipientsV31{
					{Email: to.Email, Name: to.Name},
				},
				Subject:  subject,
				TextPart: body,
			},
		},
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.client.SendMailV31(&messages); err != nil {
		return fmt.Errorf("mailjet: send %q to %s: %w", subject, to.Email, err)
	}
	return nil
}
