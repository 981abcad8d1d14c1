package notification

import (
	"context"
	"log"

	"rentnest/internal/domain"
)

// LogSender is used when Mailjet credentials are not configured. It only
// logs what would have been sent, so local and test runs need no mail
// provider.
type LogSender struct{}

func (LogSender) BookingRequestReceived(ctx context.Context, owner *domain.User, property *domain.Property) error {
	log.Printf("notification skipped type=booking_request_received to=%s property_id=%d", owner.Email, property.ID)
	return nil
}

func (LogSender) BookingDecision(ctx context.Context, tenant *domain.User, property *domain.Property, approved bool) error {
	log.Printf("notification skipped type=booking_decision to=%s property_id=%d approved=%t", tenant.Email, property.ID, approved)
	return nil
}

func (LogSender) PaymentReceipt(ctx context.Context, tenant *domain.User, property *domain.Property, amount float64, receiptURL string) error {
	log.Printf("notification skipped type=payment_receipt to=%s property_id=%d amount=%.2f", tenant.Email, property.ID, amount)
	return nil
}

func (LogSender) SubscriptionActivated(ctx context.Context, user *domain.User, pkg *domain.CreditPackage) error {
	log.Printf("notification skipped type=subscription_activated to=%s plan=%s credits=%d", user.Email, pkg.Plan, pkg.Credits)
	return nil
}
