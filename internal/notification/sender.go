package notification

import (
	"context"

	"rentnest/internal/domain"
)

// Sender delivers transactional mail. Every call is best-effort: callers
// log a returned error and move on, it never affects the primary
// operation's result.
type Sender interface {
	BookingRequestReceived(ctx context.Context, owner *domain.User, property *domain.Property) error
	BookingDecision(ctx context.Context, tenant *domain.User, property *domain.Property, approved bool) error
	PaymentReceipt(ctx context.Context, tenant *domain.User, property *domain.Property, amount float64, receiptURL string) error
	SubscriptionActivated(ctx context.Context, user *domain.User, pkg *domain.CreditPackage) error
}
