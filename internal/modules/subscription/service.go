package subscription

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rentnest/internal/domain"
	"rentnest/internal/modules/payment"
	"rentnest/internal/notification"
	"rentnest/internal/repository"
)

var callbackStatuses = map[string]bool{
	"valid":     true,
	"failed":    true,
	"cancelled": true,
}

// Service sells credit packages through the same hosted checkout as rent
// payments. Credits are granted only when the gateway confirms.
type Service struct {
	db           *gorm.DB
	payments     *repository.PaymentRepository
	users        *repository.UserRepository
	gateway      payment.Gateway
	notifs       notification.Sender
	callbackBase string
	loggerf      func(format string, args ...interface{})
}

func NewService(db *gorm.DB, payments *repository.PaymentRepository, users *repository.UserRepository, gateway payment.Gateway, notifs notification.Sender, callbackBase string) *Service {
	return &Service{
		db:           db,
		payments:     payments,
		users:        users,
		gateway:      gateway,
		notifs:       notifs,
		callbackBase: callbackBase,
		loggerf:      log.Printf,
	}
}

// Purchase creates an inactive package plus its unpaid Payment row and
// returns the gateway redirect URL.
func (s *Service) Purchase(ctx context.Context, userID int64, plan string) (string, error) {
	planValue := domain.PackagePlan(plan)
	credits, ok := domain.PackageCredits[planValue]
	if !ok {
		return "", ErrInvalidPlan
	}
	amount := domain.PackagePrices[planValue]

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	pkg := &domain.CreditPackage{
		UserID:  userID,
		Plan:    planValue,
		Credits: credits,
		Amount:  amount,
	}
	if err := s.db.WithContext(ctx).Create(pkg).Error; err != nil {
		return "", err
	}

	packageID := pkg.ID
	pay := &domain.Payment{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		PackageID:     &packageID,
		Amount:        amount,
		StartDate:     time.Now(),
	}
	if err := s.payments.Create(ctx, pay); err != nil {
		return "", err
	}

	redirectURL, err := s.gateway.CreateSession(ctx, payment.SessionRequest{
		Amount:          amount,
		TransactionID:   pay.TransactionID,
		ProductName:     string(planValue) + " credit package",
		ProductCategory: "subscription",
		CustomerName:    user.Name,
		CustomerEmail:   user.Email,
		CustomerPhone:   user.Phone,
		CustomerAddress: user.Address,
		CustomerCity:    user.City,
		SuccessURL:      s.callbackBase + "/payment/subscription-status?status=valid",
		FailURL:         s.callbackBase + "/payment/subscription-status?status=failed",
		CancelURL:       s.callbackBase + "/payment/subscription-status?status=cancelled",
	})
	if err != nil {
		s.loggerf("gateway session failed tran_id=%s: %v", pay.TransactionID, err)
		if saveErr := s.payments.SaveGatewayError(ctx, pay.TransactionID, err.Error()); saveErr != nil {
			s.loggerf("saving gateway error failed tran_id=%s: %v", pay.TransactionID, saveErr)
		}
		return "", ErrGateway
	}

	return redirectURL, nil
}

var errAlreadyPaid = errors.New("payment already settled")

// HandleCallback confirms a package purchase: marks the payment paid,
// activates the package and grants its credits, all in one transaction.
// A repeated callback for the same transaction changes nothing.
func (s *Service) HandleCallback(ctx context.Context, status, tranID, cardType string) (string, error) {
	if !callbackStatuses[status] || tranID == "" {
		return "", ErrValidation
	}

	redirect := "/payment/" + status
	if status != "valid" {
		s.loggerf("subscription callback without settlement tran_id=%s status=%s", tranID, status)
		return redirect, nil
	}

	pay, err := s.payments.GetByTransactionID(ctx, tranID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if pay.PackageID == nil {
		return "", ErrNotFound
	}
	if pay.Paid {
		s.loggerf("subscription callback repeated tran_id=%s, ignoring", tranID)
		return redirect, nil
	}

	var pkg domain.CreditPackage

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked domain.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("transaction_id = ?", tranID).
			First(&locked).Error; err != nil {
			return err
		}
		if locked.Paid {
			return errAlreadyPaid
		}

		if err := tx.First(&pkg, "id = ?", *locked.PackageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		now := time.Now()
		if err := tx.Model(&domain.Payment{}).
			Where("transaction_id = ?", tranID).
			Updates(map[string]interface{}{
				"paid":           true,
				"payment_method": cardType,
				"paid_at":        now,
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.CreditPackage{}).
			Where("id = ?", pkg.ID).
			Update("active", true).Error; err != nil {
			return err
		}

		var user domain.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, "id = ?", pkg.UserID).Error; err != nil {
			return err
		}
		return tx.Model(&domain.User{}).
			Where("id = ?", user.ID).
			Update("credits", user.Credits+pkg.Credits).Error
	})
	if err != nil {
		if errors.Is(err, errAlreadyPaid) {
			s.loggerf("subscription callback lost settle race tran_id=%s, ignoring", tranID)
			return redirect, nil
		}
		return "", err
	}

	s.notifyActivatedAsync(pkg)

	return redirect, nil
}

func (s *Service) ListMyPackages(ctx context.Context, userID int64) ([]domain.CreditPackage, error) {
	var out []domain.CreditPackage
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) notifyActivatedAsync(pkg domain.CreditPackage) {
	if s.notifs == nil {
		return
	}
	go func() {
		ctx := context.Background()
		user, err := s.users.GetByID(ctx, pkg.UserID)
		if err != nil {
			s.loggerf("subscription notification skipped: load user %d: %v", pkg.UserID, err)
			return
		}
		if err := s.notifs.SubscriptionActivated(ctx, user, &pkg); err != nil {
			s.loggerf("subscription notification failed: user %d: %v", user.ID, err)
		}
	}()
}
