package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rentnest/internal/domain"
	"rentnest/internal/modules/catalog"
	"rentnest/internal/notification"
	"rentnest/internal/pkg/receipt"
	"rentnest/internal/repository"
)

const dateLayout = "2006-01-02"

// Uploader stores a rendered receipt and returns its public URL.
type Uploader interface {
	UploadImage(ctx context.Context, publicID string, data []byte) (string, error)
}

var callbackStatuses = map[string]bool{
	"valid":     true,
	"failed":    true,
	"cancelled": true,
}

type Service struct {
	db           *gorm.DB
	payments     *repository.PaymentRepository
	requests     *repository.BookingRequestRepository
	properties   *repository.PropertyRepository
	users        *repository.UserRepository
	rentals      *repository.RentalRepository
	gateway      Gateway
	notifs       notification.Sender
	uploader     Uploader
	cache        *catalog.PropertyCache
	callbackBase string
	loggerf      func(format string, args ...interface{})
}

type Deps struct {
	DB           *gorm.DB
	Payments     *repository.PaymentRepository
	Requests     *repository.BookingRequestRepository
	Properties   *repository.PropertyRepository
	Users        *repository.UserRepository
	Rentals      *repository.RentalRepository
	Gateway      Gateway
	Notifs       notification.Sender
	Uploader     Uploader
	Cache        *catalog.PropertyCache
	CallbackBase string
}

func NewService(deps Deps) *Service {
	return &Service{
		db:           deps.DB,
		payments:     deps.Payments,
		requests:     deps.Requests,
		properties:   deps.Properties,
		users:        deps.Users,
		rentals:      deps.Rentals,
		gateway:      deps.Gateway,
		notifs:       deps.Notifs,
		uploader:     deps.Uploader,
		cache:        deps.Cache,
		callbackBase: deps.CallbackBase,
		loggerf:      log.Printf,
	}
}

// Initiate opens a hosted checkout session for an approved booking and
// returns the redirect URL. The Payment row is created before the
// gateway is contacted and stays behind in unpaid state if the gateway
// call fails, so support can reconcile abandoned checkouts.
func (s *Service) Initiate(ctx context.Context, tenantID, propertyID int64, startDateStr string) (string, error) {
	startDate, err := time.Parse(dateLayout, startDateStr)
	if err != nil {
		return "", ErrValidation
	}

	req, err := s.requests.GetByTenantAndProperty(ctx, tenantID, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if req.Status != domain.RequestApproved {
		return "", ErrInvalidState
	}

	property, err := s.properties.GetByIDWithOwner(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if startDate.Before(property.AvailableFrom) {
		return "", ErrValidation
	}

	tenant, err := s.users.GetByID(ctx, tenantID)
	if err != nil {
		return "", err
	}

	bookingID := req.ID
	payment := &domain.Payment{
		TransactionID: uuid.NewString(),
		UserID:        tenantID,
		BookingID:     &bookingID,
		Amount:        property.Price,
		StartDate:     startDate,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return "", err
	}

	ownerAddress := ""
	ownerCity := ""
	if property.Owner != nil {
		ownerAddress = property.Owner.Address
		ownerCity = property.Owner.City
	}

	redirectURL, err := s.gateway.CreateSession(ctx, SessionRequest{
		Amount:          property.Price,
		TransactionID:   payment.TransactionID,
		ProductName:     property.Title,
		ProductCategory: "rent",
		CustomerName:    tenant.Name,
		CustomerEmail:   tenant.Email,
		CustomerPhone:   tenant.Phone,
		CustomerAddress: ownerAddress,
		CustomerCity:    ownerCity,
		SuccessURL:      s.callbackBase + "/payment?status=valid",
		FailURL:         s.callbackBase + "/payment?status=failed",
		CancelURL:       s.callbackBase + "/payment?status=cancelled",
	})
	if err != nil {
		s.loggerf("gateway session failed tran_id=%s: %v", payment.TransactionID, err)
		if saveErr := s.payments.SaveGatewayError(ctx, payment.TransactionID, err.Error()); saveErr != nil {
			s.loggerf("saving gateway error failed tran_id=%s: %v", payment.TransactionID, saveErr)
		}
		return "", ErrGateway
	}

	return redirectURL, nil
}

// errAlreadyPaid aborts the confirmation transaction when a gateway
// retry arrives after the payment was already settled.
var errAlreadyPaid = errors.New("payment already settled")

// HandleCallback processes the gateway's server-to-server notification
// for a rent payment and returns the user-facing redirect path. A repeat
// call for an already-paid transaction is a no-op success.
func (s *Service) HandleCallback(ctx context.Context, status, tranID, cardType string) (string, error) {
	if !callbackStatuses[status] || tranID == "" {
		return "", ErrValidation
	}

	redirect := "/payment/" + status
	if status != "valid" {
		s.loggerf("payment callback without settlement tran_id=%s status=%s", tranID, status)
		return redirect, nil
	}

	payment, err := s.payments.GetByTransactionID(ctx, tranID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if payment.BookingID == nil {
		return "", ErrNotFound
	}
	if payment.Paid {
		s.loggerf("payment callback repeated tran_id=%s, ignoring", tranID)
		return redirect, nil
	}

	var (
		booking domain.BookingRequest
		rental  domain.Rental
	)

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

		if err := tx.Preload("Property").Preload("Tenant").
			First(&booking, "id = ?", *locked.BookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		rental = domain.Rental{
			TenantID:   booking.TenantID,
			PropertyID: booking.PropertyID,
			StartDate:  locked.StartDate,
			EndDate:    locked.StartDate.AddDate(0, 1, 0),
		}
		if err := tx.Create(&rental).Error; err != nil {
			return err
		}

		res := tx.Model(&domain.Property{}).
			Where("id = ? AND status = ?", booking.PropertyID, domain.PropertyAvailable).
			Update("status", domain.PropertyRented)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			s.loggerf("property %d was not available while settling tran_id=%s", booking.PropertyID, tranID)
		}

		now := time.Now()
		return tx.Model(&domain.Payment{}).
			Where("transaction_id = ?", tranID).
			Updates(map[string]interface{}{
				"paid":           true,
				"payment_method": cardType,
				"rental_id":      rental.ID,
				"paid_at":        now,
			}).Error
	})
	if err != nil {
		if errors.Is(err, errAlreadyPaid) {
			s.loggerf("payment callback lost settle race tran_id=%s, ignoring", tranID)
			return redirect, nil
		}
		return "", err
	}

	s.cache.Invalidate(ctx, booking.PropertyID)
	s.finalizeReceipt(ctx, payment, &booking, &rental, cardType)

	return redirect, nil
}

// finalizeReceipt renders, uploads and mails the receipt after the
// settlement transaction committed. Failures are logged and swallowed.
func (s *Service) finalizeReceipt(ctx context.Context, payment *domain.Payment, booking *domain.BookingRequest, rental *domain.Rental, cardType string) {
	if booking.Property == nil || booking.Tenant == nil {
		s.loggerf("receipt skipped tran_id=%s: booking details incomplete", payment.TransactionID)
		return
	}

	owner, err := s.users.GetByID(ctx, booking.OwnerID)
	if err != nil {
		s.loggerf("receipt skipped tran_id=%s: load owner: %v", payment.TransactionID, err)
		return
	}

	receiptURL := ""
	img, err := receipt.Render(receipt.Data{
		TransactionID:   payment.TransactionID,
		PaymentMethod:   cardType,
		Amount:          payment.Amount,
		PaidAt:          time.Now(),
		TenantName:      booking.Tenant.Name,
		TenantNID:       booking.Tenant.NIDNumber,
		OwnerName:       owner.Name,
		OwnerNID:        owner.NIDNumber,
		PropertyTitle:   booking.Property.Title,
		PropertyAddress: booking.Property.Address,
		PropertyCity:    booking.Property.City,
		StartDate:       rental.StartDate,
		EndDate:         rental.EndDate,
	})
	if err != nil {
		s.loggerf("receipt render failed tran_id=%s: %v", payment.TransactionID, err)
	} else if s.uploader != nil {
		url, err := s.uploader.UploadImage(ctx, fmt.Sprintf("receipt-%s", payment.TransactionID), img)
		if err != nil {
			s.loggerf("receipt upload failed tran_id=%s: %v", payment.TransactionID, err)
		} else {
			receiptURL = url
			if err := s.payments.SaveReceiptURL(ctx, payment.TransactionID, url); err != nil {
				s.loggerf("receipt url save failed tran_id=%s: %v", payment.TransactionID, err)
			}
		}
	}

	if s.notifs != nil {
		if err := s.notifs.PaymentReceipt(ctx, booking.Tenant, booking.Property, payment.Amount, receiptURL); err != nil {
			s.loggerf("receipt email failed tran_id=%s: %v", payment.TransactionID, err)
		}
	}
}

func (s *Service) ListMyPayments(ctx context.Context, userID int64) ([]domain.Payment, error) {
	return s.payments.ListByUser(ctx, userID)
}

func (s *Service) ListMyRentals(ctx context.Context, tenantID int64) ([]domain.Rental, error) {
	return s.rentals.ListByTenant(ctx, tenantID)
}
