package booking

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"rentnest/internal/domain"
	"rentnest/internal/notification"
	"rentnest/internal/repository"
)

type Service struct {
	requests   RequestRepository
	properties PropertyReader
	users      UserReader
	notifs     notification.Sender
	loggerf    func(format string, args ...interface{})
}

func NewService(requests RequestRepository, properties PropertyReader, users UserReader, notifs notification.Sender) *Service {
	return &Service{
		requests:   requests,
		properties: properties,
		users:      users,
		notifs:     notifs,
		loggerf:    log.Printf,
	}
}

// CreateRequest registers a tenant's interest in a property. A rejected
// request for the same pair blocks forever, any other existing request
// blocks until it is cancelled.
func (s *Service) CreateRequest(ctx context.Context, tenantID, propertyID int64) (*domain.BookingRequest, error) {
	if tenantID <= 0 || propertyID <= 0 {
		return nil, ErrValidation
	}

	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if property.OwnerID == tenantID {
		return nil, ErrForbidden
	}
	if property.Status != domain.PropertyAvailable {
		return nil, ErrInvalidState
	}

	if existing, err := s.requests.GetByTenantAndProperty(ctx, tenantID, propertyID); err == nil {
		if existing.Status == domain.RequestRejected {
			return nil, ErrAlreadyDeclined
		}
		return nil, ErrDuplicateRequest
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	req := &domain.BookingRequest{
		PropertyID: propertyID,
		TenantID:   tenantID,
		OwnerID:    property.OwnerID,
		Status:     domain.RequestPending,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		// Concurrent double-submission lands here through the
		// (tenant_id, property_id) unique index.
		if repository.IsUniqueViolation(err) {
			if existing, lookupErr := s.requests.GetByTenantAndProperty(ctx, tenantID, propertyID); lookupErr == nil && existing.Status == domain.RequestRejected {
				return nil, ErrAlreadyDeclined
			}
			return nil, ErrDuplicateRequest
		}
		return nil, err
	}

	s.notifyOwnerAsync(property)

	return req, nil
}

// CancelRequest removes the tenant's own still-pending request.
func (s *Service) CancelRequest(ctx context.Context, tenantID, requestID int64) error {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if req.TenantID != tenantID {
		return ErrForbidden
	}
	if req.Status != domain.RequestPending {
		return ErrInvalidState
	}
	return s.requests.Delete(ctx, requestID)
}

// Decide applies the owner's one-shot approval or rejection.
func (s *Service) Decide(ctx context.Context, ownerID, requestID int64, decision domain.BookingRequestStatus) (*domain.BookingRequest, error) {
	if decision != domain.RequestApproved && decision != domain.RequestRejected {
		return nil, ErrValidation
	}

	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	if req.Status != domain.RequestPending {
		return nil, ErrInvalidState
	}

	changed, err := s.requests.UpdateStatusIfPending(ctx, requestID, decision)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, ErrInvalidState
	}
	req.Status = decision

	s.notifyTenantAsync(req, decision == domain.RequestApproved)

	return req, nil
}

func (s *Service) ListForTenant(ctx context.Context, tenantID int64) ([]domain.BookingRequest, error) {
	return s.requests.ListByTenant(ctx, tenantID)
}

func (s *Service) ListForOwner(ctx context.Context, ownerID int64) ([]domain.BookingRequest, error) {
	return s.requests.ListByOwner(ctx, ownerID)
}

func (s *Service) notifyOwnerAsync(property *domain.Property) {
	if s.notifs == nil {
		return
	}
	go func() {
		ctx := context.Background()
		owner, err := s.users.GetByID(ctx, property.OwnerID)
		if err != nil {
			s.loggerf("booking notification skipped: load owner %d: %v", property.OwnerID, err)
			return
		}
		if err := s.notifs.BookingRequestReceived(ctx, owner, property); err != nil {
			s.loggerf("booking notification failed: owner %d: %v", owner.ID, err)
		}
	}()
}

func (s *Service) notifyTenantAsync(req *domain.BookingRequest, approved bool) {
	if s.notifs == nil {
		return
	}
	go func() {
		ctx := context.Background()
		tenant, err := s.users.GetByID(ctx, req.TenantID)
		if err != nil {
			s.loggerf("decision notification skipped: load tenant %d: %v", req.TenantID, err)
			return
		}
		property, err := s.properties.GetByID(ctx, req.PropertyID)
		if err != nil {
			s.loggerf("decision notification skipped: load property %d: %v", req.PropertyID, err)
			return
		}
		if err := s.notifs.BookingDecision(ctx, tenant, property, approved); err != nil {
			s.loggerf("decision notification failed: tenant %d: %v", tenant.ID, err)
		}
	}()
}
