package booking

import (
	"context"

	"rentnest/internal/domain"
)

type RequestRepository interface {
	Create(ctx context.Context, req *domain.BookingRequest) error
	GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error)
	GetByTenantAndProperty(ctx context.Context, tenantID, propertyID int64) (*domain.BookingRequest, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]domain.BookingRequest, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.BookingRequest, error)
	UpdateStatusIfPending(ctx context.Context, id int64, status domain.BookingRequestStatus) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type PropertyReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
