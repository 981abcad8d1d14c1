package repository

import (
	"context"

	"gorm.io/gorm"

	"rentnest/internal/domain"
)

type BookingRequestRepository struct {
	db *gorm.DB
}

func NewBookingRequestRepository(db *gorm.DB) *BookingRequestRepository {
	return &BookingRequestRepository{db: db}
}

func (r *BookingRequestRepository) Create(ctx context.Context, req *domain.BookingRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *BookingRequestRepository) GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	var req domain.BookingRequest
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *BookingRequestRepository) GetByTenantAndProperty(ctx context.Context, tenantID, propertyID int64) (*domain.BookingRequest, error) {
	var req domain.BookingRequest
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND property_id = ?", tenantID, propertyID).
		First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *BookingRequestRepository) ListByTenant(ctx context.Context, tenantID int64) ([]domain.BookingRequest, error) {
	var out []domain.BookingRequest
	if err := r.db.WithContext(ctx).
		Preload("Property").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingRequestRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.BookingRequest, error) {
	var out []domain.BookingRequest
	if err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Tenant").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatusIfPending is the single path for deciding a request. The
// status guard in the WHERE clause makes a second decision a no-op.
func (r *BookingRequestRepository) UpdateStatusIfPending(ctx context.Context, id int64, status domain.BookingRequestStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.BookingRequest{}).
		Where("id = ? AND status = ?", id, domain.RequestPending).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *BookingRequestRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.BookingRequest{}, "id = ?", id).Error
}
