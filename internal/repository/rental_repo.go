package repository

import (
	"context"

	"gorm.io/gorm"

	"rentnest/internal/domain"
)

type RentalRepository struct {
	db *gorm.DB
}

func NewRentalRepository(db *gorm.DB) *RentalRepository {
	return &RentalRepository{db: db}
}

func (r *RentalRepository) ListByTenant(ctx context.Context, tenantID int64) ([]domain.Rental, error) {
	var out []domain.Rental
	if err := r.db.WithContext(ctx).
		Preload("Property").
		Where("tenant_id = ?", tenantID).
		Order("start_date DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
