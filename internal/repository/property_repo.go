package repository

import (
	"context"

	"gorm.io/gorm"

	"rentnest/internal/domain"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	var p domain.Property
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PropertyRepository) GetByIDWithOwner(ctx context.Context, id int64) (*domain.Property, error) {
	var p domain.Property
	if err := r.db.WithContext(ctx).Preload("Owner").First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PropertyRepository) ListPending(ctx context.Context) ([]domain.Property, error) {
	var out []domain.Property
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("status = ?", domain.PropertyPending).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatusFrom moves a property from one status to another in a single
// statement. Returns false when the property was not in the expected
// status, so concurrent transitions cannot double-apply.
func (r *PropertyRepository) UpdateStatusFrom(ctx context.Context, id int64, from, to domain.PropertyStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Property{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
