package repository

import (
	"context"

	"gorm.io/gorm"

	"rentnest/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByTransactionID(ctx context.Context, tranID string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", tranID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error) {
	var out []domain.Payment
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// SaveGatewayError keeps the failed checkout attempt visible for support.
func (r *PaymentRepository) SaveGatewayError(ctx context.Context, tranID, message string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("transaction_id = ?", tranID).
		Update("gateway_error", message).Error
}

func (r *PaymentRepository) SaveReceiptURL(ctx context.Context, tranID, url string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("transaction_id = ?", tranID).
		Update("receipt_url", url).Error
}
