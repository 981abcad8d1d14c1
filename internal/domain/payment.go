package domain

import "time"

// Payment is one hosted-checkout transaction. TransactionID is generated
// locally before the gateway is contacted and is the idempotency key for
// callbacks. Exactly one of BookingID/PackageID is set.
type Payment struct {
	ID            int64      `json:"id" gorm:"primaryKey"`
	TransactionID string     `json:"transaction_id" gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID        int64      `json:"user_id" gorm:"index;not null"`
	BookingID     *int64     `json:"booking_id,omitempty" gorm:"index"`
	PackageID     *int64     `json:"package_id,omitempty" gorm:"index"`
	RentalID      *int64     `json:"rental_id,omitempty"`
	Amount        float64    `json:"amount"`
	StartDate     time.Time  `json:"start_date"`
	Paid          bool       `json:"paid" gorm:"default:false;index"`
	PaymentMethod string     `json:"payment_method" gorm:"type:varchar(64)"`
	ReceiptURL    string     `json:"receipt_url" gorm:"type:text"`
	GatewayError  string     `json:"gateway_error,omitempty" gorm:"type:text"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
