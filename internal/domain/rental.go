package domain

import "time"

// Rental is the realized tenancy, created exactly once when a rent
// payment is confirmed. Immutable afterwards.
type Rental struct {
	ID         int64     `json:"id"`
	TenantID   int64     `json:"tenant_id" gorm:"index;not null"`
	PropertyID int64     `json:"property_id" gorm:"index;not null"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	CreatedAt  time.Time `json:"created_at"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}
