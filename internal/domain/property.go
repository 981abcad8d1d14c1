package domain

import "time"

type PropertyStatus string

const (
	PropertyPending   PropertyStatus = "pending"
	PropertyAvailable PropertyStatus = "available"
	PropertyRejected  PropertyStatus = "rejected"
	PropertyRented    PropertyStatus = "rented"
)

type Property struct {
	ID            int64          `json:"id"`
	OwnerID       int64          `json:"owner_id" validate:"required"`
	Title         string         `json:"title" validate:"required"`
	Description   string         `json:"description,omitempty"`
	Address       string         `json:"address"`
	City          string         `json:"city"`
	Price         float64        `json:"price" validate:"required,gt=0"`
	Status        PropertyStatus `json:"status"`
	AvailableFrom time.Time      `json:"available_from"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

// PropertyUnlock records that a tenant paid credits to see the owner's
// contact details for one property. One row per (user, property), ever.
type PropertyUnlock struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id" gorm:"uniqueIndex:idx_unlock_user_property"`
	PropertyID int64     `json:"property_id" gorm:"uniqueIndex:idx_unlock_user_property"`
	CreatedAt  time.Time `json:"created_at"`
}
