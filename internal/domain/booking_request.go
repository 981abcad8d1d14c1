package domain

import "time"

type BookingRequestStatus string

const (
	RequestPending  BookingRequestStatus = "pending"
	RequestApproved BookingRequestStatus = "approved"
	RequestRejected BookingRequestStatus = "rejected"
)

// BookingRequest is a tenant's interest in renting a property. Rejected
// rows are kept so the (tenant, property) unique index also blocks
// re-requesting after a decline.
type BookingRequest struct {
	ID         int64                `json:"id"`
	PropertyID int64                `json:"property_id" gorm:"uniqueIndex:idx_request_tenant_property"`
	TenantID   int64                `json:"tenant_id" gorm:"uniqueIndex:idx_request_tenant_property"`
	OwnerID    int64                `json:"owner_id"`
	Status     BookingRequestStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Tenant   *User     `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}
