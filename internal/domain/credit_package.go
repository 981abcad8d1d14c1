package domain

import "time"

type PackagePlan string

const (
	PlanBasic    PackagePlan = "basic"
	PlanStandard PackagePlan = "standard"
	PlanPremium  PackagePlan = "premium"
)

// PackageCredits maps a plan to the credits granted when its payment
// is confirmed.
var PackageCredits = map[PackagePlan]int64{
	PlanBasic:    10,
	PlanStandard: 50,
	PlanPremium:  100,
}

// PackagePrices is the checkout amount per plan.
var PackagePrices = map[PackagePlan]float64{
	PlanBasic:    200,
	PlanStandard: 800,
	PlanPremium:  1400,
}

// CreditPackage is one package purchase. Active flips to true together
// with the credit grant when the gateway confirms the payment.
type CreditPackage struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id" gorm:"index;not null"`
	Plan      PackagePlan `json:"plan" gorm:"type:varchar(20);not null"`
	Credits   int64       `json:"credits"`
	Amount    float64     `json:"amount"`
	Active    bool        `json:"active" gorm:"default:false"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
