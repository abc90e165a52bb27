package entity

import "time"

// Subscription plans a provider can put a storefront on.
const (
	PlanBasic   = "basic"
	PlanPremium = "premium"
	PlanElite   = "elite"
)

type Subscription struct {
	ID           string `json:"id" firestore:"id"`
	StorefrontID string `json:"storefront_id" firestore:"storefrontId"`
	OwnerID      string `json:"owner_id" firestore:"ownerId"`
	Plan         string `json:"plan" firestore:"plan"`
	Status       string `json:"status" firestore:"status"` // "active", "cancelled", "expired"

	PeriodStart time.Time  `json:"period_start" firestore:"periodStart"`
	PeriodEnd   time.Time  `json:"period_end" firestore:"periodEnd"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty" firestore:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Invoice is the billing record issued for a subscription period.
type Invoice struct {
	ID             string     `json:"id" firestore:"id"`
	SubscriptionID string     `json:"subscription_id" firestore:"subscriptionId"`
	StorefrontID   string     `json:"storefront_id" firestore:"storefrontId"`
	Amount         float64    `json:"amount" firestore:"amount"`
	Currency       string     `json:"currency" firestore:"currency"`
	Status         string     `json:"status" firestore:"status"` // "open", "paid", "void"
	IssuedAt       time.Time  `json:"issued_at" firestore:"issuedAt"`
	PaidAt         *time.Time `json:"paid_at,omitempty" firestore:"paidAt,omitempty"`
}
