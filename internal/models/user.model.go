package models

import "time"

// Subscription statuses and tiers persisted on the user row. The payment
// provider owns the lifecycle; we only record what it tells us.
const (
	SubscriptionStatusInactive = "inactive"
	SubscriptionStatusActive   = "active"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"

	SubscriptionTierFree    = "free"
	SubscriptionTierBasic   = "basic"
	SubscriptionTierPro     = "pro"
	SubscriptionTierPremium = "premium"
)

// User identity is issued by the external auth provider, so ID is
// caller-supplied rather than generated.
type User struct {
	ID                    string     `gorm:"type:varchar(64);primaryKey"                json:"id"`
	Email                 *string    `gorm:"type:varchar(255);uniqueIndex"              json:"email"`
	FirstName             *string    `gorm:"type:varchar(255)"                          json:"firstName"`
	LastName              *string    `gorm:"type:varchar(255)"                          json:"lastName"`
	ProfileImageURL       *string    `gorm:"type:varchar(1024)"                         json:"profileImageUrl"`
	StripeCustomerID      *string    `gorm:"type:varchar(255);uniqueIndex"              json:"stripeCustomerId"`
	StripeSubscriptionID  *string    `gorm:"type:varchar(255)"                          json:"stripeSubscriptionId"`
	SubscriptionStatus    string     `gorm:"type:varchar(20);not null;default:inactive" json:"subscriptionStatus"`
	SubscriptionTier      string     `gorm:"type:varchar(20);not null;default:free"     json:"subscriptionTier"`
	SubscriptionExpiresAt *time.Time `json:"subscriptionExpiresAt"`
	CreatedAt             time.Time  `gorm:"autoCreateTime"                             json:"createdAt"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime"                             json:"updatedAt"`
}

// UpsertUserRequest carries the identity fields the auth provider supplies on
// login. Subscription fields are server-owned and absent here.
type UpsertUserRequest struct {
	ID              string  `json:"id"`
	Email           *string `json:"email"`
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

// UpdateSubscriptionRequest records the payment provider's verdict.
type UpdateSubscriptionRequest struct {
	StripeCustomerID     *string    `json:"stripeCustomerId"`
	StripeSubscriptionID *string    `json:"stripeSubscriptionId"`
	Status               string     `json:"status"`
	Tier                 string     `json:"tier"`
	ExpiresAt            *time.Time `json:"expiresAt"`
}

func ValidSubscriptionStatus(status string) bool {
	switch status {
	case SubscriptionStatusInactive, SubscriptionStatusActive,
		SubscriptionStatusPastDue, SubscriptionStatusCanceled:
		return true
	}
	return false
}

func ValidSubscriptionTier(tier string) bool {
	switch tier {
	case SubscriptionTierFree, SubscriptionTierBasic,
		SubscriptionTierPro, SubscriptionTierPremium:
		return true
	}
	return false
}
