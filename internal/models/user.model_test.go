package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSubscriptionStatus(t *testing.T) {
	for _, status := range []string{
		SubscriptionStatusInactive,
		SubscriptionStatusActive,
		SubscriptionStatusPastDue,
		SubscriptionStatusCanceled,
	} {
		assert.True(t, ValidSubscriptionStatus(status), status)
	}

	assert.False(t, ValidSubscriptionStatus("trialing"))
	assert.False(t, ValidSubscriptionStatus(""))
}

func TestValidSubscriptionTier(t *testing.T) {
	for _, tier := range []string{
		SubscriptionTierFree,
		SubscriptionTierBasic,
		SubscriptionTierPro,
		SubscriptionTierPremium,
	} {
		assert.True(t, ValidSubscriptionTier(tier), tier)
	}

	assert.False(t, ValidSubscriptionTier("enterprise"))
	assert.False(t, ValidSubscriptionTier(""))
}
