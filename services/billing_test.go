package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poise-app/poise_api/model"
	"github.com/poise-app/poise_api/shared"
)

func TestResolveTierDefaultsToFree(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, shared.TierFree, env.billing.ResolveTier("user-1"))
}

func TestResolveTierFromLocalSubscription(t *testing.T) {
	env := newTestEnv(t)
	env.setSubscription(t, "user-1", shared.TierPro, "active")

	assert.Equal(t, shared.TierPro, env.billing.ResolveTier("user-1"))
}

func TestResolveTierInactiveSubscriptionIsFree(t *testing.T) {
	env := newTestEnv(t)
	env.setSubscription(t, "user-1", shared.TierPro, "cancelled")

	assert.Equal(t, shared.TierFree, env.billing.ResolveTier("user-1"))
}

func TestResolveTierUnknownTierIsFree(t *testing.T) {
	env := newTestEnv(t)
	env.setSubscription(t, "user-1", "enterprise", "active")

	assert.Equal(t, shared.TierFree, env.billing.ResolveTier("user-1"))
}

func TestResolveTierPrefersSyncedMirror(t *testing.T) {
	env := newTestEnv(t)

	// An active mirror row answers on its own even when the user carries a
	// billing customer reference and no provider client is configured.
	require.NoError(t, env.db.Create(&model.Subscription{
		ID:                "sub-user-1",
		UserID:            "user-1",
		Tier:              shared.TierPlus,
		Status:            "active",
		BillingCustomerID: "cus_local_1",
	}).Error)

	require.Nil(t, env.billing.stripe)
	assert.Equal(t, shared.TierPlus, env.billing.ResolveTier("user-1"))
}

func TestResolveTierCaches(t *testing.T) {
	env := newTestEnv(t)
	env.setSubscription(t, "user-1", shared.TierPlus, "active")

	assert.Equal(t, shared.TierPlus, env.billing.ResolveTier("user-1"))

	// Flip the row under the cache; the stale tier holds until the TTL.
	require.NoError(t, env.db.Model(&model.Subscription{}).
		Where("user_id = ?", "user-1").
		Update("status", "cancelled").Error)

	assert.Equal(t, shared.TierPlus, env.billing.ResolveTier("user-1"))

	env.clock.Advance(tierCacheTTL + time.Second)
	assert.Equal(t, shared.TierFree, env.billing.ResolveTier("user-1"))
}

func TestResolveTierOverride(t *testing.T) {
	env := newTestEnv(t)
	env.billing.tierOverride = shared.TierPro

	assert.Equal(t, shared.TierPro, env.billing.ResolveTier("user-1"))
}
