package services

import (
	"context"
	"os"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/poise-app/poise_api/model"
	"github.com/poise-app/poise_api/services/repositories"
	"github.com/poise-app/poise_api/shared"
)

// BillingService resolves a user's subscription tier. The locally synced
// subscription mirror answers first; the provider's product metadata is the
// fallback when the mirror cannot vouch for a tier. Every resolution path
// degrades to the free tier, never to an error: a billing outage must not
// block practice.
type BillingService struct {
	appContext.DefaultService

	sqlSvc   *PostgresService
	redisSvc *RedisService

	subRepo *repositories.SubscriptionRepository
	stripe  *client.API
	cache   tierCache

	tierOverride string
}

const BILLING_SVC = "billing_svc"

const tierCacheTTL = 5 * time.Minute

// tierCache decouples tier memoization from redis so tests can use the
// in-memory variant.
type tierCache interface {
	GetTier(ctx context.Context, userID string) (string, bool)
	SetTier(ctx context.Context, userID, tier string)
}

func (svc BillingService) Id() string {
	return BILLING_SVC
}

func (svc *BillingService) Configure(ctx *appContext.Context) error {
	// The override is a dev/support convenience; in production it binds only
	// when explicitly armed.
	if os.Getenv("APP_ENV") != "production" || os.Getenv("BILLING_MANUAL_OVERRIDE") == "true" {
		svc.tierOverride = os.Getenv("TIER_OVERRIDE")
	}

	if key := os.Getenv("STRIPE_SECRET_KEY"); key != "" {
		sc := &client.API{}
		sc.Init(key, nil)
		svc.stripe = sc
	} else {
		log.Warn("STRIPE_SECRET_KEY not set, tier resolution will use local subscriptions only")
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *BillingService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.subRepo = repositories.NewSubscriptionRepository(svc.sqlSvc.Db())
	svc.cache = &redisTierCache{redis: svc.redisSvc}
	return nil
}

// ResolveTier returns free, plus or pro for the user. Results are cached for
// five minutes; TIER_OVERRIDE short-circuits everything for local testing.
func (svc *BillingService) ResolveTier(userID string) string {
	if svc.tierOverride != "" {
		return svc.tierOverride
	}

	ctx := context.Background()
	if tier, ok := svc.cache.GetTier(ctx, userID); ok {
		return tier
	}

	tier := svc.resolveTierUncached(userID)
	svc.cache.SetTier(ctx, userID, tier)
	return tier
}

func (svc *BillingService) resolveTierUncached(userID string) string {
	sub, err := svc.subRepo.GetSubscription(userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Subscription lookup failed, treating as free tier")
		return shared.TierFree
	}
	if sub == nil {
		return shared.TierFree
	}

	// An active synced mirror row answers without a provider round-trip; the
	// direct API lookup is the fallback when the mirror can't vouch for a tier.
	if sub.Status == "active" && validTier(sub.Tier) {
		return sub.Tier
	}

	if sub.BillingCustomerID != "" && svc.stripe != nil {
		if tier, ok := svc.tierFromProvider(sub.BillingCustomerID); ok {
			return tier
		}
	}

	return shared.TierFree
}

// tierFromProvider reads the tier from the active subscription's product
// metadata. Any failure reports not-ok so the caller can fall back.
func (svc *BillingService) tierFromProvider(customerID string) (string, bool) {
	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String(string(stripe.SubscriptionStatusActive)),
	}
	params.AddExpand("data.items.data.price.product")

	iter := svc.stripe.Subscriptions.List(params)
	for iter.Next() {
		s := iter.Subscription()
		if s.Items == nil {
			continue
		}
		for _, item := range s.Items.Data {
			if item.Price == nil || item.Price.Product == nil {
				continue
			}
			if tier, ok := item.Price.Product.Metadata["tier"]; ok && validTier(tier) {
				return tier, true
			}
		}
	}
	if err := iter.Err(); err != nil {
		log.WithError(err).WithField("customer_id", customerID).Warn("Provider subscription lookup failed")
	}

	return "", false
}

// UpdateLocalSubscription upserts the local mirror and drops the cached tier
// so the next resolution sees the change immediately.
func (svc *BillingService) UpdateLocalSubscription(userID, tier, status, customerID, subscriptionID string) error {
	err := svc.subRepo.UpsertSubscription(&model.Subscription{
		UserID:                userID,
		Tier:                  tier,
		Status:                status,
		BillingCustomerID:     customerID,
		BillingSubscriptionID: subscriptionID,
	})
	if err != nil {
		return svc.sqlSvc.HandleError(err)
	}

	if rc, ok := svc.cache.(*redisTierCache); ok {
		rc.Invalidate(context.Background(), userID)
	}
	return nil
}

func validTier(tier string) bool {
	switch tier {
	case shared.TierFree, shared.TierPlus, shared.TierPro:
		return true
	}
	return false
}

type redisTierCache struct {
	redis *RedisService
}

func tierCacheKey(userID string) string {
	return "tier:" + userID
}

func (c *redisTierCache) GetTier(ctx context.Context, userID string) (string, bool) {
	tier, err := c.redis.Get(ctx, tierCacheKey(userID))
	if err != nil || tier == "" {
		return "", false
	}
	return tier, true
}

func (c *redisTierCache) SetTier(ctx context.Context, userID, tier string) {
	if err := c.redis.Set(ctx, tierCacheKey(userID), tier, tierCacheTTL); err != nil {
		log.WithError(err).Warn("Failed to cache subscription tier")
	}
}

func (c *redisTierCache) Invalidate(ctx context.Context, userID string) {
	if err := c.redis.Delete(ctx, tierCacheKey(userID)); err != nil {
		log.WithError(err).Warn("Failed to invalidate cached subscription tier")
	}
}

// memoryTierCache is the redis-free variant used by tests.
type memoryTierCache struct {
	entries map[string]memoryTierEntry
	clock   shared.Clock
}

type memoryTierEntry struct {
	tier      string
	expiresAt time.Time
}

func newMemoryTierCache(clock shared.Clock) *memoryTierCache {
	return &memoryTierCache{
		entries: map[string]memoryTierEntry{},
		clock:   clock,
	}
}

func (c *memoryTierCache) GetTier(_ context.Context, userID string) (string, bool) {
	entry, ok := c.entries[userID]
	if !ok || c.clock.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.tier, true
}

func (c *memoryTierCache) SetTier(_ context.Context, userID, tier string) {
	c.entries[userID] = memoryTierEntry{
		tier:      tier,
		expiresAt: c.clock.Now().Add(tierCacheTTL),
	}
}
