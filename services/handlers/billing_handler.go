package handlers

import (
	"os"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/poise-app/poise_api/shared"
)

type BillingHandler struct {
	billingSvc    BillingServiceInterface
	webhookSecret string
}

func NewBillingHandler(billingSvc BillingServiceInterface) *BillingHandler {
	return &BillingHandler{
		billingSvc:    billingSvc,
		webhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
	}
}

// @Summary Billing webhook
// @Description Receive subscription lifecycle events from the billing provider
// @Tags billing
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Webhook signature"
// @Success 200 {object} shared.Response
// @Router /webhooks/billing [post]
func (h *BillingHandler) HandleWebhook(c *fiber.Ctx) error {
	event, err := webhook.ConstructEvent(c.Body(), c.Get("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		return shared.NewBadRequestError(err, "Invalid webhook signature")
	}

	switch event.Type {
	case "customer.subscription.created",
		"customer.subscription.updated",
		"customer.subscription.deleted":
		if err := h.applySubscriptionEvent(event); err != nil {
			return err
		}
	default:
		log.WithField("event_type", event.Type).Debug("Ignoring billing event")
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", nil)
}

func (h *BillingHandler) applySubscriptionEvent(event stripe.Event) error {
	var sub stripe.Subscription
	if err := shared.JSONUnmarshal(event.Data.Raw, &sub); err != nil {
		return shared.NewBadRequestError(err, "Invalid webhook payload")
	}

	// Checkout stamps the app user onto the subscription metadata.
	userID := sub.Metadata["user_id"]
	if userID == "" {
		log.WithField("subscription_id", sub.ID).Warn("Billing event without user_id metadata")
		return nil
	}

	status := string(sub.Status)
	if event.Type == "customer.subscription.deleted" {
		status = "cancelled"
	}

	var customerID string
	if sub.Customer != nil {
		customerID = sub.Customer.ID
	}

	return h.billingSvc.UpdateLocalSubscription(userID, subscriptionTier(&sub), status, customerID, sub.ID)
}

// subscriptionTier reads the tier off the subscribed price metadata. Webhook
// payloads carry the price inline but not the expanded product.
func subscriptionTier(sub *stripe.Subscription) string {
	if sub.Items == nil {
		return shared.TierFree
	}
	for _, item := range sub.Items.Data {
		if item.Price == nil {
			continue
		}
		if tier, ok := item.Price.Metadata["tier"]; ok && tier != "" {
			return tier
		}
	}
	return shared.TierFree
}
