package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"

	"launchpit/internal/middleware"
	"launchpit/internal/services"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"gorm.io/gorm"
)

const webhookBodyLimit = 65536

type BillingHandler struct {
	billing *services.BillingService
}

func NewBillingHandler(db *gorm.DB) *BillingHandler {
	return &BillingHandler{
		billing: services.NewBillingService(db),
	}
}

// Checkout returns a Stripe-hosted subscription checkout URL for the current
// user.
func (h *BillingHandler) Checkout(c *gin.Context) {
	user := middleware.CurrentUser(c)

	url, err := h.billing.CreateCheckoutSession(user.Email)
	if err != nil {
		log.Printf("Failed to create checkout session for %s: %v", user.Email, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment provider unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Webhook receives signed Stripe events. The signature is verified against
// the configured signing secret before anything in the payload is trusted;
// an unverifiable signature is rejected with no state change. Unrecognized
// event kinds are acknowledged and ignored.
func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, webhookBodyLimit))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(payload,
		c.GetHeader("Stripe-Signature"),
		os.Getenv("STRIPE_WEBHOOK_SIGNING_SECRET"),
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		log.Printf("Stripe webhook signature verification failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event payload"})
			return
		}

		email := session.CustomerEmail
		if email == "" && session.CustomerDetails != nil {
			email = session.CustomerDetails.Email
		}
		customerID := ""
		if session.Customer != nil {
			customerID = session.Customer.ID
		}

		if err := h.billing.ApplyCheckoutCompleted(email, customerID); err != nil {
			AbortWithError(c, err)
			return
		}

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event payload"})
			return
		}

		customerID := ""
		if sub.Customer != nil {
			customerID = sub.Customer.ID
		}

		if err := h.billing.ApplySubscriptionCancelled(customerID); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	c.Status(http.StatusOK)
}
