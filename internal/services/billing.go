package services

import (
	"errors"
	"fmt"
	"log"
	"os"

	"launchpit/internal/models"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"
	"gorm.io/gorm"
)

// BillingService reconciles Stripe subscription events onto the local
// premium flag and creates hosted checkout sessions.
//
// Reconciliation is keyed on the Stripe customer ID once it is known: the ID
// is stored at the first completed checkout, so a later cancellation still
// matches even if the user changed their account email in between. Email
// matching remains as the first-contact path only.
type BillingService struct {
	db *gorm.DB

	// resolveEmail maps a Stripe customer ID to the customer's email via the
	// Stripe API. Swappable in tests.
	resolveEmail func(customerID string) (string, error)
}

func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{
		db:           db,
		resolveEmail: stripeCustomerEmail,
	}
}

func stripeCustomerEmail(customerID string) (string, error) {
	cust, err := customer.Get(customerID, nil)
	if err != nil {
		return "", fmt.Errorf("retrieve stripe customer %s: %w", customerID, err)
	}
	if cust.Email == "" {
		return "", fmt.Errorf("stripe customer %s has no email", customerID)
	}
	return cust.Email, nil
}

// CreateCheckoutSession returns a Stripe-hosted subscription checkout URL for
// the given account email.
func (s *BillingService) CreateCheckoutSession(email string) (string, error) {
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}

	params := &stripe.CheckoutSessionParams{
		CustomerEmail:      stripe.String(email),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(os.Getenv("STRIPE_PRICE_ID")),
				Quantity: stripe.Int64(1),
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL: stripe.String(appURL + "/new-product"),
		CancelURL:  stripe.String(appURL),
	}

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.URL, nil
}

// ApplyCheckoutCompleted marks the paying user premium and records their
// Stripe customer ID for future reconciliation. Idempotent: re-applying the
// same event changes nothing. A missing local user is logged and ignored;
// Stripe retries its own webhook deliveries, we do not.
func (s *BillingService) ApplyCheckoutCompleted(email, customerID string) error {
	if email == "" {
		return nil
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Stripe checkout completed for unknown email %s, ignoring", email)
			return nil
		}
		return err
	}

	updates := map[string]interface{}{"is_premium": true}
	if customerID != "" {
		updates["stripe_customer_id"] = customerID
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return err
	}

	log.Printf("User %s upgraded to premium", email)
	return nil
}

// ApplySubscriptionCancelled clears the premium flag for the user behind the
// given Stripe customer. Matched by stored customer ID first; users who
// subscribed before the ID was recorded fall back to an email lookup through
// the Stripe API. Idempotent.
func (s *BillingService) ApplySubscriptionCancelled(customerID string) error {
	if customerID == "" {
		return nil
	}

	var user models.User
	err := s.db.Where("stripe_customer_id = ?", customerID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		email, rerr := s.resolveEmail(customerID)
		if rerr != nil {
			log.Printf("Could not resolve stripe customer %s: %v", customerID, rerr)
			return nil
		}
		err = s.db.Where("email = ?", email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Stripe cancellation for unknown customer %s (%s), ignoring", customerID, email)
			return nil
		}
	}
	if err != nil {
		return err
	}

	if err := s.db.Model(&user).Update("is_premium", false).Error; err != nil {
		return err
	}

	log.Printf("User %s downgraded from premium", user.Email)
	return nil
}
