package services

import (
	"errors"
	"testing"

	"launchpit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyCheckoutCompleted(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewBillingService(gdb)

	user := createUser(t, gdb, "buyer", false)

	require.NoError(t, svc.ApplyCheckoutCompleted(user.Email, "cus_123"))

	var stored models.User
	require.NoError(t, gdb.First(&stored, user.ID).Error)
	assert.True(t, stored.IsPremium)
	assert.Equal(t, "cus_123", stored.StripeCustomerID)
}

func TestApplyCheckoutCompletedIsIdempotent(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewBillingService(gdb)

	user := createUser(t, gdb, "buyer", false)

	require.NoError(t, svc.ApplyCheckoutCompleted(user.Email, "cus_123"))
	require.NoError(t, svc.ApplyCheckoutCompleted(user.Email, "cus_123"))

	var stored models.User
	require.NoError(t, gdb.First(&stored, user.ID).Error)
	assert.True(t, stored.IsPremium)
	assert.Equal(t, "cus_123", stored.StripeCustomerID)
}

func TestApplyCheckoutCompletedUnknownEmailIgnored(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewBillingService(gdb)

	require.NoError(t, svc.ApplyCheckoutCompleted("nobody@example.com", "cus_123"))
	require.NoError(t, svc.ApplyCheckoutCompleted("", "cus_123"))
}

func TestApplySubscriptionCancelledByStoredCustomerID(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewBillingService(gdb)
	svc.resolveEmail = func(string) (string, error) {
		t.Fatal("stored customer ID should match without a Stripe lookup")
		return "", nil
	}

	user := createUser(t, gdb, "buyer", true)
	require.NoError(t, gdb.Model(user).Update("stripe_customer_id", "cus_123").Error)

	require.NoError(t, svc.ApplySubscriptionCancelled("cus_123"))

	var stored models.User
	require.NoError(t, gdb.First(&stored, user.ID).Error)
	assert.False(t, stored.IsPremium)
}

func TestApplySubscriptionCancelledFallsBackToEmailLookup(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewBillingService(gdb)

	user := createUser(t, gdb, "buyer", true)
	svc.resolveEmail = func(customerID string) (string, error) {
		assert.Equal(t, "cus_456", customerID)
		return user.Email, nil
	}

	require.NoError(t, svc.ApplySubscriptionCancelled("cus_456"))

	var stored models.User
	require.NoError(t, gdb.First(&stored, user.ID).Error)
	assert.False(t, stored.IsPremium)
}

func TestApplySubscriptionCancelledUnknownCustomerIgnored(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewBillingService(gdb)
	svc.resolveEmail = func(string) (string, error) {
		return "", errors.New("no such customer")
	}

	require.NoError(t, svc.ApplySubscriptionCancelled("cus_gone"))
	require.NoError(t, svc.ApplySubscriptionCancelled(""))
}

func TestApplySubscriptionCancelledResolvedEmailWithoutUserIgnored(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewBillingService(gdb)
	svc.resolveEmail = func(string) (string, error) {
		return "ghost@example.com", nil
	}

	require.NoError(t, svc.ApplySubscriptionCancelled("cus_ghost"))
}
