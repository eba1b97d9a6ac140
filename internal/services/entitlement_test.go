package services

import (
	"fmt"
	"testing"

	"launchpit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanSubmitFreeTier(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewEntitlementService(gdb)
	user := createUser(t, gdb, "free", false)

	// 0 products: allowed
	ok, err := svc.CanSubmit(user.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// 1 product: still allowed
	createProduct(t, gdb, user, "first", models.ProductStatusPending)
	ok, err = svc.CanSubmit(user.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// 2 products of any status: denied. A rejected product still counts.
	createProduct(t, gdb, user, "second", models.ProductStatusRejected)
	ok, err = svc.CanSubmit(user.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanSubmitPremiumUnlimited(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewEntitlementService(gdb)
	user := createUser(t, gdb, "premium", true)

	for i := 0; i < 5; i++ {
		createProduct(t, gdb, user, fmt.Sprintf("product-%d", i), models.ProductStatusActive)
	}

	ok, err := svc.CanSubmit(user.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanSubmitUnknownUser(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewEntitlementService(gdb)

	_, err := svc.CanSubmit(999)
	assert.ErrorIs(t, err, ErrNotFound)
}
