//go:build e2e

package e2e

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atid-store/storecheck/internal/reconcile"
	"github.com/atid-store/storecheck/internal/testdata"
)

func TestCouponAppliedUpdatesTotals(t *testing.T) {
	page := newPage(t)
	cart := addToCartViaPDP(t, page, testdata.GreenShoes.Name, 1)

	before, err := cart.Total()
	require.NoError(t, err)
	assert.Equal(t, "110.00", before.StringFixed(2), "total before discount")

	require.NoError(t, cart.ApplyCoupon(testdata.ValidCouponCode))

	visible := func() bool {
		v, err := cart.DiscountVisible()
		return err == nil && v
	}
	assert.Eventually(t, visible, cfg.PollTimeout, 250*time.Millisecond, "discount row should appear")

	// Whatever the coupon's value, the rendered totals must reconcile:
	// total == subtotal + shipping − discount, and the discount is real.
	snapshot, err := cart.Snapshot()
	require.NoError(t, err)
	assert.True(t, snapshot.Discount.IsPositive(), "applied coupon should carry a positive discount")
	require.NoError(t, reconcile.VerifyAggregates(snapshot, reconcile.AggregateExpectation{
		Subtotal: reconcile.Amount(110.00),
	}))

	after, err := cart.Total()
	require.NoError(t, err)
	assert.True(t, after.LessThan(before), "total should drop after discount, got %s -> %s", before, after)
	assert.True(t, before.Sub(after).Sub(snapshot.Discount).Abs().LessThanOrEqual(decimal.New(1, -2)),
		"total should drop by exactly the discount amount")
}

func TestCouponUnknownCodeShowsError(t *testing.T) {
	page := newPage(t)
	cart := addToCartViaPDP(t, page, testdata.GreenShoes.Name, 1)

	require.NoError(t, cart.ApplyCoupon(testdata.InvalidCouponCode))

	msg, err := cart.CouponError()
	require.NoError(t, err, "coupon error notice should appear")
	assert.Contains(t, msg, testdata.InvalidCouponCode, "error should name the rejected code")

	visible, err := cart.DiscountVisible()
	require.NoError(t, err)
	assert.False(t, visible, "no discount row for a rejected coupon")

	require.NoError(t, cart.WaitForTotal(decimal.NewFromFloat(110.00), cfg.PollTimeout),
		"total should stay undiscounted")
}

func TestCouponRemovedRestoresTotals(t *testing.T) {
	page := newPage(t)
	cart := addToCartViaPDP(t, page, testdata.GreenShoes.Name, 1)

	require.NoError(t, cart.ApplyCoupon(testdata.ValidCouponCode))
	assert.Eventually(t, func() bool {
		v, err := cart.DiscountVisible()
		return err == nil && v
	}, cfg.PollTimeout, 250*time.Millisecond, "discount row should appear")

	require.NoError(t, cart.RemoveCoupon())

	visible, err := cart.DiscountVisible()
	require.NoError(t, err)
	assert.False(t, visible, "discount row should be gone after removal")

	require.NoError(t, cart.WaitForTotal(decimal.NewFromFloat(110.00), cfg.PollTimeout),
		"total should be restored after coupon removal")
}
