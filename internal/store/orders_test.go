package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myrayzsiza/cse-340/internal/models"
)

func snapshotFor(t *testing.T, s *Store, acct int) models.PendingOrder {
	t.Helper()
	items, err := s.GetCartByAccountID(acct)
	require.NoError(t, err)
	total, err := s.GetCartTotal(acct)
	require.NoError(t, err)
	return models.PendingOrder{
		AccountID:      acct,
		Items:          items,
		Phone:          "555-0100",
		Address:        "123 Main St",
		City:           "Rexburg",
		State:          "ID",
		Zip:            "83440",
		PaymentAccount: "4111111111111111",
		Total:          total,
		CreatedAt:      time.Now(),
	}
}

func TestPlaceOrdersFromSnapshot(t *testing.T) {
	s := newTestStore(t)
	acct := seedAccount(t, s, "buyer@test.com")
	sedan := seedVehicle(t, s, "Honda", "Accord", 20000)
	truck := seedVehicle(t, s, "Ford", "F-150", 25000)

	require.NoError(t, s.AddToCart(acct, sedan, 1))
	require.NoError(t, s.AddToCart(acct, truck, 1))

	ids, err := s.PlaceOrdersFromSnapshot(snapshotFor(t, s, acct))
	require.NoError(t, err)
	require.Len(t, ids, 2, "one order row per cart line")

	for _, id := range ids {
		order, err := s.GetOrderByID(id)
		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, acct, order.AccountID)
		assert.Equal(t, "Pending", order.Status)
		assert.Equal(t, "123 Main St", order.Address)
	}

	items, err := s.GetCartByAccountID(acct)
	require.NoError(t, err)
	assert.Empty(t, items, "placing the order clears the cart")
}

func TestPlaceOrdersRollsBackOnBadVehicle(t *testing.T) {
	s := newTestStore(t)
	acct := seedAccount(t, s, "buyer@test.com")
	sedan := seedVehicle(t, s, "Honda", "Accord", 20000)
	require.NoError(t, s.AddToCart(acct, sedan, 1))

	snap := snapshotFor(t, s, acct)
	// A line referencing a vehicle that no longer exists fails the FK and
	// must abort the whole order, first line included.
	snap.Items = append(snap.Items, models.CartItem{InvID: 99999, Quantity: 1})

	_, err := s.PlaceOrdersFromSnapshot(snap)
	require.Error(t, err)

	count, err := s.GetTotalOrdersCount()
	require.NoError(t, err)
	assert.Zero(t, count, "a failed snapshot leaves no partial order rows")

	items, err := s.GetCartByAccountID(acct)
	require.NoError(t, err)
	assert.Len(t, items, 1, "a failed snapshot leaves the cart intact")
}

func TestGetOrderByIDMissing(t *testing.T) {
	s := newTestStore(t)
	order, err := s.GetOrderByID(12345)
	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestGetOrdersByAccountFiltersOwner(t *testing.T) {
	s := newTestStore(t)
	buyer := seedAccount(t, s, "buyer@test.com")
	other := seedAccount(t, s, "other@test.com")
	sedan := seedVehicle(t, s, "Honda", "Accord", 20000)

	require.NoError(t, s.AddToCart(buyer, sedan, 1))
	_, err := s.PlaceOrdersFromSnapshot(snapshotFor(t, s, buyer))
	require.NoError(t, err)

	mine, err := s.GetOrdersByAccountID(buyer)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := s.GetOrdersByAccountID(other)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestUpdateOrderStatus(t *testing.T) {
	s := newTestStore(t)
	buyer := seedAccount(t, s, "buyer@test.com")
	sedan := seedVehicle(t, s, "Honda", "Accord", 20000)
	require.NoError(t, s.AddToCart(buyer, sedan, 1))
	ids, err := s.PlaceOrdersFromSnapshot(snapshotFor(t, s, buyer))
	require.NoError(t, err)

	require.NoError(t, s.UpdateOrderStatus(ids[0], "Shipped"))
	order, err := s.GetOrderByID(ids[0])
	require.NoError(t, err)
	assert.Equal(t, "Shipped", order.Status)
}
