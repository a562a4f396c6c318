package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/todomarket/whatsapp-bot/internal/cart"
	"github.com/todomarket/whatsapp-bot/internal/models"
)

const user = "59170000001"

func product(retailerID, name, price string) models.Product {
	return models.Product{
		RetailerID: retailerID,
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Currency:   "USD",
	}
}

func TestLedgerAdd(t *testing.T) {
	t.Parallel()

	t.Run("appends new lines in insertion order", func(t *testing.T) {
		ledger := cart.NewLedger()
		ledger.Add(user, product("SKU-1", "Pan", "1.50"), 1)
		ledger.Add(user, product("SKU-2", "Leche", "1.20"), 2)

		items := ledger.Items(user)
		require.Len(t, items, 2)
		assert.Equal(t, "SKU-1", items[0].ProductID)
		assert.Equal(t, "SKU-2", items[1].ProductID)
		assert.Equal(t, 2, items[1].Quantity)
	})

	t.Run("same product increments quantity", func(t *testing.T) {
		ledger := cart.NewLedger()
		ledger.Add(user, product("SKU-1", "Pan", "1.50"), 1)
		item := ledger.Add(user, product("SKU-1", "Pan", "1.50"), 3)

		assert.Equal(t, 4, item.Quantity)
		assert.Len(t, ledger.Items(user), 1)
	})

	t.Run("quantity below one defaults to one", func(t *testing.T) {
		ledger := cart.NewLedger()
		item := ledger.Add(user, product("SKU-1", "Pan", "1.50"), 0)
		assert.Equal(t, 1, item.Quantity)
	})

	t.Run("carts are independent per user", func(t *testing.T) {
		ledger := cart.NewLedger()
		ledger.Add(user, product("SKU-1", "Pan", "1.50"), 1)
		ledger.Add("59170000002", product("SKU-2", "Leche", "1.20"), 1)

		assert.Len(t, ledger.Items(user), 1)
		assert.Len(t, ledger.Items("59170000002"), 1)
		assert.Equal(t, "SKU-1", ledger.Items(user)[0].ProductID)
	})
}

func TestLedgerRemove(t *testing.T) {
	t.Parallel()

	t.Run("removes by 1-based position", func(t *testing.T) {
		ledger := cart.NewLedger()
		ledger.Add(user, product("SKU-1", "Pan", "1.50"), 1)
		ledger.Add(user, product("SKU-2", "Leche", "1.20"), 1)

		removed, err := ledger.Remove(user, 1)
		require.NoError(t, err)
		assert.Equal(t, "SKU-1", removed.ProductID)

		items := ledger.Items(user)
		require.Len(t, items, 1)
		assert.Equal(t, "SKU-2", items[0].ProductID)
	})

	t.Run("total never reflects a removed item", func(t *testing.T) {
		ledger := cart.NewLedger()
		ledger.Add(user, product("SKU-1", "Pan", "1.50"), 2)
		ledger.Add(user, product("SKU-2", "Leche", "1.20"), 1)

		_, err := ledger.Remove(user, 1)
		require.NoError(t, err)
		assert.True(t, ledger.Total(user).Equal(decimal.RequireFromString("1.20")))
	})

	t.Run("out of range positions fail", func(t *testing.T) {
		ledger := cart.NewLedger()
		ledger.Add(user, product("SKU-1", "Pan", "1.50"), 1)

		_, err := ledger.Remove(user, 0)
		assert.ErrorIs(t, err, models.ErrIndexOutOfRange)
		_, err = ledger.Remove(user, 2)
		assert.ErrorIs(t, err, models.ErrIndexOutOfRange)
	})
}

func TestLedgerUpdateQuantity(t *testing.T) {
	t.Parallel()

	t.Run("overwrites quantity and total follows", func(t *testing.T) {
		ledger := cart.NewLedger()
		ledger.Add(user, product("SKU-1", "Pan", "1.50"), 1)

		item, err := ledger.UpdateQuantity(user, 1, 5)
		require.NoError(t, err)
		assert.Equal(t, 5, item.Quantity)
		assert.True(t, ledger.Total(user).Equal(decimal.RequireFromString("7.50")))
	})

	t.Run("zero quantity is equivalent to remove", func(t *testing.T) {
		ledger := cart.NewLedger()
		ledger.Add(user, product("SKU-1", "Pan", "1.50"), 2)

		_, err := ledger.UpdateQuantity(user, 1, 0)
		require.NoError(t, err)
		assert.Empty(t, ledger.Items(user))
		assert.True(t, ledger.Total(user).IsZero())
	})

	t.Run("out of range position fails", func(t *testing.T) {
		ledger := cart.NewLedger()
		_, err := ledger.UpdateQuantity(user, 1, 5)
		assert.ErrorIs(t, err, models.ErrIndexOutOfRange)
	})
}

func TestLedgerTotal(t *testing.T) {
	t.Parallel()

	t.Run("sums unit price times quantity", func(t *testing.T) {
		ledger := cart.NewLedger()
		ledger.Add(user, product("SKU-1", "Pan", "1.50"), 2)
		ledger.Add(user, product("SKU-2", "Leche", "1.20"), 3)

		assert.True(t, ledger.Total(user).Equal(decimal.RequireFromString("6.60")))
	})

	t.Run("empty cart totals zero", func(t *testing.T) {
		ledger := cart.NewLedger()
		assert.True(t, ledger.Total(user).IsZero())
	})
}

func TestLedgerClear(t *testing.T) {
	t.Parallel()

	ledger := cart.NewLedger()
	ledger.Add(user, product("SKU-1", "Pan", "1.50"), 2)
	ledger.Clear(user)

	assert.Empty(t, ledger.Items(user))
	assert.True(t, ledger.Total(user).IsZero())
}
