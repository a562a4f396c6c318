package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/todomarket/whatsapp-bot/internal/cart"
	"github.com/todomarket/whatsapp-bot/internal/catalog"
	"github.com/todomarket/whatsapp-bot/internal/models"
	"github.com/todomarket/whatsapp-bot/internal/repo/waba"
	"github.com/todomarket/whatsapp-bot/internal/usecase"
)

const user = "59170000001"

type fakeStore struct {
	snapshot *catalog.Snapshot
}

func (f *fakeStore) Get(ctx context.Context) (*catalog.Snapshot, error) {
	return f.snapshot, nil
}

type fakeChat struct {
	texts []string
	lists []waba.List
}

func (f *fakeChat) SendText(ctx context.Context, to, body string) error {
	f.texts = append(f.texts, body)
	return nil
}

func (f *fakeChat) SendList(ctx context.Context, to string, list waba.List) error {
	f.lists = append(f.lists, list)
	return nil
}

func (f *fakeChat) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.texts)
	return f.texts[len(f.texts)-1]
}

func testProducts() []models.Product {
	return []models.Product{
		{RetailerID: "SKU-PAN", Name: "Pan integral", Price: decimal.RequireFromString("1.50"), Currency: "USD", Availability: "in stock"},
		{RetailerID: "SKU-BAGUETTE", Name: "Baguette", Price: decimal.RequireFromString("2.00"), Currency: "USD", Availability: "in stock"},
		{RetailerID: "SKU-TORTA", Name: "Torta de chocolate", Price: decimal.RequireFromString("8.00"), Currency: "USD", Availability: "in stock"},
		{RetailerID: "SKU-PILAS", Name: "Pilas AA", Price: decimal.RequireFromString("3.00"), Currency: "USD", Availability: "in stock"},
	}
}

func newFixture() (usecase.OrderUsecase, *fakeChat, cart.Ledger) {
	snapshot := catalog.NewSnapshot(time.Now(), catalog.NewDefaultClassifier(), testProducts())
	chat := &fakeChat{}
	carts := cart.NewLedger()
	uc := usecase.NewOrderUsecase(&fakeStore{snapshot: snapshot}, carts, chat)
	return uc, chat, carts
}

func send(t *testing.T, uc usecase.OrderUsecase, text, replyID string) {
	t.Helper()
	err := uc.ProcessMessage(t.Context(), models.IncomingMessage{
		UserID:  user,
		Text:    text,
		ReplyID: replyID,
	})
	require.NoError(t, err)
}

func TestOrderFlow(t *testing.T) {
	t.Parallel()

	t.Run("menu command returns the categories list", func(t *testing.T) {
		uc, chat, _ := newFixture()
		send(t, uc, "1", "")

		require.Len(t, chat.lists, 1)
		rows := chat.lists[0].Sections[0].Rows
		// Panadería (3 products) and Otros (Pilas)
		require.Len(t, rows, 2)
		assert.Equal(t, "cat:Panadería", rows[0].ID)
		assert.Equal(t, "cat:Otros", rows[1].ID)
	})

	t.Run("category selection lists exactly its products with price", func(t *testing.T) {
		uc, chat, _ := newFixture()
		send(t, uc, "", "cat:Panadería")

		require.Len(t, chat.lists, 1)
		rows := chat.lists[0].Sections[0].Rows
		require.Len(t, rows, 3)
		assert.Equal(t, "prod:SKU-PAN", rows[0].ID)
		assert.Equal(t, "1.50 USD", rows[0].Description)
	})

	t.Run("product selection adds one unit to the cart", func(t *testing.T) {
		uc, chat, carts := newFixture()
		send(t, uc, "", "prod:SKU-PAN")

		items := carts.Items(user)
		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].Quantity)
		assert.Contains(t, chat.lastText(t), "Pan integral")
	})

	t.Run("full ordering scenario", func(t *testing.T) {
		uc, chat, carts := newFixture()

		send(t, uc, "", "prod:SKU-PAN")
		send(t, uc, "cantidad 1 5", "")
		items := carts.Items(user)
		require.Len(t, items, 1)
		assert.Equal(t, 5, items[0].Quantity)
		assert.Contains(t, chat.lastText(t), "Total: 7.50 USD")

		send(t, uc, "eliminar 1", "")
		assert.Empty(t, carts.Items(user))
	})

	t.Run("checkout summarizes and clears the cart", func(t *testing.T) {
		uc, chat, carts := newFixture()
		send(t, uc, "", "prod:SKU-PAN")
		send(t, uc, "", "prod:SKU-BAGUETTE")
		send(t, uc, "confirmar pedido", "")

		summary := chat.lastText(t)
		assert.Contains(t, summary, "1. Pan integral x1")
		assert.Contains(t, summary, "2. Baguette x1")
		assert.Contains(t, summary, "Total a pagar: 3.50 USD")
		assert.Empty(t, carts.Items(user))
	})

	t.Run("confirm on empty cart asks to shop first", func(t *testing.T) {
		uc, chat, _ := newFixture()
		send(t, uc, "confirmar pedido", "")
		assert.Contains(t, chat.lastText(t), "carrito está vacío")
	})

	t.Run("unknown product produces a corrective message", func(t *testing.T) {
		uc, chat, carts := newFixture()
		send(t, uc, "", "prod:SKU-GONE")

		assert.Contains(t, chat.lastText(t), "ya no está disponible")
		assert.Empty(t, carts.Items(user))
	})

	t.Run("bad position produces a corrective message", func(t *testing.T) {
		uc, chat, _ := newFixture()
		send(t, uc, "eliminar 4", "")
		assert.Contains(t, chat.lastText(t), "No tienes un producto en esa posición")
	})

	t.Run("unrecognized input gets the help response", func(t *testing.T) {
		uc, chat, _ := newFixture()
		send(t, uc, "quiero pedir algo", "")
		assert.Contains(t, chat.lastText(t), "No entendí")
	})

	t.Run("empty category produces a corrective message", func(t *testing.T) {
		uc, chat, _ := newFixture()
		send(t, uc, "", "cat:Bebidas")
		assert.Contains(t, chat.lastText(t), "ya no tiene productos")
	})
}
