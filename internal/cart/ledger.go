package cart

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/todomarket/whatsapp-bot/internal/models"
)

// Item is one line in a user's cart.
type Item struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Currency  string
	Quantity  int
}

func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Ledger tracks one ordered cart per user. Carts live only in process
// memory for the session's lifetime; a restart loses them, which is an
// accepted tradeoff for simplicity.
//
// Positions are 1-based into the insertion-ordered item sequence,
// matching the user-facing "eliminar 3" command semantics.
type Ledger interface {
	Add(userID string, product models.Product, quantity int) Item
	Remove(userID string, position int) (Item, error)
	UpdateQuantity(userID string, position, quantity int) (Item, error)
	Clear(userID string)
	Items(userID string) []Item
	Total(userID string) decimal.Decimal
}

type ledger struct {
	mu    sync.Mutex
	carts map[string][]Item
}

func NewLedger() Ledger {
	return &ledger{
		carts: make(map[string][]Item),
	}
}

// Add merges by product key: an existing line for the product gets its
// quantity incremented, otherwise a new line is appended.
func (l *ledger) Add(userID string, product models.Product, quantity int) Item {
	if quantity < 1 {
		quantity = 1
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	items := l.carts[userID]
	key := product.Key()
	for i := range items {
		if items[i].ProductID == key {
			items[i].Quantity += quantity
			return items[i]
		}
	}

	item := Item{
		ProductID: key,
		Name:      product.Name,
		UnitPrice: product.Price,
		Currency:  product.Currency,
		Quantity:  quantity,
	}
	l.carts[userID] = append(items, item)
	return item
}

func (l *ledger) Remove(userID string, position int) (Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.removeLocked(userID, position)
}

// UpdateQuantity overwrites the line's quantity. A quantity of zero or
// below removes the line instead of leaving a zero-quantity entry.
func (l *ledger) UpdateQuantity(userID string, position, quantity int) (Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if quantity <= 0 {
		return l.removeLocked(userID, position)
	}

	items := l.carts[userID]
	if position < 1 || position > len(items) {
		return Item{}, fmt.Errorf("position %d of %d items: %w", position, len(items), models.ErrIndexOutOfRange)
	}

	items[position-1].Quantity = quantity
	return items[position-1], nil
}

func (l *ledger) removeLocked(userID string, position int) (Item, error) {
	items := l.carts[userID]
	if position < 1 || position > len(items) {
		return Item{}, fmt.Errorf("position %d of %d items: %w", position, len(items), models.ErrIndexOutOfRange)
	}

	removed := items[position-1]
	l.carts[userID] = append(items[:position-1], items[position:]...)
	return removed, nil
}

func (l *ledger) Clear(userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.carts, userID)
}

// Items returns a copy of the cart in insertion order.
func (l *ledger) Items(userID string) []Item {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := l.carts[userID]
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Total is recomputed from the lines on every call, never cached.
func (l *ledger) Total(userID string) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := decimal.Zero
	for _, item := range l.carts[userID] {
		total = total.Add(item.Subtotal())
	}
	return total
}
