package usecase

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/todomarket/whatsapp-bot/internal/cart"
	"github.com/todomarket/whatsapp-bot/internal/catalog"
	"github.com/todomarket/whatsapp-bot/internal/models"
	"github.com/todomarket/whatsapp-bot/internal/repo/waba"
)

// WhatsApp list constraints: 10 rows per list, 24-char row titles,
// 72-char row descriptions.
const (
	maxListRows    = 10
	maxRowTitle    = 24
	maxRowDescLen  = 72
	listButtonText = "Ver opciones"
)

const helpText = "No entendí tu mensaje 🙈\n\n" +
	"Puedes escribir:\n" +
	"*1* — ver el menú de categorías\n" +
	"*ver carrito* — revisar tu pedido\n" +
	"*eliminar N* — quitar el producto N\n" +
	"*cantidad N M* — poner M unidades al producto N\n" +
	"*vaciar carrito* — empezar de cero\n" +
	"*confirmar pedido* — cerrar tu pedido"

const emptyCartText = "Tu carrito está vacío 🛒\nEscribe *1* para ver las categorías."

func formatPrice(price decimal.Decimal, currency string) string {
	if currency == "" {
		return price.StringFixed(2)
	}
	return fmt.Sprintf("%s %s", price.StringFixed(2), currency)
}

func categoriesList(categories []catalog.Category) waba.List {
	rows := make([]waba.ListRow, 0, len(categories))
	for _, category := range categories {
		if len(rows) == maxListRows {
			break
		}
		rows = append(rows, waba.ListRow{
			ID:    categoryReplyPrefix + category.Name,
			Title: truncate(category.DisplayLabel, maxRowTitle),
		})
	}

	return waba.List{
		Header:     "TodoMarket",
		Body:       "¡Bienvenido a TodoMarket! 🛍️\nElige una categoría para ver los productos.",
		Footer:     "Escribe *ver carrito* para revisar tu pedido",
		ButtonText: listButtonText,
		Sections: []waba.ListSection{
			{Title: "Categorías", Rows: rows},
		},
	}
}

func productsList(category catalog.Category, products []models.Product) waba.List {
	rows := make([]waba.ListRow, 0, len(products))
	for _, product := range products {
		if len(rows) == maxListRows {
			break
		}
		description := formatPrice(product.Price, product.Currency)
		if product.Availability != "" && product.Availability != "in stock" {
			description += " · " + product.Availability
		}
		rows = append(rows, waba.ListRow{
			ID:          productReplyPrefix + product.Key(),
			Title:       truncate(product.Name, maxRowTitle),
			Description: truncate(description, maxRowDescLen),
		})
	}

	return waba.List{
		Header:     category.DisplayLabel,
		Body:       fmt.Sprintf("Productos de %s. Elige uno para agregarlo a tu carrito.", category.Name),
		ButtonText: listButtonText,
		Sections: []waba.ListSection{
			{Title: truncate(category.Name, maxRowTitle), Rows: rows},
		},
	}
}

// cartSummary renders the numbered listing the remove/quantity commands
// index into.
func cartSummary(items []cart.Item, total decimal.Decimal) string {
	var b strings.Builder
	b.WriteString("🛒 *Tu carrito:*\n\n")

	currency := ""
	for i, item := range items {
		currency = item.Currency
		fmt.Fprintf(&b, "%d. %s x%d — %s\n",
			i+1, item.Name, item.Quantity, formatPrice(item.Subtotal(), item.Currency))
	}

	fmt.Fprintf(&b, "\n*Total: %s*\n\n", formatPrice(total, currency))
	b.WriteString("Escribe *eliminar N*, *cantidad N M*, *seguir comprando* o *confirmar pedido*.")
	return b.String()
}

func checkoutSummary(items []cart.Item, total decimal.Decimal) string {
	var b strings.Builder
	b.WriteString("✅ *Pedido confirmado:*\n\n")

	currency := ""
	for i, item := range items {
		currency = item.Currency
		fmt.Fprintf(&b, "%d. %s x%d — %s\n",
			i+1, item.Name, item.Quantity, formatPrice(item.Subtotal(), item.Currency))
	}

	fmt.Fprintf(&b, "\n*Total a pagar: %s*\n\n", formatPrice(total, currency))
	b.WriteString("¡Gracias por tu compra! 🙌 Te contactaremos para coordinar la entrega.")
	return b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
