package catalog

import (
	"github.com/shopspring/decimal"
	"github.com/todomarket/whatsapp-bot/internal/models"
)

// fallbackProducts is the minimal assortment served when the catalog
// was never fetched successfully. Prices here go stale; the list exists
// so the bot can still take an order instead of crashing the chat turn.
func fallbackProducts() []models.Product {
	return []models.Product{
		{
			RetailerID:   "FALLBACK-PAN",
			Name:         "Pan del día",
			Price:        decimal.RequireFromString("1.50"),
			Currency:     "USD",
			Availability: "in stock",
		},
		{
			RetailerID:   "FALLBACK-LECHE",
			Name:         "Leche entera 1L",
			Price:        decimal.RequireFromString("1.20"),
			Currency:     "USD",
			Availability: "in stock",
		},
		{
			RetailerID:   "FALLBACK-ARROZ",
			Name:         "Arroz 1kg",
			Price:        decimal.RequireFromString("2.10"),
			Currency:     "USD",
			Availability: "in stock",
		},
	}
}
