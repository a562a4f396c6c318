package models

import "github.com/shopspring/decimal"

// Product is a transient view of one catalog entry at fetch time. It is
// never persisted; the next sync supersedes it.
type Product struct {
	ID           string          `json:"id"`
	RetailerID   string          `json:"retailer_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	Availability string          `json:"availability"`
}

// Key returns the merchant-assigned retailer id when present, falling
// back to the catalog-assigned id.
func (p Product) Key() string {
	if p.RetailerID != "" {
		return p.RetailerID
	}
	return p.ID
}
