package catalog

import (
	"time"

	"github.com/todomarket/whatsapp-bot/internal/models"
)

// Snapshot is one cached, time-bounded materialization of the
// categorized catalog. It is replaced by the next sync, never mutated.
type Snapshot struct {
	FetchedAt          time.Time
	categories         []Category
	productsByCategory map[string][]models.Product
	byKey              map[string]models.Product
}

// NewSnapshot classifies the fetched products and builds the category
// and key indexes.
func NewSnapshot(fetchedAt time.Time, classifier *Classifier, products []models.Product) *Snapshot {
	s := &Snapshot{
		FetchedAt:          fetchedAt,
		categories:         classifier.Categories(),
		productsByCategory: make(map[string][]models.Product),
		byKey:              make(map[string]models.Product, len(products)),
	}

	for _, product := range products {
		name := classifier.Classify(product)
		s.productsByCategory[name] = append(s.productsByCategory[name], product)
		if product.RetailerID != "" {
			s.byKey[product.RetailerID] = product
		}
		if product.ID != "" {
			if _, taken := s.byKey[product.ID]; !taken {
				s.byKey[product.ID] = product
			}
		}
	}

	return s
}

// Categories returns the categories that currently hold products, in
// table priority order.
func (s *Snapshot) Categories() []Category {
	out := make([]Category, 0, len(s.categories))
	for _, category := range s.categories {
		if len(s.productsByCategory[category.Name]) > 0 {
			out = append(out, category)
		}
	}
	return out
}

// Products returns the products of one category in fetch order.
func (s *Snapshot) Products(category string) []models.Product {
	return s.productsByCategory[category]
}

// FindProduct resolves a product by retailer id or catalog id.
func (s *Snapshot) FindProduct(key string) (models.Product, bool) {
	product, ok := s.byKey[key]
	return product, ok
}

func (s *Snapshot) expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.FetchedAt) >= ttl
}
