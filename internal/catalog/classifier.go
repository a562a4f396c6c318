package catalog

import (
	"strings"

	"github.com/todomarket/whatsapp-bot/internal/models"
)

// OtherCategory is the reserved bucket for products no keyword matches.
const OtherCategory = "Otros"

// Category is a named bucket of products. The category set is fixed at
// configuration time; only the reserved "Otros" bucket absorbs
// unmatched products.
type Category struct {
	Name         string
	DisplayLabel string
	Keywords     []string
}

// DefaultCategories is the TodoMarket category table in priority order.
// First keyword match wins.
var DefaultCategories = []Category{
	{Name: "Panadería", DisplayLabel: "🍞 Panadería", Keywords: []string{"pan", "baguette", "bizcocho", "galleta", "torta"}},
	{Name: "Lácteos", DisplayLabel: "🥛 Lácteos", Keywords: []string{"leche", "queso", "yogur", "mantequilla", "crema"}},
	{Name: "Bebidas", DisplayLabel: "🥤 Bebidas", Keywords: []string{"agua", "jugo", "gaseosa", "refresco", "cerveza", "café"}},
	{Name: "Frutas y Verduras", DisplayLabel: "🍎 Frutas y Verduras", Keywords: []string{"manzana", "banana", "tomate", "papa", "cebolla", "lechuga", "fruta", "verdura"}},
	{Name: "Abarrotes", DisplayLabel: "🛒 Abarrotes", Keywords: []string{"arroz", "fideo", "aceite", "azúcar", "sal", "harina", "atún", "conserva"}},
	{Name: "Limpieza", DisplayLabel: "🧼 Limpieza", Keywords: []string{"detergente", "jabón", "lavandina", "cloro", "esponja", "papel higiénico"}},
	{Name: OtherCategory, DisplayLabel: "📦 Otros"},
}

type Classifier struct {
	categories []Category
}

// NewClassifier builds a classifier over the given category table,
// appending the reserved "Otros" bucket if the table does not carry one.
func NewClassifier(categories []Category) *Classifier {
	hasOther := false
	for _, c := range categories {
		if c.Name == OtherCategory {
			hasOther = true
			break
		}
	}
	if !hasOther {
		categories = append(categories, Category{Name: OtherCategory, DisplayLabel: "📦 " + OtherCategory})
	}
	return &Classifier{categories: categories}
}

func NewDefaultClassifier() *Classifier {
	return NewClassifier(DefaultCategories)
}

// Categories returns the table in priority order, "Otros" last.
func (c *Classifier) Categories() []Category {
	return c.categories
}

// Classify assigns the product to the first category with a keyword
// contained in the lowercased name+description. Containment is plain
// substring matching, not word-boundary matching, so "panacea" lands in
// a category with a "pan" keyword. Pure function of its inputs.
func (c *Classifier) Classify(product models.Product) string {
	text := strings.ToLower(product.Name + " " + product.Description)
	for _, category := range c.categories {
		for _, keyword := range category.Keywords {
			if strings.Contains(text, keyword) {
				return category.Name
			}
		}
	}
	return OtherCategory
}
