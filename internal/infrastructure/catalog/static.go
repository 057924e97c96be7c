package catalog

import (
	"sort"
	"strings"

	"github.com/maestrofurniture/docgen/internal/core/domain"
)

// Static serves the showroom catalog from memory. The dashboard's product
// list is small and changes through releases, not at runtime.
type Static struct {
	products []domain.Product
	byName   map[string]domain.Product
}

func NewStatic() *Static {
	products := []domain.Product{
		{ID: 1, Name: "Grace Accent Chair", Category: "Chairs", Price: 12799, Stock: 50, Orders: 34},
		{ID: 2, Name: "Carven Lounge Chair", Category: "Chairs", Price: 11799, Stock: 417, Orders: 28},
		{ID: 3, Name: "Paine Chair", Category: "Chairs", Price: 4799, Stock: 357, Orders: 20},
		{ID: 4, Name: "Caria Patio Table", Category: "Tables", Price: 5399, Stock: 490, Orders: 18},
		{ID: 5, Name: "Wooden Dining Table", Category: "Tables", Price: 8599, Stock: 125, Orders: 15},
	}

	byName := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byName[strings.ToLower(p.Name)] = p
	}
	return &Static{products: products, byName: byName}
}

func (c *Static) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out
}

func (c *Static) ProductsByCategory(category string) []domain.Product {
	var out []domain.Product
	for _, p := range c.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Static) ProductByName(name string) (domain.Product, bool) {
	p, ok := c.byName[strings.ToLower(name)]
	return p, ok
}
