package catalog

import (
	"strings"

	"routine-advisor-be/internal/entity"
)

// FilterByCategory keeps products whose category equals category exactly.
func FilterByCategory(products []entity.Product, category string) []entity.Product {
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Search matches the trimmed query case-insensitively against name, brand or
// description. An empty query returns products unchanged.
func Search(products []entity.Product, query string) []entity.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products
	}

	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Brand), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}

// Categories lists distinct non-empty categories in first-seen order.
func Categories(products []entity.Product) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
