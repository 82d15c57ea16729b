package tools

import (
	"context"
	"strings"

	"shopping-assistant/internal/agent"
	"shopping-assistant/internal/backend"
)

// ProductSearchTool implements catalog search over the backend product list.
type ProductSearchTool struct {
	client *backend.Client
}

// NewProductSearchTool creates a new product search tool.
func NewProductSearchTool(client *backend.Client) agent.Tool {
	return &ProductSearchTool{client: client}
}

func (t *ProductSearchTool) Name() string {
	return "product_search"
}

func (t *ProductSearchTool) Description() string {
	return "Search for products by name, description, or category. Supports an optional category filter and inclusive price bounds. Returns matching products; an empty result is valid."
}

func (t *ProductSearchTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "Search term matched against product name, description, and category (case-insensitive substring)",
			},
			"category": map[string]interface{}{
				"type":        "string",
				"description": "Exact category filter, e.g. 'Electronics' (case-insensitive)",
			},
			"min_price": map[string]interface{}{
				"type":        "number",
				"description": "Minimum price, inclusive",
			},
			"max_price": map[string]interface{}{
				"type":        "number",
				"description": "Maximum price, inclusive",
			},
		},
	}
}

func (t *ProductSearchTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	query, hasQuery := stringArg(params, "query")
	category, hasCategory := stringArg(params, "category")
	minPrice, hasMin := floatArg(params, "min_price")
	maxPrice, hasMax := floatArg(params, "max_price")

	products, err := t.client.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]map[string]interface{}, 0, len(products))
	for _, p := range products {
		if hasQuery && !matchesQuery(p, query) {
			continue
		}
		if hasCategory && !strings.EqualFold(p.Category, category) {
			continue
		}
		if hasMin && p.Price < minPrice {
			continue
		}
		if hasMax && p.Price > maxPrice {
			continue
		}
		matched = append(matched, map[string]interface{}{
			"id":          p.ID,
			"name":        p.Name,
			"description": p.Description,
			"category":    p.Category,
			"price":       p.Price,
			"emoji":       p.Emoji,
		})
	}

	return map[string]interface{}{
		"count":    len(matched),
		"products": matched,
	}, nil
}

// matchesQuery reports whether the query is a case-insensitive substring
// of the product name, description, or category.
func matchesQuery(p backend.Product, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}
