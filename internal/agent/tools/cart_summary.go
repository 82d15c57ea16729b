package tools

import (
	"context"
	"math"

	"shopping-assistant/internal/agent"
	"shopping-assistant/internal/backend"
)

// CartSummaryTool reports the cart contents and the computed total.
type CartSummaryTool struct {
	client *backend.Client
}

// NewCartSummaryTool creates a new cart summary tool.
func NewCartSummaryTool(client *backend.Client) agent.Tool {
	return &CartSummaryTool{client: client}
}

func (t *CartSummaryTool) Name() string {
	return "cart_summary"
}

func (t *CartSummaryTool) Description() string {
	return "Get the current shopping cart contents with per-item totals, the total item count, and the total cost."
}

func (t *CartSummaryTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func (t *CartSummaryTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	items, err := t.client.GetCartItems(ctx)
	if err != nil {
		return nil, err
	}

	itemList := make([]map[string]interface{}, 0, len(items))
	totalItems := 0
	totalCost := 0.0
	for _, item := range items {
		itemTotal := item.Price * float64(item.Quantity)
		totalItems += item.Quantity
		totalCost += itemTotal
		itemList = append(itemList, map[string]interface{}{
			"item_id":    item.ID,
			"product_id": item.ProductID,
			"name":       item.Name,
			"price":      item.Price,
			"quantity":   item.Quantity,
			"item_total": round2(itemTotal),
			"emoji":      item.Emoji,
		})
	}

	return map[string]interface{}{
		"empty":       len(items) == 0,
		"items":       itemList,
		"total_items": totalItems,
		"total_cost":  round2(totalCost),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
