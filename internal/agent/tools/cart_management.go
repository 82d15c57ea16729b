package tools

import (
	"context"
	"fmt"

	"shopping-assistant/internal/agent"
	"shopping-assistant/internal/backend"
)

// CartManagementTool dispatches add/update/remove cart operations.
type CartManagementTool struct {
	client *backend.Client
}

// NewCartManagementTool creates a new cart management tool.
func NewCartManagementTool(client *backend.Client) agent.Tool {
	return &CartManagementTool{client: client}
}

func (t *CartManagementTool) Name() string {
	return "cart_management"
}

func (t *CartManagementTool) Description() string {
	return "Manage the shopping cart: add a product by product_id, or update/remove an existing cart item by item_id."
}

func (t *CartManagementTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"action": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"add", "update", "remove"},
				"description": "The cart operation to perform",
			},
			"product_id": map[string]interface{}{
				"type":        "integer",
				"description": "Product ID to add (required for 'add')",
			},
			"item_id": map[string]interface{}{
				"type":        "integer",
				"description": "Cart item ID (required for 'update' and 'remove')",
			},
			"quantity": map[string]interface{}{
				"type":        "integer",
				"description": "Item quantity (default 1 for 'add', required for 'update')",
			},
		},
		"required": []string{"action"},
	}
}

func (t *CartManagementTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	action, ok := stringArg(params, "action")
	if !ok {
		return nil, fmt.Errorf("action parameter is required: %w", backend.ErrValidation)
	}

	switch action {
	case "add":
		return t.add(ctx, params)
	case "update":
		return t.update(ctx, params)
	case "remove":
		return t.remove(ctx, params)
	default:
		return nil, fmt.Errorf("unknown action %q: %w", action, backend.ErrValidation)
	}
}

func (t *CartManagementTool) add(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	productID, ok := intArg(params, "product_id")
	if !ok {
		return nil, fmt.Errorf("product_id parameter is required for add: %w", backend.ErrValidation)
	}

	quantity := 1
	if q, ok := intArg(params, "quantity"); ok {
		quantity = q
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be a positive number: %w", backend.ErrValidation)
	}

	// Verify the product exists so the model gets a NotFound instead of
	// an opaque backend rejection.
	product, err := t.client.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	item, err := t.client.AddCartItem(ctx, productID, quantity)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"status":     "added",
		"item_id":    item.ID,
		"product":    product.Name,
		"quantity":   quantity,
		"unit_price": product.Price,
	}, nil
}

func (t *CartManagementTool) update(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	itemID, ok := intArg(params, "item_id")
	if !ok {
		return nil, fmt.Errorf("item_id parameter is required for update: %w", backend.ErrValidation)
	}

	quantity, ok := intArg(params, "quantity")
	if !ok {
		return nil, fmt.Errorf("quantity parameter is required for update: %w", backend.ErrValidation)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, use remove to delete the item: %w", backend.ErrValidation)
	}

	item, err := t.client.UpdateCartItem(ctx, itemID, quantity)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"status":   "updated",
		"item_id":  item.ID,
		"product":  item.Name,
		"quantity": item.Quantity,
	}, nil
}

func (t *CartManagementTool) remove(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	itemID, ok := intArg(params, "item_id")
	if !ok {
		return nil, fmt.Errorf("item_id parameter is required for remove: %w", backend.ErrValidation)
	}

	if err := t.client.RemoveCartItem(ctx, itemID); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"status":  "removed",
		"item_id": itemID,
	}, nil
}
