package tools

import (
	"context"
	"fmt"
	"math"

	"shopping-assistant/internal/agent"
	"shopping-assistant/internal/backend"
)

// ProductDetailsTool returns a single product with its reviews.
type ProductDetailsTool struct {
	client *backend.Client
}

// NewProductDetailsTool creates a new product details tool.
func NewProductDetailsTool(client *backend.Client) agent.Tool {
	return &ProductDetailsTool{client: client}
}

func (t *ProductDetailsTool) Name() string {
	return "product_details"
}

func (t *ProductDetailsTool) Description() string {
	return "Get detailed information about a specific product, including customer reviews and the average rating."
}

func (t *ProductDetailsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"product_id": map[string]interface{}{
				"type":        "integer",
				"description": "The unique ID of the product",
			},
		},
		"required": []string{"product_id"},
	}
}

func (t *ProductDetailsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	productID, ok := intArg(params, "product_id")
	if !ok {
		return nil, fmt.Errorf("product_id parameter is required: %w", backend.ErrValidation)
	}

	product, err := t.client.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	reviews, err := t.client.GetProductReviews(ctx, productID)
	if err != nil {
		return nil, err
	}

	reviewList := make([]map[string]interface{}, 0, len(reviews))
	var totalRating int
	for _, r := range reviews {
		totalRating += r.Rating
		reviewList = append(reviewList, map[string]interface{}{
			"user_name": r.UserName,
			"rating":    r.Rating,
			"comment":   r.Comment,
		})
	}

	var avgRating float64
	if len(reviews) > 0 {
		avgRating = math.Round(float64(totalRating)/float64(len(reviews))*10) / 10
	}

	return map[string]interface{}{
		"product": map[string]interface{}{
			"id":          product.ID,
			"name":        product.Name,
			"description": product.Description,
			"category":    product.Category,
			"price":       product.Price,
			"emoji":       product.Emoji,
		},
		"reviews":        reviewList,
		"review_count":   len(reviews),
		"average_rating": avgRating,
	}, nil
}
