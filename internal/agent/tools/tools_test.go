package tools_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopping-assistant/internal/agent/tools"
	"shopping-assistant/internal/backend"
)

// mockLogger
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

var testProducts = []backend.Product{
	{ID: 1, Name: "Smartphone", Description: "Latest model with 5G", Category: "Electronics", Price: 699.99, Emoji: "📱"},
	{ID: 2, Name: "Laptop", Description: "Powerful workstation", Category: "Electronics", Price: 1299.99, Emoji: "💻"},
	{ID: 3, Name: "Coffee Maker", Description: "Brews great espresso", Category: "Home", Price: 89.50, Emoji: "☕"},
}

// newBackendFixture serves a small product catalog and an in-memory cart.
func newBackendFixture(t *testing.T) (*httptest.Server, *backend.Client) {
	t.Helper()

	cart := []backend.CartItem{
		{ID: 10, ProductID: 1, Name: "Smartphone", Price: 699.99, Quantity: 1, Emoji: "📱"},
		{ID: 11, ProductID: 3, Name: "Coffee Maker", Price: 89.50, Quantity: 2, Emoji: "☕"},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(testProducts)
	})
	mux.HandleFunc("GET /api/products/1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(testProducts[0])
	})
	mux.HandleFunc("GET /api/products/1/reviews", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]backend.Review{
			{ID: 1, ProductID: 1, UserName: "Alice", Rating: 5, Comment: "Great phone"},
			{ID: 2, ProductID: 1, UserName: "Bob", Rating: 4, Comment: "Solid battery"},
		})
	})
	mux.HandleFunc("GET /api/cart", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(cart)
	})
	mux.HandleFunc("POST /api/cart", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ProductID int `json:"product_id"`
			Quantity  int `json:"quantity"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		item := backend.CartItem{ID: 12, ProductID: body.ProductID, Name: "Smartphone", Price: 699.99, Quantity: body.Quantity}
		json.NewEncoder(w).Encode(item)
	})
	mux.HandleFunc("PUT /api/cart/10", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Quantity int `json:"quantity"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		item := cart[0]
		item.Quantity = body.Quantity
		json.NewEncoder(w).Encode(item)
	})
	mux.HandleFunc("DELETE /api/cart/10", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	policy := backend.Policy{
		Timeout:          2 * time.Second,
		MaxAttempts:      1,
		BreakerThreshold: 100,
		BreakerCooldown:  time.Minute,
	}
	client := backend.NewClient(server.URL, policy, &mockLogger{})
	return server, client
}

func TestShoppingTools(t *testing.T) {
	ctx := context.Background()
	_, client := newBackendFixture(t)

	t.Run("ProductSearchTool", func(t *testing.T) {
		tool := tools.NewProductSearchTool(client)

		if tool.Name() != "product_search" {
			t.Errorf("unexpected name: %s", tool.Name())
		}
		if tool.Description() == "" || len(tool.Parameters()) == 0 {
			t.Errorf("missing desc or params")
		}

		res, err := tool.Execute(ctx, map[string]interface{}{
			"category":  "Electronics",
			"max_price": float64(700),
		})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}

		out, ok := res.(map[string]interface{})
		if !ok || out["count"] != 1 {
			t.Fatalf("expected exactly one match, got: %v", res)
		}
		products := out["products"].([]map[string]interface{})
		if products[0]["name"] != "Smartphone" {
			t.Errorf("expected Smartphone, got: %v", products[0]["name"])
		}

		// Empty result is success, not an error
		res, err = tool.Execute(ctx, map[string]interface{}{"query": "nonexistent"})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if res.(map[string]interface{})["count"] != 0 {
			t.Errorf("expected zero matches, got: %v", res)
		}

		// Query matches name, description, and category case-insensitively
		res, err = tool.Execute(ctx, map[string]interface{}{"query": "ESPRESSO"})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if res.(map[string]interface{})["count"] != 1 {
			t.Errorf("expected description match, got: %v", res)
		}
	})

	t.Run("ProductDetailsTool", func(t *testing.T) {
		tool := tools.NewProductDetailsTool(client)

		if tool.Name() != "product_details" {
			t.Errorf("unexpected name: %s", tool.Name())
		}

		res, err := tool.Execute(ctx, map[string]interface{}{"product_id": float64(1)})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}

		out := res.(map[string]interface{})
		if out["review_count"] != 2 {
			t.Errorf("expected 2 reviews, got: %v", out["review_count"])
		}
		if out["average_rating"] != 4.5 {
			t.Errorf("expected average 4.5, got: %v", out["average_rating"])
		}

		// Unknown id surfaces NotFound
		_, err = tool.Execute(ctx, map[string]interface{}{"product_id": float64(99)})
		if !backend.IsNotFound(err) {
			t.Errorf("expected NotFound, got: %v", err)
		}

		// Missing id is a validation failure
		_, err = tool.Execute(ctx, map[string]interface{}{})
		if !backend.IsValidation(err) {
			t.Errorf("expected ValidationError, got: %v", err)
		}
	})

	t.Run("CartManagementTool", func(t *testing.T) {
		tool := tools.NewCartManagementTool(client)

		if tool.Name() != "cart_management" {
			t.Errorf("unexpected name: %s", tool.Name())
		}

		res, err := tool.Execute(ctx, map[string]interface{}{
			"action":     "add",
			"product_id": float64(1),
			"quantity":   float64(2),
		})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if res.(map[string]interface{})["status"] != "added" {
			t.Errorf("unexpected result: %v", res)
		}

		res, err = tool.Execute(ctx, map[string]interface{}{
			"action":   "update",
			"item_id":  float64(10),
			"quantity": float64(3),
		})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if res.(map[string]interface{})["quantity"] != 3 {
			t.Errorf("unexpected result: %v", res)
		}

		res, err = tool.Execute(ctx, map[string]interface{}{
			"action":  "remove",
			"item_id": float64(10),
		})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if res.(map[string]interface{})["status"] != "removed" {
			t.Errorf("unexpected result: %v", res)
		}

		// quantity < 1 on update is rejected before any network call
		_, err = tool.Execute(ctx, map[string]interface{}{
			"action":   "update",
			"item_id":  float64(10),
			"quantity": float64(0),
		})
		if !backend.IsValidation(err) {
			t.Errorf("expected ValidationError, got: %v", err)
		}

		// adding an unknown product surfaces NotFound from the lookup
		_, err = tool.Execute(ctx, map[string]interface{}{
			"action":     "add",
			"product_id": float64(99),
		})
		if !backend.IsNotFound(err) {
			t.Errorf("expected NotFound, got: %v", err)
		}

		// unknown action
		_, err = tool.Execute(ctx, map[string]interface{}{"action": "checkout"})
		if !backend.IsValidation(err) {
			t.Errorf("expected ValidationError, got: %v", err)
		}
	})

	t.Run("CartSummaryTool", func(t *testing.T) {
		tool := tools.NewCartSummaryTool(client)

		if tool.Name() != "cart_summary" {
			t.Errorf("unexpected name: %s", tool.Name())
		}

		res, err := tool.Execute(ctx, map[string]interface{}{})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}

		out := res.(map[string]interface{})
		if out["empty"] != false {
			t.Errorf("expected non-empty cart")
		}
		if out["total_items"] != 3 {
			t.Errorf("expected 3 total items, got: %v", out["total_items"])
		}
		// 699.99 + 2*89.50 = 878.99
		if out["total_cost"] != 878.99 {
			t.Errorf("expected total 878.99, got: %v", out["total_cost"])
		}
	})
}

func TestCartSummaryEmptyCart(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/cart", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]backend.CartItem{})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := backend.NewClient(server.URL, backend.Policy{MaxAttempts: 1}, &mockLogger{})
	tool := tools.NewCartSummaryTool(client)

	res, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	out := res.(map[string]interface{})
	if out["empty"] != true {
		t.Errorf("expected empty cart")
	}
	if out["total_cost"] != 0.0 {
		t.Errorf("expected total 0.00, got: %v", out["total_cost"])
	}
}
