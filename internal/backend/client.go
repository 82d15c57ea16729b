package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shopping-assistant/pkg/log"
)

// Client is the HTTP wrapper for the product/cart backend API.
// Every call goes through the retry + circuit-breaker policy, so a
// backend outage degrades into typed errors instead of hanging chats.
type Client struct {
	baseURL    string
	httpClient *http.Client
	policy     Policy
	breaker    *Breaker
	l          log.Logger
}

// NewClient creates a new backend client with the given resilience policy.
func NewClient(baseURL string, policy Policy, l log.Logger) *Client {
	policy = policy.withDefaults()
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		policy:     policy,
		breaker:    NewBreaker(policy.BreakerThreshold, policy.BreakerCooldown),
		l:          l,
	}
}

// ListProducts fetches all products via GET /api/products.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product by its ID.
func (c *Client) GetProduct(ctx context.Context, productID int) (*Product, error) {
	var product Product
	path := fmt.Sprintf("/api/products/%d", productID)
	if err := c.do(ctx, http.MethodGet, path, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductReviews fetches the reviews for a product.
func (c *Client) GetProductReviews(ctx context.Context, productID int) ([]Review, error) {
	var reviews []Review
	path := fmt.Sprintf("/api/products/%d/reviews", productID)
	if err := c.do(ctx, http.MethodGet, path, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetCartItems fetches all cart rows via GET /api/cart.
func (c *Client) GetCartItems(ctx context.Context) ([]CartItem, error) {
	var items []CartItem
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddCartItem adds a product to the cart via POST /api/cart.
// The operation is not idempotent: repeated calls with the same
// arguments accumulate quantity server-side. That mirrors the backend
// contract and must not be deduplicated here.
func (c *Client) AddCartItem(ctx context.Context, productID, quantity int) (*CartItem, error) {
	body := map[string]int{"product_id": productID, "quantity": quantity}
	var item CartItem
	if err := c.do(ctx, http.MethodPost, "/api/cart", body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCartItem sets the quantity of a cart row via PUT /api/cart/{id}.
func (c *Client) UpdateCartItem(ctx context.Context, cartItemID, quantity int) (*CartItem, error) {
	body := map[string]int{"quantity": quantity}
	var item CartItem
	path := fmt.Sprintf("/api/cart/%d", cartItemID)
	if err := c.do(ctx, http.MethodPut, path, body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveCartItem deletes a cart row via DELETE /api/cart/{id}.
func (c *Client) RemoveCartItem(ctx context.Context, cartItemID int) error {
	path := fmt.Sprintf("/api/cart/%d", cartItemID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// Ping checks backend reachability for health reporting. It bypasses
// retries (a single attempt) but still respects the circuit breaker.
func (c *Client) Ping(ctx context.Context) error {
	if !c.breaker.Allow() {
		return fmt.Errorf("circuit open: %w", ErrUnavailable)
	}
	err := c.attempt(ctx, http.MethodGet, "/api/products", nil, nil)
	if err == nil || !isTransient(err) {
		c.breaker.RecordSuccess()
		return nil
	}
	c.breaker.RecordFailure()
	return fmt.Errorf("backend ping: %w", ErrUnavailable)
}

// BreakerOpen reports whether the circuit is currently open.
func (c *Client) BreakerOpen() bool {
	return c.breaker.Open()
}

// do runs one logical backend call: circuit-breaker gate, then up to
// MaxAttempts attempts with exponential backoff on transient failures.
// Non-transient failures (4xx) surface immediately and are never retried.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if !c.breaker.Allow() {
		c.l.Warnf(ctx, "circuit open, short-circuiting %s %s", method, path)
		return fmt.Errorf("circuit open: %w", ErrUnavailable)
	}

	delay := c.policy.RetryBaseDelay
	var lastErr error

	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				c.breaker.RecordFailure()
				return fmt.Errorf("backend call cancelled: %w", ErrUnavailable)
			}
			delay = time.Duration(float64(delay) * c.policy.BackoffMultiplier)
		}

		err := c.attempt(ctx, method, path, body, out)
		if err == nil {
			c.breaker.RecordSuccess()
			return nil
		}

		if !isTransient(err) {
			// The backend answered, just not with what the caller
			// wanted. That breaks the consecutive-failure run.
			c.breaker.RecordSuccess()
			return err
		}

		c.l.Warnf(ctx, "backend %s %s attempt %d/%d failed: %v", method, path, attempt, c.policy.MaxAttempts, err)
		lastErr = err
	}

	c.breaker.RecordFailure()
	return fmt.Errorf("%s %s after %d attempts (%v): %w", method, path, c.policy.MaxAttempts, lastErr, ErrUnavailable)
}

// attempt performs a single HTTP round trip bounded by the per-call timeout.
func (c *Client) attempt(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.policy.Timeout)
	defer cancel()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &transientError{err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	case resp.StatusCode >= 500:
		raw, _ := io.ReadAll(resp.Body)
		return &transientError{err: fmt.Errorf("backend API error %d: %s", resp.StatusCode, string(raw))}
	case resp.StatusCode >= 400:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("backend API error %d: %s: %w", resp.StatusCode, string(raw), ErrValidation)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}
