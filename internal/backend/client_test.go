package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

func fastPolicy(maxAttempts int) Policy {
	return Policy{
		Timeout:           time.Second,
		MaxAttempts:       maxAttempts,
		RetryBaseDelay:    time.Millisecond,
		BackoffMultiplier: 2.0,
		BreakerThreshold:  3,
		BreakerCooldown:   time.Minute,
	}
}

func TestRetryOnTransientFailure(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]Product{{ID: 1, Name: "Laptop", Price: 1299.99}})
	}))
	defer server.Close()

	client := NewClient(server.URL, fastPolicy(3), mockLogger{})
	products, err := client.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("expected success on third attempt, got %v", err)
	}
	if len(products) != 1 || products[0].Name != "Laptop" {
		t.Errorf("unexpected products: %+v", products)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestExhaustedRetriesSurfaceUnavailable(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, fastPolicy(3), mockLogger{})
	_, err := client.ListProducts(context.Background())
	if !IsUnavailable(err) {
		t.Fatalf("expected ErrUnavailable after exhausting retries, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("expected all 3 attempts used, got %d", got)
	}
}

func TestNotFoundIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, fastPolicy(3), mockLogger{})
	_, err := client.GetProduct(context.Background(), 999)
	if !IsNotFound(err) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("404 must not be retried, got %d attempts", got)
	}
}

func TestValidationErrorIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"quantity must be positive"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, fastPolicy(3), mockLogger{})
	_, err := client.AddCartItem(context.Background(), 1, -1)
	if !IsValidation(err) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("4xx must not be retried, got %d attempts", got)
	}
}

func TestBreakerShortCircuitsWithoutNetworkIO(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	policy := fastPolicy(1)
	policy.BreakerThreshold = 3
	client := NewClient(server.URL, policy, mockLogger{})

	// Three exhausted calls open the circuit.
	for i := 0; i < 3; i++ {
		if _, err := client.ListProducts(context.Background()); !IsUnavailable(err) {
			t.Fatalf("call %d: expected ErrUnavailable, got %v", i, err)
		}
	}
	if !client.BreakerOpen() {
		t.Fatal("expected circuit open after threshold failures")
	}

	before := atomic.LoadInt32(&calls)
	if _, err := client.ListProducts(context.Background()); !IsUnavailable(err) {
		t.Fatalf("expected short-circuit error, got %v", err)
	}
	if after := atomic.LoadInt32(&calls); after != before {
		t.Errorf("open circuit must not hit the network: %d -> %d requests", before, after)
	}
}

func TestBreakerProbeRecovery(t *testing.T) {
	var healthy atomic.Bool
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode([]Product{})
	}))
	defer server.Close()

	policy := fastPolicy(1)
	policy.BreakerThreshold = 2
	policy.BreakerCooldown = 30 * time.Second
	client := NewClient(server.URL, policy, mockLogger{})

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	client.breaker.now = func() time.Time { return now }

	client.ListProducts(context.Background())
	client.ListProducts(context.Background())
	if !client.BreakerOpen() {
		t.Fatal("expected circuit open")
	}

	// Cooldown elapses while the backend recovers; the probe closes it.
	healthy.Store(true)
	now = now.Add(31 * time.Second)
	if _, err := client.ListProducts(context.Background()); err != nil {
		t.Fatalf("probe after cooldown should succeed, got %v", err)
	}
	if client.BreakerOpen() {
		t.Error("successful probe must close the circuit")
	}
	if _, err := client.ListProducts(context.Background()); err != nil {
		t.Errorf("circuit should be closed for normal traffic, got %v", err)
	}
}

func TestFourXXResetsFailureRun(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		// Alternate transient failures with a 404 so the consecutive
		// run never reaches the threshold.
		if n%2 == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	policy := fastPolicy(1)
	policy.BreakerThreshold = 2
	client := NewClient(server.URL, policy, mockLogger{})

	for i := 0; i < 6; i++ {
		client.GetProduct(context.Background(), 1)
	}
	if client.BreakerOpen() {
		t.Error("4xx responses prove the backend is answering and must break the failure run")
	}
}

func TestCartOperations(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/cart", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]CartItem{{ID: 7, ProductID: 1, Name: "Laptop", Price: 1299.99, Quantity: 2}})
	})
	mux.HandleFunc("POST /api/cart", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]int
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(CartItem{ID: 8, ProductID: body["product_id"], Quantity: body["quantity"]})
	})
	mux.HandleFunc("PUT /api/cart/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]int
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(CartItem{ID: 7, Quantity: body["quantity"]})
	})
	mux.HandleFunc("DELETE /api/cart/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "7" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL, fastPolicy(1), mockLogger{})
	ctx := context.Background()

	items, err := client.GetCartItems(ctx)
	if err != nil || len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("GetCartItems: items=%+v err=%v", items, err)
	}

	added, err := client.AddCartItem(ctx, 3, 2)
	if err != nil || added.ProductID != 3 || added.Quantity != 2 {
		t.Fatalf("AddCartItem: item=%+v err=%v", added, err)
	}

	updated, err := client.UpdateCartItem(ctx, 7, 5)
	if err != nil || updated.Quantity != 5 {
		t.Fatalf("UpdateCartItem: item=%+v err=%v", updated, err)
	}

	if err := client.RemoveCartItem(ctx, 7); err != nil {
		t.Fatalf("RemoveCartItem: %v", err)
	}
	if err := client.RemoveCartItem(ctx, 99); !IsNotFound(err) {
		t.Errorf("expected ErrNotFound removing unknown row, got %v", err)
	}
}

func TestPing(t *testing.T) {
	t.Run("healthy backend", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]Product{})
		}))
		defer server.Close()

		client := NewClient(server.URL, fastPolicy(3), mockLogger{})
		if err := client.Ping(context.Background()); err != nil {
			t.Errorf("expected healthy ping, got %v", err)
		}
	})

	t.Run("unreachable backend does not retry", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(server.URL, fastPolicy(3), mockLogger{})
		if err := client.Ping(context.Background()); !IsUnavailable(err) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
		if got := atomic.LoadInt32(&calls); got != 1 {
			t.Errorf("ping is a single probe, got %d attempts", got)
		}
	})
}
