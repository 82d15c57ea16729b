package backend

import "time"

// Product is a read-only snapshot of a backend product. The backend
// stays the source of truth; nothing here is cached between calls.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Emoji       string  `json:"emoji,omitempty"`
}

// Review is a customer review attached to a product.
type Review struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	UserName  string `json:"user_name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// CartItem is one row of the shopping cart.
type CartItem struct {
	ID        int     `json:"id"`
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Emoji     string  `json:"emoji,omitempty"`
}

// Policy is the resilience policy applied to every backend call.
// It is a plain value so tests and callers construct it explicitly
// instead of relying on hard-coded numbers inside the client.
type Policy struct {
	Timeout           time.Duration // per-call timeout
	MaxAttempts       int           // total attempts including the first
	RetryBaseDelay    time.Duration // backoff base
	BackoffMultiplier float64
	BreakerThreshold  int           // consecutive failures before the circuit opens
	BreakerCooldown   time.Duration // how long the circuit stays open
}

// DefaultPolicy returns the policy used when fields are left zero.
func DefaultPolicy() Policy {
	return Policy{
		Timeout:           10 * time.Second,
		MaxAttempts:       3,
		RetryBaseDelay:    200 * time.Millisecond,
		BackoffMultiplier: 2.0,
		BreakerThreshold:  5,
		BreakerCooldown:   30 * time.Second,
	}
}

func (p Policy) withDefaults() Policy {
	def := DefaultPolicy()
	if p.Timeout <= 0 {
		p.Timeout = def.Timeout
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = def.MaxAttempts
	}
	if p.RetryBaseDelay <= 0 {
		p.RetryBaseDelay = def.RetryBaseDelay
	}
	if p.BackoffMultiplier < 1 {
		p.BackoffMultiplier = def.BackoffMultiplier
	}
	if p.BreakerThreshold <= 0 {
		p.BreakerThreshold = def.BreakerThreshold
	}
	if p.BreakerCooldown <= 0 {
		p.BreakerCooldown = def.BreakerCooldown
	}
	return p
}
