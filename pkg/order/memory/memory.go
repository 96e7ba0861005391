// Package memory implements an ordered in-memory order repository.
package memory

import (
	"context"
	"sync"

	"takeout/pkg/order"
)

// Repository provides an in-memory implementation of order.Repository.
// Orders keep their insertion order.
type Repository struct {
	mu     sync.RWMutex
	orders []order.Order
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{}
}

// Add appends the order.
func (r *Repository) Add(ctx context.Context, o order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, o)
	return nil
}

// Modify replaces the first order matching key, keeping its position.
func (r *Repository) Modify(ctx context.Context, key order.Key, o order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(key)
	if i < 0 {
		return order.ErrNotFound
	}
	r.orders[i] = o
	return nil
}

// Delete removes the first order matching key and returns it.
func (r *Repository) Delete(ctx context.Context, key order.Key) (order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(key)
	if i < 0 {
		return order.Order{}, order.ErrNotFound
	}
	removed := r.orders[i]
	r.orders = append(r.orders[:i], r.orders[i+1:]...)
	return removed, nil
}

// List returns a copy of all orders in sequence order.
func (r *Repository) List(ctx context.Context) ([]order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]order.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

// Replace discards the current orders in favour of a copy of orders.
func (r *Repository) Replace(ctx context.Context, orders []order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append([]order.Order(nil), orders...)
	return nil
}

func (r *Repository) index(key order.Key) int {
	for i, o := range r.orders {
		if key.Matches(o) {
			return i
		}
	}
	return -1
}
