package order

import (
	"sync"

	"github.com/google/uuid"
)

// Registry hands out one cart per terminal. Carts are independent of each
// other; each cart serializes its own mutations internally.
type Registry struct {
	mu     sync.Mutex
	menu   Menu
	policy DiscountPolicy
	carts  map[uuid.UUID]*Store
}

// NewRegistry creates a registry bound to a loaded menu and a discount
// policy shared by all carts.
func NewRegistry(menu Menu, policy DiscountPolicy) *Registry {
	return &Registry{
		menu:   menu,
		policy: policy,
		carts:  make(map[uuid.UUID]*Store),
	}
}

// Cart returns the terminal's cart, creating an empty one on first use.
func (r *Registry) Cart(terminalID uuid.UUID) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[terminalID]
	if !ok {
		cart = NewStore(r.menu, r.policy)
		r.carts[terminalID] = cart
	}
	return cart
}
