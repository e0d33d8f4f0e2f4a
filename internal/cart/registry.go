package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultIdleTTL is how long an untouched guest cart survives before the
// registry lets go of it.
const DefaultIdleTTL = 4 * time.Hour

type entry struct {
	cart     *Cart
	lastSeen time.Time
}

// Registry hands out in-memory carts keyed by an opaque guest id (the
// storefront keeps it in a cookie). Carts live only as long as the process
// and their idle TTL.
type Registry struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[uuid.UUID]*entry
	now     func() time.Time
}

// NewRegistry creates a registry with the given idle TTL; zero means
// DefaultIdleTTL.
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	return &Registry{
		ttl:     ttl,
		entries: make(map[uuid.UUID]*entry),
		now:     time.Now,
	}
}

// GetOrCreate returns the cart for the guest, creating an empty one on first
// touch, and refreshes its idle timer. Expired carts elsewhere in the
// registry are dropped opportunistically.
func (r *Registry) GetOrCreate(guestID uuid.UUID) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, e := range r.entries {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.entries, id)
		}
	}

	e, ok := r.entries[guestID]
	if !ok {
		e = &entry{cart: New()}
		r.entries[guestID] = e
	}
	e.lastSeen = now
	return e.cart
}

// Len reports how many live carts the registry holds.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
