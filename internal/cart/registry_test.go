package cart

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRegistrySameGuestSameCart(t *testing.T) {
	r := NewRegistry(time.Hour)
	guest := uuid.New()

	c1 := r.GetOrCreate(guest)
	c1.Add(sampleProduct("Mela Rossa", "1.50"))

	c2 := r.GetOrCreate(guest)
	if c1 != c2 {
		t.Fatal("expected the same cart for the same guest")
	}
	if got := len(c2.Lines()); got != 1 {
		t.Fatalf("expected 1 line, got %d", got)
	}
}

func TestRegistryDistinctGuestsDistinctCarts(t *testing.T) {
	r := NewRegistry(time.Hour)

	c1 := r.GetOrCreate(uuid.New())
	c2 := r.GetOrCreate(uuid.New())

	if c1 == c2 {
		t.Fatal("expected distinct carts for distinct guests")
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 carts, got %d", r.Len())
	}
}

func TestRegistryExpiresIdleCarts(t *testing.T) {
	r := NewRegistry(time.Minute)

	now := time.Now()
	r.now = func() time.Time { return now }

	idle := uuid.New()
	r.GetOrCreate(idle)

	// Two minutes later another guest shows up; the idle cart is gone.
	now = now.Add(2 * time.Minute)
	r.GetOrCreate(uuid.New())

	if r.Len() != 1 {
		t.Fatalf("expected 1 live cart, got %d", r.Len())
	}
}
