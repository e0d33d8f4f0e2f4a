package cart

import (
	"testing"

	"ortofrutticola/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

func sampleProduct(name string, price string) domain.Product {
	return domain.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: "Mele",
		Price:    decimal.RequireFromString(price),
		Unit:     domain.UnitKg,
		InStock:  true,
	}
}

// Repeated adds of the same product merge into a single line whose quantity
// equals the number of calls.
func TestProperty_RepeatedAddsMergeIntoOneLine(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("n adds of one product yield one line with quantity n", prop.ForAll(
		func(addCount int) bool {
			c := New()
			p := sampleProduct("Mela Rossa", "1.50")

			for i := 0; i < addCount; i++ {
				c.Add(p)
			}

			lines := c.Lines()
			if len(lines) != 1 {
				t.Logf("expected 1 line, got %d", len(lines))
				return false
			}
			return lines[0].Quantity == addCount
		},
		gen.IntRange(1, 50),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Quantity never goes negative: any sequence of deltas either leaves a
// positive quantity or removes the line.
func TestProperty_QuantityNeverNegative(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("after arbitrary deltas every line quantity is at least one", prop.ForAll(
		func(deltas []int) bool {
			c := New()
			p := sampleProduct("Banana", "0.90")
			c.Add(p)

			for _, d := range deltas {
				c.ChangeQuantity(p.ID, d)
			}

			for _, line := range c.Lines() {
				if line.Quantity < 1 {
					t.Logf("line quantity %d", line.Quantity)
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(-5, 5)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Totals are recomputed from the lines on every read, also after interleaved
// add and change operations.
func TestProperty_TotalsMatchLineSums(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("totals equal the sums over current lines", prop.ForAll(
		func(addCounts []int, deltas []int) bool {
			c := New()
			products := []domain.Product{
				sampleProduct("Mela Rossa", "1.50"),
				sampleProduct("Fragole", "2.80"),
				sampleProduct("Limoni", "1.80"),
			}

			for i, n := range addCounts {
				for j := 0; j < n; j++ {
					c.Add(products[i%len(products)])
				}
			}
			for i, d := range deltas {
				c.ChangeQuantity(products[i%len(products)].ID, d)
			}

			wantItems := 0
			wantPrice := decimal.Zero
			for _, line := range c.Lines() {
				wantItems += line.Quantity
				wantPrice = wantPrice.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
			}

			totals := c.ComputeTotals()
			return totals.Items == wantItems && totals.Price.Equal(wantPrice)
		},
		gen.SliceOfN(3, gen.IntRange(0, 10)),
		gen.SliceOf(gen.IntRange(-3, 3)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestAddTwiceThenTotals(t *testing.T) {
	c := New()
	p := sampleProduct("Mela Rossa", "1.50")

	c.Add(p)
	c.Add(p)

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", lines[0].Quantity)
	}

	totals := c.ComputeTotals()
	if totals.Items != 2 {
		t.Errorf("expected 2 items, got %d", totals.Items)
	}
	if !totals.Price.Equal(decimal.RequireFromString("3.00")) {
		t.Errorf("expected total 3.00, got %s", totals.Price)
	}
}

func TestDecrementToZeroRemovesLine(t *testing.T) {
	c := New()
	p := sampleProduct("Mela Rossa", "1.50")

	c.Add(p)
	c.Add(p)
	c.ChangeQuantity(p.ID, -2)

	if got := len(c.Lines()); got != 0 {
		t.Fatalf("expected empty cart, got %d lines", got)
	}

	totals := c.ComputeTotals()
	if totals.Items != 0 || !totals.Price.IsZero() {
		t.Errorf("expected zero totals, got (%d, %s)", totals.Items, totals.Price)
	}
}

func TestChangeQuantityUnknownIDIsNoop(t *testing.T) {
	c := New()
	c.Add(sampleProduct("Kiwi", "3.50"))

	c.ChangeQuantity(uuid.New(), -10)

	if got := len(c.Lines()); got != 1 {
		t.Fatalf("expected 1 line, got %d", got)
	}
}

func TestAddSnapshotsPrice(t *testing.T) {
	c := New()
	p := sampleProduct("Pera Abate", "2.00")
	c.Add(p)

	// A catalog price change after the add must not touch the line.
	p.Price = decimal.RequireFromString("9.99")
	c.Add(p)

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if !lines[0].UnitPrice.Equal(decimal.RequireFromString("2.00")) {
		t.Errorf("expected snapshotted price 2.00, got %s", lines[0].UnitPrice)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	c := New()
	c.Add(sampleProduct("Arancia Tarocco", "2.20"))
	c.Add(sampleProduct("Zucchine", "1.60"))

	c.Clear()

	if got := len(c.Lines()); got != 0 {
		t.Fatalf("expected empty cart, got %d lines", got)
	}
	if totals := c.ComputeTotals(); totals.Items != 0 || !totals.Price.IsZero() {
		t.Errorf("expected zero totals after clear")
	}
}
