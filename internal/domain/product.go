package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Selling units used by the shop.
const (
	UnitKg        = "kg"
	UnitVaschetta = "vaschetta"
	UnitPezzo     = "pezzo"
)

// CategoryAll is the synthetic category meaning "no category filter".
const CategoryAll = "Tutti"

// Product represents a catalog item. The category set is open: new values
// appear as soon as a product carries them.
type Product struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Category    string          `json:"category" db:"category"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Unit        string          `json:"unit" db:"unit"`
	Image       string          `json:"image" db:"image"`
	Description string          `json:"description" db:"description"`
	Origin      string          `json:"origin" db:"origin"`
	InStock     bool            `json:"in_stock" db:"in_stock"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// ValidUnit reports whether u is one of the shop's selling units.
func ValidUnit(u string) bool {
	switch u {
	case UnitKg, UnitVaschetta, UnitPezzo:
		return true
	}
	return false
}
