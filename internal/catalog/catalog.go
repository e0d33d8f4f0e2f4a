package catalog

import (
	"context"
	"strings"
	"sync"

	"ortofrutticola/internal/domain"
	"ortofrutticola/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductInput carries a product as submitted by the admin form. Price arrives
// as text and is validated at this boundary, not silently coerced.
type ProductInput struct {
	ID          *uuid.UUID
	Name        string
	Category    string
	Price       string
	Unit        string
	Image       string
	Description string
	Origin      string
	InStock     bool
}

// Store holds the read-through cached copy of the product catalog together
// with the storefront filter state, and orchestrates admin CRUD against the
// remote store. A single mutex serializes everything, including the full
// reload that follows every mutation, so a second write can never interleave
// with a pending resync.
type Store struct {
	repo   repository.ProductRepository
	logger *zap.Logger

	mu         sync.Mutex
	products   []domain.Product
	loaded     bool
	searchTerm string
	category   string
}

// NewStore creates a catalog store with an empty product list and the "Tutti"
// category selected.
func NewStore(repo repository.ProductRepository, logger *zap.Logger) *Store {
	return &Store{
		repo:     repo,
		logger:   logger,
		category: domain.CategoryAll,
	}
}

// Load replaces the cached product list wholesale with the remote store's
// contents, ordered by creation time ascending. On failure the previous list
// is retained and a LoadFailure is reported.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Store) loadLocked(ctx context.Context) error {
	products, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to load products", zap.Error(err))
		return loadFailure(err)
	}

	s.products = products
	s.loaded = true
	return nil
}

// Save validates the input, issues an update when an id is present or an
// insert otherwise, and resynchronizes the cache with a full reload on
// success.
func (s *Store) Save(ctx context.Context, input ProductInput) error {
	product, err := s.validate(input)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if input.ID != nil {
		product.ID = *input.ID
		if err := s.repo.Update(ctx, product); err != nil {
			s.logger.Error("Failed to update product",
				zap.String("product_id", product.ID.String()),
				zap.Error(err),
			)
			return saveFailure(err)
		}
	} else {
		id, err := s.repo.Insert(ctx, product)
		if err != nil {
			s.logger.Error("Failed to insert product",
				zap.String("name", product.Name),
				zap.Error(err),
			)
			return saveFailure(err)
		}
		product.ID = id
	}

	return s.loadLocked(ctx)
}

// Remove deletes the product with the given id from the remote store and
// resynchronizes. Callers are expected to have confirmed the deletion with
// the user; the store does not ask.
func (s *Store) Remove(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete product",
			zap.String("product_id", id.String()),
			zap.Error(err),
		)
		return deleteFailure(err)
	}

	return s.loadLocked(ctx)
}

// SetSearchTerm updates the storefront search filter. No I/O.
func (s *Store) SetSearchTerm(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchTerm = text
}

// SetCategory updates the storefront category filter. No I/O.
func (s *Store) SetCategory(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == "" {
		name = domain.CategoryAll
	}
	s.category = name
}

// Loaded reports whether at least one load has succeeded, so the transport
// layer can tell "loading" apart from "loaded but empty".
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Products returns a copy of the full cached catalog, out-of-stock products
// included. This is the admin view.
func (s *Store) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// FilteredProducts returns the shopper-facing view: in-stock products whose
// name contains the search term case-insensitively and whose category
// matches the selected one, catalog order preserved.
func (s *Store) FilteredProducts() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	term := strings.ToLower(s.searchTerm)

	out := []domain.Product{}
	for _, p := range s.products {
		if !p.InStock {
			continue
		}
		if !strings.Contains(strings.ToLower(p.Name), term) {
			continue
		}
		if s.category != domain.CategoryAll && p.Category != s.category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories returns the distinct categories present in the catalog in
// first-seen order, with the "Tutti" sentinel always first. An empty catalog
// yields just the sentinel.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[string]bool{domain.CategoryAll: true}
	out := []string{domain.CategoryAll}
	for _, p := range s.products {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// validate turns form input into a product, rejecting malformed fields with
// a ValidationFailure before anything reaches the remote store.
func (s *Store) validate(input ProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, validationFailure("name is required")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(input.Price))
	if err != nil {
		return nil, validationFailure("price %q is not a number", input.Price)
	}
	if price.IsNegative() {
		return nil, validationFailure("price must not be negative")
	}

	if !domain.ValidUnit(input.Unit) {
		return nil, validationFailure("unknown unit %q", input.Unit)
	}

	category := strings.TrimSpace(input.Category)
	if category == "" || category == domain.CategoryAll {
		return nil, validationFailure("category is required")
	}

	return &domain.Product{
		Name:        name,
		Category:    category,
		Price:       price,
		Unit:        input.Unit,
		Image:       input.Image,
		Description: input.Description,
		Origin:      input.Origin,
		InStock:     input.InStock,
	}, nil
}
