package transport

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"ortofrutticola/internal/admin"
	"ortofrutticola/internal/cart"
	"ortofrutticola/internal/catalog"
	"ortofrutticola/internal/domain"
	"ortofrutticola/internal/middleware"
	"ortofrutticola/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// In-memory product repository for handler tests.
type fakeProductRepository struct {
	products []domain.Product
	failList bool
}

func (f *fakeProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	if f.failList {
		return nil, errors.New("connection refused")
	}
	out := make([]domain.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeProductRepository) Insert(ctx context.Context, product *domain.Product) (uuid.UUID, error) {
	p := *product
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	f.products = append(f.products, p)
	return p.ID, nil
}

func (f *fakeProductRepository) Update(ctx context.Context, product *domain.Product) error {
	for i := range f.products {
		if f.products[i].ID == product.ID {
			f.products[i] = *product
			return nil
		}
	}
	return repository.ErrProductNotFound
}

func (f *fakeProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range f.products {
		if f.products[i].ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return repository.ErrProductNotFound
}

type testAPI struct {
	router   chi.Router
	repo     *fakeProductRepository
	store    *catalog.Store
	sessions *admin.Sessions
}

func newTestAPI(t *testing.T, load bool, products ...domain.Product) *testAPI {
	t.Helper()

	repo := &fakeProductRepository{products: products}
	logger := zap.NewNop()
	store := catalog.NewStore(repo, logger)
	if load {
		if err := store.Load(context.Background()); err != nil {
			t.Fatalf("load failed: %v", err)
		}
	}

	sessions := admin.NewSessions(admin.NewStaticAuthenticator("admin123"), "test-secret", time.Hour)
	registry := cart.NewRegistry(time.Hour)

	router := chi.NewRouter()
	NewStorefrontHandler(store, logger).RegisterRoutes(router)
	NewCartHandler(registry, store, logger).RegisterRoutes(router)

	passthrough := func(next http.Handler) http.Handler { return next }
	NewAdminHandler(store, sessions, logger).RegisterRoutes(router,
		middleware.AdminAuthMiddleware(sessions, logger), passthrough)

	return &testAPI{router: router, repo: repo, store: store, sessions: sessions}
}

func storefrontProduct(name, category, price string, inStock bool) domain.Product {
	return domain.Product{
		ID:       uuid.New(),
		Name:     name,
		Category: category,
		Price:    decimal.RequireFromString(price),
		Unit:     domain.UnitKg,
		InStock:  inStock,
	}
}

func (a *testAPI) adminToken(t *testing.T) string {
	t.Helper()
	token, err := a.sessions.Login("admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return token
}
