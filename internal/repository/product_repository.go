package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ortofrutticola/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access. It is the
// only collaborator the catalog store talks to; the catalog never reads the
// database on its own.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) (uuid.UUID, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// List retrieves the full catalog ordered by creation time ascending, the
// order the storefront renders it in.
func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, category, price, unit, image, description, origin, in_stock, created_at, updated_at
		FROM products
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Category,
			&product.Price,
			&product.Unit,
			&product.Image,
			&product.Description,
			&product.Origin,
			&product.InStock,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Insert creates a new product and returns the id the store assigned to it.
func (r *productRepository) Insert(ctx context.Context, product *domain.Product) (uuid.UUID, error) {
	query := `
		INSERT INTO products (id, name, category, price, unit, image, description, origin, in_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	id := uuid.New()
	now := time.Now()

	var assigned uuid.UUID
	err := r.db.QueryRowContext(
		ctx,
		query,
		id,
		product.Name,
		product.Category,
		product.Price,
		product.Unit,
		product.Image,
		product.Description,
		product.Origin,
		product.InStock,
		now,
		now,
	).Scan(&assigned)

	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return assigned, nil
}

// Update rewrites all mutable fields of an existing product.
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, category = $3, price = $4, unit = $5,
		    image = $6, description = $7, origin = $8, in_stock = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Category,
		product.Price,
		product.Unit,
		product.Image,
		product.Description,
		product.Origin,
		product.InStock,
		time.Now(),
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product from the store.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}
