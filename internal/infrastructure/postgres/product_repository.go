package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rfm-api/internal/domain"
	"github.com/jhoicas/rfm-api/internal/domain/entity"
	"github.com/jhoicas/rfm-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, product_name, category, base_price, description, image_url, cloudinary_public_id,
		status, stock_quantity, sku, sizes, tags, created_at, updated_at`

const (
	queryProductInsert = `
		INSERT INTO products (id, product_name, category, base_price, description, image_url, cloudinary_public_id,
			status, stock_quantity, sku, sizes, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	queryProductByID = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	queryProductList = `SELECT ` + productColumns + ` FROM products
		WHERE ($1 = '' OR category = $1) AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC`
	queryProductUpdate = `
		UPDATE products SET product_name = $2, category = $3, base_price = $4, description = $5, image_url = $6,
			cloudinary_public_id = $7, status = $8, stock_quantity = $9, sku = $10, sizes = $11, tags = $12,
			updated_at = $13
		WHERE id = $1`
	queryProductStatus = `UPDATE products SET status = $2, updated_at = now() WHERE id = $1`
	queryProductDelete = `DELETE FROM products WHERE id = $1`
)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
// sizes y tags son columnas JSONB; base_price es NUMERIC (shopspring/decimal).
type ProductRepo struct {
	db Querier
}

// NewProductRepository construye el repositorio del catálogo.
func NewProductRepository(db Querier) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create persiste un producto. SKU duplicado → domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.db.Exec(ctx, queryProductInsert,
		p.ID, p.Name, p.Category, p.BasePrice, p.Description, p.ImageURL, p.CloudinaryPublicID,
		p.Status, p.StockQuantity, nullIfEmpty(p.SKU), p.Sizes, p.Tags, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// FindByID obtiene un producto por ID.
func (r *ProductRepo) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, queryProductByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List lista productos por categoría y estado; cadena vacía no filtra.
func (r *ProductRepo) List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	rows, err := r.db.Query(ctx, queryProductList, filter.Category, filter.Status)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update reescribe todos los campos editables.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	tag, err := r.db.Exec(ctx, queryProductUpdate,
		p.ID, p.Name, p.Category, p.BasePrice, p.Description, p.ImageURL, p.CloudinaryPublicID,
		p.Status, p.StockQuantity, nullIfEmpty(p.SKU), p.Sizes, p.Tags, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetStatus cambia el estado (archivar / restaurar).
func (r *ProductRepo) SetStatus(ctx context.Context, id, status string) error {
	tag, err := r.db.Exec(ctx, queryProductStatus, id, status)
	if err != nil {
		return fmt.Errorf("set product status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el producto de forma definitiva.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, queryProductDelete, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p   entity.Product
		sku *string
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.BasePrice, &p.Description, &p.ImageURL, &p.CloudinaryPublicID,
		&p.Status, &p.StockQuantity, &sku, &p.Sizes, &p.Tags, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if sku != nil {
		p.SKU = *sku
	}
	return &p, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
