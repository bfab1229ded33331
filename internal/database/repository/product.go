package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/artur/pricewatch/internal/database/models"
)

const productColumns = `id, name, url, target_price, last_price, last_checked, created_at`

// ProductRepository handles tracked product persistence
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a product with no observed price yet
func (r *ProductRepository) Create(ctx context.Context, name, url string, targetPrice *float64) (*models.Product, error) {
	now := time.Now().UTC()

	query := `INSERT INTO products (name, url, target_price, created_at) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, name, url, nullFloat(targetPrice), now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get product id: %w", err)
	}

	return &models.Product{
		ID:          id,
		Name:        name,
		URL:         url,
		TargetPrice: targetPrice,
		CreatedAt:   now,
	}, nil
}

// List returns all products ordered by id
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	return products, rows.Err()
}

// GetByID returns the product or nil when it does not exist
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a product and reports whether it existed
func (r *ProductRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected > 0, nil
}

// UpdatePrice stores a new observation and appends it to the price history.
// It returns false without writing anything when the product is gone or
// already carries a newer check time.
func (r *ProductRepository) UpdatePrice(ctx context.Context, id int64, price float64, checkedAt time.Time) (bool, error) {
	checkedAt = checkedAt.UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE products
		SET last_price = ?, last_checked = ?
		WHERE id = ? AND (last_checked IS NULL OR last_checked <= ?)
	`
	res, err := tx.ExecContext(ctx, query, price, checkedAt, id, checkedAt)
	if err != nil {
		return false, fmt.Errorf("failed to update product price: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO price_history (product_id, price, checked_at) VALUES (?, ?, ?)`,
		id, price, checkedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to record price history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit price update: %w", err)
	}
	return true, nil
}

// History returns the most recent observations for a product, newest first
func (r *ProductRepository) History(ctx context.Context, productID int64, limit int) ([]models.PriceRecord, error) {
	query := `
		SELECT id, product_id, price, checked_at
		FROM price_history
		WHERE product_id = ?
		ORDER BY checked_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get price history: %w", err)
	}
	defer rows.Close()

	var records []models.PriceRecord
	for rows.Next() {
		var rec models.PriceRecord
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.Price, &rec.CheckedAt); err != nil {
			return nil, fmt.Errorf("failed to scan price record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*models.Product, error) {
	p := &models.Product{}
	var target, last sql.NullFloat64
	var checked sql.NullTime

	err := s.Scan(&p.ID, &p.Name, &p.URL, &target, &last, &checked, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	if target.Valid {
		v := target.Float64
		p.TargetPrice = &v
	}
	if last.Valid {
		v := last.Float64
		p.LastPrice = &v
	}
	if checked.Valid {
		v := checked.Time
		p.LastChecked = &v
	}
	return p, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
