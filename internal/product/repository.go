package product

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"storefront-be/internal/apperr"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, in Input) (*Product, error)
	Update(ctx context.Context, id int64, in Input) (*Product, error)
	Patch(ctx context.Context, id int64, patch Patch) (*Product, error)
	Delete(ctx context.Context, id int64) error
	ReferencedByOrderItems(ctx context.Context, id int64) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, description, price, stock_quantity, created_at, updated_at`

func scanProduct(row interface{ Scan(dest ...any) error }) (*Product, error) {
	var p Product
	var description sql.NullString
	err := row.Scan(
		&p.ID, &p.Name, &description,
		&p.Price, &p.StockQuantity,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	return &p, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	return products, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id,
	)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, in Input) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, description, price, stock_quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING `+productColumns,
		in.Name, in.Description, in.Price, in.StockQuantity,
	)
	return scanProduct(row)
}

func (r *repository) Update(ctx context.Context, id int64, in Input) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock_quantity = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+productColumns,
		in.Name, in.Description, in.Price, in.StockQuantity, id,
	)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Patch loads the row under lock, merges the provided fields and writes the
// result back, all in one transaction.
func (r *repository) Patch(ctx context.Context, id int64, patch Patch) (*Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id,
	)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	patch.Apply(p)

	err = tx.QueryRowContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock_quantity = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`,
		p.Name, p.Description, p.Price, p.StockQuantity, id,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

// Postgres class 23 integrity violation for a still-referenced row.
const fkViolation = pq.ErrorCode("23503")

func (r *repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)

	// The service checks ReferencedByOrderItems first, but an item can be
	// inserted between that check and this statement. The FK constraint is
	// the authoritative guard; surface it as the same conflict.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == fkViolation {
		return apperr.Conflict("product", id, conflictReason)
	}
	return err
}

func (r *repository) ReferencedByOrderItems(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM order_items WHERE product_id = $1)`, id,
	).Scan(&exists)
	return exists, err
}
