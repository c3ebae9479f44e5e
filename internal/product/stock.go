package product

import (
	"context"
	"database/sql"

	"storefront-be/internal/apperr"
	"storefront-be/internal/metrics"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the ledger can run inside
// whatever transaction the caller already holds.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// AdjustStock is the single stock-ledger operation. A positive delta reserves
// stock for a line item, a zero or negative delta releases it back. The check
// and the write are one conditional UPDATE, so concurrent reservations cannot
// jointly overdraw the counter.
func AdjustStock(ctx context.Context, q DBTX, productID int64, delta int) error {
	res, err := q.ExecContext(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity - $1, updated_at = NOW()
		WHERE id = $2 AND stock_quantity >= $1
	`, delta, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		// Either the product is gone or the reservation would overdraw.
		var available int
		err := q.QueryRowContext(ctx,
			`SELECT stock_quantity FROM products WHERE id = $1`, productID,
		).Scan(&available)
		if err == sql.ErrNoRows {
			return apperr.NotFound("product", productID)
		}
		if err != nil {
			return err
		}

		metrics.StockRejections.Inc()
		return apperr.InsufficientStock(productID, delta, available)
	}

	if delta > 0 {
		metrics.StockReservations.Inc()
	} else if delta < 0 {
		metrics.StockReleases.Inc()
	}

	return nil
}
