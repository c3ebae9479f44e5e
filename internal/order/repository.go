package order

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"storefront-be/internal/apperr"
	"storefront-be/internal/product"
)

// ItemRef locates an order item. OrderID is an optional scope filter: the
// order-scoped and item-scoped endpoints go through the same code path, the
// former just pins the item to its order.
type ItemRef struct {
	ItemID  int64
	OrderID *int64
}

type Repository interface {
	GetAll(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	Create(ctx context.Context, in CustomerInput) (*Order, error)
	UpdateCustomer(ctx context.Context, id int64, in CustomerInput) (*Order, error)
	Delete(ctx context.Context, id int64) ([]int64, error)

	AddItem(ctx context.Context, orderID, productID int64, quantity int) (*OrderItem, error)
	GetAllItems(ctx context.Context) ([]OrderItem, error)
	GetItem(ctx context.Context, ref ItemRef) (*OrderItem, error)
	UpdateItemQuantity(ctx context.Context, ref ItemRef, quantity int) (*OrderItem, error)
	RemoveItem(ctx context.Context, ref ItemRef) (*OrderItem, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, customer_name, customer_email, status, created_at, updated_at`
const itemColumns = `id, order_id, product_id, quantity, unit_price, subtotal, created_at, updated_at`

func scanOrder(row interface{ Scan(dest ...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.CustomerName, &o.CustomerEmail,
		&o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func scanItem(row interface{ Scan(dest ...any) error }) (*OrderItem, error) {
	var it OrderItem
	err := row.Scan(
		&it.ID, &it.OrderID, &it.ProductID,
		&it.Quantity, &it.UnitPrice, &it.Subtotal,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	index := make(map[int64]int)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		o.Items = []OrderItem{}
		index[o.ID] = len(orders)
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM order_items ORDER BY order_id, id`,
	)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		it, err := scanItem(itemRows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[it.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, *it)
		}
	}

	return orders, itemRows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id,
	)

	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	o.Items, err = r.itemsByOrder(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *repository) itemsByOrder(ctx context.Context, q queryer, orderID int64) ([]OrderItem, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM order_items WHERE order_id = $1 ORDER BY id`, orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []OrderItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (r *repository) Create(ctx context.Context, in CustomerInput) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (customer_name, customer_email, status)
		VALUES ($1, $2, $3)
		RETURNING `+orderColumns,
		in.CustomerName, in.CustomerEmail, StatusPending,
	)

	o, err := scanOrder(row)
	if err != nil {
		return nil, err
	}
	o.Items = []OrderItem{}
	return o, nil
}

// lockOrderStatus reads the order's status under a row lock so the PENDING
// gate and the writes that follow it are one atomic unit.
func lockOrderStatus(ctx context.Context, tx *sql.Tx, orderID int64) (Status, error) {
	var status Status
	err := tx.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id = $1 FOR UPDATE`, orderID,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return "", apperr.NotFound(kindOrder, orderID)
	}
	if err != nil {
		return "", err
	}
	return status, nil
}

func (r *repository) UpdateCustomer(ctx context.Context, id int64, in CustomerInput) (*Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	status, err := lockOrderStatus(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if status != StatusPending {
		return nil, apperr.InvalidState(msgModifyFinalized, string(status), string(StatusPending))
	}

	row := tx.QueryRowContext(ctx, `
		UPDATE orders
		SET customer_name = $1, customer_email = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+orderColumns,
		in.CustomerName, in.CustomerEmail, id,
	)

	o, err := scanOrder(row)
	if err != nil {
		return nil, err
	}

	o.Items, err = r.itemsByOrder(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return o, nil
}

// Delete removes a PENDING order and its items, releasing every item's
// quantity back to its product. Removal releases stock on every path. The
// returned slice holds the product ids whose stock moved, for cache
// invalidation after commit.
func (r *repository) Delete(ctx context.Context, id int64) ([]int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	status, err := lockOrderStatus(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if status != StatusPending {
		return nil, apperr.InvalidState(msgDeleteNonPending, string(status), string(StatusPending))
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT product_id, quantity FROM order_items WHERE order_id = $1`, id,
	)
	if err != nil {
		return nil, err
	}

	type release struct {
		productID int64
		quantity  int
	}
	var releases []release
	for rows.Next() {
		var rel release
		if err := rows.Scan(&rel.productID, &rel.quantity); err != nil {
			rows.Close()
			return nil, err
		}
		releases = append(releases, rel)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	productIDs := make([]int64, 0, len(releases))
	for _, rel := range releases {
		if err := product.AdjustStock(ctx, tx, rel.productID, -rel.quantity); err != nil {
			return nil, err
		}
		productIDs = append(productIDs, rel.productID)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return productIDs, nil
}

func (r *repository) AddItem(ctx context.Context, orderID, productID int64, quantity int) (*OrderItem, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	status, err := lockOrderStatus(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if status != StatusPending {
		return nil, apperr.InvalidState(msgModifyFinalized, string(status), string(StatusPending))
	}

	// Snapshot the product price; the item keeps it even if the product's
	// price changes later.
	var unitPrice decimal.Decimal
	err = tx.QueryRowContext(ctx,
		`SELECT price FROM products WHERE id = $1`, productID,
	).Scan(&unitPrice)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("product", productID)
	}
	if err != nil {
		return nil, err
	}

	if err := product.AdjustStock(ctx, tx, productID, quantity); err != nil {
		return nil, err
	}

	item := OrderItem{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  Subtotal(unitPrice, quantity),
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) GetAllItems(ctx context.Context) ([]OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM order_items ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (r *repository) GetItem(ctx context.Context, ref ItemRef) (*OrderItem, error) {
	query := `SELECT ` + itemColumns + ` FROM order_items WHERE id = $1`
	args := []any{ref.ItemID}
	if ref.OrderID != nil {
		query += ` AND order_id = $2`
		args = append(args, *ref.OrderID)
	}

	it, err := scanItem(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

// lockItem loads an item and its order's status under lock, applying the
// optional order scope from ref. The FOR UPDATE covers both joined rows:
// locking the parent order row serializes item mutations against Delete,
// which takes the order lock first, so an item's stock cannot be released
// by both paths.
func lockItem(ctx context.Context, tx *sql.Tx, ref ItemRef) (*OrderItem, Status, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price,
		       oi.subtotal, oi.created_at, oi.updated_at, o.status
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.id = $1`
	args := []any{ref.ItemID}
	if ref.OrderID != nil {
		query += ` AND oi.order_id = $2`
		args = append(args, *ref.OrderID)
	}
	query += ` FOR UPDATE`

	var it OrderItem
	var status Status
	err := tx.QueryRowContext(ctx, query, args...).Scan(
		&it.ID, &it.OrderID, &it.ProductID,
		&it.Quantity, &it.UnitPrice, &it.Subtotal,
		&it.CreatedAt, &it.UpdatedAt, &status,
	)
	if err == sql.ErrNoRows {
		return nil, "", apperr.NotFound(kindOrderItem, ref.ItemID)
	}
	if err != nil {
		return nil, "", err
	}
	return &it, status, nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, ref ItemRef, quantity int) (*OrderItem, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	item, status, err := lockItem(ctx, tx, ref)
	if err != nil {
		return nil, err
	}
	if status != StatusPending {
		return nil, apperr.InvalidState(msgModifyFinalized, string(status), string(StatusPending))
	}

	delta := quantity - item.Quantity
	if err := product.AdjustStock(ctx, tx, item.ProductID, delta); err != nil {
		return nil, err
	}

	// Recompute from the original snapshot price, never the product's
	// current price.
	item.Quantity = quantity
	item.Subtotal = Subtotal(item.UnitPrice, quantity)

	err = tx.QueryRowContext(ctx, `
		UPDATE order_items
		SET quantity = $1, subtotal = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at`,
		item.Quantity, item.Subtotal, item.ID,
	).Scan(&item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes the item and returns it so callers can see which
// product's stock was released.
func (r *repository) RemoveItem(ctx context.Context, ref ItemRef) (*OrderItem, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	item, status, err := lockItem(ctx, tx, ref)
	if err != nil {
		return nil, err
	}
	if status != StatusPending {
		return nil, apperr.InvalidState(msgModifyFinalized, string(status), string(StatusPending))
	}

	// Release the full committed quantity back to the product.
	if err := product.AdjustStock(ctx, tx, item.ProductID, -item.Quantity); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE id = $1`, item.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return item, nil
}
