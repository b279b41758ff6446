package order

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/wichananm65/upj-marketplace/internal/record"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Schema creates the orders table.
const Schema = `
	CREATE TABLE IF NOT EXISTS orders (
		order_id TEXT PRIMARY KEY,
		buyer TEXT NOT NULL,
		seller TEXT NOT NULL,
		product_id TEXT NOT NULL,
		quantity INT NOT NULL CHECK (quantity >= 1),
		total_price NUMERIC NOT NULL CHECK (total_price >= 0),
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL
	)
`

const (
	orderColumns = `order_id, buyer, seller, product_id, quantity, total_price, status, created_at`

	listOrdersForQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE buyer = ANY($1) OR seller = ANY($1)
		ORDER BY created_at DESC, order_id
	`
	getOrderByIDQuery = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE order_id = $1
	`
	insertOrderQuery = `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`
	updateOrderStatusQuery = `
		UPDATE orders
		SET status = $1
		WHERE order_id = $2 AND status = $3
		RETURNING ` + orderColumns
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListFor(identities []string) ([]record.Order, error) {
	if len(identities) == 0 {
		return []record.Order{}, nil
	}
	rows, err := r.db.Query(listOrdersForQuery, pq.Array(identities))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]record.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) GetByID(id string) (record.Order, error) {
	o, err := scanOrder(r.db.QueryRow(getOrderByIDQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return record.Order{}, ErrNotFound
	}
	return o, err
}

func (r *PostgresRepository) Create(o record.Order) (record.Order, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	_, err := r.db.Exec(insertOrderQuery,
		o.ID, o.Buyer, o.Seller, o.ProductID, o.Quantity, o.TotalPrice, string(o.Status), o.CreatedAt)
	if err != nil {
		return record.Order{}, err
	}
	return o, nil
}

// UpdateStatus only writes when the row still holds from. A missing row and
// a status changed by another writer both report record.ErrInvalidTransition.
func (r *PostgresRepository) UpdateStatus(id string, from, to record.OrderStatus) (record.Order, error) {
	o, err := scanOrder(r.db.QueryRow(updateOrderStatusQuery, string(to), id, string(from)))
	if errors.Is(err, sql.ErrNoRows) {
		return record.Order{}, record.ErrInvalidTransition
	}
	return o, err
}

func scanOrder(row rowScanner) (record.Order, error) {
	var (
		o      record.Order
		status string
	)
	if err := row.Scan(&o.ID, &o.Buyer, &o.Seller, &o.ProductID, &o.Quantity, &o.TotalPrice, &status, &o.CreatedAt); err != nil {
		return record.Order{}, err
	}
	o.Status = record.OrderStatus(status)
	o.CreatedAt = o.CreatedAt.UTC()
	return o, nil
}
