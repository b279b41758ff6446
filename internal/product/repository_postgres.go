package product

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/wichananm65/upj-marketplace/internal/record"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Schema creates the products table.
const Schema = `
	CREATE TABLE IF NOT EXISTS products (
		product_id TEXT PRIMARY KEY,
		owner TEXT NOT NULL,
		product_name TEXT NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC NOT NULL DEFAULT 0 CHECK (price >= 0),
		stock INT NOT NULL DEFAULT 0 CHECK (stock >= 0),
		category TEXT NOT NULL DEFAULT '',
		status INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

const (
	productColumns = `product_id, owner, product_name, image_url, description, price, stock, category, status`

	listProductsQuery = `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at, product_id
	`
	getProductByIDQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE product_id = $1
	`
	insertProductQuery = `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`
	updateProductQuery = `
		UPDATE products
		SET owner = $1,
			product_name = $2,
			image_url = $3,
			description = $4,
			price = $5,
			stock = $6,
			category = $7,
			status = $8
		WHERE product_id = $9
	`
	adjustStockQuery = `
		UPDATE products
		SET stock = stock + $1
		WHERE product_id = $2 AND stock + $1 >= 0
		RETURNING ` + productColumns
	deleteProductQuery = `DELETE FROM products WHERE product_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []record.Product {
	rows, err := r.db.Query(listProductsQuery)
	if err != nil {
		return []record.Product{}
	}
	defer rows.Close()

	out := make([]record.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *PostgresRepository) GetByID(id string) (record.Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return record.Product{}, ErrNotFound
		}
		return record.Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(p record.Product) (record.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, err := r.db.Exec(insertProductQuery,
		p.ID, p.Owner, p.Name, p.ImageURL, p.Description, p.Price, p.Stock, p.Category, int(p.Status)); err != nil {
		return record.Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id string, p record.Product) (record.Product, error) {
	res, err := r.db.Exec(updateProductQuery,
		p.Owner, p.Name, p.ImageURL, p.Description, p.Price, p.Stock, p.Category, int(p.Status), id)
	if err != nil {
		return record.Product{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return record.Product{}, ErrNotFound
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Delete(id string) error {
	res, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) AdjustStock(id string, delta int) (record.Product, error) {
	p, err := scanProduct(r.db.QueryRow(adjustStockQuery, delta, id))
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return record.Product{}, err
	}
	// no row updated: either the product is gone or the stock would go negative
	if _, err := r.GetByID(id); err != nil {
		return record.Product{}, err
	}
	return record.Product{}, ErrInsufficientStock
}

func scanProduct(row rowScanner) (record.Product, error) {
	var (
		p      record.Product
		image  sql.NullString
		desc   sql.NullString
		cat    sql.NullString
		status int
	)
	if err := row.Scan(&p.ID, &p.Owner, &p.Name, &image, &desc, &p.Price, &p.Stock, &cat, &status); err != nil {
		return record.Product{}, err
	}
	p.ImageURL = image.String
	p.Description = desc.String
	p.Category = cat.String
	p.Status = record.ProductStatus(status)
	return p, nil
}
