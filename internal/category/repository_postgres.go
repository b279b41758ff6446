package category

import (
	"database/sql"
)

// Schema creates the optional category table. Rows override the built-in
// list once present.
const Schema = `
	CREATE TABLE IF NOT EXISTS category (
		name TEXT PRIMARY KEY,
		ord  INT
	)`

// PostgresRepository implements Repository using Postgres.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns category rows ordered by `ord` then name. When the table is
// missing or empty the built-in list is returned instead.
func (r *PostgresRepository) List(limit int) ([]Item, error) {
	rows, err := r.db.Query(`SELECT name, ord FROM category ORDER BY COALESCE(ord, 0), name LIMIT $1`, limit)
	if err != nil {
		return StaticRepository{}.List(limit)
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		var (
			name string
			ord  sql.NullInt64
		)
		if err := rows.Scan(&name, &ord); err != nil {
			continue
		}
		out = append(out, Item{Name: name, Ord: int(ord.Int64)})
	}
	if len(out) == 0 {
		return StaticRepository{}.List(limit)
	}
	return out, nil
}
