package sandbox

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/wichananm65/upj-marketplace/internal/identity"
	"go.uber.org/zap"
)

// Open returns a Postgres backed sandbox when databaseURL is set, an
// in-memory one otherwise. The returned close func releases the database.
func Open(databaseURL string, aliases identity.Aliases, log *zap.Logger) (*Backend, func() error, error) {
	if databaseURL == "" {
		return NewInMemory(aliases, log), func() error { return nil }, nil
	}
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("open sandbox db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping sandbox db: %w", err)
	}
	if err := EnsureSchema(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sandbox schema: %w", err)
	}
	return NewPostgres(db, aliases, log), db.Close, nil
}
