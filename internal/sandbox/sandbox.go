// Package sandbox is a local stand-in for the spreadsheet backend. It
// answers the same actions with the same envelopes, backed by memory or
// Postgres.
package sandbox

import (
	"context"
	"database/sql"
	"strings"

	"github.com/wichananm65/upj-marketplace/internal/category"
	"github.com/wichananm65/upj-marketplace/internal/envelope"
	"github.com/wichananm65/upj-marketplace/internal/identity"
	"github.com/wichananm65/upj-marketplace/internal/order"
	"github.com/wichananm65/upj-marketplace/internal/product"
	"github.com/wichananm65/upj-marketplace/internal/record"
	"github.com/wichananm65/upj-marketplace/internal/user"
	"go.uber.org/zap"
)

// Backend implements envelope.Caller in process.
type Backend struct {
	categories category.Repository
	users      *user.Handler
	products   *product.Handler
	orders     *order.Handler
	log        *zap.Logger
}

type Repositories struct {
	Users      user.Repository
	Products   product.Repository
	Orders     order.Repository
	Categories category.Repository
}

func New(repos Repositories, aliases identity.Aliases, log *zap.Logger) *Backend {
	if log == nil {
		log = zap.NewNop()
	}
	if repos.Categories == nil {
		repos.Categories = category.StaticRepository{}
	}
	products := product.NewService(repos.Products, aliases.Matcher())
	return &Backend{
		categories: repos.Categories,
		users:      user.NewHandler(user.NewService(repos.Users)),
		products:   product.NewHandler(products),
		orders:     order.NewHandler(order.NewService(repos.Orders, products, aliases, log)),
		log:        log,
	}
}

// NewInMemory returns a backend holding everything in memory, optionally
// seeded with products.
func NewInMemory(aliases identity.Aliases, log *zap.Logger, seed ...record.Product) *Backend {
	return New(Repositories{
		Users:    user.NewInMemoryRepository(nil),
		Products: product.NewInMemoryRepository(seed),
		Orders:   order.NewInMemoryRepository(nil),
	}, aliases, log)
}

// NewPostgres returns a backend storing its tables in db.
func NewPostgres(db *sql.DB, aliases identity.Aliases, log *zap.Logger) *Backend {
	return New(Repositories{
		Users:      user.NewPostgresRepository(db),
		Products:   product.NewPostgresRepository(db),
		Orders:     order.NewPostgresRepository(db),
		Categories: category.NewPostgresRepository(db),
	}, aliases, log)
}

// EnsureSchema creates the sandbox tables when missing.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range []string{user.Schema, product.Schema, order.Schema, category.Schema} {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Categories is where the backend keeps its category list.
func (b *Backend) Categories() category.Repository {
	return b.categories
}

func (b *Backend) Call(_ context.Context, resource envelope.Resource, req envelope.Request) (envelope.Envelope, error) {
	req.Email = strings.TrimSpace(req.Email)

	var (
		env envelope.Envelope
		err error
	)
	switch resource {
	case envelope.Auth:
		env, err = b.users.Handle(req)
	case envelope.Products, envelope.Orders:
		if req.Email == "" {
			return envelope.Fail("Email wajib diisi"), nil
		}
		if resource == envelope.Products {
			env, err = b.products.Handle(req)
		} else {
			env, err = b.orders.Handle(req)
		}
	default:
		return envelope.Fail("Tabel tidak dikenal"), nil
	}
	if err != nil {
		b.log.Error("sandbox action failed",
			zap.String("resource", string(resource)),
			zap.String("action", string(req.Action)),
			zap.Error(err))
		return envelope.Fail("Terjadi kesalahan pada server"), nil
	}
	return env, nil
}
