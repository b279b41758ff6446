package category

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/upj-marketplace/internal/envelope"
)

func TestGetCategories(t *testing.T) {
	app := fiber.New()
	NewHandler(NewService(StaticRepository{})).RegisterPublicRoutes(app)

	res, err := app.Test(httptest.NewRequest("GET", "/api/categories?limit=3", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	var env envelope.Envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	assert.True(t, env.Success)

	var names []string
	require.NoError(t, env.Decode(&names))
	assert.Equal(t, []string{"Nasi Kotak", "Snack Box", "Prasmanan"}, names)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("Kue & Dessert"))
	assert.False(t, Valid("kue & dessert"))
	assert.False(t, Valid(""))
}

func TestPostgresRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"name", "ord"}).
		AddRow("Prasmanan", 1).
		AddRow("Minuman", nil)
	mock.ExpectQuery("SELECT name, ord FROM category").WithArgs(10).WillReturnRows(rows)

	items, err := NewPostgresRepository(db).List(10)
	require.NoError(t, err)
	assert.Equal(t, []Item{{Name: "Prasmanan", Ord: 1}, {Name: "Minuman"}}, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_FallsBackToBuiltIn(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT name, ord FROM category").WithArgs(100).WillReturnError(errors.New("relation does not exist"))

	items, err := NewPostgresRepository(db).List(100)
	require.NoError(t, err)
	assert.Len(t, items, len(Names))
}
