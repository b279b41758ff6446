package user

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/upj-marketplace/internal/envelope"
)

func newHandler() *Handler {
	return NewHandler(NewService(NewInMemoryRepository(nil)))
}

func TestRegisterThenLogin(t *testing.T) {
	h := newHandler()

	env, err := h.Handle(envelope.Request{
		Action: envelope.ActionRegister, Email: "sari@upj.ac.id", Password: "rahasia",
		FullName: "Sari Dewi", NomorHp: "0812", Jurusan: "Manajemen", Role: "seller",
	})
	require.NoError(t, err)
	require.True(t, env.Success, env.Error)
	assert.Equal(t, "seller", env.Role)
	assert.Equal(t, "/seller", env.Redirect)
	assert.NotEmpty(t, env.UserID)

	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotContains(t, data, "password")
	assert.Equal(t, "Sari Dewi", data["fullName"])

	env, err = h.Handle(envelope.Request{Action: envelope.ActionLogin, Email: "sari@upj.ac.id", Password: "rahasia"})
	require.NoError(t, err)
	assert.True(t, env.Success)

	env, err = h.Handle(envelope.Request{Action: envelope.ActionLogin, Email: "sari@upj.ac.id", Password: "salah"})
	require.NoError(t, err)
	assert.False(t, env.Success)
	assert.Equal(t, "Email atau password salah", env.Error)
}

func TestRegisterRejectsDuplicatesAndBadRoles(t *testing.T) {
	h := newHandler()
	req := envelope.Request{Action: envelope.ActionRegister, Email: "a@x.com", Password: "rahasia", FullName: "A", Role: "buyer"}

	env, err := h.Handle(req)
	require.NoError(t, err)
	require.True(t, env.Success)

	env, err = h.Handle(req)
	require.NoError(t, err)
	assert.Equal(t, "Email sudah terdaftar", env.Error)

	req.Email, req.Role = "b@x.com", "admin"
	env, err = h.Handle(req)
	require.NoError(t, err)
	assert.Equal(t, "Role harus buyer atau seller", env.Error)
}

func TestServiceHashesPasswords(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	s := NewService(repo)

	u, err := s.Register(User{Email: "a@x.com", Password: "rahasia", Role: RoleBuyer})
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia", u.Password)

	_, err = s.Authenticate("a@x.com", "rahasia")
	assert.NoError(t, err)
	_, err = s.Authenticate("missing@x.com", "rahasia")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
