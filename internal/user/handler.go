package user

import (
	"errors"

	"github.com/wichananm65/upj-marketplace/internal/envelope"
)

// Handler answers the login and register actions.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Handle(req envelope.Request) (envelope.Envelope, error) {
	switch req.Action {
	case envelope.ActionLogin:
		return h.login(req)
	case envelope.ActionRegister:
		return h.register(req)
	default:
		return envelope.Fail("Aksi tidak dikenal"), nil
	}
}

func (h *Handler) login(req envelope.Request) (envelope.Envelope, error) {
	if req.Email == "" || req.Password == "" {
		return envelope.Fail("Email dan password wajib diisi"), nil
	}
	user, err := h.service.Authenticate(req.Email, req.Password)
	if err != nil {
		return envelope.Fail("Email atau password salah"), nil
	}
	return authenticated(user)
}

func (h *Handler) register(req envelope.Request) (envelope.Envelope, error) {
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return envelope.Fail("Data registrasi belum lengkap"), nil
	}
	created, err := h.service.Register(User{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		NomorHp:  req.NomorHp,
		Jurusan:  req.Jurusan,
		Role:     req.Role,
	})
	switch {
	case errors.Is(err, ErrEmailExists):
		return envelope.Fail("Email sudah terdaftar"), nil
	case errors.Is(err, ErrInvalidRole):
		return envelope.Fail("Role harus buyer atau seller"), nil
	case err != nil:
		return envelope.Envelope{}, err
	}
	return authenticated(created)
}

func authenticated(user User) (envelope.Envelope, error) {
	env, err := envelope.OK(sanitizeUser(user))
	if err != nil {
		return envelope.Envelope{}, err
	}
	env.UserID = user.UserID
	env.Role = user.Role
	env.Redirect = "/" + user.Role
	return env, nil
}
