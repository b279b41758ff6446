package form

import (
	"strings"

	"github.com/wichananm65/upj-marketplace/internal/envelope"
)

// Registration is the sign-up form.
type Registration struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required"`
	NomorHp  string `json:"nomorHp"`
	Jurusan  string `json:"jurusan"`
	Role     string `json:"role" validate:"oneof=buyer seller"`
}

func (r Registration) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.FullName = strings.TrimSpace(r.FullName)
	if err := validate.Struct(r); err != nil {
		return fieldErrors(err)
	}
	return nil
}

func (r Registration) Request() (envelope.Request, error) {
	if err := r.Validate(); err != nil {
		return envelope.Request{}, err
	}
	return envelope.Request{
		Action:   envelope.ActionRegister,
		Email:    strings.TrimSpace(r.Email),
		Password: r.Password,
		FullName: strings.TrimSpace(r.FullName),
		NomorHp:  strings.TrimSpace(r.NomorHp),
		Jurusan:  strings.TrimSpace(r.Jurusan),
		Role:     r.Role,
	}, nil
}

// LoginRequest builds a sign-in.
func LoginRequest(email, password string) (envelope.Request, error) {
	errs := FieldErrors{}
	if strings.TrimSpace(email) == "" {
		errs["email"] = "wajib diisi"
	}
	if password == "" {
		errs["password"] = "wajib diisi"
	}
	if len(errs) > 0 {
		return envelope.Request{}, errs
	}
	return envelope.Request{Action: envelope.ActionLogin, Email: strings.TrimSpace(email), Password: password}, nil
}
