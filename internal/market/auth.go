package market

import (
	"context"
	"time"

	"github.com/spf13/cast"
	"github.com/wichananm65/upj-marketplace/internal/envelope"
	"github.com/wichananm65/upj-marketplace/internal/form"
	"github.com/wichananm65/upj-marketplace/internal/session"
)

// Login signs in and stores the user on the session.
func (c *Client) Login(ctx context.Context, email, password string) (session.User, error) {
	req, err := form.LoginRequest(email, password)
	if err != nil {
		return session.User{}, err
	}
	env, err := c.call(ctx, envelope.Auth, req)
	if err != nil {
		return session.User{}, err
	}
	u := c.userFrom(env, session.User{Email: req.Email})
	c.session.Login(u, env.Token)
	c.log.Info("signed in")
	return u, nil
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, r form.Registration) (session.User, error) {
	req, err := r.Request()
	if err != nil {
		return session.User{}, err
	}
	env, err := c.call(ctx, envelope.Auth, req)
	if err != nil {
		return session.User{}, err
	}
	u := c.userFrom(env, session.User{
		Email:    req.Email,
		FullName: req.FullName,
		NomorHp:  req.NomorHp,
		Jurusan:  req.Jurusan,
		Role:     session.Role(req.Role),
	})
	c.session.Login(u, env.Token)
	return u, nil
}

func (c *Client) Logout() {
	c.session.Logout()
}

// userFrom builds the session user from an auth response. Fields the
// backend omits fall back to what the user typed, the user id falls back to
// the email, and missing timestamps become now.
func (c *Client) userFrom(env envelope.Envelope, typed session.User) session.User {
	var data map[string]any
	_ = env.Decode(&data)
	str := func(k string) string { return cast.ToString(data[k]) }

	u := session.User{
		UserID:   first(str("userId"), env.UserID, typed.Email),
		Email:    first(str("email"), typed.Email),
		FullName: first(str("fullName"), typed.FullName, typed.Email),
		NomorHp:  first(str("nomorHp"), typed.NomorHp),
		Jurusan:  first(str("jurusan"), typed.Jurusan),
		Role:     session.Role(first(str("role"), env.Role, string(typed.Role))),
	}
	now := c.now().UTC()
	u.CreatedAt = parseTime(str("createdAt"), now)
	u.UpdatedAt = parseTime(str("updatedAt"), now)
	return u
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseTime(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	t, err := cast.ToTimeE(s)
	if err != nil {
		return fallback
	}
	return t
}
