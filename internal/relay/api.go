package relay

import (
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/spf13/cast"
	"github.com/wichananm65/upj-marketplace/internal/envelope"
	"go.uber.org/zap"
)

var allowed = map[envelope.Resource]map[envelope.Action]bool{
	envelope.Products: {
		envelope.ActionRead:   true,
		envelope.ActionCreate: true,
		envelope.ActionUpdate: true,
		envelope.ActionDelete: true,
	},
	envelope.Orders: {
		envelope.ActionRead:   true,
		envelope.ActionCreate: true,
		envelope.ActionUpdate: true,
	},
}

type api struct {
	backend envelope.Caller
	secret  []byte
	ttl     time.Duration
	log     *zap.Logger
}

func (h *api) RegisterRoutes(app fiber.Router) {
	app.Post("/api/auth/login", h.auth(envelope.ActionLogin))
	app.Post("/api/auth/register", h.auth(envelope.ActionRegister))

	protected := jwtware.New(jwtware.Config{
		SigningKey: h.secret,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Silakan login terlebih dahulu"})
		},
	})
	app.Post("/api/products", protected, h.data(envelope.Products))
	app.Post("/api/orders", protected, h.data(envelope.Orders))
}

// auth forwards login and register and, on success, attaches a signed
// session token to the envelope.
func (h *api) auth(action envelope.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(envelope.Request)
		if err := c.BodyParser(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		req.Action = action

		env, err := h.backend.Call(c.UserContext(), envelope.Auth, *req)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		if !env.Success {
			return c.JSON(env)
		}

		email := req.Email
		var data map[string]any
		if err := env.Decode(&data); err == nil && data["email"] != nil {
			email = cast.ToString(data["email"])
		}
		userID := env.UserID
		if userID == "" {
			userID = email
		}
		token, err := h.sign(userID, email, env.Role)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
		}
		env.Token = token
		h.log.Info("session issued", zap.String("action", string(action)), zap.String("role", env.Role))
		return c.JSON(env)
	}
}

func (h *api) sign(userID, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(h.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
}

// data forwards a table action with the email taken from the token, never
// from the body.
func (h *api) data(resource envelope.Resource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, err := emailFromCtx(c)
		if err != nil {
			return err
		}
		req := new(envelope.Request)
		if err := c.BodyParser(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		if !allowed[resource][req.Action] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Aksi tidak dikenal"})
		}
		req.Email = email

		env, err := h.backend.Call(c.UserContext(), resource, *req)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(env)
	}
}

// emailFromCtx reads the email claim of the token jwtware stored in
// c.Locals("user").
func emailFromCtx(c *fiber.Ctx) (string, error) {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	email := cast.ToString(claims["email"])
	if email == "" {
		return "", fiber.ErrUnauthorized
	}
	return email, nil
}
