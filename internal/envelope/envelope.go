// Package envelope defines the request and response shapes exchanged with the
// spreadsheet backend and the relay.
package envelope

import (
	"context"
	"encoding/json"
	"errors"
)

// Resource selects the backend table an action applies to. The zero value
// addresses the authentication endpoint.
type Resource string

const (
	Auth     Resource = ""
	Products Resource = "products"
	Orders   Resource = "orders"
)

type Action string

const (
	ActionLogin    Action = "login"
	ActionRegister Action = "register"
	ActionRead     Action = "read"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

// Request is the wire body of every backend call.
type Request struct {
	Email       string          `json:"email,omitempty"`
	Action      Action          `json:"action"`
	Data        json.RawMessage `json:"data,omitempty"`
	ProductID   string          `json:"product_id,omitempty"`
	OrderID     string          `json:"order_id,omitempty"`
	OrderStatus string          `json:"order_status,omitempty"`

	Password string `json:"password,omitempty"`
	FullName string `json:"fullName,omitempty"`
	NomorHp  string `json:"nomorHp,omitempty"`
	Jurusan  string `json:"jurusan,omitempty"`
	Role     string `json:"role,omitempty"`
}

// WithData returns a copy of r carrying v encoded as the data field.
func (r Request) WithData(v any) (Request, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return r, err
	}
	r.Data = b
	return r, nil
}

// Envelope is the uniform response wrapper.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`

	UserID   string `json:"userId,omitempty"`
	Role     string `json:"role,omitempty"`
	Redirect string `json:"redirect,omitempty"`
	Token    string `json:"token,omitempty"`
}

// Caller performs one backend action.
type Caller interface {
	Call(ctx context.Context, resource Resource, req Request) (Envelope, error)
}

// CallerFunc adapts a function to Caller.
type CallerFunc func(ctx context.Context, resource Resource, req Request) (Envelope, error)

func (f CallerFunc) Call(ctx context.Context, resource Resource, req Request) (Envelope, error) {
	return f(ctx, resource, req)
}

func OK(data any) (Envelope, error) {
	if data == nil {
		return Envelope{Success: true}, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Success: true, Data: b}, nil
}

func Fail(message string) Envelope {
	return Envelope{Success: false, Error: message}
}

// Failure is the error form of an envelope whose success flag is false.
type Failure struct {
	Message string
}

func (f *Failure) Error() string {
	if f.Message == "" {
		return "request failed"
	}
	return f.Message
}

// Err returns a *Failure when the envelope reports failure, nil otherwise.
func (e Envelope) Err() error {
	if e.Success {
		return nil
	}
	return &Failure{Message: e.Error}
}

// Decode unmarshals the data field into v. Absent data leaves v untouched.
func (e Envelope) Decode(v any) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}

// Message picks the text to show for err: the server's message for a
// failure envelope that carries one, the validation text for field errors,
// otherwise fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var f *Failure
	if errors.As(err, &f) && f.Message != "" {
		return f.Message
	}
	var u interface{ UserMessage() string }
	if errors.As(err, &u) {
		return u.UserMessage()
	}
	return fallback
}
