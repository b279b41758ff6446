package envelope

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrMalformed = errors.New("malformed response")

// Parse reads an HTTP response body as an envelope. Bodies that are not
// envelopes become errors; a relay error body ({"message": ...}) keeps its
// message.
func Parse(status int, body []byte) (Envelope, error) {
	var probe struct {
		Success *bool  `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return Envelope{}, fmt.Errorf("%w: status %d", ErrMalformed, status)
	}
	if probe.Success == nil {
		if probe.Message != "" {
			return Envelope{}, fmt.Errorf("status %d: %s", status, probe.Message)
		}
		return Envelope{}, fmt.Errorf("%w: status %d", ErrMalformed, status)
	}
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return env, nil
}
