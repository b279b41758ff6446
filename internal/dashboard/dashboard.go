// Package dashboard composes the market client and view derivations into
// the buyer and seller screens.
package dashboard

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("not owned by the signed-in user")
)
