// Package identity decides whether a record's owner field refers to the
// viewing user.
package identity

import (
	"errors"
	"fmt"
	"strings"
)

// Matcher reports whether owner, as stored on a record, belongs to viewer.
type Matcher func(owner, viewer string) bool

// Exact matches owners by email only.
func Exact(owner, viewer string) bool {
	return viewer != "" && owner == viewer
}

var ErrMalformedAliases = errors.New("malformed identity aliases")

// Aliases maps an email to the legacy identifiers that some older records
// carry in their owner field instead of the email.
type Aliases map[string][]string

// ParseAliases reads "email=id;email=id2" pairs. Repeated emails accumulate.
func ParseAliases(s string) (Aliases, error) {
	out := Aliases{}
	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		email, id, ok := strings.Cut(pair, "=")
		email, id = strings.TrimSpace(email), strings.TrimSpace(id)
		if !ok || email == "" || id == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedAliases, pair)
		}
		out[email] = append(out[email], id)
	}
	return out, nil
}

// Identities returns the email followed by its legacy identifiers.
func (a Aliases) Identities(email string) []string {
	if email == "" {
		return nil
	}
	return append([]string{email}, a[email]...)
}

// Matcher extends Exact with the alias table.
func (a Aliases) Matcher() Matcher {
	if len(a) == 0 {
		return Exact
	}
	return func(owner, viewer string) bool {
		if Exact(owner, viewer) {
			return true
		}
		if viewer == "" || owner == "" {
			return false
		}
		for _, id := range a[viewer] {
			if owner == id {
				return true
			}
		}
		return false
	}
}
