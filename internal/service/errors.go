package service

import (
	"errors"
	"strings"
)

// ErrEmailMismatch is returned when a request acts on behalf of another user.
var ErrEmailMismatch = errors.New("email does not match the authenticated user")

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SameEmail compares two addresses the way they are stored.
func SameEmail(a, b string) bool {
	return normalizeEmail(a) == normalizeEmail(b)
}
