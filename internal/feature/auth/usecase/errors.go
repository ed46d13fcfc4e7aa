// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUserNotFound is returned by the store when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned by the store when the email uniqueness constraint is violated.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrDuplicateCredential is returned by signup when the email is already registered,
	// whether detected by the pre-check or by the store's uniqueness constraint.
	ErrDuplicateCredential = errors.New("duplicate credential")

	// ErrInvalidCredential is returned by login for both an unknown email and a wrong password.
	ErrInvalidCredential = errors.New("invalid email or password")

	// ErrStoreUnavailable wraps any unexpected failure of the credential store.
	ErrStoreUnavailable = errors.New("credential store unavailable")
)

// ValidationError reports malformed credentials, keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

// Messages returns the field messages in a stable order.
func (e *ValidationError) Messages() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return msgs
}
