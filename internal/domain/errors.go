package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is wrapped by lookups that found nothing.
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates the resource belongs to another client.
	ErrForbidden = errors.New("access denied")
	// ErrMissingScope is returned when an operation runs without a client scope.
	ErrMissingScope = errors.New("client scope is required")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRegistrationSecret indicates the registration secret is incorrect.
	ErrInvalidRegistrationSecret = errors.New("invalid registration secret")
	// ErrRegistrationClosed is returned when no registration secret is configured.
	ErrRegistrationClosed = errors.New("registration is closed")
	// ErrClientAlreadyExists is returned when registering an email twice.
	ErrClientAlreadyExists = errors.New("client already exists")
)

// Violation is one failed field constraint.
type Violation struct {
	Field   string
	Message string
}

// ValidationError aggregates every violation found on a candidate entity.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("invalid data, please correct the following:")
	for _, v := range e.Violations {
		fmt.Fprintf(&b, " field %s: %s;", v.Field, v.Message)
	}
	return strings.TrimSuffix(b.String(), ";")
}

// PersistenceError wraps a storage failure. Details are for logs only.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NotFound builds an ErrNotFound wrapper naming the missing entity.
func NotFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}
