package domain

import (
	"errors"
	"sort"
	"strings"
)

// Domain rule violations.
var (
	ErrDuplicateEmail = errors.New("duplicate email")
	ErrLastAdmin      = errors.New("cannot remove last privileged account")
)

// ErrRequestInProgress reports a second request under an idempotency key
// whose first request has not finished.
var ErrRequestInProgress = errors.New("a request with this idempotency key is in progress")

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
)

// ValidationError reports input that failed field-level checks. Fields maps
// the JSON field name to a user-facing message.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

// Add records a message for field. The first message for a field wins.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// OrNil returns e when at least one field failed, nil otherwise.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
