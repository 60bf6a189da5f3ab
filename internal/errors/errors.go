// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// ErrNoRecipients signals that a broadcast was attempted against an empty
// active-subscriber set. No record is created in that case.
var ErrNoRecipients = errors.New("no active subscribers to send to")

// ValidationError marks a bad request payload. Controllers map it to 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError is a sentinel for a missing record of any aggregate.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
