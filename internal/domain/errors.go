package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint rejected the write.
	ErrAlreadyExists = errors.New("already exists")
)

// ValidationError reports customer data that cannot be accepted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports that no customer exists for a guid.
type NotFoundError struct {
	GUID   string
	Action string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("customer with guid '%s' cannot be found and therefore cannot be %s", e.GUID, e.Action)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ServiceError wraps a failure talking to the backing store.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string {
	return e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
