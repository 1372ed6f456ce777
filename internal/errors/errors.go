// internal/errors/errors.go
package appErrors

import (
    "errors"
    "fmt"
)

// ErrInvalidRequest is a request rejected before any external call is made.
type ErrInvalidRequest struct {
    Reason string
}

func (e *ErrInvalidRequest) Error() string {
    return e.Reason
}

func NewInvalidRequest(reason string) error {
    return &ErrInvalidRequest{Reason: reason}
}

func IsInvalidRequest(err error) bool {
    var target *ErrInvalidRequest
    return errors.As(err, &target)
}

// ErrContentNotFound is a sentinel error
type ErrContentNotFound struct {
    ContentID int
}

func (e *ErrContentNotFound) Error() string {
    return fmt.Sprintf("content with ID %d not found", e.ContentID)
}

func NewContentNotFound(id int) error {
    return &ErrContentNotFound{ContentID: id}
}

func IsNotFound(err error) bool {
    var target *ErrContentNotFound
    return errors.As(err, &target)
}

// ErrProfileNotFound means no business profile has been configured yet.
type ErrProfileNotFound struct{}

func (e *ErrProfileNotFound) Error() string {
    return "No business profile found. Please configure one in Settings."
}

func NewProfileNotFound() error {
    return &ErrProfileNotFound{}
}

func IsProfileNotFound(err error) bool {
    var target *ErrProfileNotFound
    return errors.As(err, &target)
}

// ErrInvalidTransition rejects a review-status change outside the allowed lifecycle.
type ErrInvalidTransition struct {
    From string
    To   string
}

func (e *ErrInvalidTransition) Error() string {
    return fmt.Sprintf("cannot transition content from %q to %q", e.From, e.To)
}

func NewInvalidTransition(from, to string) error {
    return &ErrInvalidTransition{From: from, To: to}
}

func IsInvalidTransition(err error) bool {
    var target *ErrInvalidTransition
    return errors.As(err, &target)
}

// ErrNotConfigured means an outbound integration is missing its credentials.
type ErrNotConfigured struct {
    Service string
}

func (e *ErrNotConfigured) Error() string {
    return fmt.Sprintf("%s integration is not configured on the server", e.Service)
}

func NewNotConfigured(service string) error {
    return &ErrNotConfigured{Service: service}
}

func IsNotConfigured(err error) bool {
    var target *ErrNotConfigured
    return errors.As(err, &target)
}
