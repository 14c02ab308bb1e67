// internal/services/errors.go
package services

import (
	"errors"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")

	ErrProductNotFound   error = &domainError{msg: "product not found", kind: ErrNotFound}
	ErrInsufficientStock error = &domainError{msg: "insufficient stock", kind: ErrConflict}
)

// domainError is a named failure that still matches its broader kind with
// errors.Is.
type domainError struct {
	msg  string
	kind error
}

func (e *domainError) Error() string { return e.msg }
func (e *domainError) Unwrap() error { return e.kind }

// Actor is the verified identity a request runs as.
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == "admin"
}

// CanModify reports whether the actor owns the resource or is an admin.
func (a Actor) CanModify(ownerID uint) bool {
	return a.IsAdmin() || a.UserID == ownerID
}
