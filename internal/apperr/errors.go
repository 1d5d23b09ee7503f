// Package apperr defines sentinel errors shared between the client and the
// development server.
package apperr

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
