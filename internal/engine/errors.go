package engine

import (
	"errors"
	"fmt"

	"github.com/dshills/quire/internal/engine/document"
)

// Errors returned by engine operations.
var (
	// ErrNotFound indicates a referenced node index or id does not exist.
	ErrNotFound = document.ErrNotFound

	// ErrBoundary indicates a structurally invalid operation at a document edge.
	ErrBoundary = document.ErrBoundary

	// ErrInvalidCoordinate indicates an offset outside its node's content.
	ErrInvalidCoordinate = document.ErrInvalidCoordinate

	// ErrInvalidState indicates the selection is a range where a cursor is
	// required, or the other way round.
	ErrInvalidState = errors.New("invalid selection state")

	// ErrUnknownNodeKind indicates a node kind that is not configured.
	ErrUnknownNodeKind = errors.New("unknown node kind")

	// ErrReadOnly indicates a write operation on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")
)

// OpError records a failed engine operation and where it was attempted.
type OpError struct {
	Op    string
	Coord Coordinate
	Err   error
}

// Error implements error.
func (e *OpError) Error() string {
	return fmt.Sprintf("%s at %s: %v", e.Op, e.Coord, e.Err)
}

// Unwrap returns the underlying error.
func (e *OpError) Unwrap() error {
	return e.Err
}
