package document

import "errors"

// Errors returned by document operations.
var (
	// ErrNotFound indicates a node index or id does not exist.
	ErrNotFound = errors.New("node not found")

	// ErrBoundary indicates a structurally invalid operation at a document
	// edge, such as merging the first node with its predecessor.
	ErrBoundary = errors.New("operation crosses document boundary")

	// ErrInvalidCoordinate indicates an offset outside its node's content.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)
