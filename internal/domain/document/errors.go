package document

import "errors"

var (
	// ErrDocumentNotFound indicates the document doesn't exist.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrProjectNotFound indicates the referenced project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates invalid input for document operations.
	ErrInvalidInput = errors.New("invalid document input")
)
