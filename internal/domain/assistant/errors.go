package assistant

import "errors"

var (
	// ErrProjectNotFound indicates the project to ask about doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates an empty or missing question.
	ErrInvalidInput = errors.New("invalid assistant input")
	// ErrModelFailure indicates the generative model call failed.
	ErrModelFailure = errors.New("model request failed")
)
