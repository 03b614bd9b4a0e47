package task

import "errors"

var (
	// ErrTaskNotFound indicates the task doesn't exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrProjectNotFound indicates the referenced project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates invalid input for task operations.
	ErrInvalidInput = errors.New("invalid task input")
)
