package common

import (
	"errors"
	"fmt"
)

// Business logic errors
var (
	// General errors
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")

	// Note validation errors
	ErrNoteTitleRequired   = fmt.Errorf("%w: note title is required", ErrInvalidInput)
	ErrNoteTextRequired    = fmt.Errorf("%w: note text is required", ErrInvalidInput)
	ErrSearchQueryRequired = fmt.Errorf("%w: search query is required", ErrInvalidInput)
	ErrInvalidJSON         = fmt.Errorf("%w: malformed JSON body", ErrInvalidInput)
)

// IsValidation reports whether err is a request validation failure
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNotFound reports whether err means no row matched the given key
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
