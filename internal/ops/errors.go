package ops

import (
	"errors"
	"fmt"
)

// ErrNoContacts is returned by List when the book is empty.
var ErrNoContacts = errors.New("no contacts found")

// ValidationError indicates malformed or missing input.
type ValidationError struct {
	Field   string // the field that failed validation
	Message string // what went wrong
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// DuplicateError indicates a contact with the same name (ignoring case)
// already exists.
type DuplicateError struct {
	Name     string // the name being added
	Existing string // the stored name it collides with
}

func (e *DuplicateError) Error() string {
	if e.Existing != "" && e.Existing != e.Name {
		return fmt.Sprintf("contact %q already exists (as %q)", e.Name, e.Existing)
	}
	return fmt.Sprintf("contact %q already exists", e.Name)
}

// NotFoundError indicates a contact was not found.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("contact %q not found", e.Name)
}
