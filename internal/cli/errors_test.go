package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jacksmith/cb/internal/ops"
	"github.com/jacksmith/cb/internal/storage"
	"github.com/stretchr/testify/assert"
)

func TestFormatError(t *testing.T) {
	// Nil error
	assert.Equal(t, "", FormatError(nil))

	// Simple error
	err := errors.New("something went wrong")
	assert.Equal(t, "error: something went wrong", FormatError(err))

	// Validation error has no hint
	err = &ops.ValidationError{Field: "email", Message: "must contain @"}
	assert.Equal(t, "error: invalid email: must contain @", FormatError(err))
}

func TestFormatErrorHints(t *testing.T) {
	tests := []struct {
		name string
		err  error
		hint string
	}{
		{"duplicate", &ops.DuplicateError{Name: "Alice"}, "cb update"},
		{"not found", &ops.NotFoundError{Name: "alice"}, "case-sensitive"},
		{"wrapped not found", fmt.Errorf("show: %w", &ops.NotFoundError{Name: "x"}), "cb search"},
		{"save", &storage.PersistenceError{Op: "save", Path: "c.json", Err: errors.New("denied")}, "not written to disk"},
		{"load", &storage.PersistenceError{Op: "load", Path: "c.json", Err: errors.New("bad")}, "cb check"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FormatError(tt.err)
			assert.Contains(t, out, "error: ")
			assert.Contains(t, out, tt.hint)
		})
	}
}

func TestFormatWarning(t *testing.T) {
	SetColorEnabled(false)
	defer SetColorEnabled(true)
	assert.Equal(t, "warning: keeping old email", FormatWarning("keeping old email"))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 2, ExitCode(&ops.ValidationError{Message: "x"}))
	assert.Equal(t, 2, ExitCode(&ops.DuplicateError{Name: "x"}))
	assert.Equal(t, 2, ExitCode(fmt.Errorf("wrap: %w", &ops.NotFoundError{Name: "x"})))
	assert.Equal(t, 3, ExitCode(&storage.PersistenceError{Op: "save", Err: errors.New("x")}))
	assert.Equal(t, 1, ExitCode(errors.New("other")))
}
