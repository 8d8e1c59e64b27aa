package cli

import (
	"errors"

	"github.com/jacksmith/cb/internal/ops"
	"github.com/jacksmith/cb/internal/storage"
)

// FormatError returns a user-friendly error message.
// It prefixes the error with "error: " for consistent CLI output and adds a
// hint line for errors the user can act on.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	msg := "error: " + err.Error()
	if hint := errorHint(err); hint != "" {
		msg += "\n" + hint
	}
	return msg
}

// FormatWarning returns a warning line.
func FormatWarning(msg string) string {
	return Yellow("warning: " + msg)
}

func errorHint(err error) string {
	var (
		dup  *ops.DuplicateError
		nf   *ops.NotFoundError
		perr *storage.PersistenceError
	)
	switch {
	case errors.As(err, &dup):
		return "Use 'cb update' to change an existing contact."
	case errors.As(err, &nf):
		return "Names are case-sensitive; try 'cb search' to find the exact name."
	case errors.As(err, &perr) && perr.Op == "save":
		return "The change was not written to disk."
	case errors.As(err, &perr) && perr.Op == "load":
		return "Run 'cb check' to inspect the contacts file."
	}
	return ""
}

// ExitCode maps an error to a process exit status.
// Input problems exit 2, storage problems 3, everything else 1.
func ExitCode(err error) int {
	var (
		verr *ops.ValidationError
		dup  *ops.DuplicateError
		nf   *ops.NotFoundError
		perr *storage.PersistenceError
	)
	switch {
	case err == nil:
		return 0
	case errors.As(err, &verr), errors.As(err, &dup), errors.As(err, &nf):
		return 2
	case errors.As(err, &perr):
		return 3
	default:
		return 1
	}
}
