package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/jacksmith/cb/internal/model"
)

// ErrNotModified is returned by EditContact when the editor saved no change.
var ErrNotModified = errors.New("contact not modified")

// EditContact opens c as a YAML document in $EDITOR and returns the edited
// contact. The name may not be changed.
func EditContact(c model.Contact) (model.Contact, error) {
	content, err := model.MarshalContact(c)
	if err != nil {
		return model.Contact{}, err
	}

	edited, err := EditInEditor(content, ".yaml")
	if err != nil {
		return model.Contact{}, err
	}
	if bytes.Equal(edited, content) {
		return c, ErrNotModified
	}

	updated, err := model.UnmarshalContact(edited)
	if err != nil {
		return model.Contact{}, err
	}
	if strings.TrimSpace(updated.Name) != c.Name {
		return model.Contact{}, fmt.Errorf("renaming is not supported (name changed from %q to %q)", c.Name, updated.Name)
	}
	updated.Name = c.Name
	return updated, nil
}

// EditInEditor opens content in $EDITOR and returns modified content.
// The suffix is used for the temporary file (e.g., ".yaml" for syntax highlighting).
func EditInEditor(content []byte, suffix string) ([]byte, error) {
	editor := getEditor()
	if editor == "" {
		return nil, fmt.Errorf("EDITOR not set. Set it or use --phone/--email instead of -i")
	}

	tmpFile, err := os.CreateTemp("", "cb-contact-*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := runEditor(editor, tmpPath); err != nil {
		return nil, err
	}

	result, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}
	return result, nil
}

// getEditor returns VISUAL if set, else EDITOR.
func getEditor() string {
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	return os.Getenv("EDITOR")
}

// runEditor runs the editor command (which may carry arguments, e.g.
// "code --wait") on path, attached to the terminal.
func runEditor(editor, path string) error {
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("empty editor command")
	}

	args := append(parts[1:], path)
	cmd := exec.Command(parts[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run editor: %w", err)
	}
	return nil
}
