package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jacksmith/cb/internal/cli"
	"github.com/jacksmith/cb/internal/model"
	"github.com/jacksmith/cb/internal/ops"
	"github.com/jacksmith/cb/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	cli.SetColorEnabled(false)
}

// setupTestStorage returns a store in a temp dir seeded with contacts.
func setupTestStorage(t *testing.T, contacts ...model.Contact) *storage.Storage {
	t.Helper()
	s := storage.Open(filepath.Join(t.TempDir(), storage.DefaultFile))
	if len(contacts) > 0 {
		b := model.NewBook()
		for _, c := range contacts {
			b.Put(c)
		}
		require.NoError(t, s.Save(b))
	}
	return s
}

// runScript runs a shell over s with the given input and returns its output.
func runScript(t *testing.T, s *storage.Storage, input string) string {
	t.Helper()
	var out bytes.Buffer
	err := New(ops.Open(s, nil), strings.NewReader(input), &out).Run()
	require.NoError(t, err)
	return out.String()
}

func reload(t *testing.T, s *storage.Storage) *model.Book {
	t.Helper()
	b, err := s.Load()
	require.NoError(t, err)
	return b
}

var bob = model.Contact{Name: "Bob", Phone: "555-0000", Email: "bob@b.org"}

func TestShellAddThenList(t *testing.T) {
	s := setupTestStorage(t)

	out := runScript(t, s, "1\nAlice\n555-1234\nalice@example.com\n\n5\n\n6\n")

	assert.Contains(t, out, "Welcome to Contact Management System!")
	assert.Contains(t, out, "Contacts saved successfully!")
	assert.Contains(t, out, "Contact 'Alice' added successfully!")
	assert.Contains(t, out, "Total contacts: 1")
	assert.Contains(t, out, "Goodbye!")

	c, ok := reload(t, s).Lookup("Alice")
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", c.Email)
}

func TestShellMenuByName(t *testing.T) {
	s := setupTestStorage(t, bob)

	out := runScript(t, s, "li\n\nexit\n")
	assert.Contains(t, out, "Name: Bob")
	assert.Contains(t, out, "Goodbye!")
}

func TestShellInvalidChoice(t *testing.T) {
	s := setupTestStorage(t)

	out := runScript(t, s, "9\n\nhello\n\n6\n")
	assert.Equal(t, 2, strings.Count(out, "Invalid choice! Please enter 1-6."))
}

func TestShellEndOfInput(t *testing.T) {
	s := setupTestStorage(t)

	out := runScript(t, s, "")
	assert.Contains(t, out, "Goodbye!")

	// EOF in the middle of an action also exits cleanly
	out = runScript(t, s, "1\nCarol\n")
	assert.Contains(t, out, "Goodbye!")
	assert.Equal(t, 0, reload(t, s).Len())
}

func TestShellAddDuplicateStopsBeforePhone(t *testing.T) {
	s := setupTestStorage(t, bob)

	out := runScript(t, s, "1\nBOB\n\n6\n")
	assert.Contains(t, out, "already exists")
	assert.NotContains(t, out, "Enter phone: ")
	assert.Equal(t, 1, reload(t, s).Len())
}

func TestShellAddEmptyPhone(t *testing.T) {
	s := setupTestStorage(t)

	out := runScript(t, s, "1\nCarol\n\n\n6\n")
	assert.Contains(t, out, "invalid phone")
	assert.NotContains(t, out, "Enter email: ")
	assert.False(t, s.Exists())
}

func TestShellAddInvalidEmail(t *testing.T) {
	s := setupTestStorage(t)

	out := runScript(t, s, "1\nCarol\n123\ncarol.example.com\n\n6\n")
	assert.Contains(t, out, "invalid email")
	assert.False(t, s.Exists())
}

func TestShellSearch(t *testing.T) {
	s := setupTestStorage(t, bob, model.Contact{Name: "Alice Smith", Phone: "1", Email: "a@b"})

	out := runScript(t, s, "2\nALI\n\n2\nzzz\n\n6\n")
	assert.Contains(t, out, "Found 1 contact(s):")
	assert.Contains(t, out, "Name: Alice Smith")
	assert.Contains(t, out, "No contacts found!")
}

func TestShellUpdate(t *testing.T) {
	s := setupTestStorage(t, bob)

	out := runScript(t, s, "3\nBob\n555-9999\nnot-an-email\n\n6\n")
	assert.Contains(t, out, "Enter new phone (current: 555-0000): ")
	assert.Contains(t, out, "warning: "+ops.WarnInvalidEmail)
	assert.Contains(t, out, "Contact 'Bob' updated successfully!")

	c, _ := reload(t, s).Lookup("Bob")
	assert.Equal(t, "555-9999", c.Phone)
	assert.Equal(t, "bob@b.org", c.Email)
}

func TestShellUpdateNotFound(t *testing.T) {
	s := setupTestStorage(t, bob)

	out := runScript(t, s, "3\nbob\n\n6\n")
	assert.Contains(t, out, `contact "bob" not found`)
	assert.NotContains(t, out, "Enter new phone")
}

func TestShellDelete(t *testing.T) {
	tests := []struct {
		answer  string
		deleted bool
	}{
		{"yes", true},
		{"y", true},
		{"YES", true},
		{"no", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			s := setupTestStorage(t, bob)

			out := runScript(t, s, "4\nBob\n"+tt.answer+"\n\n6\n")

			_, exists := reload(t, s).Lookup("Bob")
			assert.Equal(t, !tt.deleted, exists)
			if tt.deleted {
				assert.Contains(t, out, "Contact 'Bob' deleted successfully!")
			} else {
				assert.Contains(t, out, "Deletion cancelled.")
			}
		})
	}
}

func TestShellListEmpty(t *testing.T) {
	s := setupTestStorage(t)

	out := runScript(t, s, "5\n\n6\n")
	assert.Contains(t, out, "No contacts found!")
}

func TestShellWarnsOnUnreadableFile(t *testing.T) {
	s := setupTestStorage(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	out := runScript(t, s, "5\n\n6\n")
	assert.Contains(t, out, "warning: failed to load contacts")
	assert.Contains(t, out, "No contacts found!")
}
