package ops

import "github.com/jacksmith/cb/internal/model"

// Store defines the persistence interface required by the contact book.
// The concrete implementation is storage.Storage, but this interface allows
// alternative backends (in-memory, failing, etc.) for testing.
type Store interface {
	Load() (*model.Book, error)
	Save(b *model.Book) error
	Path() string
}
