package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookNamesSorted(t *testing.T) {
	b := NewBook()
	for _, name := range []string{"zed", "Alice", "bob", "Bob"} {
		b.Put(Contact{Name: name, Phone: "1", Email: "a@b"})
	}
	// Byte order: uppercase sorts before lowercase
	assert.Equal(t, []string{"Alice", "Bob", "bob", "zed"}, b.Names())
}

func TestBookLookup(t *testing.T) {
	b := sampleBook()

	c, ok := b.Lookup("Bob")
	assert.True(t, ok)
	assert.Equal(t, "1", c.Phone)

	_, ok = b.Lookup("bob")
	assert.False(t, ok, "Lookup is exact-case")
}

func TestBookLookupFold(t *testing.T) {
	b := sampleBook()

	name, ok := b.LookupFold("ALICE")
	assert.True(t, ok)
	assert.Equal(t, "alice", name)

	name, ok = b.LookupFold("Carol")
	assert.True(t, ok)
	assert.Equal(t, "Carol", name)

	_, ok = b.LookupFold("Dave")
	assert.False(t, ok)
}

func TestBookPutRemove(t *testing.T) {
	var b Book
	b.Put(Contact{Name: "Eve", Phone: "2", Email: "e@x"})
	assert.Equal(t, 1, b.Len())

	b.Remove("eve")
	assert.Equal(t, 1, b.Len(), "Remove is exact-case")

	b.Remove("Eve")
	assert.Equal(t, 0, b.Len())
}

func TestBookAllAndClone(t *testing.T) {
	b := sampleBook()
	all := b.All()
	assert.Len(t, all, 3)
	assert.Equal(t, "Bob", all[0].Name)
	assert.Equal(t, "alice", all[2].Name)

	c := b.Clone()
	c.Remove("Bob")
	assert.Equal(t, 3, b.Len(), "clone must not share storage")
	assert.Equal(t, 2, c.Len())
}
