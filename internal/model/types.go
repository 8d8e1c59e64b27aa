// Package model defines the core data structures for cb.
package model

import (
	"sort"
	"strings"
)

// Details holds the fields stored for a contact, keyed by name in a Book.
type Details struct {
	Phone string `json:"phone" yaml:"phone"`
	Email string `json:"email" yaml:"email"`
}

// Contact is a named record with phone and email fields.
type Contact struct {
	Name  string `yaml:"name"`
	Phone string `yaml:"phone"`
	Email string `yaml:"email"`
}

// Details returns the stored fields of c.
func (c Contact) Details() Details {
	return Details{Phone: c.Phone, Email: c.Email}
}

// Book maps contact names to their details.
// Keys keep the case they were added with.
type Book struct {
	Contacts map[string]Details
}

// NewBook returns an empty book.
func NewBook() *Book {
	return &Book{Contacts: make(map[string]Details)}
}

// Len returns the number of contacts.
func (b *Book) Len() int {
	return len(b.Contacts)
}

// Names returns all contact names in lexicographic (byte) order.
func (b *Book) Names() []string {
	names := make([]string, 0, len(b.Contacts))
	for name := range b.Contacts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the contact with exactly the given name.
func (b *Book) Lookup(name string) (Contact, bool) {
	d, ok := b.Contacts[name]
	if !ok {
		return Contact{}, false
	}
	return Contact{Name: name, Phone: d.Phone, Email: d.Email}, true
}

// LookupFold returns the name of a contact matching name case-insensitively.
func (b *Book) LookupFold(name string) (string, bool) {
	if _, ok := b.Contacts[name]; ok {
		return name, true
	}
	for existing := range b.Contacts {
		if strings.EqualFold(existing, name) {
			return existing, true
		}
	}
	return "", false
}

// Put inserts or replaces the contact under c.Name.
func (b *Book) Put(c Contact) {
	if b.Contacts == nil {
		b.Contacts = make(map[string]Details)
	}
	b.Contacts[c.Name] = c.Details()
}

// Remove deletes the contact with exactly the given name.
func (b *Book) Remove(name string) {
	delete(b.Contacts, name)
}

// All returns every contact sorted by name.
func (b *Book) All() []Contact {
	names := b.Names()
	contacts := make([]Contact, 0, len(names))
	for _, name := range names {
		d := b.Contacts[name]
		contacts = append(contacts, Contact{Name: name, Phone: d.Phone, Email: d.Email})
	}
	return contacts
}

// Clone returns a deep copy of b.
func (b *Book) Clone() *Book {
	c := &Book{Contacts: make(map[string]Details, len(b.Contacts))}
	for name, d := range b.Contacts {
		c.Contacts[name] = d
	}
	return c
}
