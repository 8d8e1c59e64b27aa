// Package ops implements the contact book operations on top of a Store.
package ops

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/jacksmith/cb/internal/logging"
	"github.com/jacksmith/cb/internal/model"
	"go.uber.org/zap"
)

// WarnInvalidEmail is reported by Update when a new email is rejected and
// the old one kept.
const WarnInvalidEmail = "invalid email format, keeping old email"

// Field rules for go-playground/validator.
const (
	ruleRequired = "required"
	ruleEmail    = "required,contains=@"
	ruleText     = "utf8"
)

// Values must survive the file encoders unchanged, which replace invalid
// UTF-8 with U+FFFD.
const msgInvalidText = "must be valid UTF-8"

var validate *validator.Validate

func init() {
	validate = validator.New()
	err := validate.RegisterValidation(ruleText, func(fl validator.FieldLevel) bool {
		return utf8.ValidString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// checkField validates value against rule and returns a *ValidationError
// carrying message on failure.
func checkField(field, value, rule, message string) error {
	if err := validate.Var(value, rule); err != nil {
		return &ValidationError{Field: field, Message: message}
	}
	return nil
}

// ValidEmail reports whether s is acceptable as an email address.
// The only requirement is that it contains "@".
func ValidEmail(s string) bool {
	return validate.Var(s, ruleEmail) == nil
}

// ContactChanges holds new values for an update. Empty fields are left alone.
type ContactChanges struct {
	Phone string
	Email string
}

// UpdateResult describes the outcome of Update.
type UpdateResult struct {
	Contact  model.Contact
	Changed  []string // fields that received a new value
	Warnings []string // rejected values that were skipped
}

// DeleteResult describes the outcome of Delete.
type DeleteResult struct {
	Contact   model.Contact
	Cancelled bool
}

// Book is the in-memory contact book for the running process.
// It is loaded once from its Store and saved after every change.
type Book struct {
	store   Store
	log     *zap.SugaredLogger
	book    *model.Book
	loadErr error
}

// Open loads the book from s. A load failure is logged and the book starts
// empty; the error stays available through LoadErr.
func Open(s Store, log *zap.SugaredLogger) *Book {
	if log == nil {
		log = logging.Nop()
	}
	b, err := s.Load()
	if err != nil {
		log.Warnw("could not load contacts, starting empty", "path", s.Path(), "error", err)
	}
	if b == nil {
		b = model.NewBook()
	}
	log.Debugw("contacts loaded", "path", s.Path(), "count", b.Len())
	return &Book{store: s, log: log, book: b, loadErr: err}
}

// LoadErr returns the error swallowed by Open, if any.
func (b *Book) LoadErr() error {
	return b.loadErr
}

// Path returns the location of the underlying store.
func (b *Book) Path() string {
	return b.store.Path()
}

// Len returns the number of contacts.
func (b *Book) Len() int {
	return b.book.Len()
}

// Names returns all contact names in sorted order.
func (b *Book) Names() []string {
	return b.book.Names()
}

// save persists the whole book. On failure the in-memory state is kept
// and the error returned.
func (b *Book) save() error {
	if err := b.store.Save(b.book); err != nil {
		b.log.Errorw("could not save contacts", "path", b.store.Path(), "error", err)
		return err
	}
	b.log.Debugw("contacts saved", "path", b.store.Path(), "count", b.book.Len())
	return nil
}

// CheckNewName reports whether name is usable for a new contact: non-empty
// after trimming and not already taken (ignoring case).
func (b *Book) CheckNewName(name string) error {
	name = strings.TrimSpace(name)
	if err := checkField("name", name, ruleRequired, "must not be empty"); err != nil {
		return err
	}
	if err := checkField("name", name, ruleText, msgInvalidText); err != nil {
		return err
	}
	if existing, ok := b.book.LookupFold(name); ok {
		return &DuplicateError{Name: name, Existing: existing}
	}
	return nil
}

// Add creates a new contact. Inputs are trimmed.
// A save failure still returns the contact, since it remains in memory.
func (b *Book) Add(name, phone, email string) (*model.Contact, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	email = strings.TrimSpace(email)

	if err := b.CheckNewName(name); err != nil {
		return nil, err
	}
	if err := checkField("phone", phone, ruleRequired, "must not be empty"); err != nil {
		return nil, err
	}
	if err := checkField("phone", phone, ruleText, msgInvalidText); err != nil {
		return nil, err
	}
	if err := checkField("email", email, ruleEmail, "must contain @"); err != nil {
		return nil, err
	}
	if err := checkField("email", email, ruleText, msgInvalidText); err != nil {
		return nil, err
	}

	c := model.Contact{Name: name, Phone: phone, Email: email}
	b.book.Put(c)
	b.log.Debugw("contact added", "name", name)

	if err := b.save(); err != nil {
		return &c, err
	}
	return &c, nil
}

// Search returns contacts whose name contains term, ignoring case.
// Results are sorted by name. No match is an empty slice, not an error.
func (b *Book) Search(term string) ([]model.Contact, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if err := checkField("search term", term, ruleRequired, "must not be empty"); err != nil {
		return nil, err
	}

	matches := []model.Contact{}
	for _, c := range b.book.All() {
		if strings.Contains(strings.ToLower(c.Name), term) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

// Get returns the contact with exactly the given name.
func (b *Book) Get(name string) (*model.Contact, error) {
	name = strings.TrimSpace(name)
	if err := checkField("name", name, ruleRequired, "must not be empty"); err != nil {
		return nil, err
	}
	c, ok := b.book.Lookup(name)
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return &c, nil
}

// Update changes the phone and/or email of an existing contact.
// A non-empty email without "@" is skipped with a warning rather than
// failing the update. Values that are not valid UTF-8 fail the whole update.
// The book is saved when any field changed.
func (b *Book) Update(name string, changes ContactChanges) (*UpdateResult, error) {
	c, err := b.Get(name)
	if err != nil {
		return nil, err
	}

	phone := strings.TrimSpace(changes.Phone)
	email := strings.TrimSpace(changes.Email)
	if err := checkField("phone", phone, ruleText, msgInvalidText); err != nil {
		return nil, err
	}
	if err := checkField("email", email, ruleText, msgInvalidText); err != nil {
		return nil, err
	}
	result := &UpdateResult{}

	if phone != "" && phone != c.Phone {
		c.Phone = phone
		result.Changed = append(result.Changed, "phone")
	}
	if email != "" {
		if !ValidEmail(email) {
			result.Warnings = append(result.Warnings, WarnInvalidEmail)
			b.log.Debugw("email rejected", "name", c.Name, "email", email)
		} else if email != c.Email {
			c.Email = email
			result.Changed = append(result.Changed, "email")
		}
	}
	result.Contact = *c

	if len(result.Changed) == 0 {
		return result, nil
	}

	b.book.Put(*c)
	b.log.Debugw("contact updated", "name", c.Name, "fields", result.Changed)

	if err := b.save(); err != nil {
		return result, err
	}
	return result, nil
}

// Delete removes a contact. Nothing changes unless confirmed is true;
// an unconfirmed delete reports cancellation, not an error.
func (b *Book) Delete(name string, confirmed bool) (*DeleteResult, error) {
	c, err := b.Get(name)
	if err != nil {
		return nil, err
	}

	if !confirmed {
		return &DeleteResult{Contact: *c, Cancelled: true}, nil
	}

	b.book.Remove(c.Name)
	b.log.Debugw("contact deleted", "name", c.Name)

	if err := b.save(); err != nil {
		return &DeleteResult{Contact: *c}, err
	}
	return &DeleteResult{Contact: *c}, nil
}

// List returns all contacts sorted by name (case-sensitive).
// An empty book returns ErrNoContacts.
func (b *Book) List() ([]model.Contact, error) {
	if b.book.Len() == 0 {
		return nil, ErrNoContacts
	}
	return b.book.All(), nil
}

// ParseConfirmation reports whether answer is an affirmative reply
// ("yes" or "y", any case).
func ParseConfirmation(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "y":
		return true
	default:
		return false
	}
}

// IsNoContacts reports whether err signals an empty book.
func IsNoContacts(err error) bool {
	return errors.Is(err, ErrNoContacts)
}
