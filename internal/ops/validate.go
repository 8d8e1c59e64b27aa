package ops

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jacksmith/cb/internal/model"
)

// IssueType represents the kind of data integrity problem.
type IssueType string

const (
	IssueEmptyName     IssueType = "empty_name"
	IssuePaddedName    IssueType = "padded_name"
	IssuePaddedField   IssueType = "padded_field"
	IssueDuplicateName IssueType = "duplicate_name"
	IssueMissingPhone  IssueType = "missing_phone"
	IssueInvalidEmail  IssueType = "invalid_email"
)

// Issue is a data integrity problem in the loaded contacts.
// Files edited by hand can break rules that Add enforces.
type Issue struct {
	Type    IssueType
	Name    string
	Message string
	Details []string // Additional context (e.g., colliding names)
}

func (i Issue) String() string {
	return fmt.Sprintf("%q: %s - %s", i.Name, i.Type, i.Message)
}

// Fix represents an auto-repair action taken.
type Fix struct {
	Type        IssueType
	Name        string
	Description string
}

// Validate checks the loaded contacts for integrity issues.
// Issues are ordered by contact name.
func (b *Book) Validate() []Issue {
	return validateBook(b.book)
}

func validateBook(book *model.Book) []Issue {
	var issues []Issue

	groups := make(map[string][]string)
	for _, name := range book.Names() {
		key := strings.ToLower(strings.TrimSpace(name))
		groups[key] = append(groups[key], name)
	}

	for _, c := range book.All() {
		trimmed := strings.TrimSpace(c.Name)
		switch {
		case trimmed == "":
			issues = append(issues, Issue{
				Type:    IssueEmptyName,
				Name:    c.Name,
				Message: "contact has an empty name",
			})
		case trimmed != c.Name:
			issues = append(issues, Issue{
				Type:    IssuePaddedName,
				Name:    c.Name,
				Message: "name has surrounding whitespace",
			})
		}

		if strings.TrimSpace(c.Phone) != c.Phone || strings.TrimSpace(c.Email) != c.Email {
			issues = append(issues, Issue{
				Type:    IssuePaddedField,
				Name:    c.Name,
				Message: "phone or email has surrounding whitespace",
			})
		}
		if strings.TrimSpace(c.Phone) == "" {
			issues = append(issues, Issue{
				Type:    IssueMissingPhone,
				Name:    c.Name,
				Message: "contact missing required field: phone",
			})
		}
		if !ValidEmail(strings.TrimSpace(c.Email)) {
			issues = append(issues, Issue{
				Type:    IssueInvalidEmail,
				Name:    c.Name,
				Message: fmt.Sprintf("email %q does not contain @", c.Email),
			})
		}
	}

	// One report per group of names that differ only in case
	var keys []string
	for key, names := range groups {
		if len(names) > 1 && key != "" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		names := groups[key]
		issues = append(issues, Issue{
			Type:    IssueDuplicateName,
			Name:    names[0],
			Message: "names differ only in case or whitespace",
			Details: names,
		})
	}

	return issues
}

// Repair fixes what can be fixed without losing data: surrounding
// whitespace on names, phones and emails. A padded name is left alone when
// its trimmed form would collide with another contact.
// The book is saved if anything changed.
func (b *Book) Repair() ([]Fix, error) {
	var fixes []Fix

	for _, c := range b.book.All() {
		fixed := model.Contact{
			Name:  strings.TrimSpace(c.Name),
			Phone: strings.TrimSpace(c.Phone),
			Email: strings.TrimSpace(c.Email),
		}
		if fixed == c || fixed.Name == "" {
			continue
		}

		if fixed.Name != c.Name {
			if existing, ok := b.book.LookupFold(fixed.Name); ok && existing != c.Name {
				continue
			}
			fixes = append(fixes, Fix{
				Type:        IssuePaddedName,
				Name:        fixed.Name,
				Description: fmt.Sprintf("trimmed name %q", c.Name),
			})
		}
		if fixed.Phone != c.Phone || fixed.Email != c.Email {
			fixes = append(fixes, Fix{
				Type:        IssuePaddedField,
				Name:        fixed.Name,
				Description: "trimmed whitespace from phone/email",
			})
		}

		b.book.Remove(c.Name)
		b.book.Put(fixed)
	}

	if len(fixes) == 0 {
		return nil, nil
	}
	b.log.Infow("contacts repaired", "fixes", len(fixes))
	if err := b.save(); err != nil {
		return fixes, err
	}
	return fixes, nil
}
