// Package shell implements the interactive menu for cb.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jacksmith/cb/internal/cli"
	"github.com/jacksmith/cb/internal/ops"
)

// Menu entries in display order. The 1-based position is the menu number.
var choices = []string{"add", "search", "update", "delete", "list", "exit"}

var menuLabels = map[string]string{
	"add":    "Add Contact",
	"search": "Search Contact",
	"update": "Update Contact",
	"delete": "Delete Contact",
	"list":   "List All Contacts",
	"exit":   "Exit",
}

// Shell reads menu choices and field values from in and writes prompts and
// outcomes to out.
type Shell struct {
	book *ops.Book
	in   *bufio.Reader
	out  io.Writer
}

// New returns a shell over book.
func New(book *ops.Book, in io.Reader, out io.Writer) *Shell {
	return &Shell{book: book, in: bufio.NewReader(in), out: out}
}

// Run loops over the menu until the user exits or input ends.
func (s *Shell) Run() error {
	fmt.Fprintln(s.out, "Welcome to Contact Management System!")
	if err := s.book.LoadErr(); err != nil {
		fmt.Fprintln(s.out, cli.FormatWarning(err.Error()))
	}

	for {
		s.showMenu()
		input, err := s.prompt(fmt.Sprintf("Enter your choice (1-%d): ", len(choices)))
		if err != nil {
			return s.finish(err)
		}

		choice, err := cli.MatchChoice(input, choices)
		switch {
		case err != nil:
			fmt.Fprintln(s.out, cli.Red(fmt.Sprintf("Invalid choice! Please enter 1-%d.", len(choices))))
		case choice == "exit":
			s.goodbye()
			return nil
		default:
			if err := s.dispatch(choice); err != nil {
				return s.finish(err)
			}
		}

		if _, err := s.prompt("\nPress Enter to continue..."); err != nil {
			return s.finish(err)
		}
	}
}

func (s *Shell) dispatch(choice string) error {
	switch choice {
	case "add":
		return s.add()
	case "search":
		return s.search()
	case "update":
		return s.update()
	case "delete":
		return s.delete()
	case "list":
		s.list()
	}
	return nil
}

// finish turns end of input into a clean exit.
func (s *Shell) finish(err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(s.out)
		s.goodbye()
		return nil
	}
	return err
}

func (s *Shell) goodbye() {
	fmt.Fprintln(s.out, "\nThank you for using Contact Management System!")
	fmt.Fprintln(s.out, "Goodbye!")
}

func (s *Shell) showMenu() {
	rule := strings.Repeat("=", 40)
	fmt.Fprintln(s.out, "\n"+rule)
	fmt.Fprintln(s.out, "    CONTACT MANAGEMENT SYSTEM")
	fmt.Fprintln(s.out, rule)
	for i, c := range choices {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, menuLabels[c])
	}
	fmt.Fprintln(s.out, strings.Repeat("-", 40))
}

// prompt writes label and returns the trimmed reply. A final line without a
// newline is still returned; io.EOF is returned only when nothing was read.
func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (s *Shell) header(title string) {
	fmt.Fprintf(s.out, "\n=== %s ===\n", title)
}

func (s *Shell) fail(err error) {
	fmt.Fprintln(s.out, cli.Red(cli.FormatError(err)))
}

func (s *Shell) saved() {
	fmt.Fprintln(s.out, cli.Gray("Contacts saved successfully!"))
}

func (s *Shell) add() error {
	s.header("ADD NEW CONTACT")
	name, err := s.prompt("Enter name: ")
	if err != nil {
		return err
	}
	if err := s.book.CheckNewName(name); err != nil {
		s.fail(err)
		return nil
	}

	phone, err := s.prompt("Enter phone: ")
	if err != nil {
		return err
	}
	if phone == "" {
		s.fail(&ops.ValidationError{Field: "phone", Message: "must not be empty"})
		return nil
	}

	email, err := s.prompt("Enter email: ")
	if err != nil {
		return err
	}

	c, err := s.book.Add(name, phone, email)
	if err != nil {
		s.fail(err)
		return nil
	}
	s.saved()
	fmt.Fprintln(s.out, cli.Green(fmt.Sprintf("Contact '%s' added successfully!", c.Name)))
	return nil
}

func (s *Shell) search() error {
	s.header("SEARCH CONTACTS")
	term, err := s.prompt("Enter name to search: ")
	if err != nil {
		return err
	}

	found, err := s.book.Search(term)
	if err != nil {
		s.fail(err)
		return nil
	}
	if len(found) == 0 {
		fmt.Fprintln(s.out, "No contacts found!")
		return nil
	}

	fmt.Fprintf(s.out, "\nFound %d contact(s):\n", len(found))
	cli.WriteContactBlocks(s.out, found)
	return nil
}

func (s *Shell) update() error {
	s.header("UPDATE CONTACT")
	name, err := s.prompt("Enter name of contact to update: ")
	if err != nil {
		return err
	}
	c, err := s.book.Get(name)
	if err != nil {
		s.fail(err)
		return nil
	}

	fmt.Fprintf(s.out, "\nCurrent details for '%s':\n", c.Name)
	fmt.Fprintf(s.out, "Phone: %s\n", c.Phone)
	fmt.Fprintf(s.out, "Email: %s\n", c.Email)

	phone, err := s.prompt(fmt.Sprintf("Enter new phone (current: %s): ", c.Phone))
	if err != nil {
		return err
	}
	email, err := s.prompt(fmt.Sprintf("Enter new email (current: %s): ", c.Email))
	if err != nil {
		return err
	}

	res, err := s.book.Update(c.Name, ops.ContactChanges{Phone: phone, Email: email})
	for _, w := range warnings(res) {
		fmt.Fprintln(s.out, cli.FormatWarning(w))
	}
	if err != nil {
		s.fail(err)
		return nil
	}
	if len(res.Changed) > 0 {
		s.saved()
	}
	fmt.Fprintln(s.out, cli.Green(fmt.Sprintf("Contact '%s' updated successfully!", c.Name)))
	return nil
}

func warnings(res *ops.UpdateResult) []string {
	if res == nil {
		return nil
	}
	return res.Warnings
}

func (s *Shell) delete() error {
	s.header("DELETE CONTACT")
	name, err := s.prompt("Enter name of contact to delete: ")
	if err != nil {
		return err
	}
	c, err := s.book.Get(name)
	if err != nil {
		s.fail(err)
		return nil
	}

	fmt.Fprintln(s.out, "\nContact to delete:")
	cli.WriteContact(s.out, *c)

	answer, err := s.prompt("\nAre you sure you want to delete this contact? (yes/no): ")
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	res, derr := s.book.Delete(c.Name, ops.ParseConfirmation(answer))
	switch {
	case derr != nil:
		s.fail(derr)
	case res.Cancelled:
		fmt.Fprintln(s.out, "Deletion cancelled.")
	default:
		s.saved()
		fmt.Fprintln(s.out, cli.Green(fmt.Sprintf("Contact '%s' deleted successfully!", c.Name)))
	}
	return err
}

func (s *Shell) list() {
	s.header("ALL CONTACTS")
	all, err := s.book.List()
	if err != nil {
		if ops.IsNoContacts(err) {
			fmt.Fprintln(s.out, "No contacts found!")
			return
		}
		s.fail(err)
		return
	}

	fmt.Fprintf(s.out, "Total contacts: %d\n", len(all))
	cli.WriteContactBlocks(s.out, all)
}
