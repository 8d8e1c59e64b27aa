package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jacksmith/cb/internal/cli"
	"github.com/jacksmith/cb/internal/ops"
	"github.com/spf13/cobra"
)

var (
	updatePhone       string
	updateEmail       string
	updateInteractive bool
)

var updateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Change a contact's phone or email",
	Long: `Change the phone number and/or email of an existing contact.
The name must match exactly, including case.

An email without "@" is ignored with a warning and the old email is kept.
Use -i to edit the contact in $EDITOR instead of passing flags.

Examples:
  cb update "Alice Smith" --phone 555-9999
  cb update Bob -e bob@new.org
  cb update Bob -i`,
	Args:              cobra.ExactArgs(1),
	RunE:              runUpdate,
	ValidArgsFunction: completeContactNames,
}

func init() {
	updateCmd.Flags().StringVarP(&updatePhone, "phone", "p", "", "new phone number")
	updateCmd.Flags().StringVarP(&updateEmail, "email", "e", "", "new email address")
	updateCmd.Flags().BoolVarP(&updateInteractive, "interactive", "i", false, "edit in $EDITOR")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	b, err := openBook()
	if err != nil {
		return err
	}

	changes := ops.ContactChanges{Phone: updatePhone, Email: updateEmail}

	if updateInteractive {
		if updatePhone != "" || updateEmail != "" {
			return fmt.Errorf("cannot combine -i with --phone or --email")
		}
		c, err := b.Get(args[0])
		if err != nil {
			return err
		}
		edited, err := cli.EditContact(*c)
		if errors.Is(err, cli.ErrNotModified) {
			fmt.Println("No changes made.")
			return nil
		}
		if err != nil {
			return err
		}
		changes = ops.ContactChanges{Phone: edited.Phone, Email: edited.Email}
	} else if updatePhone == "" && updateEmail == "" {
		return fmt.Errorf("nothing to update: use --phone, --email or -i")
	}

	res, err := b.Update(args[0], changes)
	if res != nil {
		for _, w := range res.Warnings {
			fmt.Fprintln(os.Stderr, cli.FormatWarning(w))
		}
	}
	if err != nil {
		return err
	}

	if len(res.Changed) == 0 {
		fmt.Printf("Contact '%s' unchanged.\n", res.Contact.Name)
		return nil
	}
	fmt.Printf("Contact '%s' updated successfully! (%s)\n", res.Contact.Name, strings.Join(res.Changed, ", "))
	return nil
}
