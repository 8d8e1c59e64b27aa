package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	addPhone string
	addEmail string
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new contact",
	Long: `Add a new contact with a phone number and an email address.

Names must be unique ignoring case, so "Alice" and "alice" cannot both exist.
The email must contain an "@".

Examples:
  cb add "Alice Smith" --phone 555-1234 --email alice@example.com
  cb add Bob -p 555-0000 -e bob@b.org`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addPhone, "phone", "p", "", "phone number (required)")
	addCmd.Flags().StringVarP(&addEmail, "email", "e", "", "email address (required)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	b, err := openBook()
	if err != nil {
		return err
	}

	c, err := b.Add(args[0], addPhone, addEmail)
	if err != nil {
		return err
	}

	fmt.Printf("Contact '%s' added successfully!\n", c.Name)
	return nil
}
