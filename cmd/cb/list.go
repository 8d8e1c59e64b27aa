package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/cb/internal/cli"
	"github.com/jacksmith/cb/internal/ops"
	"github.com/spf13/cobra"
)

var listLong bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all contacts",
	Long: `List every contact sorted by name, followed by the total count.

Use -l for the full block layout of the interactive menu.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listLong, "long", "l", false, "show full details for each contact")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	b, err := openBook()
	if err != nil {
		return err
	}

	contacts, err := b.List()
	if ops.IsNoContacts(err) {
		fmt.Println("No contacts found!")
		return nil
	}
	if err != nil {
		return err
	}

	if listLong {
		cli.WriteContactBlocks(os.Stdout, contacts)
	} else {
		cli.ContactTable(contacts).Render(os.Stdout)
	}
	fmt.Printf("Total contacts: %d\n", len(contacts))
	return nil
}
