package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jacksmith/cb/internal/cli"
	"github.com/spf13/cobra"
)

var searchLong bool

var searchCmd = &cobra.Command{
	Use:     "search <term>",
	Aliases: []string{"find"},
	Short:   "Find contacts by name",
	Long: `Find contacts whose name contains the search term, ignoring case.

Examples:
  cb search ali        # matches "Alice Smith" and "Natalie"
  cb search "smith" -l # full details for each match`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVarP(&searchLong, "long", "l", false, "show full details for each match")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	b, err := openBook()
	if err != nil {
		return err
	}

	matches, err := b.Search(strings.Join(args, " "))
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		fmt.Println("No contacts found!")
		return nil
	}

	fmt.Printf("Found %d contact(s):\n", len(matches))
	if searchLong {
		cli.WriteContactBlocks(os.Stdout, matches)
		return nil
	}
	cli.ContactTable(matches).Render(os.Stdout)
	return nil
}
