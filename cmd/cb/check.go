package main

import (
	"fmt"
	"strings"

	"github.com/jacksmith/cb/internal/cli"
	"github.com/jacksmith/cb/internal/ops"
	"github.com/jacksmith/cb/internal/storage"
	"github.com/spf13/cobra"
)

var checkFix bool

var checkCmd = &cobra.Command{
	Use:     "check",
	Aliases: []string{"validate"},
	Short:   "Check the contacts file for problems",
	Long: `Check the contacts file for problems that the add command would have
rejected, typically caused by editing the file by hand.

Checks for:
- Empty names
- Names or fields with surrounding whitespace
- Names that differ only in case
- Missing phone numbers
- Emails without "@"

Use --fix to trim whitespace. Other issues must be fixed with 'cb update'
or by editing the file.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkFix, "fix", false, "auto-repair fixable issues")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := loadSettings(); err != nil {
		return err
	}
	if !storage.Open(contactsPath()).Exists() {
		fmt.Printf("No contacts file at %s yet.\n", contactsPath())
		return nil
	}

	b, err := loadBook()
	if err != nil {
		return err
	}
	if err := b.LoadErr(); err != nil {
		return err
	}

	issues := b.Validate()
	if len(issues) == 0 {
		fmt.Println(cli.Green("No issues found."))
		return nil
	}

	if !checkFix {
		fmt.Printf("Found %d issue(s):\n\n", len(issues))
		printIssues(issues)
		return fmt.Errorf("%d issue(s) found in %s", len(issues), b.Path())
	}

	fmt.Printf("Found %d issue(s). Attempting to fix...\n\n", len(issues))
	fixes, err := b.Repair()
	if err != nil {
		return err
	}
	if len(fixes) > 0 {
		fmt.Println("Fixes applied:")
		for _, f := range fixes {
			fmt.Printf("  %q: %s\n", f.Name, f.Description)
		}
		fmt.Println()
	}

	remaining := b.Validate()
	if len(remaining) == 0 {
		fmt.Println(cli.Green("All fixable issues resolved."))
		return nil
	}

	fmt.Printf("Remaining issues (%d) that cannot be auto-fixed:\n\n", len(remaining))
	printIssues(remaining)
	return fmt.Errorf("%d issue(s) remain in %s", len(remaining), b.Path())
}

func printIssues(issues []ops.Issue) {
	for _, i := range issues {
		fmt.Printf("%q %s: %s\n", i.Name, formatIssueType(i.Type), i.Message)
		if len(i.Details) > 0 {
			fmt.Printf("  %s\n", strings.Join(i.Details, ", "))
		}
	}
}

func formatIssueType(t ops.IssueType) string {
	switch t {
	case ops.IssueDuplicateName, ops.IssueEmptyName:
		return cli.Red(string(t))
	case ops.IssueInvalidEmail, ops.IssueMissingPhone:
		return cli.Yellow(string(t))
	default:
		return cli.Gray(string(t))
	}
}
