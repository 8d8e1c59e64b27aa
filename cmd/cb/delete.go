package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jacksmith/cb/internal/cli"
	"github.com/jacksmith/cb/internal/ops"
	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a contact",
	Long: `Delete a contact after confirmation. The name must match exactly.

Answer "yes" or "y" to confirm; anything else cancels.
Use --yes to skip the prompt.`,
	Args:              cobra.ExactArgs(1),
	RunE:              runDelete,
	ValidArgsFunction: completeContactNames,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "delete without asking")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	b, err := openBook()
	if err != nil {
		return err
	}

	c, err := b.Get(args[0])
	if err != nil {
		return err
	}

	confirmed := deleteYes
	if !confirmed {
		cli.WriteContact(os.Stdout, *c)
		fmt.Printf("Are you sure you want to delete '%s'? (yes/no): ", c.Name)
		answer, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		// End of input without "yes" cancels
		confirmed = ops.ParseConfirmation(answer)
	}

	res, err := b.Delete(c.Name, confirmed)
	if err != nil {
		return err
	}
	if res.Cancelled {
		fmt.Println("Deletion cancelled.")
		return nil
	}

	fmt.Printf("Contact '%s' deleted successfully!\n", res.Contact.Name)
	return nil
}
