package main

import (
	"os"

	"github.com/jacksmith/cb/internal/cli"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:               "show <name>",
	Short:             "Show one contact",
	Long:              `Show the phone and email of a contact. The name must match exactly, including case.`,
	Args:              cobra.ExactArgs(1),
	RunE:              runShow,
	ValidArgsFunction: completeContactNames,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	b, err := openBook()
	if err != nil {
		return err
	}

	c, err := b.Get(args[0])
	if err != nil {
		return err
	}

	cli.WriteContact(os.Stdout, *c)
	return nil
}
