package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/page-downloader/internal/browser"
)

func newCheckSelectorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-selector <expression>",
		Short: "Check the syntax of a button selector and print its kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector, err := browser.ParseSelector(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", selector.Kind, selector.Expr)
			if selector.Kind == browser.SelectorPlaywright {
				fmt.Fprintln(cmd.OutOrStdout(), "note: only the playwright driver understands this selector")
			}
			return nil
		},
	}
}
