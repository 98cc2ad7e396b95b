package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/page-downloader/internal/browser"
)

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install [browser...]",
		Short: "Install the Playwright driver and browsers (default chromium)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := browser.InstallPlaywright(args...); err != nil {
				return fmt.Errorf("install browsers: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Browsers installed")
			return nil
		},
	}
}
