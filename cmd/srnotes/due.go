package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/srnotes/internal/cli"
)

func newDueCommand() *cobra.Command {
	var year, month int

	cmd := &cobra.Command{
		Use:   "due",
		Short: "Show due cards and notes per deck with a forecast",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month != 0 && year == 0 {
				return fmt.Errorf("--month requires --year to be specified")
			}
			if month < 0 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12")
			}

			_, v, err := syncVault(cmd.Context())
			if err != nil {
				return err
			}
			return cli.RunDueReport(cmd.OutOrStdout(), v.Result(), time.Now(), year, month)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Filter scheduled cards by due year (e.g., 2025)")
	cmd.Flags().IntVar(&month, "month", 0, "Filter scheduled cards by due month (1-12), requires --year")

	return cmd
}
