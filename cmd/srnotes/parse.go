package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/srnotes/internal/cli"
)

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Show the flashcards parsed from a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fileName := args[0]
			content, err := os.ReadFile(fileName)
			if err != nil {
				return fmt.Errorf("os.ReadFile() > %w", err)
			}
			return cli.RunParseReport(cmd.OutOrStdout(), fileName, string(content), cfg.NoteSettings())
		},
	}
}
