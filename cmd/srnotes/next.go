package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/srnotes/internal/queue"
)

func newNextCommand() *cobra.Command {
	var includeNew bool

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next card to review",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, v, err := syncVault(cmd.Context())
			if err != nil {
				return err
			}

			item, err := newReviewQueue(cfg, v.Result(), includeNew).Next()
			if errors.Is(err, queue.ErrEmptyQueue) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No cards to review.")
				return nil
			}
			if err != nil {
				return fmt.Errorf("queue.Next() > %w", err)
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s --question %d --card %d\n", item.NotePath, item.QuestionIndex, item.CardIndex)
			if deck := item.TopicPath.String(); deck != "" {
				_, _ = fmt.Fprintf(w, "Deck: %s\n", deck)
			}
			_, _ = fmt.Fprintf(w, "Front: %s\n", item.Front)
			_, _ = fmt.Fprintf(w, "Back: %s\n", item.Back)
			return nil
		},
	}
	cmd.Flags().BoolVar(&includeNew, "new", false, "Include new cards")

	return cmd
}
