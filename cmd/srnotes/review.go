package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/srnotes/internal/cli"
	"github.com/at-ishikawa/srnotes/internal/srs"
)

type ResponseFlag string

// Set implements pflag.Value.
func (f *ResponseFlag) Set(v string) error {
	response, err := srs.ParseResponse(v)
	if err != nil {
		return fmt.Errorf("invalid value %q, valid values are %q, %q, %q or %q", v, srs.Easy, srs.Good, srs.Hard, srs.Reset)
	}
	*f = ResponseFlag(response.String())
	return nil
}

// String implements pflag.Value.
func (f *ResponseFlag) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *ResponseFlag) Type() string {
	return "ResponseFlag"
}

func (f ResponseFlag) Response() (srs.Response, error) {
	return srs.ParseResponse(string(f))
}

var (
	_ pflag.Value = (*ResponseFlag)(nil)
)

func newReviewCommand() *cobra.Command {
	var includeNew bool
	reviewCommand := &cobra.Command{
		Use:   "review",
		Short: "Review due cards interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, v, err := syncVault(cmd.Context())
			if err != nil {
				return err
			}

			q := newReviewQueue(cfg, v.Result(), includeNew)
			session := cli.NewReviewSessionCLI(v, q, cmd.InOrStdin(), cmd.OutOrStdout())
			if err := session.Run(cmd.Context(), session); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reviewed %d cards\n", session.Reviewed())
			return nil
		},
	}
	reviewCommand.Flags().BoolVar(&includeNew, "new", true, "Include new cards")

	reviewCommand.AddCommand(newReviewCardCommand())
	reviewCommand.AddCommand(newReviewNoteCommand())
	return reviewCommand
}

func newReviewCardCommand() *cobra.Command {
	var questionIndex, cardIndex int
	var response ResponseFlag

	cmd := &cobra.Command{
		Use:   "card <file>",
		Short: "Record the response to one card of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := response.Response()
			if err != nil {
				return err
			}
			cfg, v, err := syncVault(cmd.Context())
			if err != nil {
				return err
			}
			path, err := notePath(cfg, args[0])
			if err != nil {
				return err
			}

			schedule, err := v.ReviewCard(cmd.Context(), path, questionIndex, cardIndex, r)
			if err != nil {
				return fmt.Errorf("vault.ReviewCard() > %w", err)
			}
			printSchedule(cmd, schedule)
			return nil
		},
	}
	cmd.Flags().IntVar(&questionIndex, "question", 0, "Index of the question in the note")
	cmd.Flags().IntVar(&cardIndex, "card", 0, "Index of the card in the question")
	cmd.Flags().Var(&response, "response", "Response. Options: easy, good, hard, reset")
	_ = cmd.MarkFlagRequired("response")

	return cmd
}

func newReviewNoteCommand() *cobra.Command {
	var response ResponseFlag

	cmd := &cobra.Command{
		Use:   "note <file>",
		Short: "Record the response to a note tagged for review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := response.Response()
			if err != nil {
				return err
			}
			cfg, v, err := syncVault(cmd.Context())
			if err != nil {
				return err
			}
			path, err := notePath(cfg, args[0])
			if err != nil {
				return err
			}

			schedule, err := v.ReviewNote(cmd.Context(), path, r)
			if err != nil {
				return fmt.Errorf("vault.ReviewNote() > %w", err)
			}
			printSchedule(cmd, schedule)
			return nil
		},
	}
	cmd.Flags().Var(&response, "response", "Response. Options: easy, good, hard, reset")
	_ = cmd.MarkFlagRequired("response")

	return cmd
}

func printSchedule(cmd *cobra.Command, schedule srs.ScheduleInfo) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Next review on %s (interval %d days, ease %d)\n",
		schedule.FormatDueDate(), schedule.Interval, schedule.Ease)
}
