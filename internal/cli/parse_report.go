package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/srnotes/internal/markdown"
	"github.com/at-ishikawa/srnotes/internal/note"
)

// RunParseReport prints the questions and cards parsed from one note
func RunParseReport(w io.Writer, notePath, noteText string, settings note.Settings) error {
	n := note.Parse(notePath, noteText, markdown.Extract(noteText), settings)
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	if n.Schedule != nil {
		_, _ = fmt.Fprintf(w, "Note schedule: %s, interval %d, ease %d\n\n",
			n.Schedule.FormatDueDate(), n.Schedule.Interval, n.Schedule.Ease)
	}
	if len(n.Questions) == 0 {
		_, _ = fmt.Fprintln(w, "No flashcards found.")
		return nil
	}

	for i, q := range n.Questions {
		_, _ = bold.Fprintf(w, "Question %d: %s, lines %d-%d, deck %q\n",
			i, q.Info.Type, q.Info.FirstLineNumber+1, q.Info.LastLineNumber+1, q.TopicPath.String())
		if len(q.HeadingContext) > 0 {
			_, _ = faint.Fprintf(w, "  %s\n", strings.Join(q.HeadingContext, " > "))
		}
		for j, c := range q.Cards {
			schedule := "new"
			if c.Schedule != nil {
				schedule = fmt.Sprintf("%s, interval %d, ease %d", c.Schedule.FormatDueDate(), c.Schedule.Interval, c.Schedule.Ease)
			}
			_, _ = fmt.Fprintf(w, "  Card %d (%s)\n", j, schedule)
			_, _ = fmt.Fprintf(w, "    Front: %s\n", indent(c.Front))
			_, _ = fmt.Fprintf(w, "    Back:  %s\n", indent(c.Back))
		}
		if q.Changed {
			_, _ = color.New(color.FgYellow).Fprintln(w, "  Stored schedules do not match the cards and will be rewritten on sync")
		}
	}
	return nil
}

func indent(text string) string {
	return strings.ReplaceAll(text, "\n", "\n           ")
}
