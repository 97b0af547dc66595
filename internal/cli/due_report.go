package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/at-ishikawa/srnotes/internal/statistics"
	"github.com/at-ishikawa/srnotes/internal/vault"
)

// forecastDays is the number of days shown in the due forecast
const forecastDays = 7

// RunDueReport displays the cards and notes due in a synced vault
func RunDueReport(w io.Writer, result *vault.SyncResult, today time.Time, year, month int) error {
	if result == nil {
		return vault.ErrNotSynced
	}
	stats := statistics.CalculateStatistics(result.Notes, today, year, month)

	if stats.Aggregate.TotalCards == 0 && len(result.ReviewNotes) == 0 {
		_, _ = fmt.Fprintln(w, "No cards or notes found in the vault.")
		return nil
	}

	_, _ = fmt.Fprintln(w, "Decks")
	_, _ = fmt.Fprintln(w, "=====")
	_, _ = fmt.Fprintf(w, "%-30s  %5s  %5s  %5s  %6s\n", "Deck", "Due", "New", "Total", "Ease")
	_, _ = fmt.Fprintf(w, "%-30s  %5s  %5s  %5s  %6s\n", "----", "---", "---", "-----", "----")
	for _, d := range stats.Decks {
		_, _ = fmt.Fprintf(w, "%-30s  %5d  %5d  %5d  %6.1f\n", d.Deck, d.DueCards, d.NewCards, d.TotalCards, d.AverageEase)
	}
	_, _ = fmt.Fprintf(w, "%-30s  %5d  %5d  %5d  %6.1f\n",
		"Totals:",
		stats.Aggregate.DueCards,
		stats.Aggregate.NewCards,
		stats.Aggregate.TotalCards,
		stats.Aggregate.AverageEase,
	)

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Forecast")
	_, _ = fmt.Fprintln(w, "========")
	_, _ = fmt.Fprintf(w, "%-10s  %5s  %5s\n", "Day", "Cards", "Notes")
	for day := 0; day <= forecastDays; day++ {
		_, _ = fmt.Fprintf(w, "%-10s  %5d  %5d\n",
			today.AddDate(0, 0, day).Format(time.DateOnly),
			result.CardHistogram.Get(day),
			result.NoteHistogram.Get(day),
		)
	}
	_, _ = fmt.Fprintf(w, "%-10s  %5d  %5d\n",
		"Week:",
		result.CardHistogram.DueWithin(forecastDays),
		result.NoteHistogram.DueWithin(forecastDays),
	)

	if len(stats.Periods) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "Scheduled cards by month")
		_, _ = fmt.Fprintln(w, "========================")
		_, _ = fmt.Fprintf(w, "%-10s  %-20s  %7s\n", "Period", "Cards (Total/Notes)", "Overdue")
		for _, p := range stats.Periods {
			_, _ = fmt.Fprintf(w, "%-10s  %-20s  %7d\n",
				p.Period,
				fmt.Sprintf("%d / %d", p.DueCount, p.DueUnique),
				p.Overdue,
			)
		}
	}

	if len(result.ReviewNotes) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "Notes to review")
		_, _ = fmt.Fprintln(w, "===============")
		for _, n := range result.ReviewNotes {
			due := "new"
			if !n.IsNew() {
				due = n.Schedule.FormatDueDate()
			}
			_, _ = fmt.Fprintf(w, "%-40s  %s\n", n.Path, due)
		}
	}
	return nil
}
