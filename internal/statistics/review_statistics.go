package statistics

import (
	"fmt"
	"sort"
	"time"

	"github.com/at-ishikawa/srnotes/internal/note"
)

// rootDeck names cards of questions without a topic path.
const rootDeck = "(root)"

// PeriodStatistics holds the cards falling due in a month
type PeriodStatistics struct {
	Period    string // "2025-01"
	DueCount  int    // Scheduled cards due in the period
	DueUnique int    // Notes with at least one card due in the period
	Overdue   int    // Cards of the period that are already due today
}

// DeckStatistics holds the card counts of one deck
type DeckStatistics struct {
	Deck        string
	NewCards    int
	DueCards    int
	TotalCards  int
	AverageEase float64 // Average ease of the scheduled cards, 0 without any
}

// AggregateStatistics holds totals across all decks
type AggregateStatistics struct {
	TotalCards   int
	NewCards     int
	DueCards     int
	NotesWithDue int
	AverageEase  float64
}

// StatisticsResult holds per-period, per-deck and aggregate statistics
type StatisticsResult struct {
	Periods   []PeriodStatistics
	Decks     []DeckStatistics
	Aggregate AggregateStatistics
}

type periodData struct {
	dueTotal  int
	dueUnique map[string]struct{}
	overdue   int
}

type deckData struct {
	newCards  int
	dueCards  int
	total     int
	easeTotal int
	scheduled int
}

// CalculateStatistics calculates review statistics from parsed notes.
// It accepts optional year and month filters on due dates (0 means no filter).
// Deck and aggregate counts are never filtered.
func CalculateStatistics(notes []note.Note, today time.Time, year, month int) StatisticsResult {
	periods := make(map[string]*periodData)
	decks := make(map[string]*deckData)
	notesWithDue := make(map[string]struct{})
	var aggregate deckData

	for _, n := range notes {
		for _, q := range n.Questions {
			deck := q.TopicPath.String()
			if deck == "" {
				deck = rootDeck
			}
			if decks[deck] == nil {
				decks[deck] = &deckData{}
			}
			for _, c := range q.Cards {
				processCard(c, n.Path, today, year, month, periods, decks[deck], &aggregate)
				if c.IsDue(today) {
					notesWithDue[n.Path] = struct{}{}
				}
			}
		}
	}

	return buildResult(periods, decks, aggregate, len(notesWithDue))
}

func processCard(
	c note.Card,
	notePath string,
	today time.Time,
	year, month int,
	periods map[string]*periodData,
	deck, aggregate *deckData,
) {
	for _, d := range []*deckData{deck, aggregate} {
		d.total++
		switch {
		case c.IsNew():
			d.newCards++
		case c.IsDue(today):
			d.dueCards++
		}
		if c.Schedule != nil {
			d.easeTotal += c.Schedule.Ease
			d.scheduled++
		}
	}

	if c.Schedule == nil {
		return
	}
	due := c.Schedule.DueDate
	if !matchesFilter(due.Year(), int(due.Month()), year, month) {
		return
	}

	period := fmt.Sprintf("%d-%02d", due.Year(), int(due.Month()))
	if periods[period] == nil {
		periods[period] = &periodData{dueUnique: make(map[string]struct{})}
	}
	periods[period].dueTotal++
	periods[period].dueUnique[notePath] = struct{}{}
	if c.IsDue(today) {
		periods[period].overdue++
	}
}

func matchesFilter(dueYear, dueMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if dueYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return dueMonth == filterMonth
}

func (d deckData) averageEase() float64 {
	if d.scheduled == 0 {
		return 0
	}
	return float64(d.easeTotal) / float64(d.scheduled)
}

func buildResult(periods map[string]*periodData, decks map[string]*deckData, aggregate deckData, notesWithDue int) StatisticsResult {
	result := StatisticsResult{
		Periods: make([]PeriodStatistics, 0, len(periods)),
		Decks:   make([]DeckStatistics, 0, len(decks)),
		Aggregate: AggregateStatistics{
			TotalCards:   aggregate.total,
			NewCards:     aggregate.newCards,
			DueCards:     aggregate.dueCards,
			NotesWithDue: notesWithDue,
			AverageEase:  aggregate.averageEase(),
		},
	}

	for period, data := range periods {
		result.Periods = append(result.Periods, PeriodStatistics{
			Period:    period,
			DueCount:  data.dueTotal,
			DueUnique: len(data.dueUnique),
			Overdue:   data.overdue,
		})
	}
	// Oldest first, like a forecast
	sort.Slice(result.Periods, func(i, j int) bool {
		return result.Periods[i].Period < result.Periods[j].Period
	})

	for name, data := range decks {
		result.Decks = append(result.Decks, DeckStatistics{
			Deck:        name,
			NewCards:    data.newCards,
			DueCards:    data.dueCards,
			TotalCards:  data.total,
			AverageEase: data.averageEase(),
		})
	}
	sort.Slice(result.Decks, func(i, j int) bool {
		return result.Decks[i].Deck < result.Decks[j].Deck
	})

	return result
}
