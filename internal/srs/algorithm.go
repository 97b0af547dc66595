package srs

import (
	"time"

	"github.com/at-ishikawa/srnotes/internal/histogram"
)

type ItemKind int

const (
	CardItem ItemKind = iota
	NoteItem
)

// Item identifies what is being scheduled.
type Item struct {
	Kind     ItemKind
	NotePath string
}

// Algorithm computes schedules. The histogram passed in belongs to the caller's sync pass
// and is updated in call order.
type Algorithm interface {
	NewSchedule(item Item, response Response, hist *histogram.DueDateHistogram) ScheduleInfo
	UpdatedSchedule(item Item, prior ScheduleInfo, response Response, hist *histogram.DueDateHistogram) ScheduleInfo
	// ResetSchedule starts an item over. prior is nil for items without a schedule.
	ResetSchedule(prior *ScheduleInfo, hist *histogram.DueDateHistogram) ScheduleInfo
}

func addDays(day time.Time, days int) time.Time {
	return day.AddDate(0, 0, days)
}
