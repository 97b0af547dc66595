// Package datastore reads and writes scheduling data stored inside note text: HTML
// comments after each card and front-matter keys for whole notes.
package datastore

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/at-ishikawa/srnotes/internal/srs"
	"github.com/at-ishikawa/srnotes/internal/textutil"
)

var ErrTextNotFound = errors.New("card text not found in note")

// DummyDueDate marks a card without a schedule among scheduled siblings.
const DummyDueDate = "2000-01-01"

var (
	scheduleCommentPattern = regexp.MustCompile(`(?s)<!--SR:(.*?)-->`)
	multiSchedulePattern   = regexp.MustCompile(`!([\d-]+),(\d+),(\d+)`)
	legacySchedulePattern  = regexp.MustCompile(`<!--SR:!?([\d-]+),(\d+),(\d+)-->`)
)

// ExtractSchedules returns one entry per schedule stored in the card's comment. Entries
// are nil for cards that are not scheduled yet. Dates are read as midnight in loc.
func ExtractSchedules(cardText string, loc *time.Location) []*srs.ScheduleInfo {
	comment := scheduleCommentPattern.FindString(cardText)
	if comment == "" {
		return nil
	}

	matches := multiSchedulePattern.FindAllStringSubmatch(comment, -1)
	if len(matches) == 0 {
		matches = legacySchedulePattern.FindAllStringSubmatch(comment, -1)
	}

	schedules := make([]*srs.ScheduleInfo, 0, len(matches))
	for _, m := range matches {
		schedules = append(schedules, parseSchedule(m[1], m[2], m[3], loc))
	}
	return schedules
}

func parseSchedule(date, interval, ease string, loc *time.Location) *srs.ScheduleInfo {
	if date == DummyDueDate {
		return nil
	}
	due, err := time.ParseInLocation(time.DateOnly, date, loc)
	if err != nil {
		return nil
	}
	i, err := strconv.Atoi(interval)
	if err != nil {
		return nil
	}
	e, err := strconv.Atoi(ease)
	if err != nil {
		return nil
	}
	return &srs.ScheduleInfo{DueDate: due, Interval: i, Ease: e}
}

// FormatScheduleComment serialises schedules into one comment. Unscheduled entries are
// written with the dummy date so that later entries keep their position.
func FormatScheduleComment(schedules []*srs.ScheduleInfo, baseEase int) string {
	var sb strings.Builder
	sb.WriteString("<!--SR:")
	for _, s := range schedules {
		if s == nil {
			fmt.Fprintf(&sb, "!%s,%d,%d", DummyDueDate, int(srs.InitialInterval), baseEase)
			continue
		}
		fmt.Fprintf(&sb, "!%s,%d,%d", s.FormatDueDate(), s.Interval, s.Ease)
	}
	sb.WriteString("-->")
	return sb.String()
}

// StripSchedule returns the card text without its schedule comment.
func StripSchedule(cardText string) string {
	return strings.TrimRight(scheduleCommentPattern.ReplaceAllString(cardText, ""), " \t\n")
}

// ReconcileSchedules fits existing schedules to the number of cards the text now
// produces. Surplus entries are dropped, which changes the stored text.
func ReconcileSchedules(existing []*srs.ScheduleInfo, cardCount int) (schedules []*srs.ScheduleInfo, changed bool) {
	schedules = make([]*srs.ScheduleInfo, cardCount)
	copy(schedules, existing)
	return schedules, len(existing) > cardCount
}

type WriteOptions struct {
	BaseEase int
	// CommentOnSameLine puts the comment after the card instead of on the next line.
	CommentOnSameLine bool
}

// FormatCardText returns questionText followed by the comment for schedules. No comment
// is written when none of the cards is scheduled.
func FormatCardText(questionText string, schedules []*srs.ScheduleInfo, opts WriteOptions) string {
	scheduled := false
	for _, s := range schedules {
		if s != nil {
			scheduled = true
			break
		}
	}
	if !scheduled {
		return questionText
	}

	separator := "\n"
	if opts.CommentOnSameLine && !strings.HasSuffix(questionText, "```") {
		separator = " "
	}
	return questionText + separator + FormatScheduleComment(schedules, opts.BaseEase)
}

// WriteSchedule replaces originalCardText in noteText with the card's question text and
// its new schedules. The original text is returned with ErrTextNotFound when the card
// can no longer be found.
func WriteSchedule(noteText, originalCardText string, schedules []*srs.ScheduleInfo, opts WriteOptions) (string, error) {
	replacement := FormatCardText(StripSchedule(originalCardText), schedules, opts)
	updated, ok := textutil.FindAndReplace(noteText, originalCardText, replacement)
	if !ok {
		return noteText, fmt.Errorf("textutil.FindAndReplace() > %w", ErrTextNotFound)
	}
	return updated, nil
}
