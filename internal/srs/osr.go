package srs

import (
	"math"
	"time"

	"github.com/at-ishikawa/srnotes/internal/histogram"
)

// OSRAlgorithm is the SM-2 variant with link weighted ease for new notes.
type OSRAlgorithm struct {
	settings  Settings
	noteEases *NoteEaseList
	links     LinkGraph
	now       func() time.Time
}

func NewOSRAlgorithm(settings Settings, noteEases *NoteEaseList, links LinkGraph, now func() time.Time) *OSRAlgorithm {
	if now == nil {
		now = time.Now
	}
	return &OSRAlgorithm{
		settings:  settings,
		noteEases: noteEases,
		links:     links,
		now:       now,
	}
}

func (a *OSRAlgorithm) today() time.Time {
	return StartOfDay(a.now())
}

func (a *OSRAlgorithm) NewSchedule(item Item, response Response, hist *histogram.DueDateHistogram) ScheduleInfo {
	var ease int
	if item.Kind == NoteItem {
		ease = a.newNoteEase(item.NotePath)
	} else {
		ease = a.settings.BaseEase
		if noteEase, ok := a.noteEases.Ease(item.NotePath); ok {
			ease = int(math.Round(noteEase))
		}
	}
	return a.schedule(response, InitialInterval, ease, 0, hist)
}

func (a *OSRAlgorithm) newNoteEase(notePath string) int {
	var stat LinkStat
	if a.links != nil {
		stat = CalcLinkStat(a.links.Links(notePath), a.noteEases)
	}

	baseEase := float64(a.settings.BaseEase)
	contribution := a.settings.MaxLinkFactor *
		math.Min(1, math.Log(float64(stat.TotalLinkCount)+0.5)/math.Log(64))
	ease := (1 - contribution) * baseEase
	if stat.TotalLinkCount > 0 && stat.LinkPGTotal > 0 {
		ease += contribution * stat.LinkTotal / stat.LinkPGTotal
	} else {
		ease += contribution * baseEase
	}

	if noteEase, ok := a.noteEases.Ease(notePath); ok {
		ease = (ease + noteEase) / 2
	}
	return int(math.Round(ease))
}

func (a *OSRAlgorithm) UpdatedSchedule(_ Item, prior ScheduleInfo, response Response, hist *histogram.DueDateHistogram) ScheduleInfo {
	today := a.today()
	if hist != nil {
		hist.Decrement(histogram.DaysUntil(today, prior.DueDate))
	}
	delay := today.Sub(StartOfDay(prior.DueDate))
	return a.schedule(response, float64(prior.Interval), prior.Ease, delay, hist)
}

func (a *OSRAlgorithm) schedule(response Response, interval float64, ease int, delay time.Duration, hist *histogram.DueDateHistogram) ScheduleInfo {
	t := Schedule(response, interval, ease, delay, a.settings, hist)
	return ScheduleInfo{
		DueDate:           addDays(a.today(), t.Interval),
		Interval:          t.Interval,
		Ease:              t.Ease,
		DelayBeforeReview: delay,
	}
}

// ResetSchedule moves the item back to the initial interval, replacing its prior slot in
// hist with the new one.
func (a *OSRAlgorithm) ResetSchedule(prior *ScheduleInfo, hist *histogram.DueDateHistogram) ScheduleInfo {
	today := a.today()
	if hist != nil {
		if prior != nil {
			hist.Decrement(histogram.DaysUntil(today, prior.DueDate))
		}
		hist.Increment(int(InitialInterval))
	}
	return ScheduleInfo{
		DueDate:  addDays(today, int(InitialInterval)),
		Interval: int(InitialInterval),
		Ease:     a.settings.BaseEase,
	}
}
