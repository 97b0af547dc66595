package srs

import (
	"time"

	"github.com/at-ishikawa/srnotes/internal/histogram"
)

// CustomIntervals are fixed day counts per response.
type CustomIntervals struct {
	Easy int
	Good int
	Hard int
}

// CustomIntervalsAlgorithm ignores history and ease. It never touches the histogram.
type CustomIntervalsAlgorithm struct {
	intervals CustomIntervals
	baseEase  int
	now       func() time.Time
}

func NewCustomIntervalsAlgorithm(intervals CustomIntervals, baseEase int, now func() time.Time) *CustomIntervalsAlgorithm {
	if now == nil {
		now = time.Now
	}
	return &CustomIntervalsAlgorithm{intervals: intervals, baseEase: baseEase, now: now}
}

func (a *CustomIntervalsAlgorithm) interval(response Response) int {
	switch response {
	case Easy:
		return a.intervals.Easy
	case Good:
		return a.intervals.Good
	case Hard:
		return a.intervals.Hard
	default:
		return 0
	}
}

func (a *CustomIntervalsAlgorithm) schedule(response Response, ease int, delay time.Duration) ScheduleInfo {
	interval := a.interval(response)
	if response == Reset {
		ease = a.baseEase
	}
	return ScheduleInfo{
		DueDate:           addDays(StartOfDay(a.now()), interval),
		Interval:          interval,
		Ease:              ease,
		DelayBeforeReview: delay,
	}
}

func (a *CustomIntervalsAlgorithm) NewSchedule(_ Item, response Response, _ *histogram.DueDateHistogram) ScheduleInfo {
	return a.schedule(response, a.baseEase, 0)
}

func (a *CustomIntervalsAlgorithm) UpdatedSchedule(_ Item, prior ScheduleInfo, response Response, _ *histogram.DueDateHistogram) ScheduleInfo {
	delay := StartOfDay(a.now()).Sub(StartOfDay(prior.DueDate))
	return a.schedule(response, prior.Ease, delay)
}

func (a *CustomIntervalsAlgorithm) ResetSchedule(_ *ScheduleInfo, _ *histogram.DueDateHistogram) ScheduleInfo {
	return a.schedule(Reset, a.baseEase, 0)
}
