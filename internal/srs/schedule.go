// Package srs computes review schedules with an SM-2 variant that weights the initial
// ease of notes by their links and spreads due dates with a histogram.
package srs

import (
	"math"
	"time"

	"github.com/at-ishikawa/srnotes/internal/histogram"
)

const (
	DayLength = 24 * time.Hour
	// MinimumEase is the floor for ease after Hard responses.
	MinimumEase = 130
	// InitialInterval is the prior interval assumed for items without a schedule.
	InitialInterval = 1.0
)

// ScheduleInfo is the review state of one item. Each review produces a new value.
type ScheduleInfo struct {
	DueDate           time.Time
	Interval          int
	Ease              int
	DelayBeforeReview time.Duration
}

func (s ScheduleInfo) IsDue(today time.Time) bool {
	return !s.DueDate.After(StartOfDay(today))
}

// FormatDueDate formats the due date the way it is persisted in notes.
func (s ScheduleInfo) FormatDueDate() string {
	return s.DueDate.Format(time.DateOnly)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FuzzBand gives the load balancing radius for intervals up to UpTo days:
// min(Max, floor(Fraction*interval)), or Max when Fraction is zero.
type FuzzBand struct {
	UpTo     int
	Fraction float64
	Max      int
}

var DefaultFuzzBands = []FuzzBand{
	{UpTo: 7, Max: 0},
	{UpTo: 21, Max: 1},
	{UpTo: 180, Fraction: 0.05, Max: 3},
	{UpTo: math.MaxInt, Fraction: 0.025, Max: 7},
}

type Settings struct {
	BaseEase             int
	LapsesIntervalChange float64
	EasyBonus            float64
	MaximumInterval      int
	MaxLinkFactor        float64
	LoadBalance          bool
	FuzzBands            []FuzzBand
}

func DefaultSettings() Settings {
	return Settings{
		BaseEase:             250,
		LapsesIntervalChange: 0.5,
		EasyBonus:            1.3,
		MaximumInterval:      36525,
		MaxLinkFactor:        1.0,
		LoadBalance:          true,
		FuzzBands:            DefaultFuzzBands,
	}
}

func (s Settings) fuzzRadius(interval int) int {
	bands := s.FuzzBands
	if bands == nil {
		bands = DefaultFuzzBands
	}
	for _, band := range bands {
		if interval > band.UpTo {
			continue
		}
		if band.Fraction == 0 {
			return band.Max
		}
		return min(band.Max, int(math.Floor(band.Fraction*float64(interval))))
	}
	return 0
}

// Transition is the outcome of one scheduling step.
type Transition struct {
	Interval int
	Ease     int
}

// Schedule applies response to an item reviewed delay after it became due.
//
// When hist is not nil, the new interval is load balanced against it (if enabled) and
// then recorded in it. Callers rescheduling an existing item remove its old slot first.
func Schedule(response Response, interval float64, ease int, delay time.Duration, settings Settings, hist *histogram.DueDateHistogram) Transition {
	delayDays := float64(delay) / float64(DayLength)
	maxInterval := float64(settings.MaximumInterval)

	switch response {
	case Easy:
		ease += 20
		interval = clampGrowth((interval+delayDays/2)*float64(ease)/100*settings.EasyBonus, interval, maxInterval)
	case Good:
		interval = clampGrowth((interval+delayDays/4)*float64(ease)/100, interval, maxInterval)
	case Hard:
		ease = max(MinimumEase, ease-20)
		interval = math.Max(1, math.Round(interval*settings.LapsesIntervalChange))
	case Reset:
		ease = settings.BaseEase
		interval = InitialInterval
	}

	days := int(math.Round(interval))
	if settings.LoadBalance && hist != nil {
		if radius := settings.fuzzRadius(days); radius > 0 {
			days = hist.FindLeastUsedIntervalOverRange(days, radius)
		}
	}
	days = max(1, min(days, settings.MaximumInterval))

	if hist != nil {
		hist.Increment(days)
	}
	return Transition{Interval: days, Ease: ease}
}

// clampGrowth keeps successful reviews growing by at least a day and below the maximum.
func clampGrowth(interval, prior, maxInterval float64) float64 {
	return math.Min(math.Max(interval, prior+1), maxInterval)
}
