// Package histogram counts scheduled reviews per day offset so that new intervals can be
// spread over the least busy days.
package histogram

import (
	"math"
	"sort"
	"time"
)

// dayLength is the length of one scheduling day.
const dayLength = 24 * time.Hour

// DueDateHistogram maps a day offset from today (0 = due today) to the number of items
// due on that day. A missing key means no item is due on that day.
//
// A histogram is owned by a single sync pass and is not safe for concurrent use.
type DueDateHistogram struct {
	counts map[int]int
}

func New() *DueDateHistogram {
	return &DueDateHistogram{
		counts: make(map[int]int),
	}
}

// FromDueDates builds a histogram from scratch. Items that are already overdue are
// counted on day 0.
func FromDueDates(today time.Time, dueDates []time.Time) *DueDateHistogram {
	h := New()
	for _, due := range dueDates {
		h.Increment(DaysUntil(today, due))
	}
	return h
}

// DaysUntil returns the number of whole days, rounded up, from today until due.
// Past dates return 0.
func DaysUntil(today, due time.Time) int {
	days := int(math.Ceil(float64(due.Sub(today)) / float64(dayLength)))
	if days < 0 {
		return 0
	}
	return days
}

func (h *DueDateHistogram) Increment(day int) {
	h.counts[day]++
}

// Decrement lowers the count for day. It never goes below zero.
func (h *DueDateHistogram) Decrement(day int) {
	count, ok := h.counts[day]
	if !ok {
		return
	}
	if count <= 1 {
		delete(h.counts, day)
		return
	}
	h.counts[day] = count - 1
}

func (h *DueDateHistogram) Get(day int) int {
	return h.counts[day]
}

// Has reports whether at least one item is due on day.
func (h *DueDateHistogram) Has(day int) bool {
	return h.counts[day] > 0
}

// Days returns the day offsets with at least one item, in ascending order.
func (h *DueDateHistogram) Days() []int {
	days := make([]int, 0, len(h.counts))
	for day := range h.counts {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// Total returns the number of items counted in the histogram.
func (h *DueDateHistogram) Total() int {
	total := 0
	for _, count := range h.counts {
		total += count
	}
	return total
}

// DueWithin returns how many items are due on day 0 through maxDays inclusive.
func (h *DueDateHistogram) DueWithin(maxDays int) int {
	total := 0
	for day, count := range h.counts {
		if day <= maxDays {
			total += count
		}
	}
	return total
}

// FindLeastUsedIntervalOverRange returns the interval within fuzzRadius days of
// originalInterval that has the fewest items due.
//
// originalInterval is returned as is when nothing is due on it. Otherwise candidates are
// visited outward, originalInterval-i before originalInterval+i for i = 1..fuzzRadius.
// The first empty day wins. When every day is used, the first candidate with the lowest
// count wins. Candidates below one day are never returned.
func (h *DueDateHistogram) FindLeastUsedIntervalOverRange(originalInterval, fuzzRadius int) int {
	if !h.Has(originalInterval) {
		return originalInterval
	}

	interval := originalInterval
	for i := 1; i <= fuzzRadius; i++ {
		for _, candidate := range [2]int{originalInterval - i, originalInterval + i} {
			if candidate < 1 {
				continue
			}
			if !h.Has(candidate) {
				return candidate
			}
			if h.Get(candidate) < h.Get(interval) {
				interval = candidate
			}
		}
	}
	return interval
}
