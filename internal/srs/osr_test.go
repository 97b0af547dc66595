package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/srnotes/internal/histogram"
	mock_srs "github.com/at-ishikawa/srnotes/internal/mocks/srs"
	"github.com/at-ishikawa/srnotes/internal/srs"
)

var (
	now   = time.Date(2023, 9, 1, 15, 0, 0, 0, time.UTC)
	today = time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)
)

func fixedNow() time.Time {
	return now
}

func TestOSRAlgorithm_NewSchedule(t *testing.T) {
	tests := []struct {
		name      string
		item      srs.Item
		response  srs.Response
		links     []srs.Link
		noteEases map[string]float64
		want      srs.ScheduleInfo
	}{
		{
			name:     "note without links",
			item:     srs.Item{Kind: srs.NoteItem, NotePath: "a.md"},
			response: srs.Good,
			want:     srs.ScheduleInfo{DueDate: today.AddDate(0, 0, 3), Interval: 3, Ease: 250},
		},
		{
			name:     "note linked with an easy note",
			item:     srs.Item{Kind: srs.NoteItem, NotePath: "a.md"},
			response: srs.Good,
			links: []srs.Link{
				{NotePath: "b.md", Count: 2, Rank: 1},
				{NotePath: "new.md", Count: 4, Rank: 1},
			},
			noteEases: map[string]float64{"b.md": 300},
			want:      srs.ScheduleInfo{DueDate: today.AddDate(0, 0, 3), Interval: 3, Ease: 261},
		},
		{
			name:     "note ease is blended with its own cards",
			item:     srs.Item{Kind: srs.NoteItem, NotePath: "a.md"},
			response: srs.Good,
			links: []srs.Link{
				{NotePath: "b.md", Count: 2, Rank: 1},
			},
			noteEases: map[string]float64{"b.md": 300, "a.md": 281},
			want:      srs.ScheduleInfo{DueDate: today.AddDate(0, 0, 3), Interval: 3, Ease: 271},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			linkGraph := mock_srs.NewMockLinkGraph(ctrl)
			linkGraph.EXPECT().Links(tt.item.NotePath).Return(tt.links)

			eases := srs.NewNoteEaseList(250)
			for path, ease := range tt.noteEases {
				eases.SetEase(path, ease)
			}
			algorithm := srs.NewOSRAlgorithm(srs.DefaultSettings(), eases, linkGraph, fixedNow)

			hist := histogram.New()
			got := algorithm.NewSchedule(tt.item, tt.response, hist)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, hist.Get(got.Interval))
		})
	}
}

func TestOSRAlgorithm_NewSchedule_card(t *testing.T) {
	ctrl := gomock.NewController(t)
	linkGraph := mock_srs.NewMockLinkGraph(ctrl)

	eases := srs.NewNoteEaseList(250)
	eases.SetEase("a.md", 283.4)
	algorithm := srs.NewOSRAlgorithm(srs.DefaultSettings(), eases, linkGraph, fixedNow)

	got := algorithm.NewSchedule(srs.Item{Kind: srs.CardItem, NotePath: "a.md"}, srs.Easy, histogram.New())
	assert.Equal(t, srs.ScheduleInfo{DueDate: today.AddDate(0, 0, 4), Interval: 4, Ease: 303}, got)

	got = algorithm.NewSchedule(srs.Item{Kind: srs.CardItem, NotePath: "other.md"}, srs.Hard, histogram.New())
	assert.Equal(t, srs.ScheduleInfo{DueDate: today.AddDate(0, 0, 1), Interval: 1, Ease: 230}, got)
}

func TestOSRAlgorithm_UpdatedSchedule(t *testing.T) {
	algorithm := srs.NewOSRAlgorithm(srs.DefaultSettings(), srs.NewNoteEaseList(250), nil, fixedNow)
	prior := srs.ScheduleInfo{DueDate: today.AddDate(0, 0, -2), Interval: 10, Ease: 250}

	hist := histogram.FromDueDates(now, []time.Time{prior.DueDate})
	assert.Equal(t, 1, hist.Get(0))

	got := algorithm.UpdatedSchedule(srs.Item{Kind: srs.CardItem, NotePath: "a.md"}, prior, srs.Good, hist)
	assert.Equal(t, srs.ScheduleInfo{
		DueDate:           today.AddDate(0, 0, 26),
		Interval:          26,
		Ease:              250,
		DelayBeforeReview: 2 * srs.DayLength,
	}, got)
	assert.Equal(t, 0, hist.Get(0))
	assert.Equal(t, 1, hist.Get(26))
}

func TestOSRAlgorithm_batchOrder(t *testing.T) {
	algorithm := srs.NewOSRAlgorithm(srs.DefaultSettings(), srs.NewNoteEaseList(250), nil, fixedNow)
	prior := srs.ScheduleInfo{DueDate: today, Interval: 10, Ease: 250}
	hist := histogram.New()

	var intervals []int
	for range 4 {
		got := algorithm.UpdatedSchedule(srs.Item{Kind: srs.CardItem}, prior, srs.Good, hist)
		intervals = append(intervals, got.Interval)
	}
	// 10 * 2.5 = 25 with a radius of 1, so the second and third items take the free
	// neighbours before the least used slot is shared.
	assert.Equal(t, []int{25, 24, 26, 25}, intervals)
}

func TestOSRAlgorithm_ResetSchedule(t *testing.T) {
	algorithm := srs.NewOSRAlgorithm(srs.DefaultSettings(), srs.NewNoteEaseList(250), nil, fixedNow)
	want := srs.ScheduleInfo{DueDate: today.AddDate(0, 0, 1), Interval: 1, Ease: 250}

	t.Run("new item", func(t *testing.T) {
		hist := histogram.New()
		assert.Equal(t, want, algorithm.ResetSchedule(nil, hist))
		assert.Equal(t, 1, hist.Get(1))
		assert.Equal(t, 1, hist.Total())
	})

	t.Run("scheduled item moves to the first day", func(t *testing.T) {
		hist := histogram.New()
		hist.Increment(5)
		prior := &srs.ScheduleInfo{DueDate: today.AddDate(0, 0, 5), Interval: 5, Ease: 270}
		assert.Equal(t, want, algorithm.ResetSchedule(prior, hist))
		assert.False(t, hist.Has(5))
		assert.Equal(t, 1, hist.Get(1))
	})

	t.Run("without a histogram", func(t *testing.T) {
		assert.Equal(t, want, algorithm.ResetSchedule(nil, nil))
	})
}

func TestCustomIntervalsAlgorithm(t *testing.T) {
	algorithm := srs.NewCustomIntervalsAlgorithm(srs.CustomIntervals{Easy: 7, Good: 3, Hard: 1}, 250, fixedNow)
	hist := histogram.New()

	tests := []struct {
		response srs.Response
		want     srs.ScheduleInfo
	}{
		{response: srs.Easy, want: srs.ScheduleInfo{DueDate: today.AddDate(0, 0, 7), Interval: 7, Ease: 250}},
		{response: srs.Good, want: srs.ScheduleInfo{DueDate: today.AddDate(0, 0, 3), Interval: 3, Ease: 250}},
		{response: srs.Hard, want: srs.ScheduleInfo{DueDate: today.AddDate(0, 0, 1), Interval: 1, Ease: 250}},
		{response: srs.Reset, want: srs.ScheduleInfo{DueDate: today, Interval: 0, Ease: 250}},
	}
	for _, tt := range tests {
		t.Run(tt.response.String(), func(t *testing.T) {
			got := algorithm.NewSchedule(srs.Item{Kind: srs.CardItem}, tt.response, hist)
			assert.Equal(t, tt.want, got)
		})
	}

	prior := srs.ScheduleInfo{DueDate: today.AddDate(0, 0, -1), Interval: 3, Ease: 290}
	got := algorithm.UpdatedSchedule(srs.Item{Kind: srs.CardItem}, prior, srs.Good, hist)
	assert.Equal(t, srs.ScheduleInfo{DueDate: today.AddDate(0, 0, 3), Interval: 3, Ease: 290, DelayBeforeReview: srs.DayLength}, got)

	assert.Equal(t, srs.ScheduleInfo{DueDate: today, Interval: 0, Ease: 250}, algorithm.ResetSchedule(&prior, hist))
	assert.Zero(t, hist.Total())
}
