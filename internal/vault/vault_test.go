package vault

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/srnotes/internal/note"
	"github.com/at-ishikawa/srnotes/internal/parser"
	"github.com/at-ishikawa/srnotes/internal/srs"
	"github.com/at-ishikawa/srnotes/internal/testutil"
)

var now = time.Date(2023, 9, 1, 10, 0, 0, 0, time.UTC)

func testOptions(dir string) Options {
	return Options{
		Dir: dir,
		Note: note.Settings{
			Parser:        parser.DefaultOptions(),
			FlashcardTags: []string{"#flashcards"},
			BaseEase:      250,
			Location:      time.UTC,
		},
		SRS:        srs.DefaultSettings(),
		Algorithm:  AlgorithmOSR,
		ReviewTags: []string{"#review"},
		Now:        func() time.Time { return now },
	}
}

const (
	noteA = "#flashcards\nQ1::A1\n<!--SR:!2023-09-01,3,270-->\n\nQ2::A2\n\nSee [[b|B note]].\n"
	noteB = "---\ntags: [review]\n---\n# B\nSee [[a]].\n"
	noteD = "#flashcards ==x==\n<!--SR:!2023-09-01,1,250!2023-09-02,1,250-->\n"
)

func setupVault(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testutil.CreateNote(t, dir, "a.md", noteA)
	testutil.CreateNote(t, dir, "b.md", noteB)
	testutil.CreateNote(t, dir, "d.md", noteD)
	testutil.CreateNote(t, dir, "c.txt", "Q::A")
	testutil.CreateNote(t, dir, ".hidden/x.md", "#flashcards\nQ::A")
	return dir
}

func TestVault_Sync(t *testing.T) {
	dir := setupVault(t)
	v := New(testOptions(dir))

	got, err := v.Sync(context.Background())
	require.NoError(t, err)
	assert.Same(t, got, v.Result())

	var paths []string
	for _, n := range got.Notes {
		paths = append(paths, n.Path)
	}
	assert.Equal(t, []string{"a.md", "b.md", "d.md"}, paths)

	var due, fresh []string
	for _, item := range got.DueCards {
		due = append(due, item.NotePath+":"+item.Front)
	}
	for _, item := range got.NewCards {
		fresh = append(fresh, item.NotePath+":"+item.Front)
	}
	assert.Equal(t, []string{"a.md:Q1", "d.md:[...]"}, due)
	assert.Equal(t, []string{"a.md:Q2"}, fresh)
	assert.Equal(t, []NoteReview{{Path: "b.md"}}, got.ReviewNotes)

	assert.Equal(t, 2, got.CardHistogram.Get(0))
	assert.Zero(t, got.NoteHistogram.Total())

	ease, ok := got.NoteEases.Ease("a.md")
	require.True(t, ok)
	assert.InDelta(t, 251.95, ease, 0.01)

	assert.Equal(t, []srs.Link{
		{NotePath: "b.md", Count: 1, Rank: 1},
		{NotePath: "b.md", Count: 1, Rank: 1},
	}, got.Links.Links("a.md"))

	assert.Equal(t, "#flashcards ==x==\n<!--SR:!2023-09-01,1,250-->\n", testutil.ReadNote(t, dir, "d.md"))
}

func TestVault_Sync_canceled(t *testing.T) {
	v := New(testOptions(setupVault(t)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := v.Sync(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVault_ReviewCard(t *testing.T) {
	dir := setupVault(t)
	v := New(testOptions(dir))
	ctx := context.Background()

	_, err := v.ReviewCard(ctx, "a.md", 0, 0, srs.Good)
	require.ErrorIs(t, err, ErrNotSynced)

	_, err = v.Sync(ctx)
	require.NoError(t, err)

	got, err := v.ReviewCard(ctx, "a.md", 0, 0, srs.Good)
	require.NoError(t, err)
	assert.Equal(t, srs.ScheduleInfo{DueDate: time.Date(2023, 9, 9, 0, 0, 0, 0, time.UTC), Interval: 8, Ease: 270}, got)
	assert.Equal(t, 1, v.Result().CardHistogram.Get(0))
	assert.Equal(t, 1, v.Result().CardHistogram.Get(8))

	got, err = v.ReviewCard(ctx, "a.md", 1, 0, srs.Easy)
	require.NoError(t, err)
	assert.Equal(t, srs.ScheduleInfo{DueDate: time.Date(2023, 9, 5, 0, 0, 0, 0, time.UTC), Interval: 4, Ease: 272}, got)

	assert.Equal(t,
		"#flashcards\nQ1::A1\n<!--SR:!2023-09-09,8,270-->\n\nQ2::A2\n<!--SR:!2023-09-05,4,272-->\n\nSee [[b|B note]].\n",
		testutil.ReadNote(t, dir, "a.md"),
	)

	got, err = v.ReviewCard(ctx, "a.md", 1, 0, srs.Reset)
	require.NoError(t, err)
	assert.Equal(t, srs.ScheduleInfo{DueDate: time.Date(2023, 9, 2, 0, 0, 0, 0, time.UTC), Interval: 1, Ease: 250}, got)
	assert.False(t, v.Result().CardHistogram.Has(4))
	assert.Equal(t, 1, v.Result().CardHistogram.Get(1))

	_, err = v.ReviewCard(ctx, "a.md", 5, 0, srs.Good)
	assert.ErrorIs(t, err, ErrCardNotFound)

	_, err = v.ReviewCard(ctx, "missing.md", 0, 0, srs.Good)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestVault_ReviewNote(t *testing.T) {
	dir := setupVault(t)
	v := New(testOptions(dir))
	ctx := context.Background()
	_, err := v.Sync(ctx)
	require.NoError(t, err)

	got, err := v.ReviewNote(ctx, "b.md", srs.Good)
	require.NoError(t, err)
	assert.Equal(t, srs.ScheduleInfo{DueDate: time.Date(2023, 9, 4, 0, 0, 0, 0, time.UTC), Interval: 3, Ease: 250}, got)
	assert.Equal(t,
		"---\ntags: [review]\ndue: 1693785600000\ninterval: 3\nease: 250\nreadable: 2023-09-04\n---\n# B\nSee [[a]].\n",
		testutil.ReadNote(t, dir, "b.md"),
	)
	assert.Equal(t, 1, v.Result().NoteHistogram.Get(3))

	got, err = v.ReviewNote(ctx, "b.md", srs.Reset)
	require.NoError(t, err)
	assert.Equal(t, srs.ScheduleInfo{DueDate: time.Date(2023, 9, 2, 0, 0, 0, 0, time.UTC), Interval: 1, Ease: 250}, got)
	assert.False(t, v.Result().NoteHistogram.Has(3))
	assert.Equal(t, 1, v.Result().NoteHistogram.Get(1))

	_, err = v.ReviewNote(ctx, "a.md", srs.Good)
	assert.ErrorIs(t, err, ErrNotReviewable)
}

func TestVault_customIntervals(t *testing.T) {
	dir := setupVault(t)
	options := testOptions(dir)
	options.Algorithm = AlgorithmCustom
	options.CustomIntervals = srs.CustomIntervals{Easy: 7, Good: 3, Hard: 1}
	v := New(options)
	ctx := context.Background()
	_, err := v.Sync(ctx)
	require.NoError(t, err)

	got, err := v.ReviewCard(ctx, "a.md", 0, 0, srs.Easy)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Interval)
	assert.Equal(t, 270, got.Ease)
	assert.Equal(t, 2, v.Result().CardHistogram.Get(0))
}
