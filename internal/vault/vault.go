// Package vault runs sync passes over a directory of markdown notes and applies reviews
// to the note files.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/at-ishikawa/srnotes/internal/datastore"
	"github.com/at-ishikawa/srnotes/internal/histogram"
	"github.com/at-ishikawa/srnotes/internal/markdown"
	"github.com/at-ishikawa/srnotes/internal/note"
	"github.com/at-ishikawa/srnotes/internal/queue"
	"github.com/at-ishikawa/srnotes/internal/srs"
	"github.com/at-ishikawa/srnotes/internal/topicpath"
)

var (
	ErrNotSynced     = errors.New("vault has not been synced")
	ErrCardNotFound  = errors.New("card not found")
	ErrNoteNotFound  = errors.New("note not found")
	ErrNotReviewable = errors.New("note is not tagged for review")
)

const (
	AlgorithmOSR    = "osr"
	AlgorithmCustom = "custom"
)

type Options struct {
	Dir             string
	Note            note.Settings
	SRS             srs.Settings
	Algorithm       string
	CustomIntervals srs.CustomIntervals
	// ReviewTags mark notes that are reviewed as a whole.
	ReviewTags []string
	Now        func() time.Time
}

// NoteReview is a note due for review as a whole.
type NoteReview struct {
	Path     string
	Schedule *srs.ScheduleInfo
}

func (r NoteReview) IsNew() bool {
	return r.Schedule == nil
}

// SyncResult is the state of the vault after a sync pass.
type SyncResult struct {
	Notes         []note.Note
	CardHistogram *histogram.DueDateHistogram
	NoteHistogram *histogram.DueDateHistogram
	NoteEases     *srs.NoteEaseList
	Links         *LinkGraph
	DueCards      []queue.Item
	NewCards      []queue.Item
	ReviewNotes   []NoteReview
	// Reviewable holds the paths of notes tagged for review.
	Reviewable map[string]bool
}

type Vault struct {
	options   Options
	result    *SyncResult
	algorithm srs.Algorithm
}

func New(options Options) *Vault {
	if options.Now == nil {
		options.Now = time.Now
	}
	return &Vault{options: options}
}

func (v *Vault) Result() *SyncResult {
	return v.result
}

// Sync reads every note in sorted path order and rebuilds the histograms, note eases and
// review lists from scratch. Notes that cannot be read are logged and skipped. Notes
// with stale schedules are rewritten.
func (v *Vault) Sync(ctx context.Context) (*SyncResult, error) {
	paths, err := v.notePaths()
	if err != nil {
		return nil, fmt.Errorf("notePaths() > %w", err)
	}

	now := v.options.Now()
	result := &SyncResult{
		NoteEases:  srs.NewNoteEaseList(v.options.SRS.BaseEase),
		Reviewable: make(map[string]bool),
	}
	texts := make(map[string]string, len(paths))
	var cardDueDates, noteDueDates []time.Time

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := v.read(path)
		if err != nil {
			slog.Default().Warn("skip a note that cannot be read",
				slog.String("path", path),
				slog.Any("error", err),
			)
			continue
		}
		texts[path] = text

		meta := markdown.Extract(text)
		n := note.Parse(path, text, meta, v.options.Note)
		if n.HasChanges() {
			n, err = v.rewrite(path, text, n)
			if err != nil {
				slog.Default().Warn("failed to rewrite stale schedules",
					slog.String("path", path),
					slog.Any("error", err),
				)
			}
		}
		result.Notes = append(result.Notes, n)

		for qi, q := range n.Questions {
			for ci, c := range q.Cards {
				item := queue.Item{
					NotePath:      path,
					QuestionIndex: qi,
					CardIndex:     ci,
					TopicPath:     q.TopicPath,
					Front:         c.Front,
					Back:          c.Back,
					IsNew:         c.IsNew(),
				}
				switch {
				case c.IsNew():
					result.NewCards = append(result.NewCards, item)
				case c.IsDue(now):
					cardDueDates = append(cardDueDates, c.Schedule.DueDate)
					result.DueCards = append(result.DueCards, item)
				default:
					cardDueDates = append(cardDueDates, c.Schedule.DueDate)
				}
			}
		}
		if ease, ok := n.AverageEase(v.options.SRS.BaseEase); ok {
			result.NoteEases.SetEase(path, ease)
		}

		if v.isReviewable(meta) {
			result.Reviewable[path] = true
			if n.Schedule != nil {
				noteDueDates = append(noteDueDates, n.Schedule.DueDate)
			}
			if n.Schedule == nil || n.Schedule.IsDue(now) {
				result.ReviewNotes = append(result.ReviewNotes, NoteReview{Path: path, Schedule: n.Schedule})
			}
		}
	}

	result.CardHistogram = histogram.FromDueDates(now, cardDueDates)
	result.NoteHistogram = histogram.FromDueDates(now, noteDueDates)
	result.Links = buildLinkGraph(texts)

	v.result = result
	v.algorithm = v.newAlgorithm(result)
	slog.Default().Info("synced vault",
		slog.String("dir", v.options.Dir),
		slog.Int("notes", len(result.Notes)),
		slog.Int("dueCards", len(result.DueCards)),
		slog.Int("newCards", len(result.NewCards)),
		slog.Int("reviewNotes", len(result.ReviewNotes)),
	)
	return result, nil
}

func (v *Vault) newAlgorithm(result *SyncResult) srs.Algorithm {
	if v.options.Algorithm == AlgorithmCustom {
		return srs.NewCustomIntervalsAlgorithm(v.options.CustomIntervals, v.options.SRS.BaseEase, v.options.Now)
	}
	return srs.NewOSRAlgorithm(v.options.SRS, result.NoteEases, result.Links, v.options.Now)
}

func (v *Vault) isReviewable(meta markdown.Metadata) bool {
	for _, tag := range meta.AllTags() {
		p, err := topicpath.FromTag(tag)
		if err != nil {
			continue
		}
		if topicpath.IsUnderAny(p, v.options.ReviewTags) {
			return true
		}
	}
	return false
}

func (v *Vault) notePaths() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(v.options.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != v.options.Dir && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".md" {
			return nil
		}
		rel, err := filepath.Rel(v.options.Dir, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func (v *Vault) read(path string) (string, error) {
	data, err := os.ReadFile(filepath.Join(v.options.Dir, filepath.FromSlash(path)))
	if err != nil {
		return "", fmt.Errorf("os.ReadFile() > %w", err)
	}
	return string(data), nil
}

func (v *Vault) write(path, text string) error {
	fullPath := filepath.Join(v.options.Dir, filepath.FromSlash(path))
	info, err := os.Stat(fullPath)
	if err != nil {
		return fmt.Errorf("os.Stat() > %w", err)
	}
	if err := os.WriteFile(fullPath, []byte(text), info.Mode().Perm()); err != nil {
		return fmt.Errorf("os.WriteFile() > %w", err)
	}
	return nil
}

func (v *Vault) rewrite(path, text string, n note.Note) (note.Note, error) {
	opts := v.options.Note.WriteOptions()
	for i := range n.Questions {
		q := &n.Questions[i]
		if !q.Changed {
			continue
		}
		updated, err := q.Write(text, opts)
		if err != nil {
			return n, fmt.Errorf("question.Write() > %w", err)
		}
		text = updated
	}
	if err := v.write(path, text); err != nil {
		return n, err
	}
	return n, nil
}

// load re-reads a note so that a review applies to the current file content.
func (v *Vault) load(path string) (string, note.Note, error) {
	text, err := v.read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", note.Note{}, fmt.Errorf("%s: %w", path, ErrNoteNotFound)
		}
		return "", note.Note{}, err
	}
	return text, note.Parse(path, text, markdown.Extract(text), v.options.Note), nil
}

// ReviewCard schedules one card of a note and stores the schedule in the note.
func (v *Vault) ReviewCard(ctx context.Context, path string, questionIndex, cardIndex int, response srs.Response) (srs.ScheduleInfo, error) {
	if v.result == nil {
		return srs.ScheduleInfo{}, ErrNotSynced
	}
	if err := ctx.Err(); err != nil {
		return srs.ScheduleInfo{}, err
	}

	text, n, err := v.load(path)
	if err != nil {
		return srs.ScheduleInfo{}, fmt.Errorf("load() > %w", err)
	}
	if questionIndex < 0 || questionIndex >= len(n.Questions) ||
		cardIndex < 0 || cardIndex >= len(n.Questions[questionIndex].Cards) {
		return srs.ScheduleInfo{}, fmt.Errorf("%s question %d card %d: %w", path, questionIndex, cardIndex, ErrCardNotFound)
	}
	q := &n.Questions[questionIndex]
	card := &q.Cards[cardIndex]

	item := srs.Item{Kind: srs.CardItem, NotePath: path}
	hist := v.result.CardHistogram
	var schedule srs.ScheduleInfo
	switch {
	case response == srs.Reset:
		schedule = v.algorithm.ResetSchedule(card.Schedule, hist)
	case card.Schedule == nil:
		schedule = v.algorithm.NewSchedule(item, response, hist)
	default:
		schedule = v.algorithm.UpdatedSchedule(item, *card.Schedule, response, hist)
	}
	card.Schedule = &schedule

	updated, err := q.Write(text, v.options.Note.WriteOptions())
	if err != nil {
		return srs.ScheduleInfo{}, fmt.Errorf("question.Write() > %w", err)
	}
	if err := v.write(path, updated); err != nil {
		return srs.ScheduleInfo{}, err
	}

	slog.Default().Debug("reviewed a card",
		slog.String("path", path),
		slog.Int("question", questionIndex),
		slog.Int("card", cardIndex),
		slog.String("response", response.String()),
		slog.Int("interval", schedule.Interval),
		slog.Int("ease", schedule.Ease),
	)
	return schedule, nil
}

// ReviewNote schedules a whole note and stores the schedule in its front matter.
func (v *Vault) ReviewNote(ctx context.Context, path string, response srs.Response) (srs.ScheduleInfo, error) {
	if v.result == nil {
		return srs.ScheduleInfo{}, ErrNotSynced
	}
	if err := ctx.Err(); err != nil {
		return srs.ScheduleInfo{}, err
	}
	if !v.result.Reviewable[path] {
		return srs.ScheduleInfo{}, fmt.Errorf("%s: %w", path, ErrNotReviewable)
	}

	text, n, err := v.load(path)
	if err != nil {
		return srs.ScheduleInfo{}, fmt.Errorf("load() > %w", err)
	}

	item := srs.Item{Kind: srs.NoteItem, NotePath: path}
	hist := v.result.NoteHistogram
	var schedule srs.ScheduleInfo
	switch {
	case response == srs.Reset:
		schedule = v.algorithm.ResetSchedule(n.Schedule, hist)
	case n.Schedule == nil:
		schedule = v.algorithm.NewSchedule(item, response, hist)
	default:
		schedule = v.algorithm.UpdatedSchedule(item, *n.Schedule, response, hist)
	}

	if err := v.write(path, datastore.WriteNoteSchedule(text, schedule)); err != nil {
		return srs.ScheduleInfo{}, err
	}
	slog.Default().Debug("reviewed a note",
		slog.String("path", path),
		slog.String("response", response.String()),
		slog.Int("interval", schedule.Interval),
		slog.Int("ease", schedule.Ease),
	)
	return schedule, nil
}
