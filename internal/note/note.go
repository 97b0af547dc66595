// Package note builds the questions and cards of a note from its text.
package note

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/at-ishikawa/srnotes/internal/cloze"
	"github.com/at-ishikawa/srnotes/internal/datastore"
	"github.com/at-ishikawa/srnotes/internal/markdown"
	"github.com/at-ishikawa/srnotes/internal/parser"
	"github.com/at-ishikawa/srnotes/internal/srs"
	"github.com/at-ishikawa/srnotes/internal/textutil"
	"github.com/at-ishikawa/srnotes/internal/topicpath"
)

// Settings configures how notes are turned into cards.
type Settings struct {
	Parser                parser.Options
	FlashcardTags         []string
	ConvertFoldersToDecks bool
	BaseEase              int
	CommentOnSameLine     bool
	// Location is used to read the dates stored in notes. It defaults to time.Local.
	Location *time.Location
}

func (s Settings) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

func (s Settings) WriteOptions() datastore.WriteOptions {
	return datastore.WriteOptions{
		BaseEase:          s.BaseEase,
		CommentOnSameLine: s.CommentOnSameLine,
	}
}

// Card is one reviewable side of a question.
type Card struct {
	Front    string
	Back     string
	Schedule *srs.ScheduleInfo
}

func (c Card) IsNew() bool {
	return c.Schedule == nil
}

func (c Card) IsDue(today time.Time) bool {
	return c.Schedule != nil && c.Schedule.IsDue(today)
}

// Question is one card region of a note and the cards generated from it.
type Question struct {
	Info parser.ParsedCardInfo
	// Text is the card text without its schedule comment.
	Text           string
	TopicPath      topicpath.TopicPath
	HeadingContext []string
	BlockID        string
	Cards          []Card
	// Changed is set when the stored schedules no longer match the cards.
	Changed bool
}

func (q *Question) Schedules() []*srs.ScheduleInfo {
	schedules := make([]*srs.ScheduleInfo, len(q.Cards))
	for i, c := range q.Cards {
		schedules[i] = c.Schedule
	}
	return schedules
}

// Write stores the schedules of q's cards in noteText and returns the new text.
func (q *Question) Write(noteText string, opts datastore.WriteOptions) (string, error) {
	schedules := q.Schedules()
	updated, err := datastore.WriteSchedule(noteText, q.Info.Text, schedules, opts)
	if err != nil {
		return noteText, fmt.Errorf("datastore.WriteSchedule() > %w", err)
	}
	q.Info.Text = datastore.FormatCardText(q.Text, schedules, opts)
	q.Changed = false
	return updated, nil
}

type Note struct {
	Path      string
	TopicPath topicpath.TopicPath
	Questions []Question
	// Schedule is the schedule of the whole note, if it is reviewed as a note.
	Schedule *srs.ScheduleInfo
}

var blockIDPattern = regexp.MustCompile(`\s\^([A-Za-z0-9-]+)\s*$`)

// Parse builds a note from its text and metadata. Questions without a topic path are
// dropped unless folders are decks.
func Parse(path, noteText string, meta markdown.Metadata, settings Settings) Note {
	n := Note{
		Path:      path,
		TopicPath: topicpath.OfNote(meta.AllTags(), path, topicpath.NoteOptions{
			ConvertFoldersToDecks: settings.ConvertFoldersToDecks,
			FlashcardTags:         settings.FlashcardTags,
		}),
		Schedule: datastore.ReadNoteSchedule(noteText, settings.location()),
	}

	_, content := textutil.SplitFrontmatter(noteText)
	for _, info := range parser.Parse(content, settings.Parser) {
		q := newQuestion(info, settings)
		q.TopicPath = n.questionTopicPath(q, meta, settings)
		if q.TopicPath.IsEmpty() && !settings.ConvertFoldersToDecks {
			continue
		}
		q.HeadingContext = headingContext(meta.Headings, info.FirstLineNumber)
		n.Questions = append(n.Questions, q)
	}
	return n
}

func newQuestion(info parser.ParsedCardInfo, settings Settings) Question {
	q := Question{
		Info: info,
		Text: datastore.StripSchedule(info.Text),
	}
	if m := blockIDPattern.FindStringSubmatch(q.Text); m != nil {
		q.BlockID = m[1]
	}

	sides := cardSides(info.Type, topicpath.RemoveFromCardText(q.Text), settings.Parser)
	schedules, changed := datastore.ReconcileSchedules(
		datastore.ExtractSchedules(info.Text, settings.location()),
		len(sides),
	)
	q.Changed = changed
	for i, side := range sides {
		side.Schedule = schedules[i]
		q.Cards = append(q.Cards, side)
	}
	return q
}

// questionTopicPath prefers a tag starting the card, then the last flashcard tag line
// above the card, then the note's own topic path.
func (n Note) questionTopicPath(q Question, meta markdown.Metadata, settings Settings) topicpath.TopicPath {
	if p, ok := topicpath.FromCardText(q.Text); ok && topicpath.IsUnderAny(p, settings.FlashcardTags) {
		return p
	}

	var found topicpath.TopicPath
	for _, tag := range meta.Tags {
		if tag.Line > q.Info.FirstLineNumber {
			break
		}
		p, err := topicpath.FromTag(tag.Name)
		if err != nil || !topicpath.IsUnderAny(p, settings.FlashcardTags) {
			continue
		}
		found = p
	}
	if !found.IsEmpty() {
		return found
	}
	return n.TopicPath
}

func headingContext(headings []markdown.Heading, line int) []string {
	var stack []markdown.Heading
	for _, h := range headings {
		if h.Line >= line {
			break
		}
		for len(stack) > 0 && stack[len(stack)-1].Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, h)
	}

	context := make([]string, 0, len(stack))
	for _, h := range stack {
		context = append(context, h.Text)
	}
	return context
}

func cardSides(cardType parser.CardType, text string, opts parser.Options) []Card {
	switch cardType {
	case parser.SingleLineBasic, parser.SingleLineReversed:
		separator := opts.SingleLineCardSeparator
		if cardType == parser.SingleLineReversed {
			separator = opts.SingleLineReversedCardSeparator
		}
		front, back, _ := strings.Cut(text, separator)
		return basicSides(cardType, strings.TrimSpace(front), strings.TrimSpace(back))

	case parser.MultiLineBasic, parser.MultiLineReversed:
		separator := opts.MultilineCardSeparator
		if cardType == parser.MultiLineReversed {
			separator = opts.MultilineReversedCardSeparator
		}
		lines := textutil.SplitLines(text)
		for i, line := range lines {
			if strings.TrimSpace(line) == separator {
				front := strings.Join(lines[:i], "\n")
				back := strings.Join(lines[i+1:], "\n")
				return basicSides(cardType, strings.TrimSpace(front), strings.TrimSpace(back))
			}
		}
		return nil

	case parser.Cloze:
		var cards []Card
		for _, c := range cloze.Cards(text, opts.Cloze, cloze.DefaultFormatter) {
			cards = append(cards, Card{Front: c.Front, Back: c.Back})
		}
		return cards
	}
	return nil
}

func basicSides(cardType parser.CardType, front, back string) []Card {
	cards := []Card{{Front: front, Back: back}}
	if cardType.IsReversed() {
		cards = append(cards, Card{Front: back, Back: front})
	}
	return cards
}

// CardEases returns the eases of the scheduled cards of the note.
func (n Note) CardEases() []int {
	var eases []int
	for _, q := range n.Questions {
		for _, c := range q.Cards {
			if c.Schedule != nil {
				eases = append(eases, c.Schedule.Ease)
			}
		}
	}
	return eases
}

// AverageEase returns the ease of the note derived from its scheduled cards.
func (n Note) AverageEase(baseEase int) (float64, bool) {
	return srs.NoteEaseFromCards(n.CardEases(), baseEase)
}

// HasChanges reports whether any question has schedules that need rewriting.
func (n Note) HasChanges() bool {
	for _, q := range n.Questions {
		if q.Changed {
			return true
		}
	}
	return false
}
