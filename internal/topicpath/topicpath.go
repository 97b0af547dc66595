// Package topicpath models the hierarchical tags, such as #flashcards/science/physics,
// that route cards into decks.
package topicpath

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var ErrInvalidTopicPath = errors.New("invalid topic path")

var tagAtStartPattern = regexp.MustCompile(`^#[^\s#]+`)

// TopicPath is an immutable sequence of segments. The zero value is the empty path.
type TopicPath struct {
	segments []string
}

func New(segments []string) (TopicPath, error) {
	if segments == nil {
		return TopicPath{}, fmt.Errorf("nil segments: %w", ErrInvalidTopicPath)
	}
	for _, s := range segments {
		if strings.Contains(s, "/") {
			return TopicPath{}, fmt.Errorf("segment %q contains '/': %w", s, ErrInvalidTopicPath)
		}
	}
	copied := make([]string, len(segments))
	copy(copied, segments)
	return TopicPath{segments: copied}, nil
}

// MustNew is New for paths known to be valid. It panics otherwise.
func MustNew(segments ...string) TopicPath {
	if segments == nil {
		segments = []string{}
	}
	p, err := New(segments)
	if err != nil {
		panic(err)
	}
	return p
}

func (p TopicPath) Segments() []string {
	copied := make([]string, len(p.segments))
	copy(copied, p.segments)
	return copied
}

func (p TopicPath) IsEmpty() bool {
	return len(p.segments) == 0
}

func (p TopicPath) Equal(other TopicPath) bool {
	return len(p.segments) == len(other.segments) && p.IsSameOrAncestorOf(other)
}

// IsSameOrAncestorOf reports whether p is a prefix of other. The empty path is only an
// ancestor of the empty path.
func (p TopicPath) IsSameOrAncestorOf(other TopicPath) bool {
	return p.isPrefixOf(other, func(a, b string) bool { return a == b })
}

func (p TopicPath) isSameOrAncestorOfFold(other TopicPath) bool {
	caser := cases.Fold()
	return p.isPrefixOf(other, func(a, b string) bool {
		return caser.String(a) == caser.String(b)
	})
}

func (p TopicPath) isPrefixOf(other TopicPath, equal func(a, b string) bool) bool {
	if p.IsEmpty() {
		return other.IsEmpty()
	}
	if len(p.segments) > len(other.segments) {
		return false
	}
	for i, s := range p.segments {
		if !equal(s, other.segments[i]) {
			return false
		}
	}
	return true
}

func (p TopicPath) String() string {
	return strings.Join(p.segments, "/")
}

func (p TopicPath) FormatAsTag() (string, error) {
	if p.IsEmpty() {
		return "", fmt.Errorf("empty path has no tag: %w", ErrInvalidTopicPath)
	}
	return "#" + p.String(), nil
}

// FromTag converts "#a/b" into the path [a b]. Empty segments are dropped.
func FromTag(tag string) (TopicPath, error) {
	if !IsValidTag(tag) {
		return TopicPath{}, fmt.Errorf("tag %q: %w", tag, ErrInvalidTopicPath)
	}
	var segments []string
	for _, s := range strings.Split(tag[1:], "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if segments == nil {
		return TopicPath{}, fmt.Errorf("tag %q has no segments: %w", tag, ErrInvalidTopicPath)
	}
	return TopicPath{segments: segments}, nil
}

func IsValidTag(tag string) bool {
	return len(tag) > 1 && tag[0] == '#'
}

// FromCardText returns the path of the tag that starts a card's text, if any.
func FromCardText(text string) (TopicPath, bool) {
	tag := tagAtStartPattern.FindString(strings.TrimLeft(text, " \t\n"))
	if tag == "" {
		return TopicPath{}, false
	}
	p, err := FromTag(tag)
	if err != nil {
		return TopicPath{}, false
	}
	return p, true
}

// RemoveFromCardText strips the leading tag from a card's text.
func RemoveFromCardText(text string) string {
	trimmed := strings.TrimLeft(text, " \t\n")
	return strings.TrimSpace(tagAtStartPattern.ReplaceAllString(trimmed, ""))
}

// NoteOptions controls how a note's own topic path is derived.
type NoteOptions struct {
	ConvertFoldersToDecks bool
	FlashcardTags         []string
}

// OfNote returns the topic path of a whole note: its folder path when folders are decks,
// otherwise its first tag that falls under one of the flashcard tags.
func OfNote(noteTags []string, notePath string, opts NoteOptions) TopicPath {
	if opts.ConvertFoldersToDecks {
		var segments []string
		for _, s := range strings.Split(path.Dir(path.Clean(filepathToSlash(notePath))), "/") {
			if s != "" && s != "." {
				segments = append(segments, s)
			}
		}
		return TopicPath{segments: segments}
	}

	for _, tag := range noteTags {
		p, err := FromTag(tag)
		if err != nil {
			continue
		}
		if IsUnderAny(p, opts.FlashcardTags) {
			return p
		}
	}
	return TopicPath{}
}

// IsUnderAny reports whether p falls under one of tags, ignoring case.
func IsUnderAny(p TopicPath, tags []string) bool {
	for _, tag := range tags {
		root, err := FromTag(tag)
		if err != nil {
			continue
		}
		if root.isSameOrAncestorOfFold(p) {
			return true
		}
	}
	return false
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// List is the set of topic paths declared together on one line.
type List struct {
	Paths []TopicPath
	Line  int
}

// FromTagList builds a List from tags, skipping anything that is not a tag.
func FromTagList(tags []string, line int) List {
	list := List{Line: line}
	for _, tag := range tags {
		p, err := FromTag(tag)
		if err != nil {
			continue
		}
		list.Paths = append(list.Paths, p)
	}
	return list
}

func (l List) IsEmpty() bool {
	return len(l.Paths) == 0
}

func (l List) Format(separator string) string {
	formatted := make([]string, 0, len(l.Paths))
	for _, p := range l.Paths {
		formatted = append(formatted, p.String())
	}
	return strings.Join(formatted, separator)
}
