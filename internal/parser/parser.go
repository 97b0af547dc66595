// Package parser finds flashcards in the text of a note.
package parser

import (
	"strings"

	"github.com/at-ishikawa/srnotes/internal/cloze"
	"github.com/at-ishikawa/srnotes/internal/textutil"
)

type CardType int

const (
	SingleLineBasic CardType = iota
	SingleLineReversed
	MultiLineBasic
	MultiLineReversed
	Cloze
)

var cardTypeNames = [...]string{
	SingleLineBasic:    "SingleLineBasic",
	SingleLineReversed: "SingleLineReversed",
	MultiLineBasic:     "MultiLineBasic",
	MultiLineReversed:  "MultiLineReversed",
	Cloze:              "Cloze",
}

func (t CardType) String() string {
	if t < 0 || int(t) >= len(cardTypeNames) {
		return "Unknown"
	}
	return cardTypeNames[t]
}

// IsReversed reports whether the card type produces a second card with question and
// answer swapped.
func (t CardType) IsReversed() bool {
	return t == SingleLineReversed || t == MultiLineReversed
}

// Options holds the user configurable card markers.
type Options struct {
	SingleLineCardSeparator         string
	SingleLineReversedCardSeparator string
	MultilineCardSeparator          string
	MultilineReversedCardSeparator  string
	// MultilineCardEndMarker ends multi-line cards when set. Blank lines then no longer
	// end a card once its separator has been seen.
	MultilineCardEndMarker string
	Cloze                  cloze.Syntax
}

func DefaultOptions() Options {
	return Options{
		SingleLineCardSeparator:         "::",
		SingleLineReversedCardSeparator: ":::",
		MultilineCardSeparator:          "?",
		MultilineReversedCardSeparator:  "??",
		Cloze:                           cloze.DefaultSyntax,
	}
}

// ParsedCardInfo is one card region of a note. Text is the verbatim text of the region,
// including a trailing scheduling comment, and the line numbers are zero based.
type ParsedCardInfo struct {
	Type            CardType
	Text            string
	FirstLineNumber int
	LastLineNumber  int
}

// SRCommentPrefix starts the HTML comment holding card scheduling data.
const SRCommentPrefix = "<!--SR:"

// Parse returns the cards in content in file order. Malformed markup is never an error:
// it is simply not a card.
//
// Separators inside fenced code blocks and HTML comments are ignored. Code blocks and
// comments still belong to the card around them.
func Parse(content string, opts Options) []ParsedCardInfo {
	lines := textutil.SplitLines(content)
	b := &cardBuilder{opts: opts}
	inComment := false

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		wasInComment := inComment
		var detectable string
		detectable, inComment = visibleText(line, inComment)

		isEmpty := trimmed == ""
		endMarker := opts.MultilineCardEndMarker
		if !wasInComment && ((endMarker != "" && trimmed == endMarker) || (isEmpty && (endMarker == "" || !b.pending))) {
			b.finish()
			continue
		}

		if fence := fenceMarker(line); fence != "" && !wasInComment {
			b.add(i, line)
			for i+1 < len(lines) {
				i++
				b.add(i, lines[i])
				if strings.HasPrefix(lines[i], fence) {
					break
				}
			}
			continue
		}

		if cardType, ok := singleLineType(cloze.MaskAnkiDeletions(detectable), opts); ok {
			b.finish()
			first := i
			text := line
			if i+1 < len(lines) && strings.HasPrefix(lines[i+1], SRCommentPrefix) {
				i++
				text += "\n" + lines[i]
			}
			b.cards = append(b.cards, ParsedCardInfo{
				Type:            cardType,
				Text:            text,
				FirstLineNumber: first,
				LastLineNumber:  i,
			})
			continue
		}

		hasQuestion := len(b.lines) > 0
		b.add(i, line)
		marker := strings.TrimSpace(detectable)
		switch {
		case marker == opts.MultilineReversedCardSeparator && hasQuestion:
			b.setType(MultiLineReversed)
		case marker == opts.MultilineCardSeparator && hasQuestion:
			b.setType(MultiLineBasic)
		case !b.pending && opts.Cloze.ContainsDeletion(detectable):
			b.setType(Cloze)
		}
	}
	b.finish()

	return b.cards
}

// visibleText returns the parts of line outside HTML comments and whether a comment is
// still open at the end of the line.
func visibleText(line string, inComment bool) (string, bool) {
	var sb strings.Builder
	for line != "" {
		if inComment {
			end := strings.Index(line, "-->")
			if end < 0 {
				return sb.String(), true
			}
			line = line[end+len("-->"):]
			inComment = false
			continue
		}
		start := strings.Index(line, "<!--")
		if start < 0 {
			sb.WriteString(line)
			break
		}
		sb.WriteString(line[:start])
		line = line[start+len("<!--"):]
		inComment = true
	}
	return sb.String(), inComment
}

// singleLineType reports whether line is a single-line card: exactly one separator with
// text on both sides. The reversed separator is checked first because it usually
// contains the basic one.
func singleLineType(line string, opts Options) (CardType, bool) {
	candidates := []struct {
		separator string
		cardType  CardType
	}{
		{opts.SingleLineReversedCardSeparator, SingleLineReversed},
		{opts.SingleLineCardSeparator, SingleLineBasic},
	}
	for _, c := range candidates {
		if c.separator == "" || strings.Count(line, c.separator) != 1 {
			continue
		}
		idx := strings.Index(line, c.separator)
		question := strings.TrimSpace(line[:idx])
		answer := strings.TrimSpace(line[idx+len(c.separator):])
		if question != "" && answer != "" {
			return c.cardType, true
		}
	}
	return 0, false
}

// fenceMarker returns the run of backticks or tildes opening a fenced code block.
func fenceMarker(line string) string {
	for _, fence := range []string{"```", "~~~"} {
		if !strings.HasPrefix(line, fence) {
			continue
		}
		n := len(fence)
		for n < len(line) && line[n] == fence[0] {
			n++
		}
		return line[:n]
	}
	return ""
}

type cardBuilder struct {
	opts      Options
	cards     []ParsedCardInfo
	lines     []string
	firstLine int
	cardType  CardType
	pending   bool
}

func (b *cardBuilder) add(lineNo int, line string) {
	if len(b.lines) == 0 {
		b.firstLine = lineNo
	}
	b.lines = append(b.lines, line)
}

func (b *cardBuilder) setType(cardType CardType) {
	b.cardType = cardType
	b.pending = true
}

// finish emits the pending card, if any, and starts a new block.
func (b *cardBuilder) finish() {
	defer func() {
		b.lines = nil
		b.pending = false
	}()
	if !b.pending {
		return
	}

	text := strings.TrimRight(strings.Join(b.lines, "\n"), " \t\n")
	if text == "" {
		return
	}
	if b.cardType == Cloze && len(cloze.Ordinals(cloze.ParseWith(text, b.opts.Cloze))) == 0 {
		return
	}
	b.cards = append(b.cards, ParsedCardInfo{
		Type:            b.cardType,
		Text:            text,
		FirstLineNumber: b.firstLine,
		LastLineNumber:  b.firstLine + strings.Count(text, "\n"),
	})
}
