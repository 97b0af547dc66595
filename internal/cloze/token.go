// Package cloze turns cloze deletion markup into a tree of text and deletion nodes and
// renders the question and answer side of each deletion.
package cloze

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

type TokenKind int

const (
	TokenText TokenKind = iota
	TokenOpen
	TokenClose
	TokenSeparator
)

func (k TokenKind) String() string {
	switch k {
	case TokenOpen:
		return "Open"
	case TokenClose:
		return "Close"
	case TokenSeparator:
		return "Separator"
	default:
		return "Text"
	}
}

// Token is one lexical unit of cloze markup. Text holds the literal source text of the
// token and Offset its byte offset in the source.
type Token struct {
	Kind    TokenKind
	Offset  int
	Ordinal int
	Text    string

	// auto is set on deletions without an explicit ordinal; the ordinal is assigned after
	// every explicit ordinal in the text is known.
	auto bool
}

const (
	openPrefix = "{{c"
	openSuffix = "::"
	separator  = "::"
	closeMark  = "}}"
)

// Tokenize scans text for Anki style deletions: "{{c<n>::" opens a deletion, "::"
// separates the hint and "}}" closes. Everything else is collected into maximal text
// runs.
func Tokenize(text string) []Token {
	return tokenizeSegment(text, 0, nil)
}

func tokenizeSegment(text string, base int, tokens []Token) []Token {
	textStart := -1
	flush := func(end int) {
		if textStart >= 0 {
			tokens = append(tokens, Token{Kind: TokenText, Offset: base + textStart, Text: text[textStart:end]})
			textStart = -1
		}
	}

	for i := 0; i < len(text); {
		if ordinal, width, ok := matchOpen(text[i:]); ok {
			flush(i)
			tokens = append(tokens, Token{Kind: TokenOpen, Offset: base + i, Ordinal: ordinal, Text: text[i : i+width]})
			i += width
			continue
		}
		if strings.HasPrefix(text[i:], separator) {
			flush(i)
			tokens = append(tokens, Token{Kind: TokenSeparator, Offset: base + i, Text: separator})
			i += len(separator)
			continue
		}
		if strings.HasPrefix(text[i:], closeMark) {
			flush(i)
			tokens = append(tokens, Token{Kind: TokenClose, Offset: base + i, Text: closeMark})
			i += len(closeMark)
			continue
		}
		if textStart < 0 {
			textStart = i
		}
		i++
	}
	flush(len(text))
	return tokens
}

// matchOpen reports whether s starts with "{{c<digits>::" and returns the ordinal and the
// width of the marker.
func matchOpen(s string) (ordinal int, width int, ok bool) {
	if !strings.HasPrefix(s, openPrefix) {
		return 0, 0, false
	}
	end := len(openPrefix)
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == len(openPrefix) || !strings.HasPrefix(s[end:], openSuffix) {
		return 0, 0, false
	}
	ordinal, err := strconv.Atoi(s[len(openPrefix):end])
	if err != nil {
		return 0, 0, false
	}
	return ordinal, end + len(openSuffix), true
}

// Syntax selects the simple deletion markers that are treated as clozes in addition to
// Anki style deletions.
type Syntax struct {
	Highlights    bool // ==answer==
	Bold          bool // **answer**
	CurlyBrackets bool // {{answer}}
}

// DefaultSyntax only converts highlights.
var DefaultSyntax = Syntax{Highlights: true}

var (
	highlightPattern = regexp.MustCompile(`==(.+?)==`)
	boldPattern      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	curlyPattern     = regexp.MustCompile(`\{\{(.+?)\}\}`)
	ankiPattern      = regexp.MustCompile(`\{\{c\d+::.*?\}\}`)

	ordinalPrefixPattern = regexp.MustCompile(`^\[(\d+);;\]`)
	hintSuffixPattern    = regexp.MustCompile(`\[;;([^\]]*)\]$`)
)

func (s Syntax) patterns() []*regexp.Regexp {
	var patterns []*regexp.Regexp
	if s.Highlights {
		patterns = append(patterns, highlightPattern)
	}
	if s.Bold {
		patterns = append(patterns, boldPattern)
	}
	if s.CurlyBrackets {
		patterns = append(patterns, curlyPattern)
	}
	return patterns
}

// ContainsDeletion reports whether line holds at least one complete deletion in any of
// the enabled syntaxes.
func (s Syntax) ContainsDeletion(line string) bool {
	if ankiPattern.MatchString(line) {
		return true
	}
	return len(s.simpleDeletions(line)) > 0
}

// MaskAnkiDeletions blanks out the Anki style deletions in line, keeping its length, so
// that their "::" markers are not mistaken for card separators.
func MaskAnkiDeletions(line string) string {
	return ankiPattern.ReplaceAllStringFunc(line, func(m string) string {
		return strings.Repeat(" ", len(m))
	})
}

type deletion struct {
	start, end int
	inner      string
	marker     string
}

// simpleDeletions finds the non-overlapping simple deletions in text, earliest first.
func (s Syntax) simpleDeletions(text string) []deletion {
	var found []deletion
	for _, pattern := range s.patterns() {
		for _, loc := range pattern.FindAllStringSubmatchIndex(text, -1) {
			if pattern == curlyPattern {
				// Anki deletions are handled by the tokenizer itself.
				if _, _, ok := matchOpen(text[loc[0]:]); ok {
					continue
				}
			}
			if deletionBody(text[loc[2]:loc[3]]) == "" {
				continue
			}
			found = append(found, deletion{
				start:  loc[0],
				end:    loc[1],
				inner:  text[loc[2]:loc[3]],
				marker: text[loc[0] : loc[0]+2],
			})
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].start < found[j].start
	})

	result := found[:0]
	end := -1
	for _, d := range found {
		if d.start < end {
			continue
		}
		result = append(result, d)
		end = d.end
	}
	return result
}

// deletionBody strips the ordinal prefix and hint suffix from the inner text of a simple
// deletion.
func deletionBody(inner string) string {
	if m := ordinalPrefixPattern.FindString(inner); m != "" {
		inner = inner[len(m):]
	}
	if m := hintSuffixPattern.FindStringIndex(inner); m != nil {
		inner = inner[:m[0]]
	}
	return inner
}

// TokenizeWith tokenizes text like Tokenize and additionally turns the simple deletions
// enabled in syntax into deletion tokens. A deletion may start with "[n;;]" to share
// ordinal n with other deletions and end with "[;;hint]" to carry a hint. Deletions
// without an ordinal get the lowest ordinal not used elsewhere in the text.
func TokenizeWith(text string, syntax Syntax) []Token {
	var tokens []Token
	pos := 0
	for _, d := range syntax.simpleDeletions(text) {
		tokens = tokenizeSegment(text[pos:d.start], pos, tokens)
		tokens = append(tokens, deletionTokens(d)...)
		pos = d.end
	}
	tokens = tokenizeSegment(text[pos:], pos, tokens)
	assignOrdinals(tokens)
	return tokens
}

func deletionTokens(d deletion) []Token {
	inner := d.inner
	innerOffset := d.start + len(d.marker)

	open := Token{Kind: TokenOpen, Offset: d.start, Text: d.marker, auto: true}
	if m := ordinalPrefixPattern.FindStringSubmatch(inner); m != nil {
		if ordinal, err := strconv.Atoi(m[1]); err == nil {
			open.Ordinal = ordinal
			open.auto = false
			inner = inner[len(m[0]):]
			innerOffset += len(m[0])
		}
	}

	tokens := []Token{open}
	hint := ""
	hasHint := false
	if m := hintSuffixPattern.FindStringSubmatchIndex(inner); m != nil {
		hint = inner[m[2]:m[3]]
		hasHint = true
		inner = inner[:m[0]]
	}
	if inner != "" {
		tokens = append(tokens, Token{Kind: TokenText, Offset: innerOffset, Text: inner})
	}
	if hasHint {
		tokens = append(tokens,
			Token{Kind: TokenSeparator, Offset: innerOffset + len(inner), Text: separator},
			Token{Kind: TokenText, Offset: innerOffset + len(inner) + 3, Text: hint},
		)
	}
	return append(tokens, Token{Kind: TokenClose, Offset: d.end - len(d.marker), Text: d.marker})
}

func assignOrdinals(tokens []Token) {
	used := make(map[int]bool)
	for _, token := range tokens {
		if token.Kind == TokenOpen && !token.auto {
			used[token.Ordinal] = true
		}
	}
	next := 1
	for i := range tokens {
		if tokens[i].Kind != TokenOpen || !tokens[i].auto {
			continue
		}
		for used[next] {
			next++
		}
		tokens[i].Ordinal = next
		tokens[i].auto = false
		used[next] = true
	}
}
