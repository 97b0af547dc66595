package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		options func(*Options)
		want    []ParsedCardInfo
	}{
		{
			name:    "single line basic",
			content: "Question::Answer",
			want: []ParsedCardInfo{
				{Type: SingleLineBasic, Text: "Question::Answer", FirstLineNumber: 0, LastLineNumber: 0},
			},
		},
		{
			name:    "single line with schedule on the next line",
			content: "Question::Answer\n<!--SR:!2023-09-02,4,270-->\n",
			want: []ParsedCardInfo{
				{Type: SingleLineBasic, Text: "Question::Answer\n<!--SR:!2023-09-02,4,270-->", FirstLineNumber: 0, LastLineNumber: 1},
			},
		},
		{
			name:    "single line reversed",
			content: "Question:::Answer",
			want: []ParsedCardInfo{
				{Type: SingleLineReversed, Text: "Question:::Answer", FirstLineNumber: 0, LastLineNumber: 0},
			},
		},
		{
			name:    "separator appears twice",
			content: "a::b::c",
		},
		{
			name:    "empty question",
			content: "::Answer",
		},
		{
			name:    "multi line basic ends at blank line",
			content: "Question\n?\nAnswer line 1\nAnswer line 2\n\nOther",
			want: []ParsedCardInfo{
				{Type: MultiLineBasic, Text: "Question\n?\nAnswer line 1\nAnswer line 2", FirstLineNumber: 0, LastLineNumber: 3},
			},
		},
		{
			name:    "multi line reversed",
			content: "Question\n??\nAnswer",
			want: []ParsedCardInfo{
				{Type: MultiLineReversed, Text: "Question\n??\nAnswer", FirstLineNumber: 0, LastLineNumber: 2},
			},
		},
		{
			name:    "multi line separator without question",
			content: "?\nAnswer",
		},
		{
			name:    "cloze with highlight",
			content: "cloze ==deletion== test",
			want: []ParsedCardInfo{
				{Type: Cloze, Text: "cloze ==deletion== test", FirstLineNumber: 0, LastLineNumber: 0},
			},
		},
		{
			name:    "unterminated highlight",
			content: "srdf ==",
		},
		{
			name:    "multi line cloze with schedule",
			content: "This is ==a==\nsecond line\n<!--SR:!2023-01-01,1,250-->",
			want: []ParsedCardInfo{
				{Type: Cloze, Text: "This is ==a==\nsecond line\n<!--SR:!2023-01-01,1,250-->", FirstLineNumber: 0, LastLineNumber: 2},
			},
		},
		{
			name:    "code block belongs to the card and hides separators",
			content: "Question\n?\n```\na::b\n\n```\nAfter",
			want: []ParsedCardInfo{
				{Type: MultiLineBasic, Text: "Question\n?\n```\na::b\n\n```\nAfter", FirstLineNumber: 0, LastLineNumber: 6},
			},
		},
		{
			name:    "html comment block is skipped",
			content: "<!--\nA::B\n-->\nC::D",
			want: []ParsedCardInfo{
				{Type: SingleLineBasic, Text: "C::D", FirstLineNumber: 3, LastLineNumber: 3},
			},
		},
		{
			name:    "separator inside inline comment",
			content: "text <!-- a::b -->",
		},
		{
			name:    "anki cloze with a single deletion",
			content: "The capital of France is {{c1::Paris}}",
			want: []ParsedCardInfo{
				{Type: Cloze, Text: "The capital of France is {{c1::Paris}}", FirstLineNumber: 0, LastLineNumber: 0},
			},
		},
		{
			name:    "anki cloze with several deletions and a hint",
			content: "{{c1::A}} and {{c2::B::hint}}\n<!--SR:!2023-01-01,1,250!2023-01-02,3,250-->",
			want: []ParsedCardInfo{
				{Type: Cloze, Text: "{{c1::A}} and {{c2::B::hint}}\n<!--SR:!2023-01-01,1,250!2023-01-02,3,250-->", FirstLineNumber: 0, LastLineNumber: 1},
			},
		},
		{
			name:    "anki deletion as the answer of a single line card",
			content: "Q::{{c1::A}}",
			want: []ParsedCardInfo{
				{Type: Cloze, Text: "Q::{{c1::A}}", FirstLineNumber: 0, LastLineNumber: 0},
			},
		},
		{
			name:    "highlight spanning a blank line",
			content: "==a\n\nb==",
		},
		{
			name:    "comment inside a card is kept verbatim",
			content: "Q\n?\nA\n<!-- aside -->\nmore\n",
			want: []ParsedCardInfo{
				{Type: MultiLineBasic, Text: "Q\n?\nA\n<!-- aside -->\nmore", FirstLineNumber: 0, LastLineNumber: 4},
			},
		},
		{
			name:    "multi line comment inside a card hides separators",
			content: "Q\n?\nA\n<!--\nX::Y\n-->\nmore",
			want: []ParsedCardInfo{
				{Type: MultiLineBasic, Text: "Q\n?\nA\n<!--\nX::Y\n-->\nmore", FirstLineNumber: 0, LastLineNumber: 6},
			},
		},
		{
			name:    "comment opened mid line",
			content: "text <!-- start\nQ::A\n-->",
		},
		{
			name:    "indented comment block",
			content: "  <!--\nQ::A\n-->",
		},
		{
			name:    "comment closed mid line",
			content: "<!-- start\nQ::A\nend --> R::S",
			want: []ParsedCardInfo{
				{Type: SingleLineBasic, Text: "end --> R::S", FirstLineNumber: 2, LastLineNumber: 2},
			},
		},
		{
			name:    "card after a closed comment",
			content: "<!-- x -->\n\nR::S",
			want: []ParsedCardInfo{
				{Type: SingleLineBasic, Text: "R::S", FirstLineNumber: 2, LastLineNumber: 2},
			},
		},
		{
			name:    "several cards",
			content: "#flashcards\nQ1::A1\n\nQ2\n?\nA2",
			want: []ParsedCardInfo{
				{Type: SingleLineBasic, Text: "Q1::A1", FirstLineNumber: 1, LastLineNumber: 1},
				{Type: MultiLineBasic, Text: "Q2\n?\nA2", FirstLineNumber: 3, LastLineNumber: 5},
			},
		},
		{
			name:    "single line card ends a multi line answer",
			content: "Q\n?\nA\nX::Y",
			want: []ParsedCardInfo{
				{Type: MultiLineBasic, Text: "Q\n?\nA", FirstLineNumber: 0, LastLineNumber: 2},
				{Type: SingleLineBasic, Text: "X::Y", FirstLineNumber: 3, LastLineNumber: 3},
			},
		},
		{
			name:    "end marker allows blank lines in answers",
			content: "Q\n?\nA1\n\nA2\n+++\nX::Y",
			options: func(o *Options) { o.MultilineCardEndMarker = "+++" },
			want: []ParsedCardInfo{
				{Type: MultiLineBasic, Text: "Q\n?\nA1\n\nA2", FirstLineNumber: 0, LastLineNumber: 4},
				{Type: SingleLineBasic, Text: "X::Y", FirstLineNumber: 6, LastLineNumber: 6},
			},
		},
		{
			name:    "custom separators",
			content: "Q;;A\nR;;;B",
			options: func(o *Options) {
				o.SingleLineCardSeparator = ";;"
				o.SingleLineReversedCardSeparator = ";;;"
			},
			want: []ParsedCardInfo{
				{Type: SingleLineBasic, Text: "Q;;A", FirstLineNumber: 0, LastLineNumber: 0},
				{Type: SingleLineReversed, Text: "R;;;B", FirstLineNumber: 1, LastLineNumber: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.options != nil {
				tt.options(&opts)
			}
			got := Parse(tt.content, opts)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCardType_String(t *testing.T) {
	assert.Equal(t, "MultiLineReversed", MultiLineReversed.String())
	assert.Equal(t, "Unknown", CardType(42).String())
	assert.True(t, SingleLineReversed.IsReversed())
	assert.False(t, Cloze.IsReversed())
}
