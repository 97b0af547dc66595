package cloze

import (
	"sort"
	"strings"
)

// Node is either a Text or a *Deletion.
type Node interface {
	node()
}

type Text struct {
	Content string
}

// Deletion is one cloze deletion. Nodes may hold nested deletions.
type Deletion struct {
	Ordinal int
	Nodes   []Node
	Hint    string
	HasHint bool

	open string
}

func (Text) node()      {}
func (*Deletion) node() {}

// Parse tokenizes text with the Anki syntax only and builds the deletion tree.
func Parse(text string) []Node {
	return Build(Tokenize(text))
}

// ParseWith tokenizes text with the given syntax and builds the deletion tree.
func ParseWith(text string, syntax Syntax) []Node {
	return Build(TokenizeWith(text, syntax))
}

// Build turns a token stream into a tree. Open deletions are kept on an explicit stack.
// A close without an open deletion is kept as literal text, and deletions still open at
// the end of the input are unwound back into literal text.
func Build(tokens []Token) []Node {
	var output []Node
	var stack []*Deletion

	emit := func(n Node) {
		if len(stack) == 0 {
			output = append(output, n)
			return
		}
		top := stack[len(stack)-1]
		top.Nodes = append(top.Nodes, n)
	}

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		switch token.Kind {
		case TokenOpen:
			stack = append(stack, &Deletion{Ordinal: token.Ordinal, open: token.Text})
		case TokenSeparator:
			if len(stack) > 0 && isHint(tokens, i+1) {
				top := stack[len(stack)-1]
				top.Hint = tokens[i+1].Text
				top.HasHint = true
				i++
				continue
			}
			emit(Text{Content: token.Text})
		case TokenClose:
			if len(stack) == 0 {
				output = append(output, Text{Content: token.Text})
				continue
			}
			closed := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			emit(closed)
		default:
			emit(Text{Content: token.Text})
		}
	}

	for len(stack) > 0 {
		unclosed := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		emit(Text{Content: unclosed.open})
		for _, n := range unclosed.Nodes {
			emit(n)
		}
	}
	return output
}

// isHint reports whether the text token at i is a hint: it directly follows a separator,
// is directly followed by a close, and the token before the separator is not an open.
// The last condition tells "{{c1::::x}}" apart from a real hint.
func isHint(tokens []Token, i int) bool {
	if i < 2 || i+1 >= len(tokens) {
		return false
	}
	return tokens[i].Kind == TokenText &&
		tokens[i-1].Kind == TokenSeparator &&
		tokens[i+1].Kind == TokenClose &&
		tokens[i-2].Kind != TokenOpen
}

// Ordinals returns the distinct deletion ordinals in nodes in ascending order.
func Ordinals(nodes []Node) []int {
	seen := make(map[int]bool)
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			d, ok := n.(*Deletion)
			if !ok {
				continue
			}
			seen[d.Ordinal] = true
			walk(d.Nodes)
		}
	}
	walk(nodes)

	ordinals := make([]int, 0, len(seen))
	for ordinal := range seen {
		ordinals = append(ordinals, ordinal)
	}
	sort.Ints(ordinals)
	return ordinals
}

// Formatter renders the deletion being asked about.
type Formatter struct {
	// Question renders the masked deletion. hint is empty when the deletion has none.
	Question func(hint string) string
	// Answer renders the revealed deletion text.
	Answer func(text string) string
}

// DefaultFormatter masks as "[...]" or "[hint]" and shows answers unchanged.
var DefaultFormatter = Formatter{
	Question: func(hint string) string {
		if hint == "" {
			return "[...]"
		}
		return "[" + hint + "]"
	},
	Answer: func(text string) string {
		return text
	},
}

// Reveal renders nodes for one ordinal. Deletions with that ordinal are masked when
// showAnswer is false and formatted as answers otherwise. All other deletions show their
// text.
func Reveal(nodes []Node, ordinal int, showAnswer bool, f Formatter) string {
	var sb strings.Builder
	reveal(&sb, nodes, ordinal, showAnswer, f)
	return sb.String()
}

func reveal(sb *strings.Builder, nodes []Node, ordinal int, showAnswer bool, f Formatter) {
	for _, n := range nodes {
		switch v := n.(type) {
		case Text:
			sb.WriteString(v.Content)
		case *Deletion:
			if v.Ordinal != ordinal {
				reveal(sb, v.Nodes, ordinal, showAnswer, f)
				continue
			}
			if !showAnswer {
				sb.WriteString(f.Question(v.Hint))
				continue
			}
			var inner strings.Builder
			reveal(&inner, v.Nodes, ordinal, showAnswer, f)
			sb.WriteString(f.Answer(inner.String()))
		}
	}
}

// Card is the front and back of one deletion ordinal.
type Card struct {
	Ordinal int
	Front   string
	Back    string
}

// Cards renders one card per distinct ordinal in text, in ascending ordinal order.
func Cards(text string, syntax Syntax, f Formatter) []Card {
	nodes := ParseWith(text, syntax)
	ordinals := Ordinals(nodes)
	cards := make([]Card, 0, len(ordinals))
	for _, ordinal := range ordinals {
		cards = append(cards, Card{
			Ordinal: ordinal,
			Front:   Reveal(nodes, ordinal, false, f),
			Back:    Reveal(nodes, ordinal, true, f),
		})
	}
	return cards
}
