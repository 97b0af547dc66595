// Package markdown extracts the headings and tags of a note together with their line
// numbers.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/srnotes/internal/textutil"
)

// Heading is a section heading. Line is zero based.
type Heading struct {
	Level int
	Text  string
	Line  int
}

// Tag is an inline tag such as "#flashcards/math". Line is zero based.
type Tag struct {
	Name string
	Line int
}

type Metadata struct {
	Headings        []Heading
	Tags            []Tag
	FrontmatterTags []string
}

// AllTags returns the front-matter tags followed by the inline tags.
func (m Metadata) AllTags() []string {
	tags := make([]string, 0, len(m.FrontmatterTags)+len(m.Tags))
	tags = append(tags, m.FrontmatterTags...)
	for _, t := range m.Tags {
		tags = append(tags, t.Name)
	}
	return tags
}

func Extract(noteText string) Metadata {
	return Metadata{
		Headings:        Headings(noteText),
		Tags:            Tags(noteText),
		FrontmatterTags: FrontmatterTags(noteText),
	}
}

// Headings returns the headings of a note in document order.
func Headings(noteText string) []Heading {
	_, content := textutil.SplitFrontmatter(textutil.NormalizeLineEndings(noteText))
	source := []byte(content)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var headings []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Lines().Len() == 0 {
			return ast.WalkSkipChildren, nil
		}
		start := h.Lines().At(0).Start
		headings = append(headings, Heading{
			Level: h.Level,
			Text:  inlineText(h, source),
			Line:  bytes.Count(source[:start], []byte("\n")),
		})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

func inlineText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(source))
		case *ast.String:
			sb.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

var inlineTagPattern = regexp.MustCompile(`(?:^|\s)(#[\p{L}\p{N}_/\-]+)`)

// Tags returns the inline tags of a note. Tags in front matter and fenced code blocks are
// not inline tags.
func Tags(noteText string) []Tag {
	_, content := textutil.SplitFrontmatter(noteText)

	var tags []Tag
	fence := ""
	for i, line := range textutil.SplitLines(content) {
		trimmed := strings.TrimSpace(line)
		if fence != "" {
			if strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
			continue
		}
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			fence = trimmed[:3]
			continue
		}
		for _, m := range inlineTagPattern.FindAllStringSubmatch(line, -1) {
			tags = append(tags, Tag{Name: m[1], Line: i})
		}
	}
	return tags
}

// FrontmatterTags returns the "tags" of the front matter, given either as a YAML list or
// as a comma separated string.
func FrontmatterTags(noteText string) []string {
	lines := textutil.SplitLines(noteText)
	end := textutil.FrontmatterEndLine(lines)
	if end < 0 {
		return nil
	}

	var v struct {
		Tags yaml.Node `yaml:"tags"`
	}
	if err := yaml.Unmarshal([]byte(strings.Join(lines[1:end], "\n")), &v); err != nil {
		return nil
	}

	switch v.Tags.Kind {
	case yaml.ScalarNode:
		return textutil.ParseTagString(v.Tags.Value)
	case yaml.SequenceNode:
		var tags []string
		for _, item := range v.Tags.Content {
			tags = append(tags, textutil.ParseTagString(item.Value)...)
		}
		return tags
	default:
		return nil
	}
}
