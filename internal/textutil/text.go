// Package textutil holds the line-oriented string helpers shared by the parser and the
// scheduling metadata writer.
package textutil

import "strings"

// SplitLines splits text into lines after normalising CRLF and CR line endings.
func SplitLines(text string) []string {
	return strings.Split(NormalizeLineEndings(text), "\n")
}

func NormalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// LineEnding returns "\r\n" when text uses CRLF line endings and "\n" otherwise.
func LineEnding(text string) string {
	if strings.Contains(text, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// LiteralReplace replaces the first occurrence of search in text. Nothing in the
// replacement is interpreted.
func LiteralReplace(text, search, replacement string) string {
	if search == "" {
		return text
	}
	start := strings.Index(text, search)
	if start < 0 {
		return text
	}
	return text[:start] + replacement + text[start+len(search):]
}

// SplitFrontmatter separates a leading "---" delimited block from the rest of the note.
// The returned content has the front-matter lines blanked so that line numbers in the
// content still match the original text. When there is no front matter, frontmatter is
// empty and content is text.
func SplitFrontmatter(text string) (frontmatter string, content string) {
	lines := SplitLines(text)
	end := FrontmatterEndLine(lines)
	if end < 0 {
		return "", text
	}

	frontmatter = strings.Join(lines[:end+1], "\n")
	blanked := make([]string, len(lines))
	copy(blanked[end+1:], lines[end+1:])
	return frontmatter, strings.Join(blanked, "\n")
}

// FrontmatterEndLine returns the index of the closing "---" line, or -1 when lines do not
// start with a front-matter block. Both markers must start in the first column.
func FrontmatterEndLine(lines []string) int {
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != "---" {
		return -1
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == "---" {
			return i
		}
	}
	return -1
}

// ParseTagString parses a front-matter tag value such as "a, #b,c" into "#"-prefixed tags.
// Both comma and whitespace separators are accepted.
func ParseTagString(tags string) []string {
	fields := strings.FieldsFunc(tags, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	result := make([]string, 0, len(fields))
	for _, tag := range fields {
		if tag == "#" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		result = append(result, tag)
	}
	return result
}
