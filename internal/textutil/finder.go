package textutil

import "strings"

// FindLines returns the index of the first line in source where every line of search
// matches consecutively, ignoring leading and trailing whitespace.
//
// The scan is a plain O(n*m) walk: on a mismatch the search cursor goes back to the
// first search line and the scan continues with the next source line.
func FindLines(source, search []string) (int, bool) {
	if len(search) == 0 {
		return 0, false
	}

	searchIdx := 0
	last := len(search) - 1
	for sourceIdx, sourceLine := range source {
		if strings.TrimSpace(sourceLine) != strings.TrimSpace(search[searchIdx]) {
			searchIdx = 0
			continue
		}
		if searchIdx == last {
			return sourceIdx - searchIdx, true
		}
		searchIdx++
	}
	return 0, false
}

// FindAndReplace replaces search with replacement in source.
//
// A verbatim occurrence of search is replaced directly. Otherwise the texts are compared
// line by line with FindLines and the matching lines are swapped for the replacement
// lines. ok is false when search is not found either way. The replacement is written with
// the line ending used by source.
func FindAndReplace(source, search, replacement string) (result string, ok bool) {
	if search == "" {
		return "", false
	}
	eol := LineEnding(source)
	replacement = strings.ReplaceAll(NormalizeLineEndings(replacement), "\n", eol)
	if strings.Contains(source, search) {
		return LiteralReplace(source, search, replacement), true
	}

	sourceLines := SplitLines(source)
	searchLines := SplitLines(search)
	start, found := FindLines(sourceLines, searchLines)
	if !found {
		return "", false
	}

	replacementLines := SplitLines(replacement)
	lines := make([]string, 0, len(sourceLines)-len(searchLines)+len(replacementLines))
	lines = append(lines, sourceLines[:start]...)
	lines = append(lines, replacementLines...)
	lines = append(lines, sourceLines[start+len(searchLines):]...)
	return strings.Join(lines, eol), true
}
