package datastore

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/srnotes/internal/srs"
	"github.com/at-ishikawa/srnotes/internal/textutil"
)

// Front-matter keys of a note schedule.
const (
	dueKey      = "due"
	intervalKey = "interval"
	easeKey     = "ease"
	readableKey = "readable"
)

var noteScheduleKeys = []string{dueKey, intervalKey, easeKey, readableKey}

type noteScheduleYAML struct {
	// Due is in unix milliseconds.
	Due      *int64 `yaml:"due"`
	Interval *int   `yaml:"interval"`
	Ease     *int   `yaml:"ease"`
}

// Frontmatter returns the YAML between the front-matter markers.
func Frontmatter(noteText string) (string, bool) {
	lines := textutil.SplitLines(noteText)
	end := textutil.FrontmatterEndLine(lines)
	if end < 0 {
		return "", false
	}
	return strings.Join(lines[1:end], "\n"), true
}

// ReadNoteSchedule returns the schedule in a note's front matter, or nil when the note is
// not scheduled. Front matter that is not valid YAML counts as no schedule.
func ReadNoteSchedule(noteText string, loc *time.Location) *srs.ScheduleInfo {
	frontmatter, ok := Frontmatter(noteText)
	if !ok {
		return nil
	}

	var v noteScheduleYAML
	if err := yaml.Unmarshal([]byte(frontmatter), &v); err != nil {
		return nil
	}
	if v.Due == nil || v.Interval == nil || v.Ease == nil {
		return nil
	}
	return &srs.ScheduleInfo{
		DueDate:  srs.StartOfDay(time.UnixMilli(*v.Due).In(loc)),
		Interval: *v.Interval,
		Ease:     *v.Ease,
	}
}

// WriteNoteSchedule stores s in the note's front matter, creating the block when needed.
// Other front-matter lines are kept as they are.
func WriteNoteSchedule(noteText string, s srs.ScheduleInfo) string {
	values := map[string]string{
		dueKey:      strconv.FormatInt(s.DueDate.UnixMilli(), 10),
		intervalKey: strconv.Itoa(s.Interval),
		easeKey:     strconv.Itoa(s.Ease),
		readableKey: s.FormatDueDate(),
	}

	lines := textutil.SplitLines(noteText)
	end := textutil.FrontmatterEndLine(lines)
	if end < 0 {
		block := []string{"---"}
		for _, key := range noteScheduleKeys {
			block = append(block, fmt.Sprintf("%s: %s", key, values[key]))
		}
		block = append(block, "---")
		return strings.Join(block, "\n") + "\n" + noteText
	}

	written := make(map[string]bool, len(noteScheduleKeys))
	result := make([]string, 0, len(lines)+len(noteScheduleKeys))
	result = append(result, lines[0])
	for _, line := range lines[1:end] {
		if key, ok := topLevelKey(line); ok {
			if value, isSchedule := values[key]; isSchedule {
				result = append(result, fmt.Sprintf("%s: %s", key, value))
				written[key] = true
				continue
			}
		}
		result = append(result, line)
	}
	for _, key := range noteScheduleKeys {
		if !written[key] {
			result = append(result, fmt.Sprintf("%s: %s", key, values[key]))
		}
	}
	result = append(result, lines[end:]...)
	return strings.Join(result, "\n")
}

func topLevelKey(line string) (string, bool) {
	if line == "" || line[0] == ' ' || line[0] == '\t' || line[0] == '#' {
		return "", false
	}
	key, _, found := strings.Cut(line, ":")
	if !found {
		return "", false
	}
	return strings.TrimSpace(key), true
}
