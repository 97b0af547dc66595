package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/srnotes/internal/note"
	"github.com/at-ishikawa/srnotes/internal/parser"
	"github.com/at-ishikawa/srnotes/internal/srs"
	"github.com/at-ishikawa/srnotes/internal/testutil"
	"github.com/at-ishikawa/srnotes/internal/vault"
)

var testNow = time.Date(2023, 9, 1, 10, 0, 0, 0, time.UTC)

func testNoteSettings() note.Settings {
	return note.Settings{
		Parser:        parser.DefaultOptions(),
		FlashcardTags: []string{"#flashcards"},
		BaseEase:      250,
		Location:      time.UTC,
	}
}

func syncVault(t *testing.T, files map[string]string) *vault.SyncResult {
	t.Helper()
	dir := t.TempDir()
	for path, content := range files {
		testutil.CreateNote(t, dir, path, content)
	}
	v := vault.New(vault.Options{
		Dir:        dir,
		Note:       testNoteSettings(),
		SRS:        srs.DefaultSettings(),
		Algorithm:  vault.AlgorithmOSR,
		ReviewTags: []string{"#review"},
		Now:        func() time.Time { return testNow },
	})
	result, err := v.Sync(context.Background())
	require.NoError(t, err)
	return result
}

func TestRunDueReport(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name        string
		files       map[string]string
		year, month int
		wantOutput  []string
		notWant     []string
	}{
		{
			name: "cards and notes",
			files: map[string]string{
				"a.md": "#flashcards/go\nQ1::A1\n<!--SR:!2023-09-01,3,270-->\n\nQ2::A2\n<!--SR:!2023-09-03,3,250-->\n\nQ3::A3\n",
				"b.md": "---\ntags: review\n---\n# B\n",
			},
			wantOutput: []string{
				"flashcards/go                       1      1      3   260.0",
				"2023-09-01      1      0",
				"2023-09-03      1      0",
				"Week:           2      0",
				"2023-09     2 / 1                       1",
				"b.md",
				"new",
			},
		},
		{
			name: "month filter",
			files: map[string]string{
				"a.md": "#flashcards\nQ1::A1\n<!--SR:!2023-10-01,30,270-->\n",
			},
			year:       2023,
			month:      9,
			wantOutput: []string{"flashcards"},
			notWant:    []string{"Scheduled cards by month", "Notes to review"},
		},
		{
			name:       "empty vault",
			files:      map[string]string{"a.md": "# Nothing\n"},
			wantOutput: []string{"No cards or notes found in the vault."},
			notWant:    []string{"Decks"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := syncVault(t, tt.files)

			var output bytes.Buffer
			require.NoError(t, RunDueReport(&output, result, testNow, tt.year, tt.month))
			for _, want := range tt.wantOutput {
				assert.Contains(t, output.String(), want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, output.String(), notWant)
			}
		})
	}
}

func TestRunDueReport_notSynced(t *testing.T) {
	err := RunDueReport(&bytes.Buffer{}, nil, testNow, 0, 0)
	assert.ErrorIs(t, err, vault.ErrNotSynced)
}
