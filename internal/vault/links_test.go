package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/srnotes/internal/srs"
)

func TestBuildLinkGraph(t *testing.T) {
	g := buildLinkGraph(map[string]string{
		"a.md":       "[[b]] [[b#Section|alias]] [[dir/c]] [[missing]] [[a]]",
		"b.md":       "[[a.md]]",
		"dir/c.md":   "[[c]] [[b]]",
		"other/c.md": "",
	})

	tests := []struct {
		name     string
		notePath string
		want     []srs.Link
	}{
		{
			name:     "outgoing then incoming",
			notePath: "a.md",
			want: []srs.Link{
				{NotePath: "b.md", Count: 2, Rank: 1},
				{NotePath: "dir/c.md", Count: 1, Rank: 1},
				{NotePath: "b.md", Count: 1, Rank: 1},
			},
		},
		{
			name:     "resolved by base name",
			notePath: "b.md",
			want: []srs.Link{
				{NotePath: "a.md", Count: 1, Rank: 1},
				{NotePath: "a.md", Count: 2, Rank: 1},
				{NotePath: "dir/c.md", Count: 1, Rank: 1},
			},
		},
		{
			name:     "no links",
			notePath: "other/c.md",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Links(tt.notePath))
		})
	}
}
