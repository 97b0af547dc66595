package vault

import (
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/at-ishikawa/srnotes/internal/srs"
)

var wikiLinkPattern = regexp.MustCompile(`\[\[([^\]|#]+)(?:#[^\]|]*)?(?:\|[^\]]*)?\]\]`)

// LinkGraph counts the wiki links between notes. Every note has rank 1.
type LinkGraph struct {
	outgoing map[string]map[string]int
	incoming map[string]map[string]int
}

func newLinkGraph() *LinkGraph {
	return &LinkGraph{
		outgoing: make(map[string]map[string]int),
		incoming: make(map[string]map[string]int),
	}
}

// buildLinkGraph resolves the [[links]] of each note by path without extension or by base
// name. Links to unknown notes are ignored.
func buildLinkGraph(texts map[string]string) *LinkGraph {
	byName := make(map[string]string, len(texts)*2)
	paths := make([]string, 0, len(texts))
	for p := range texts {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		withoutExt := strings.TrimSuffix(p, path.Ext(p))
		byName[withoutExt] = p
		if _, ok := byName[path.Base(withoutExt)]; !ok {
			byName[path.Base(withoutExt)] = p
		}
	}

	g := newLinkGraph()
	for _, source := range paths {
		for _, m := range wikiLinkPattern.FindAllStringSubmatch(texts[source], -1) {
			name := strings.TrimSuffix(strings.TrimSpace(m[1]), ".md")
			target, ok := byName[name]
			if !ok || target == source {
				continue
			}
			g.add(source, target)
		}
	}
	return g
}

func (g *LinkGraph) add(source, target string) {
	if g.outgoing[source] == nil {
		g.outgoing[source] = make(map[string]int)
	}
	if g.incoming[target] == nil {
		g.incoming[target] = make(map[string]int)
	}
	g.outgoing[source][target]++
	g.incoming[target][source]++
}

// Links returns the outgoing links of notePath followed by its incoming links.
func (g *LinkGraph) Links(notePath string) []srs.Link {
	var links []srs.Link
	for _, counts := range []map[string]int{g.outgoing[notePath], g.incoming[notePath]} {
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			links = append(links, srs.Link{NotePath: name, Count: counts[name], Rank: 1})
		}
	}
	return links
}
