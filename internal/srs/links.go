package srs

//go:generate mockgen -source=links.go -destination=../mocks/srs/mock_links.go -package=mock_srs

// Link is one note linked with the note being scheduled, in either direction.
type Link struct {
	NotePath string
	Count    int
	// Rank weighs the linked note, such as its page rank.
	Rank float64
}

// LinkGraph provides the links of a note. Building the graph is up to the caller.
type LinkGraph interface {
	Links(notePath string) []Link
}

type LinkStat struct {
	TotalLinkCount int
	LinkTotal      float64
	LinkPGTotal    float64
}

// CalcLinkStat sums the links to notes that already have an ease.
func CalcLinkStat(links []Link, eases *NoteEaseList) LinkStat {
	var stat LinkStat
	for _, link := range links {
		ease, ok := eases.Ease(link.NotePath)
		if !ok {
			continue
		}
		stat.LinkTotal += float64(link.Count) * link.Rank * ease
		stat.LinkPGTotal += link.Rank * float64(link.Count)
		stat.TotalLinkCount += link.Count
	}
	return stat
}
