// Package queue orders due cards for review, one deck per topic path.
package queue

import (
	"errors"
	"fmt"
	"sort"

	"github.com/at-ishikawa/srnotes/internal/random"
	"github.com/at-ishikawa/srnotes/internal/topicpath"
)

var ErrEmptyQueue = errors.New("no cards to review")

// Item points at one card of a note.
type Item struct {
	NotePath      string
	QuestionIndex int
	CardIndex     int
	TopicPath     topicpath.TopicPath
	Front         string
	Back          string
	IsNew         bool
}

type Deck struct {
	TopicPath topicpath.TopicPath
	Items     []Item
}

// Queue hands out items deck by deck. In random order a deck is drawn with a weight equal
// to its remaining cards and the offset of the draw picks the card inside the deck.
type Queue struct {
	decks       []*Deck
	sampler     *random.WeightedRandomNumber[int]
	randomOrder bool
}

func New(items []Item, provider random.Provider, randomOrder bool) *Queue {
	byPath := make(map[string]*Deck)
	var decks []*Deck
	for _, item := range items {
		key := item.TopicPath.String()
		deck, ok := byPath[key]
		if !ok {
			deck = &Deck{TopicPath: item.TopicPath}
			byPath[key] = deck
			decks = append(decks, deck)
		}
		deck.Items = append(deck.Items, item)
	}
	sort.SliceStable(decks, func(i, j int) bool {
		return decks[i].TopicPath.String() < decks[j].TopicPath.String()
	})

	return &Queue{
		decks:       decks,
		sampler:     random.NewWeightedRandomNumber[int](provider),
		randomOrder: randomOrder,
	}
}

func (q *Queue) Len() int {
	total := 0
	for _, deck := range q.decks {
		total += len(deck.Items)
	}
	return total
}

// Decks returns the decks with cards left, ordered by topic path.
func (q *Queue) Decks() []Deck {
	decks := make([]Deck, 0, len(q.decks))
	for _, deck := range q.decks {
		decks = append(decks, *deck)
	}
	return decks
}

// Next removes and returns the next item to review.
func (q *Queue) Next() (Item, error) {
	if len(q.decks) == 0 {
		return Item{}, ErrEmptyQueue
	}

	deckIndex, itemIndex := 0, 0
	if q.randomOrder {
		weights := make([]random.Weight[int], 0, len(q.decks))
		for i, deck := range q.decks {
			weights = append(weights, random.Weight[int]{Value: i, Weight: len(deck.Items)})
		}
		var err error
		deckIndex, itemIndex, err = q.sampler.RandomValues(weights)
		if err != nil {
			return Item{}, fmt.Errorf("sampler.RandomValues() > %w", err)
		}
	}

	deck := q.decks[deckIndex]
	item := deck.Items[itemIndex]
	deck.Items = append(deck.Items[:itemIndex], deck.Items[itemIndex+1:]...)
	if len(deck.Items) == 0 {
		q.decks = append(q.decks[:deckIndex], q.decks[deckIndex+1:]...)
	}
	return item, nil
}
