package srs

import "math"

// NoteEaseList holds the ease observed for each note in the current sync pass.
type NoteEaseList struct {
	baseEase int
	eases    map[string]float64
}

func NewNoteEaseList(baseEase int) *NoteEaseList {
	return &NoteEaseList{
		baseEase: baseEase,
		eases:    make(map[string]float64),
	}
}

func (l *NoteEaseList) Len() int {
	return len(l.eases)
}

func (l *NoteEaseList) Ease(notePath string) (float64, bool) {
	ease, ok := l.eases[notePath]
	return ease, ok
}

// SetEase records ease for a note, averaging with any ease already recorded.
func (l *NoteEaseList) SetEase(notePath string, ease float64) {
	if existing, ok := l.eases[notePath]; ok {
		ease = (existing + ease) / 2
	}
	l.eases[notePath] = ease
}

// NoteEaseFromCards blends the average ease of a note's scheduled cards with the base
// ease. Notes with few cards stay close to the base ease.
func NoteEaseFromCards(cardEases []int, baseEase int) (float64, bool) {
	if len(cardEases) == 0 {
		return 0, false
	}
	total := 0
	for _, ease := range cardEases {
		total += ease
	}
	average := float64(total) / float64(len(cardEases))
	contribution := math.Min(1, math.Log(float64(len(cardEases))+0.5)/math.Log(64))
	return average*contribution + float64(baseEase)*(1-contribution), true
}
