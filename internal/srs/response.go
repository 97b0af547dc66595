package srs

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidResponse = errors.New("invalid review response")

// Response is the user's answer to a review.
type Response int

const (
	Easy Response = iota
	Good
	Hard
	// Reset returns an item to the new-card state.
	Reset
)

var responseNames = map[Response]string{
	Easy:  "easy",
	Good:  "good",
	Hard:  "hard",
	Reset: "reset",
}

func (r Response) String() string {
	name, ok := responseNames[r]
	if !ok {
		return fmt.Sprintf("Response(%d)", int(r))
	}
	return name
}

func ParseResponse(s string) (Response, error) {
	for r, name := range responseNames {
		if strings.EqualFold(s, name) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrInvalidResponse)
}

func (r Response) MarshalText() ([]byte, error) {
	if _, ok := responseNames[r]; !ok {
		return nil, fmt.Errorf("%d: %w", int(r), ErrInvalidResponse)
	}
	return []byte(r.String()), nil
}

func (r *Response) UnmarshalText(text []byte) error {
	parsed, err := ParseResponse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
