// Package random provides injectable random sources and a weighted sampler.
package random

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	ErrInvalidWeight = errors.New("random: weight must be a positive integer")
	ErrNoWeights     = errors.New("random: no weights given")
)

// Provider returns a uniformly distributed integer in [lower, upper].
type Provider interface {
	Integer(lower, upper int) int
}

type mathProvider struct {
	rng *rand.Rand
}

// NewProvider returns a Provider seeded with seed. The same seed always produces the
// same sequence.
func NewProvider(seed int64) Provider {
	return &mathProvider{
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (p *mathProvider) Integer(lower, upper int) int {
	if upper <= lower {
		return lower
	}
	return lower + p.rng.Intn(upper-lower+1)
}

// StaticProvider returns a fixed sequence of values, clamped to the requested range.
// Once the sequence is exhausted it starts over.
type StaticProvider struct {
	values []int
	next   int
}

func NewStaticProvider(values ...int) *StaticProvider {
	return &StaticProvider{values: values}
}

func (p *StaticProvider) Integer(lower, upper int) int {
	if len(p.values) == 0 {
		return lower
	}
	value := p.values[p.next%len(p.values)]
	p.next++
	return min(max(value, lower), upper)
}

// Weight is one bucket of a weighted draw.
type Weight[T any] struct {
	Value  T
	Weight int
}

// WeightedRandomNumber draws a bucket with probability proportional to its weight.
type WeightedRandomNumber[T any] struct {
	provider Provider
}

func NewWeightedRandomNumber[T any](provider Provider) *WeightedRandomNumber[T] {
	return &WeightedRandomNumber[T]{provider: provider}
}

// RandomValues draws an integer in [0, total-1] and walks the buckets in order. It returns
// the value of the bucket containing the draw and the draw's offset inside that bucket.
//
// A non-positive weight is a caller bug and is reported as ErrInvalidWeight.
func (w *WeightedRandomNumber[T]) RandomValues(weights []Weight[T]) (T, int, error) {
	var zero T
	if len(weights) == 0 {
		return zero, 0, ErrNoWeights
	}

	total := 0
	for _, weight := range weights {
		if weight.Weight <= 0 {
			return zero, 0, fmt.Errorf("%w: %d for %v", ErrInvalidWeight, weight.Weight, weight.Value)
		}
		total += weight.Weight
	}

	draw := w.provider.Integer(0, total-1)
	cumulative := 0
	for _, weight := range weights {
		if draw < cumulative+weight.Weight {
			return weight.Value, draw - cumulative, nil
		}
		cumulative += weight.Weight
	}

	// Only reachable when the provider returns a value outside [0, total-1].
	last := weights[len(weights)-1]
	return last.Value, last.Weight - 1, nil
}
