package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightedRandomNumber_RandomValues(t *testing.T) {
	weights := []Weight[string]{
		{Value: "a", Weight: 2},
		{Value: "b", Weight: 3},
		{Value: "c", Weight: 1},
	}

	tests := []struct {
		name      string
		draw      int
		wantValue string
		wantIndex int
	}{
		{name: "first slot of first bucket", draw: 0, wantValue: "a", wantIndex: 0},
		{name: "last slot of first bucket", draw: 1, wantValue: "a", wantIndex: 1},
		{name: "first slot of second bucket", draw: 2, wantValue: "b", wantIndex: 0},
		{name: "middle of second bucket", draw: 3, wantValue: "b", wantIndex: 1},
		{name: "last bucket", draw: 5, wantValue: "c", wantIndex: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWeightedRandomNumber[string](NewStaticProvider(tt.draw))
			value, index, err := w.RandomValues(weights)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValue, value)
			assert.Equal(t, tt.wantIndex, index)
		})
	}
}

func TestWeightedRandomNumber_InvalidWeights(t *testing.T) {
	w := NewWeightedRandomNumber[int](NewStaticProvider(0))

	_, _, err := w.RandomValues([]Weight[int]{{Value: 1, Weight: 2}, {Value: 2, Weight: 0}})
	assert.ErrorIs(t, err, ErrInvalidWeight)

	_, _, err = w.RandomValues([]Weight[int]{{Value: 1, Weight: -1}})
	assert.ErrorIs(t, err, ErrInvalidWeight)

	_, _, err = w.RandomValues(nil)
	assert.ErrorIs(t, err, ErrNoWeights)
}

func TestNewProvider_Deterministic(t *testing.T) {
	first := NewProvider(42)
	second := NewProvider(42)
	for i := 0; i < 20; i++ {
		a := first.Integer(3, 9)
		b := second.Integer(3, 9)
		assert.Equal(t, a, b)
		assert.GreaterOrEqual(t, a, 3)
		assert.LessOrEqual(t, a, 9)
	}
	assert.Equal(t, 4, first.Integer(4, 4))
}

func TestStaticProvider_Clamps(t *testing.T) {
	p := NewStaticProvider(-5, 100, 2)
	assert.Equal(t, 0, p.Integer(0, 3))
	assert.Equal(t, 3, p.Integer(0, 3))
	assert.Equal(t, 2, p.Integer(0, 3))
	assert.Equal(t, 0, p.Integer(0, 3))
}
