package trophy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProgress_Bounds(t *testing.T) {
	cases := []struct {
		current, target float64
		percentage      int
		complete        bool
	}{
		{0, 10, 0, false},
		{5, 10, 50, false},
		{10, 10, 100, true},
		{25, 10, 100, true},
		{9999, 10000, 99, false},
		{1, 3, 33, false},
	}

	for _, tc := range cases {
		p := NewProgress(tc.current, tc.target)
		assert.Equal(t, tc.percentage, p.Percentage, "percentage for %v/%v", tc.current, tc.target)
		assert.Equal(t, tc.complete, p.IsComplete, "complete for %v/%v", tc.current, tc.target)
		assert.GreaterOrEqual(t, p.Percentage, 0)
		assert.LessOrEqual(t, p.Percentage, 100)
	}
}

func TestNewProgress_ZeroTarget(t *testing.T) {
	p := NewProgress(42, 0)
	assert.Equal(t, 0, p.Percentage, "zero target yields 0%, not a division error")
}

func TestNewProgress_NegativeValuesClamped(t *testing.T) {
	p := NewProgress(-5, -10)
	assert.Equal(t, float64(0), p.CurrentValue)
	assert.Equal(t, float64(0), p.TargetValue)
	assert.Equal(t, 0, p.Percentage)
}
