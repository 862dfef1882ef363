package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompetitionRanks(t *testing.T) {
	tests := []struct {
		name     string
		keys     []int
		expected []int
	}{
		{name: "empty", keys: []int{}, expected: []int{}},
		{name: "single entry", keys: []int{3}, expected: []int{1}},
		{name: "all distinct", keys: []int{9, 7, 4}, expected: []int{1, 2, 3}},
		{name: "ties resume at index", keys: []int{5, 5, 5, 3, 3, 1}, expected: []int{1, 1, 1, 4, 4, 6}},
		{name: "all tied", keys: []int{2, 2, 2, 2}, expected: []int{1, 1, 1, 1}},
		{name: "zero keys tie", keys: []int{4, 0, 0}, expected: []int{1, 2, 2}},
		{name: "mixed groups", keys: []int{8, 8, 6, 5, 5, 5, 1}, expected: []int{1, 1, 3, 4, 4, 4, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompetitionRanks(tt.keys))
		})
	}
}

func TestCompetitionRanks_LargeInput(t *testing.T) {
	keys := make([]int, 1_000_000)
	ranks := CompetitionRanks(keys)
	assert.Len(t, ranks, len(keys))
	assert.Equal(t, 1, ranks[len(ranks)-1])
}
