package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPairKey(t *testing.T) {
	t.Run("is order independent", func(t *testing.T) {
		ab, err := NewPairKey([]string{"a", "b"})
		require.NoError(t, err)
		ba, err := NewPairKey([]string{"b", "a"})
		require.NoError(t, err)

		assert.Equal(t, ab, ba)
		assert.Equal(t, "a", ab.First)
		assert.Equal(t, "b", ab.Second)
		assert.Equal(t, ab.String(), ba.String())
	})

	t.Run("rejects teams that are not pairs", func(t *testing.T) {
		for _, team := range [][]string{nil, {"a"}, {"a", "b", "c"}} {
			_, err := NewPairKey(team)
			assert.ErrorIs(t, err, ErrInvalidTeamSize, "team %v", team)
		}
	})

	t.Run("rejects the same player twice", func(t *testing.T) {
		_, err := NewPairKey([]string{"a", "a"})
		assert.ErrorIs(t, err, ErrDuplicatePlayer)
	})

	t.Run("distinct pairs never share a string key", func(t *testing.T) {
		k1, err := NewPairKey([]string{"ab", "c"})
		require.NoError(t, err)
		k2, err := NewPairKey([]string{"a", "bc"})
		require.NoError(t, err)
		assert.NotEqual(t, k1.String(), k2.String())
	})
}
