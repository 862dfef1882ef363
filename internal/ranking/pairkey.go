package ranking

import "fmt"

// pairKeySeparator never appears in player ids, which are UUIDs or other
// printable identifiers.
const pairKeySeparator = "\x1f"

// PairKey is the order-independent identity of a two-player team.
// First <= Second always holds.
type PairKey struct {
	First  string
	Second string
}

// NewPairKey normalizes a team into its canonical pair identity, so that
// NewPairKey([A B]) == NewPairKey([B A]).
func NewPairKey(team []string) (PairKey, error) {
	if len(team) != 2 {
		return PairKey{}, fmt.Errorf("%w: got %d", ErrInvalidTeamSize, len(team))
	}
	a, b := team[0], team[1]
	if a == b {
		return PairKey{}, fmt.Errorf("%w: %s", ErrDuplicatePlayer, a)
	}
	if b < a {
		a, b = b, a
	}
	return PairKey{First: a, Second: b}, nil
}

// String renders the key as a single string, e.g. for use as a JSON map key.
func (k PairKey) String() string {
	return k.First + pairKeySeparator + k.Second
}
