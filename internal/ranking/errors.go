package ranking

import "errors"

var (
	ErrInvalidTeamSize   = errors.New("pair aggregation requires exactly two players")
	ErrDuplicatePlayer   = errors.New("team lists the same player twice")
	ErrTiedScore         = errors.New("finished game has tied scores")
	ErrNegativeScore     = errors.New("finished game has a negative score")
	ErrEmptyTeam         = errors.New("finished game has a team without players")
	ErrPlayerOnBothSides = errors.New("player appears on both teams")
)
