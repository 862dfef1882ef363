package league

import (
	"database/sql"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrGameFinished is returned when finishing a game that already has a final score.
var ErrGameFinished = errors.New("game is already finished")

// store handles all database operations for the league.
type store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// Community is a group of players that runs competitions.
type Community struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Competition belongs to a community and groups its games.
type Competition struct {
	ID          string    `json:"id"`
	CommunityID string    `json:"community_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Player is a registered player.
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// GameResult is the final score of a game. The buchuda flags are decided by
// the caller and stored as given.
type GameResult struct {
	Team1Score    int  `json:"team1_score"`
	Team2Score    int  `json:"team2_score"`
	IsBuchuda     bool `json:"is_buchuda"`
	IsBuchudaDeRe bool `json:"is_buchuda_de_re"`
}
