package ranking

import (
	"fmt"
	"time"
)

// GameStatus is the lifecycle state of a game.
type GameStatus string

const (
	StatusPending    GameStatus = "pending"
	StatusInProgress GameStatus = "in_progress"
	StatusFinished   GameStatus = "finished"
)

// GameRecord is a single game as supplied by a GameRecordSource.
// IsBuchuda and IsBuchudaDeRe are seen from the winning team: true means
// the winners inflicted that event on the losers.
type GameRecord struct {
	ID            string     `json:"id" msgpack:"id"`
	CompetitionID string     `json:"competition_id" msgpack:"competition_id"`
	CommunityID   string     `json:"community_id" msgpack:"community_id"`
	Team1Players  []string   `json:"team1_players" msgpack:"team1_players"`
	Team2Players  []string   `json:"team2_players" msgpack:"team2_players"`
	Team1Score    int        `json:"team1_score" msgpack:"team1_score"`
	Team2Score    int        `json:"team2_score" msgpack:"team2_score"`
	Status        GameStatus `json:"status" msgpack:"status"`
	IsBuchuda     bool       `json:"is_buchuda" msgpack:"is_buchuda"`
	IsBuchudaDeRe bool       `json:"is_buchuda_de_re" msgpack:"is_buchuda_de_re"`
	CreatedAt     time.Time  `json:"created_at" msgpack:"created_at"`
}

// ScopeKind selects the boundary a ranking is computed over.
type ScopeKind string

const (
	ScopeGlobal      ScopeKind = "global"
	ScopeCommunity   ScopeKind = "community"
	ScopeCompetition ScopeKind = "competition"
)

// Scope is one of Global, Community(id) or Competition(id).
type Scope struct {
	Kind ScopeKind `json:"kind"`
	ID   string    `json:"id,omitempty"`
}

func GlobalScope() Scope { return Scope{Kind: ScopeGlobal} }

func CommunityScope(communityID string) Scope {
	return Scope{Kind: ScopeCommunity, ID: communityID}
}

func CompetitionScope(competitionID string) Scope {
	return Scope{Kind: ScopeCompetition, ID: competitionID}
}

// Contains reports whether a game falls inside the scope.
func (s Scope) Contains(g GameRecord) bool {
	switch s.Kind {
	case ScopeCompetition:
		return g.CompetitionID == s.ID
	case ScopeCommunity:
		return g.CommunityID == s.ID
	default:
		return true
	}
}

func (s Scope) String() string {
	if s.Kind == ScopeGlobal || s.Kind == "" {
		return string(ScopeGlobal)
	}
	return fmt.Sprintf("%s(%s)", s.Kind, s.ID)
}

// Stats holds the cumulative totals shared by player and pair lines.
type Stats struct {
	Wins             int `json:"wins"`
	Losses           int `json:"losses"`
	PointsGained     int `json:"points_gained"`
	PointsLost       int `json:"points_lost"`
	BuchudasGiven    int `json:"buchudas_given"`
	BuchudasTaken    int `json:"buchudas_taken"`
	BuchudaDeReGiven int `json:"buchuda_de_re_given"`
	BuchudaDeReTaken int `json:"buchuda_de_re_taken"`
}

// TotalGames is always Wins + Losses; draws are never counted.
func (s Stats) TotalGames() int {
	return s.Wins + s.Losses
}

// PlayerStatLine is the per-player line for a scope.
type PlayerStatLine struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Stats
	TotalGames int     `json:"total_games"`
	WinRate    float64 `json:"win_rate"`
}

// PairStatLine is the per-pair line for a scope. Player1ID and Player2ID are
// in canonical order.
type PairStatLine struct {
	Player1ID    string    `json:"player1_id"`
	Player2ID    string    `json:"player2_id"`
	DisplayNames [2]string `json:"display_names"`
	Stats
	TotalGames int     `json:"total_games"`
	WinRate    float64 `json:"win_rate"`
}

type RankedPlayerStatLine struct {
	PlayerStatLine
	Rank int `json:"rank"`
}

type RankedPairStatLine struct {
	PairStatLine
	Rank int `json:"rank"`
}

// Warning reports a game that was excluded because its data is inconsistent.
type Warning struct {
	GameID string `json:"game_id"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

// Rankings is the assembled output for one scope.
type Rankings struct {
	Scope    Scope                  `json:"scope"`
	Players  []RankedPlayerStatLine `json:"players"`
	Pairs    []RankedPairStatLine   `json:"pairs"`
	Warnings []Warning              `json:"warnings,omitempty"`
}

// TopPlayers returns at most n ranked players. n <= 0 returns all of them.
func (r Rankings) TopPlayers(n int) []RankedPlayerStatLine {
	if n <= 0 || n >= len(r.Players) {
		return r.Players
	}
	return r.Players[:n]
}

// TopPairs returns at most n ranked pairs. n <= 0 returns all of them.
func (r Rankings) TopPairs(n int) []RankedPairStatLine {
	if n <= 0 || n >= len(r.Pairs) {
		return r.Pairs
	}
	return r.Pairs[:n]
}
