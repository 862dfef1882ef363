package league

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/domino-league/internal/ranking"
	"github.com/vmihailenco/msgpack/v5"
)

// maxQueryParams keeps IN lists below SQLite's bound parameter limit.
const maxQueryParams = 500

var _ LeagueStore = (*store)(nil)

// New creates a new LeagueStore.
func New(db *sql.DB) LeagueStore {
	return &store{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *store) CreateCommunity(ctx context.Context, name string) (*Community, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &Community{ID: uuid.NewString(), Name: name, CreatedAt: s.timestamp()}
	_, err := s.db.ExecContext(ctx, "INSERT INTO communities (id, name, created_at) VALUES (?, ?, ?)", c.ID, c.Name, c.CreatedAt.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to create community: %w", err)
	}
	log.Info("Created community", "communityID", c.ID, "name", name)
	return c, nil
}

func (s *store) CreateCompetition(ctx context.Context, communityID, name string) (*Competition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &Competition{ID: uuid.NewString(), CommunityID: communityID, Name: name, CreatedAt: s.timestamp()}
	_, err := s.db.ExecContext(ctx, "INSERT INTO competitions (id, community_id, name, created_at) VALUES (?, ?, ?, ?)", c.ID, c.CommunityID, c.Name, c.CreatedAt.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to create competition: %w", err)
	}
	log.Info("Created competition", "competitionID", c.ID, "communityID", communityID, "name", name)
	return c, nil
}

func (s *store) GetCompetition(ctx context.Context, competitionID string) (*Competition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c Competition
	var createdAt int64
	err := s.db.QueryRowContext(ctx, "SELECT id, community_id, name, created_at FROM competitions WHERE id = ?", competitionID).
		Scan(&c.ID, &c.CommunityID, &c.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("competition %s: %w", competitionID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	c.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &c, nil
}

func (s *store) AddPlayer(ctx context.Context, name string) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &Player{ID: uuid.NewString(), Name: name, CreatedAt: s.timestamp()}
	_, err := s.db.ExecContext(ctx, "INSERT INTO players (id, name, created_at) VALUES (?, ?, ?)", p.ID, p.Name, p.CreatedAt.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to add player: %w", err)
	}
	log.Info("Added player", "playerID", p.ID, "name", name)
	return p, nil
}

func (s *store) AddCommunityMember(ctx context.Context, communityID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "INSERT OR IGNORE INTO community_members (community_id, player_id) VALUES (?, ?)", communityID, playerID)
	if err != nil {
		return fmt.Errorf("failed to add community member: %w", err)
	}
	return nil
}

func (s *store) AddCompetitionPlayer(ctx context.Context, competitionID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "INSERT OR IGNORE INTO competition_players (competition_id, player_id, joined_at) VALUES (?, ?, ?)", competitionID, playerID, s.timestamp().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to add competition player: %w", err)
	}
	return nil
}

// RecordGame stores a new game. The community is taken from the competition,
// and every player of the game is registered as a competition participant.
func (s *store) RecordGame(ctx context.Context, game ranking.GameRecord) (*ranking.GameRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if game.ID == "" {
		game.ID = uuid.NewString()
	}
	if game.Status == "" {
		game.Status = ranking.StatusPending
	}
	if game.CreatedAt.IsZero() {
		game.CreatedAt = s.timestamp()
	}

	team1, err := msgpack.Marshal(game.Team1Players)
	if err != nil {
		return nil, fmt.Errorf("failed to encode team 1: %w", err)
	}
	team2, err := msgpack.Marshal(game.Team2Players)
	if err != nil {
		return nil, fmt.Errorf("failed to encode team 2: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	err = tx.QueryRowContext(ctx, "SELECT community_id FROM competitions WHERE id = ?", game.CompetitionID).Scan(&game.CommunityID)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("competition %s: %w", game.CompetitionID, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	for _, playerID := range append(append([]string{}, game.Team1Players...), game.Team2Players...) {
		var exists int
		err = tx.QueryRowContext(ctx, "SELECT 1 FROM players WHERE id = ?", playerID).Scan(&exists)
		if err != nil {
			tx.Rollback()
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("player %s: %w", playerID, ErrNotFound)
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO games (id, competition_id, community_id, team1_players, team2_players, team1_score, team2_score, status, is_buchuda, is_buchuda_de_re, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, game.ID, game.CompetitionID, game.CommunityID, team1, team2, game.Team1Score, game.Team2Score, game.Status, game.IsBuchuda, game.IsBuchudaDeRe, game.CreatedAt.UnixMilli())
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to record game: %w", err)
	}

	for _, playerID := range append(append([]string{}, game.Team1Players...), game.Team2Players...) {
		_, err = tx.ExecContext(ctx, "INSERT OR IGNORE INTO competition_players (competition_id, player_id, joined_at) VALUES (?, ?, ?)", game.CompetitionID, playerID, game.CreatedAt.UnixMilli())
		if err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to register participant %s: %w", playerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	log.Info("Recorded game", "gameID", game.ID, "competitionID", game.CompetitionID, "status", game.Status)
	return &game, nil
}

// FinishGame stores the final result and marks the game as finished. A
// finished game keeps its score; finishing it again returns ErrGameFinished.
func (s *store) FinishGame(ctx context.Context, gameID string, result GameResult) (*ranking.GameRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE games SET team1_score = ?, team2_score = ?, is_buchuda = ?, is_buchuda_de_re = ?, status = ?
		WHERE id = ? AND status != ?
	`, result.Team1Score, result.Team2Score, result.IsBuchuda, result.IsBuchudaDeRe, ranking.StatusFinished, gameID, ranking.StatusFinished)
	if err != nil {
		return nil, fmt.Errorf("failed to finish game: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Either the game does not exist or its score is final.
		if _, err := s.getGameLocked(ctx, gameID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("game %s: %w", gameID, ErrGameFinished)
	}

	log.Info("Finished game", "gameID", gameID, "team1_score", result.Team1Score, "team2_score", result.Team2Score)
	return s.getGameLocked(ctx, gameID)
}

func (s *store) GetGame(ctx context.Context, gameID string) (*ranking.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getGameLocked(ctx, gameID)
}

func (s *store) getGameLocked(ctx context.Context, gameID string) (*ranking.GameRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE id = ?`, gameID)
	game, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return game, nil
}

// FetchFinishedGames returns the finished games of a scope, oldest first.
func (s *store) FetchFinishedGames(ctx context.Context, scope ranking.Scope) ([]ranking.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + gameColumns + ` FROM games WHERE status = ?`
	args := []any{ranking.StatusFinished}
	switch scope.Kind {
	case ranking.ScopeCompetition:
		query += " AND competition_id = ?"
		args = append(args, scope.ID)
	case ranking.ScopeCommunity:
		query += " AND community_id = ?"
		args = append(args, scope.ID)
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	games := []ranking.GameRecord{}
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *game)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	log.Debug("Fetched finished games", "scope", scope, "count", len(games))
	return games, nil
}

// FetchParticipants lists the players registered for a competition in the
// order they joined.
func (s *store) FetchParticipants(ctx context.Context, competitionID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT player_id FROM competition_players WHERE competition_id = ? ORDER BY joined_at, player_id", competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DisplayNames resolves player names. Unknown or unnamed players are left out.
func (s *store) DisplayNames(ctx context.Context, playerIDs []string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make(map[string]string, len(playerIDs))
	for start := 0; start < len(playerIDs); start += maxQueryParams {
		end := min(start+maxQueryParams, len(playerIDs))
		batch := playerIDs[start:end]

		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(batch)), ",")
		rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM players WHERE id IN ("+placeholders+")", ToAnySlice(batch)...)
		if err != nil {
			return nil, fmt.Errorf("failed to query player names: %w", err)
		}
		for rows.Next() {
			var id string
			var name sql.NullString
			if err := rows.Scan(&id, &name); err != nil {
				rows.Close()
				return nil, err
			}
			if name.Valid && name.String != "" {
				names[id] = name.String
			}
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, err
		}
	}
	return names, nil
}

func (s *store) timestamp() time.Time {
	return time.UnixMilli(s.now().UnixMilli()).UTC()
}

const gameColumns = `id, competition_id, community_id, team1_players, team2_players, team1_score, team2_score, status, is_buchuda, is_buchuda_de_re, created_at`

// scanGame is a helper function to scan a single game row.
func scanGame(scanner interface{ Scan(...any) error }) (*ranking.GameRecord, error) {
	var game ranking.GameRecord
	var team1, team2 []byte
	var createdAt int64

	err := scanner.Scan(
		&game.ID, &game.CompetitionID, &game.CommunityID, &team1, &team2,
		&game.Team1Score, &game.Team2Score, &game.Status, &game.IsBuchuda, &game.IsBuchudaDeRe, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	if err := msgpack.Unmarshal(team1, &game.Team1Players); err != nil {
		return nil, fmt.Errorf("failed to decode team 1 of game %s: %w", game.ID, err)
	}
	if err := msgpack.Unmarshal(team2, &game.Team2Players); err != nil {
		return nil, fmt.Errorf("failed to decode team 2 of game %s: %w", game.ID, err)
	}
	game.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &game, nil
}

func ToAnySlice[T any](s []T) []any {
	a := make([]any, len(s))
	for i, v := range s {
		a[i] = v
	}
	return a
}
