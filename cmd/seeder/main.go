package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/domino-league/internal/database"
	"github.com/mauv0809/domino-league/internal/league"
	"github.com/mauv0809/domino-league/internal/ranking"
)

// Simplified config loading for the script
func loadConfig() (dbName, primaryURL, authToken string) {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	dbName, ok := os.LookupEnv("DB_NAME")
	if !ok {
		log.Fatalf("Error: Required environment variable %s is not set.", "DB_NAME")
	}
	return dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN")
}

var playerNames = []string{"Ana", "Beto", "Caro", "Dani", "Eva", "Fede", "Gabi", "Hugo"}

func main() {
	numGames := flag.Int("games", 1000, "number of finished games to create")
	flag.Parse()

	log.Info("Starting database seeder...")
	dbName, primaryURL, authToken := loadConfig()

	db, teardown, err := database.InitDB(dbName, primaryURL, authToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	ctx := context.Background()
	store := league.New(db)

	community, err := store.CreateCommunity(ctx, "Seeded Domino Club")
	if err != nil {
		log.Fatalf("Failed to create community: %s", err)
	}
	competition, err := store.CreateCompetition(ctx, community.ID, "Seeded Championship")
	if err != nil {
		log.Fatalf("Failed to create competition: %s", err)
	}

	players := make([]string, 0, len(playerNames))
	for _, name := range playerNames {
		p, err := store.AddPlayer(ctx, name)
		if err != nil {
			log.Fatalf("Failed to insert player %s: %s", name, err)
		}
		if err := store.AddCommunityMember(ctx, community.ID, p.ID); err != nil {
			log.Fatalf("Failed to add player %s to community: %s", name, err)
		}
		players = append(players, p.ID)
	}
	log.Info("Ensured players exist.", "count", len(players))

	log.Info("Preparing to insert finished games...", "total", *numGames)
	startTime := time.Now()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < *numGames; i++ {
		order := rng.Perm(len(players))
		game, err := store.RecordGame(ctx, ranking.GameRecord{
			CompetitionID: competition.ID,
			Team1Players:  []string{players[order[0]], players[order[1]]},
			Team2Players:  []string{players[order[2]], players[order[3]]},
		})
		if err != nil {
			log.Fatalf("Failed to record game: %s", err)
		}

		if _, err := store.FinishGame(ctx, game.ID, randomResult(rng)); err != nil {
			log.Fatalf("Failed to finish game %s: %s", game.ID, err)
		}
		if (i+1)%100 == 0 {
			log.Info("Inserted batch", "completed", i+1, "total", *numGames)
		}
	}

	log.Info("Successfully inserted all games.",
		"duration", time.Since(startTime),
		"communityID", community.ID,
		"competitionID", competition.ID,
	)
}

// randomResult plays a game to 200 points. A shutout counts as a buchuda.
func randomResult(rng *rand.Rand) league.GameResult {
	loser := rng.Intn(200)
	result := league.GameResult{
		IsBuchuda:     loser == 0,
		IsBuchudaDeRe: loser == 0 && rng.Intn(10) == 0,
	}
	if rng.Intn(2) == 0 {
		result.Team1Score, result.Team2Score = 200, loser
	} else {
		result.Team1Score, result.Team2Score = loser, 200
	}
	return result
}
