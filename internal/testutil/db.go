package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/courtside/matchpoint/internal/db"
	"github.com/courtside/matchpoint/internal/store"
)

// NewTestDB creates a temporary SQLite database with migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

// SeedPlayer inserts a player with generated unique name/email and returns it.
func SeedPlayer(t *testing.T, database *db.DB, name string) store.Player {
	t.Helper()

	player, err := database.Queries.CreatePlayer(context.Background(), store.CreatePlayerParams{
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("seed player %q: %v", name, err)
	}
	return player
}

// SeedLeague inserts a league created by the given player, without seeding a
// membership.
func SeedLeague(t *testing.T, database *db.DB, name string, createdBy int64) store.League {
	t.Helper()

	league, err := database.Queries.CreateLeague(context.Background(), store.CreateLeagueParams{
		Name:      name,
		IsPublic:  true,
		CreatedBy: createdBy,
	})
	if err != nil {
		t.Fatalf("seed league %q: %v", name, err)
	}
	return league
}

// AddMember adds a player to a league with the given role.
func AddMember(t *testing.T, database *db.DB, leagueID, playerID int64, role string) {
	t.Helper()

	err := database.Queries.AddLeagueMember(context.Background(), store.AddLeagueMemberParams{
		PlayerID: playerID,
		LeagueID: leagueID,
		Role:     role,
		JoinedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("add member %d to league %d: %v", playerID, leagueID, err)
	}
}
