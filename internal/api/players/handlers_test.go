package players

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/courtside/matchpoint/internal/appointment"
	"github.com/courtside/matchpoint/internal/league"
	"github.com/courtside/matchpoint/internal/match"
	"github.com/courtside/matchpoint/internal/store"
	"github.com/courtside/matchpoint/internal/testutil"
)

func TestCalendarAggregatesMatchesAndAppointments(t *testing.T) {
	database := testutil.NewTestDB(t)
	matchManager := match.NewManager(database.Queries)
	appointmentManager := appointment.NewManager(database.Queries)
	handlers := NewHandlers(database.Queries, matchManager, appointmentManager)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/players/{player_id}", handlers.HandleProfile)
	mux.HandleFunc("GET /api/players/{player_id}/calendar", handlers.HandleCalendar)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	player := testutil.SeedPlayer(t, database, "busy")
	rival := testutil.SeedPlayer(t, database, "rival")
	seedLeague := testutil.SeedLeague(t, database, "City Open", player.ID)
	testutil.AddMember(t, database, seedLeague.ID, player.ID, league.RolePlayer)
	testutil.AddMember(t, database, seedLeague.ID, rival.ID, league.RolePlayer)

	if _, err := matchManager.Create(context.Background(), match.CreateParams{
		LeagueID:  seedLeague.ID,
		MatchType: match.TypeSingles,
		Slots: match.Slots{
			Player1: sql.NullInt64{Int64: player.ID, Valid: true},
			Player2: sql.NullInt64{Int64: rival.ID, Valid: true},
		},
	}); err != nil {
		t.Fatalf("create match: %v", err)
	}

	start := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	if _, err := appointmentManager.Create(context.Background(), store.CreateAppointmentParams{
		RequesterID: rival.ID,
		OpponentID:  player.ID,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
	}); err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	resp, err := http.Get(fmt.Sprintf("%s/api/players/%d/calendar", server.URL, player.ID))
	if err != nil {
		t.Fatalf("GET calendar: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body struct {
		PlayerID     int64               `json:"player_id"`
		Matches      []store.Match       `json:"matches"`
		Appointments []store.Appointment `json:"appointments"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.PlayerID != player.ID {
		t.Errorf("player_id = %d, want %d", body.PlayerID, player.ID)
	}
	if len(body.Matches) != 1 || len(body.Appointments) != 1 {
		t.Errorf("calendar = %d matches / %d appointments, want 1/1", len(body.Matches), len(body.Appointments))
	}

	missing, err := http.Get(server.URL + "/api/players/9999/calendar")
	if err != nil {
		t.Fatalf("GET missing calendar: %v", err)
	}
	defer missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("missing player status = %d, want 404", missing.StatusCode)
	}
}

func TestProfileHidesPasswordHash(t *testing.T) {
	database := testutil.NewTestDB(t)
	handlers := NewHandlers(database.Queries, match.NewManager(database.Queries), appointment.NewManager(database.Queries))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/players/{player_id}", handlers.HandleProfile)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	player := testutil.SeedPlayer(t, database, "private")

	resp, err := http.Get(fmt.Sprintf("%s/api/players/%d", server.URL, player.ID))
	if err != nil {
		t.Fatalf("GET profile: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := raw["password_hash"]; ok {
		t.Error("profile response includes password_hash")
	}
	if raw["name"] != "private" {
		t.Errorf("name = %v", raw["name"])
	}
}
