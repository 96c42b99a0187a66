package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/courtside/matchpoint/internal/apperr"
	"github.com/courtside/matchpoint/internal/store"
	"github.com/courtside/matchpoint/internal/testutil"
)

func TestCreateDefaultsToPending(t *testing.T) {
	database := testutil.NewTestDB(t)
	manager := NewManager(database.Queries)
	requester := testutil.SeedPlayer(t, database, "requester")
	opponent := testutil.SeedPlayer(t, database, "opponent")

	start := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	created, err := manager.Create(context.Background(), store.CreateAppointmentParams{
		RequesterID: requester.ID,
		OpponentID:  opponent.ID,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != StatusPending {
		t.Errorf("status = %q, want %q", created.Status, StatusPending)
	}
}

func TestCreateRejectsInvertedTimes(t *testing.T) {
	database := testutil.NewTestDB(t)
	manager := NewManager(database.Queries)
	requester := testutil.SeedPlayer(t, database, "requester")
	opponent := testutil.SeedPlayer(t, database, "opponent")

	start := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	_, err := manager.Create(context.Background(), store.CreateAppointmentParams{
		RequesterID: requester.ID,
		OpponentID:  opponent.ID,
		StartTime:   start,
		EndTime:     start.Add(-time.Hour),
	})
	if !apperr.IsKind(err, apperr.KindBadRequest) {
		t.Fatalf("err = %v, want BadRequest", err)
	}
}

func TestCreateUnknownPlayer(t *testing.T) {
	database := testutil.NewTestDB(t)
	manager := NewManager(database.Queries)
	requester := testutil.SeedPlayer(t, database, "requester")

	start := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	_, err := manager.Create(context.Background(), store.CreateAppointmentParams{
		RequesterID: requester.ID,
		OpponentID:  9999,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
	})
	if !apperr.IsKind(err, apperr.KindBadRequest) {
		t.Fatalf("err = %v, want BadRequest", err)
	}
}

func TestUpdateStatusAndCancel(t *testing.T) {
	database := testutil.NewTestDB(t)
	manager := NewManager(database.Queries)
	requester := testutil.SeedPlayer(t, database, "requester")
	opponent := testutil.SeedPlayer(t, database, "opponent")

	start := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	created, err := manager.Create(context.Background(), store.CreateAppointmentParams{
		RequesterID: requester.ID,
		OpponentID:  opponent.ID,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := manager.UpdateStatus(context.Background(), created.ID, StatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	err = manager.UpdateStatus(context.Background(), created.ID, "postponed")
	if !apperr.IsKind(err, apperr.KindBadRequest) {
		t.Fatalf("bad status err = %v, want BadRequest", err)
	}

	err = manager.UpdateStatus(context.Background(), 9999, StatusConfirmed)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("missing appointment err = %v, want NotFound", err)
	}

	if err := manager.Cancel(context.Background(), created.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	listed, err := manager.ListForPlayer(context.Background(), opponent.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].Status != StatusCancelled {
		t.Fatalf("listed = %+v, want one cancelled appointment", listed)
	}
}

func TestListForPlayerMatchesEitherSide(t *testing.T) {
	database := testutil.NewTestDB(t)
	manager := NewManager(database.Queries)
	a := testutil.SeedPlayer(t, database, "alpha")
	b := testutil.SeedPlayer(t, database, "beta")
	c := testutil.SeedPlayer(t, database, "gamma")

	start := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	for _, pair := range [][2]int64{{a.ID, b.ID}, {c.ID, a.ID}, {b.ID, c.ID}} {
		if _, err := manager.Create(context.Background(), store.CreateAppointmentParams{
			RequesterID: pair[0],
			OpponentID:  pair[1],
			StartTime:   start,
			EndTime:     start.Add(time.Hour),
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	listed, err := manager.ListForPlayer(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Errorf("len(listed) = %d, want 2", len(listed))
	}
}
