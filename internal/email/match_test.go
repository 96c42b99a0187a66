package email

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/courtside/matchpoint/internal/store"
	"github.com/courtside/matchpoint/internal/testutil"
)

type fakeSender struct {
	mu         sync.Mutex
	recipients []string
	done       chan struct{}
	expect     int
}

func newFakeSender(expect int) *fakeSender {
	return &fakeSender{done: make(chan struct{}), expect: expect}
}

func (s *fakeSender) Send(ctx context.Context, recipient, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipients = append(s.recipients, recipient)
	if len(s.recipients) == s.expect {
		close(s.done)
	}
	return nil
}

func TestMatchDecidedNotifiesEachParticipantOnce(t *testing.T) {
	database := testutil.NewTestDB(t)
	player1 := testutil.SeedPlayer(t, database, "notify1")
	player2 := testutil.SeedPlayer(t, database, "notify2")

	sender := newFakeSender(2)
	notifier := NewMatchNotifier(database.Queries, sender)
	logger := zerolog.Nop()

	// player1 occupies two slots; their address must appear once.
	m := store.Match{
		ID:        1,
		LeagueID:  1,
		MatchType: "doubles",
		Player1ID: sql.NullInt64{Int64: player1.ID, Valid: true},
		Team1Player1ID: sql.NullInt64{
			Int64: player1.ID, Valid: true,
		},
		Team2Player1ID: sql.NullInt64{
			Int64: player2.ID, Valid: true,
		},
	}
	notifier.MatchDecided(context.Background(), m, "accepted", &logger)

	select {
	case <-sender.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notifications were not sent")
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	if len(sender.recipients) != 2 {
		t.Fatalf("recipients = %v, want 2 distinct", sender.recipients)
	}
}

func TestNilNotifierIsSafe(t *testing.T) {
	var notifier *MatchNotifier
	logger := zerolog.Nop()
	notifier.MatchDecided(context.Background(), store.Match{}, "rejected", &logger)

	if got := NewMatchNotifier(nil, nil); got != nil {
		t.Error("NewMatchNotifier without a sender should return nil")
	}
}
