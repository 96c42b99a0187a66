package email

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/courtside/matchpoint/internal/store"
)

const notifyTimeout = 5 * time.Second

// MatchNotifier emails every assigned participant when a match decision
// lands. Delivery is best-effort: failures are logged, never surfaced to the
// request that triggered them.
type MatchNotifier struct {
	queries *store.Queries
	sender  Sender
}

// NewMatchNotifier returns a notifier, or nil when no sender is configured.
// A nil notifier is safe to call and does nothing.
func NewMatchNotifier(queries *store.Queries, sender Sender) *MatchNotifier {
	if sender == nil {
		return nil
	}
	return &MatchNotifier{queries: queries, sender: sender}
}

// MatchDecided notifies the participants of m that it was accepted or
// rejected. Sending happens on a background goroutine with its own timeout.
func (n *MatchNotifier) MatchDecided(ctx context.Context, m store.Match, action string, logger *zerolog.Logger) {
	if n == nil {
		return
	}

	subject := fmt.Sprintf("Match #%d %s", m.ID, action)
	body := fmt.Sprintf("Your %s match in league %d has been %s.", m.MatchType, m.LeagueID, action)
	if m.Notes.Valid {
		body += "\n\n" + m.Notes.String
	}

	recipients := n.participantEmails(ctx, m, logger)
	if len(recipients) == 0 {
		return
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		for _, recipient := range recipients {
			if err := n.sender.Send(sendCtx, recipient, subject, body); err != nil && logger != nil {
				logger.Error().Err(err).Str("recipient", recipient).Int64("match_id", m.ID).Msg("Failed to send match notification")
			}
		}
	}()
}

func (n *MatchNotifier) participantEmails(ctx context.Context, m store.Match, logger *zerolog.Logger) []string {
	slots := []sql.NullInt64{
		m.Player1ID, m.Player2ID,
		m.Team1Player1ID, m.Team1Player2ID, m.Team2Player1ID, m.Team2Player2ID,
	}

	seen := make(map[int64]struct{}, len(slots))
	var recipients []string
	for _, slot := range slots {
		if !slot.Valid {
			continue
		}
		if _, ok := seen[slot.Int64]; ok {
			continue
		}
		seen[slot.Int64] = struct{}{}

		player, err := n.queries.GetPlayer(ctx, slot.Int64)
		if err != nil {
			if logger != nil {
				logger.Error().Err(err).Int64("player_id", slot.Int64).Msg("Failed to load player for match notification")
			}
			continue
		}
		if player.Email != "" {
			recipients = append(recipients, player.Email)
		}
	}
	return recipients
}
