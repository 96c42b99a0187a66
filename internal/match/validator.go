// internal/match/validator.go
package match

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/courtside/matchpoint/internal/apperr"
	"github.com/courtside/matchpoint/internal/store"
)

const (
	TypeSingles = "singles"
	TypeDoubles = "doubles"
)

// Slots holds the six participant identifier slots of a match. Singles
// matches use Player1/Player2; doubles matches use the four team slots.
// Invalid (null) slots are unassigned and skipped by validation.
type Slots struct {
	Player1      sql.NullInt64
	Player2      sql.NullInt64
	Team1Player1 sql.NullInt64
	Team1Player2 sql.NullInt64
	Team2Player1 sql.NullInt64
	Team2Player2 sql.NullInt64
}

// SlotsOf extracts the participant slots from a stored match.
func SlotsOf(m store.Match) Slots {
	return Slots{
		Player1:      m.Player1ID,
		Player2:      m.Player2ID,
		Team1Player1: m.Team1Player1ID,
		Team1Player2: m.Team1Player2ID,
		Team2Player1: m.Team2Player1ID,
		Team2Player2: m.Team2Player2ID,
	}
}

// slotCheck pairs a slot with the message returned when its player is not a
// league member. Singles messages omit the player id, doubles messages
// include it; both follow the wording clients already parse.
type slotCheck struct {
	id      sql.NullInt64
	message func(id int64) string
}

// ValidateParticipants verifies that every assigned participant slot refers
// to a current member of the league. Slots are checked in declaration order
// and the first non-member short-circuits with a slot-specific BadRequest.
// A failed membership lookup is a storage error, not a negative result.
func (m *Manager) ValidateParticipants(ctx context.Context, leagueID int64, matchType string, slots Slots) error {
	var checks []slotCheck
	switch strings.ToLower(matchType) {
	case TypeSingles:
		checks = []slotCheck{
			{slots.Player1, func(int64) string { return "Player 1 is not in the league" }},
			{slots.Player2, func(int64) string { return "Player 2 is not in the league" }},
		}
	case TypeDoubles:
		checks = []slotCheck{
			{slots.Team1Player1, func(id int64) string { return fmt.Sprintf("Team 1 Player 1 (%d) is not in the league", id) }},
			{slots.Team1Player2, func(id int64) string { return fmt.Sprintf("Team 1 Player 2 (%d) is not in the league", id) }},
			{slots.Team2Player1, func(id int64) string { return fmt.Sprintf("Team 2 Player 1 (%d) is not in the league", id) }},
			{slots.Team2Player2, func(id int64) string { return fmt.Sprintf("Team 2 Player 2 (%d) is not in the league", id) }},
		}
	}

	for _, check := range checks {
		if !check.id.Valid {
			continue
		}
		count, err := m.queries.CountLeagueMember(ctx, store.CountLeagueMemberParams{
			PlayerID: check.id.Int64,
			LeagueID: leagueID,
		})
		if err != nil {
			return apperr.Internal(fmt.Errorf("membership lookup for player %d: %w", check.id.Int64, err))
		}
		if count == 0 {
			return apperr.BadRequest(check.message(check.id.Int64))
		}
	}
	return nil
}
