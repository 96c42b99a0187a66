// internal/match/manager.go
package match

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/courtside/matchpoint/internal/apperr"
	"github.com/courtside/matchpoint/internal/store"
)

const (
	StatusPending   = "Pending"
	StatusScheduled = "Scheduled"
	StatusRejected  = "Rejected"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

const notesSeparator = "-----------------"

// Manager owns the match lifecycle: creation in Pending, and the guarded
// Pending -> Scheduled / Pending -> Rejected transitions with their audit
// notes.
type Manager struct {
	queries *store.Queries
}

func NewManager(queries *store.Queries) *Manager {
	return &Manager{queries: queries}
}

type CreateParams struct {
	LeagueID    int64
	MatchType   string
	Slots       Slots
	ScheduledAt sql.NullTime
	Location    sql.NullString
	Status      string
	Notes       sql.NullString
}

// Create persists a new match. Participants are not validated here; the
// league membership of every slot is checked when the match is accepted.
func (m *Manager) Create(ctx context.Context, arg CreateParams) (store.Match, error) {
	status := arg.Status
	if status == "" {
		status = StatusPending
	}
	created, err := m.queries.CreateMatch(ctx, store.CreateMatchParams{
		LeagueID:       arg.LeagueID,
		MatchType:      arg.MatchType,
		Player1ID:      arg.Slots.Player1,
		Player2ID:      arg.Slots.Player2,
		Team1Player1ID: arg.Slots.Team1Player1,
		Team1Player2ID: arg.Slots.Team1Player2,
		Team2Player1ID: arg.Slots.Team2Player1,
		Team2Player2ID: arg.Slots.Team2Player2,
		ScheduledAt:    arg.ScheduledAt,
		Location:       arg.Location,
		Status:         status,
		Notes:          arg.Notes,
	})
	if err != nil {
		if store.IsForeignKeyViolation(err) {
			return store.Match{}, apperr.BadRequest("League or player does not exist")
		}
		return store.Match{}, apperr.Internal(fmt.Errorf("create match: %w", err))
	}
	return created, nil
}

// Accept moves a Pending match to Scheduled. The acting player must belong
// to the match's league, and every assigned participant slot is re-validated
// before the transition. Status and notes are written in a single guarded
// update so a lost race surfaces as Conflict instead of a partial write.
func (m *Manager) Accept(ctx context.Context, matchID, playerID int64, comments sql.NullString) (store.Match, error) {
	details, err := m.queries.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Match{}, apperr.NotFound("Match")
		}
		return store.Match{}, apperr.Internal(fmt.Errorf("load match %d: %w", matchID, err))
	}

	count, err := m.queries.CountLeagueMember(ctx, store.CountLeagueMemberParams{
		PlayerID: playerID,
		LeagueID: details.LeagueID,
	})
	if err != nil {
		return store.Match{}, apperr.Internal(fmt.Errorf("membership lookup for player %d: %w", playerID, err))
	}
	if count == 0 {
		return store.Match{}, apperr.BadRequest("Player is not in the league")
	}

	if err := m.ValidateParticipants(ctx, details.LeagueID, details.MatchType, SlotsOf(details)); err != nil {
		return store.Match{}, err
	}

	notes := decisionNotes(details.Notes, "Accepted", comments, playerID)
	return m.applyDecision(ctx, matchID, StatusScheduled, notes)
}

// Reject moves a Pending match to Rejected. Only the match's existence is
// checked: a rejection does not require the acting player to be a league
// member.
func (m *Manager) Reject(ctx context.Context, matchID, playerID int64, reason sql.NullString) (store.Match, error) {
	details, err := m.queries.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Match{}, apperr.NotFound("Match")
		}
		return store.Match{}, apperr.Internal(fmt.Errorf("load match %d: %w", matchID, err))
	}

	notes := decisionNotes(details.Notes, "Rejected", reason, playerID)
	return m.applyDecision(ctx, matchID, StatusRejected, notes)
}

func (m *Manager) applyDecision(ctx context.Context, matchID int64, status, notes string) (store.Match, error) {
	affected, err := m.queries.UpdateMatchDecision(ctx, store.UpdateMatchDecisionParams{
		ID:     matchID,
		Status: status,
		Notes:  sql.NullString{String: notes, Valid: true},
	})
	if err != nil {
		return store.Match{}, apperr.Internal(fmt.Errorf("update match %d: %w", matchID, err))
	}
	if affected == 0 {
		return store.Match{}, apperr.Conflict("Match is no longer pending")
	}

	updated, err := m.queries.GetMatch(ctx, matchID)
	if err != nil {
		return store.Match{}, apperr.Internal(fmt.Errorf("reload match %d: %w", matchID, err))
	}
	return updated, nil
}

// decisionNotes appends one audit line to the match notes. The four templated
// forms (notes present x detail present) are load-bearing: downstream tooling
// splits the trail on the separator line.
func decisionNotes(existing sql.NullString, action string, detail sql.NullString, playerID int64) string {
	var line string
	if detail.Valid {
		line = fmt.Sprintf("%s\n%s: %s", notesSeparator, action, detail.String)
	} else {
		line = fmt.Sprintf("%s\n%s by player %d", notesSeparator, action, playerID)
	}
	if existing.Valid {
		return existing.String + "\n" + line
	}
	return line
}

func (m *Manager) Get(ctx context.Context, matchID int64) (store.Match, error) {
	details, err := m.queries.GetMatch(ctx, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Match{}, apperr.NotFound("Match")
		}
		return store.Match{}, apperr.Internal(fmt.Errorf("load match %d: %w", matchID, err))
	}
	return details, nil
}

// List returns matches filtered by optional league and status.
func (m *Manager) List(ctx context.Context, leagueID sql.NullInt64, status sql.NullString) ([]store.Match, error) {
	matches, err := m.queries.ListMatches(ctx, store.ListMatchesParams{
		LeagueID: leagueID,
		Status:   status,
	})
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list matches: %w", err))
	}
	return matches, nil
}

// ListForPlayer returns every match where the player occupies any of the six
// participant slots.
func (m *Manager) ListForPlayer(ctx context.Context, playerID int64) ([]store.Match, error) {
	matches, err := m.queries.ListMatchesForPlayer(ctx, playerID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list matches for player %d: %w", playerID, err))
	}
	return matches, nil
}

// ListPendingForPlayer narrows ListForPlayer to Pending matches.
func (m *Manager) ListPendingForPlayer(ctx context.Context, playerID int64) ([]store.Match, error) {
	matches, err := m.queries.ListPendingMatchesForPlayer(ctx, playerID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list pending matches for player %d: %w", playerID, err))
	}
	return matches, nil
}
