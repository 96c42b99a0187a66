// internal/league/manager.go
package league

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/courtside/matchpoint/internal/apperr"
	appdb "github.com/courtside/matchpoint/internal/db"
	"github.com/courtside/matchpoint/internal/store"
)

const (
	RoleAdmin  = "admin"
	RolePlayer = "player"

	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// Manager owns league membership: league creation with its seeded admin,
// join/leave, role changes, and the join-request workflow. It holds the DB
// handle rather than bare queries because league creation spans two inserts
// in one transaction.
type Manager struct {
	db *appdb.DB
}

func NewManager(db *appdb.DB) *Manager {
	return &Manager{db: db}
}

type CreateLeagueParams struct {
	Name        string
	Description sql.NullString
	SkillLevel  sql.NullString
	IsPublic    bool
	CreatedBy   int64
}

// CreateLeague inserts the league row and the creator's admin membership in
// a single transaction. A failure of either insert rolls back both, so no
// league can exist without an admin member.
func (m *Manager) CreateLeague(ctx context.Context, arg CreateLeagueParams) (store.League, error) {
	var created store.League
	err := m.db.RunInTx(ctx, func(tx *appdb.DB) error {
		league, err := tx.Queries.CreateLeague(ctx, store.CreateLeagueParams{
			Name:        arg.Name,
			Description: arg.Description,
			SkillLevel:  arg.SkillLevel,
			IsPublic:    arg.IsPublic,
			CreatedBy:   arg.CreatedBy,
		})
		if err != nil {
			return err
		}
		if err := tx.Queries.AddLeagueMember(ctx, store.AddLeagueMemberParams{
			PlayerID: arg.CreatedBy,
			LeagueID: league.ID,
			Role:     RoleAdmin,
			JoinedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}
		created = league
		return nil
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return store.League{}, apperr.Conflict("League name is already taken")
		}
		if store.IsForeignKeyViolation(err) {
			return store.League{}, apperr.BadRequest("Creator does not exist")
		}
		return store.League{}, apperr.Internal(fmt.Errorf("create league: %w", err))
	}
	return created, nil
}

func (m *Manager) GetLeague(ctx context.Context, leagueID int64) (store.League, error) {
	league, err := m.db.Queries.GetLeague(ctx, leagueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.League{}, apperr.NotFound("League")
		}
		return store.League{}, apperr.Internal(fmt.Errorf("load league %d: %w", leagueID, err))
	}
	return league, nil
}

func (m *Manager) ListLeagues(ctx context.Context) ([]store.League, error) {
	leagues, err := m.db.Queries.ListLeagues(ctx)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list leagues: %w", err))
	}
	return leagues, nil
}

// Join adds the player to the league with role "player". The composite
// primary key on (player_id, league_id) turns a repeat join into Conflict.
func (m *Manager) Join(ctx context.Context, leagueID, playerID int64) error {
	if _, err := m.GetLeague(ctx, leagueID); err != nil {
		return err
	}
	err := m.db.Queries.AddLeagueMember(ctx, store.AddLeagueMemberParams{
		PlayerID: playerID,
		LeagueID: leagueID,
		Role:     RolePlayer,
		JoinedAt: time.Now().UTC(),
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return apperr.Conflict("Player is already in the league")
		}
		if store.IsForeignKeyViolation(err) {
			return apperr.BadRequest("Player does not exist")
		}
		return apperr.Internal(fmt.Errorf("join league %d: %w", leagueID, err))
	}
	return nil
}

// Leave removes the membership. Removing a player who was not a member is
// not an error.
func (m *Manager) Leave(ctx context.Context, leagueID, playerID int64) error {
	_, err := m.db.Queries.RemoveLeagueMember(ctx, store.RemoveLeagueMemberParams{
		PlayerID: playerID,
		LeagueID: leagueID,
	})
	if err != nil {
		return apperr.Internal(fmt.Errorf("leave league %d: %w", leagueID, err))
	}
	return nil
}

// UpdateMemberRole overwrites the league-scoped role, which must be "admin"
// or "player".
func (m *Manager) UpdateMemberRole(ctx context.Context, leagueID, playerID int64, role string) error {
	if role != RoleAdmin && role != RolePlayer {
		return apperr.BadRequest("Role must be admin or player")
	}
	affected, err := m.db.Queries.UpdateMemberRole(ctx, store.UpdateMemberRoleParams{
		PlayerID: playerID,
		LeagueID: leagueID,
		Role:     role,
	})
	if err != nil {
		return apperr.Internal(fmt.Errorf("update role in league %d: %w", leagueID, err))
	}
	if affected == 0 {
		return apperr.NotFound("Membership")
	}
	return nil
}

func (m *Manager) ListRoster(ctx context.Context, leagueID int64) ([]store.LeagueRosterRow, error) {
	if _, err := m.GetLeague(ctx, leagueID); err != nil {
		return nil, err
	}
	roster, err := m.db.Queries.ListLeagueRoster(ctx, leagueID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list roster for league %d: %w", leagueID, err))
	}
	return roster, nil
}

type CreateJoinRequestParams struct {
	LeagueID    int64
	PlayerID    int64
	Description sql.NullString
}

func (m *Manager) CreateJoinRequest(ctx context.Context, arg CreateJoinRequestParams) (store.JoinRequest, error) {
	if _, err := m.GetLeague(ctx, arg.LeagueID); err != nil {
		return store.JoinRequest{}, err
	}
	request, err := m.db.Queries.CreateJoinRequest(ctx, store.CreateJoinRequestParams{
		LeagueID:    arg.LeagueID,
		PlayerID:    arg.PlayerID,
		Description: arg.Description,
	})
	if err != nil {
		if store.IsForeignKeyViolation(err) {
			return store.JoinRequest{}, apperr.BadRequest("Player does not exist")
		}
		return store.JoinRequest{}, apperr.Internal(fmt.Errorf("create join request: %w", err))
	}
	return request, nil
}

func (m *Manager) ListJoinRequests(ctx context.Context, leagueID int64) ([]store.JoinRequest, error) {
	if _, err := m.GetLeague(ctx, leagueID); err != nil {
		return nil, err
	}
	requests, err := m.db.Queries.ListJoinRequestsByLeague(ctx, leagueID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list join requests for league %d: %w", leagueID, err))
	}
	return requests, nil
}

// ResolveJoinRequest records the decision on a pending request. Accepting a
// request does not add the player to the league; joining stays a separate
// call.
func (m *Manager) ResolveJoinRequest(ctx context.Context, leagueID, requestID int64, status string, notes sql.NullString) error {
	if status != RequestAccepted && status != RequestRejected {
		return apperr.BadRequest("Status must be accepted or rejected")
	}
	affected, err := m.db.Queries.ResolveJoinRequest(ctx, store.ResolveJoinRequestParams{
		ID:              requestID,
		LeagueID:        leagueID,
		Status:          status,
		ResolutionNotes: notes,
	})
	if err != nil {
		return apperr.Internal(fmt.Errorf("resolve join request %d: %w", requestID, err))
	}
	if affected == 0 {
		return apperr.NotFound("Join request")
	}
	return nil
}
