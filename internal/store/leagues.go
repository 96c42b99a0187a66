package store

import (
	"context"
	"database/sql"
	"time"
)

const leagueColumns = `id, name, description, skill_level, is_public, created_by, created_at`

type CreateLeagueParams struct {
	Name        string
	Description sql.NullString
	SkillLevel  sql.NullString
	IsPublic    bool
	CreatedBy   int64
}

func (q *Queries) CreateLeague(ctx context.Context, arg CreateLeagueParams) (League, error) {
	result, err := q.db.ExecContext(ctx,
		`INSERT INTO leagues (name, description, skill_level, is_public, created_by)
		 VALUES (?, ?, ?, ?, ?)`,
		arg.Name, arg.Description, arg.SkillLevel, arg.IsPublic, arg.CreatedBy,
	)
	if err != nil {
		return League{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return League{}, err
	}
	return q.GetLeague(ctx, id)
}

func (q *Queries) GetLeague(ctx context.Context, id int64) (League, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+leagueColumns+` FROM leagues WHERE id = ?`, id)
	var l League
	err := row.Scan(&l.ID, &l.Name, &l.Description, &l.SkillLevel, &l.IsPublic, &l.CreatedBy, &l.CreatedAt)
	return l, err
}

func (q *Queries) ListLeagues(ctx context.Context) ([]League, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+leagueColumns+` FROM leagues ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leagues []League
	for rows.Next() {
		var l League
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.SkillLevel, &l.IsPublic, &l.CreatedBy, &l.CreatedAt); err != nil {
			return nil, err
		}
		leagues = append(leagues, l)
	}
	return leagues, rows.Err()
}

type AddLeagueMemberParams struct {
	PlayerID int64
	LeagueID int64
	Role     string
	JoinedAt time.Time
}

func (q *Queries) AddLeagueMember(ctx context.Context, arg AddLeagueMemberParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO league_members (player_id, league_id, role, joined_at)
		 VALUES (?, ?, ?, ?)`,
		arg.PlayerID, arg.LeagueID, arg.Role, arg.JoinedAt,
	)
	return err
}

type RemoveLeagueMemberParams struct {
	PlayerID int64
	LeagueID int64
}

func (q *Queries) RemoveLeagueMember(ctx context.Context, arg RemoveLeagueMemberParams) (int64, error) {
	result, err := q.db.ExecContext(ctx,
		`DELETE FROM league_members WHERE player_id = ? AND league_id = ?`,
		arg.PlayerID, arg.LeagueID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type UpdateMemberRoleParams struct {
	PlayerID int64
	LeagueID int64
	Role     string
}

func (q *Queries) UpdateMemberRole(ctx context.Context, arg UpdateMemberRoleParams) (int64, error) {
	result, err := q.db.ExecContext(ctx,
		`UPDATE league_members SET role = ? WHERE player_id = ? AND league_id = ?`,
		arg.Role, arg.PlayerID, arg.LeagueID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type CountLeagueMemberParams struct {
	PlayerID int64
	LeagueID int64
}

// CountLeagueMember returns the number of membership rows for the pair,
// which is 0 or 1 under the composite primary key.
func (q *Queries) CountLeagueMember(ctx context.Context, arg CountLeagueMemberParams) (int64, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM league_members WHERE player_id = ? AND league_id = ?`,
		arg.PlayerID, arg.LeagueID,
	)
	var count int64
	err := row.Scan(&count)
	return count, err
}

// LeagueRosterRow joins membership data with the player identity for roster
// listings.
type LeagueRosterRow struct {
	PlayerID       int64          `json:"player_id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Role           string         `json:"role"`
	SinglesRanking sql.NullInt64  `json:"singles_ranking"`
	DoublesRanking sql.NullInt64  `json:"doubles_ranking"`
	SkillLevel     sql.NullString `json:"skill_level"`
	JoinedAt       time.Time      `json:"joined_at"`
}

func (q *Queries) ListLeagueRoster(ctx context.Context, leagueID int64) ([]LeagueRosterRow, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT m.player_id, p.name, p.email, m.role, m.singles_ranking, m.doubles_ranking, p.skill_level, m.joined_at
		 FROM league_members m
		 JOIN players p ON p.id = m.player_id
		 WHERE m.league_id = ?
		 ORDER BY m.joined_at, m.player_id`,
		leagueID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roster []LeagueRosterRow
	for rows.Next() {
		var r LeagueRosterRow
		if err := rows.Scan(&r.PlayerID, &r.Name, &r.Email, &r.Role, &r.SinglesRanking, &r.DoublesRanking, &r.SkillLevel, &r.JoinedAt); err != nil {
			return nil, err
		}
		roster = append(roster, r)
	}
	return roster, rows.Err()
}
