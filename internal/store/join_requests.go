package store

import (
	"context"
	"database/sql"
)

const joinRequestColumns = `id, league_id, player_id, description, status, resolution_notes, created_at`

type CreateJoinRequestParams struct {
	LeagueID    int64
	PlayerID    int64
	Description sql.NullString
}

func (q *Queries) CreateJoinRequest(ctx context.Context, arg CreateJoinRequestParams) (JoinRequest, error) {
	result, err := q.db.ExecContext(ctx,
		`INSERT INTO join_requests (league_id, player_id, description, status)
		 VALUES (?, ?, ?, 'pending')`,
		arg.LeagueID, arg.PlayerID, arg.Description,
	)
	if err != nil {
		return JoinRequest{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return JoinRequest{}, err
	}
	return q.GetJoinRequest(ctx, id)
}

func (q *Queries) GetJoinRequest(ctx context.Context, id int64) (JoinRequest, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+joinRequestColumns+` FROM join_requests WHERE id = ?`, id)
	var r JoinRequest
	err := row.Scan(&r.ID, &r.LeagueID, &r.PlayerID, &r.Description, &r.Status, &r.ResolutionNotes, &r.CreatedAt)
	return r, err
}

func (q *Queries) ListJoinRequestsByLeague(ctx context.Context, leagueID int64) ([]JoinRequest, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+joinRequestColumns+` FROM join_requests WHERE league_id = ? ORDER BY id`,
		leagueID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []JoinRequest
	for rows.Next() {
		var r JoinRequest
		if err := rows.Scan(&r.ID, &r.LeagueID, &r.PlayerID, &r.Description, &r.Status, &r.ResolutionNotes, &r.CreatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

type ResolveJoinRequestParams struct {
	ID              int64
	LeagueID        int64
	Status          string
	ResolutionNotes sql.NullString
}

// ResolveJoinRequest updates the request status. The league id is part of
// the predicate so a request can only be resolved through its own league.
func (q *Queries) ResolveJoinRequest(ctx context.Context, arg ResolveJoinRequestParams) (int64, error) {
	result, err := q.db.ExecContext(ctx,
		`UPDATE join_requests SET status = ?, resolution_notes = ?
		 WHERE id = ? AND league_id = ?`,
		arg.Status, arg.ResolutionNotes, arg.ID, arg.LeagueID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
