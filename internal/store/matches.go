package store

import (
	"context"
	"database/sql"
	"strings"
)

const matchColumns = `id, league_id, match_type, player1_id, player2_id,
	team1_player1_id, team1_player2_id, team2_player1_id, team2_player2_id,
	scheduled_at, location, status, notes, score, winner_id, created_at, updated_at`

// sixSlotPredicate matches a player occupying any participant slot.
const sixSlotPredicate = `(player1_id = ? OR player2_id = ?
	OR team1_player1_id = ? OR team1_player2_id = ?
	OR team2_player1_id = ? OR team2_player2_id = ?)`

type CreateMatchParams struct {
	LeagueID       int64
	MatchType      string
	Player1ID      sql.NullInt64
	Player2ID      sql.NullInt64
	Team1Player1ID sql.NullInt64
	Team1Player2ID sql.NullInt64
	Team2Player1ID sql.NullInt64
	Team2Player2ID sql.NullInt64
	ScheduledAt    sql.NullTime
	Location       sql.NullString
	Status         string
	Notes          sql.NullString
}

func (q *Queries) CreateMatch(ctx context.Context, arg CreateMatchParams) (Match, error) {
	result, err := q.db.ExecContext(ctx,
		`INSERT INTO matches (league_id, match_type, player1_id, player2_id,
			team1_player1_id, team1_player2_id, team2_player1_id, team2_player2_id,
			scheduled_at, location, status, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.LeagueID, arg.MatchType, arg.Player1ID, arg.Player2ID,
		arg.Team1Player1ID, arg.Team1Player2ID, arg.Team2Player1ID, arg.Team2Player2ID,
		arg.ScheduledAt, arg.Location, arg.Status, arg.Notes,
	)
	if err != nil {
		return Match{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Match{}, err
	}
	return q.GetMatch(ctx, id)
}

func (q *Queries) GetMatch(ctx context.Context, id int64) (Match, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+matchColumns+` FROM matches WHERE id = ?`, id)
	var m Match
	err := row.Scan(
		&m.ID, &m.LeagueID, &m.MatchType, &m.Player1ID, &m.Player2ID,
		&m.Team1Player1ID, &m.Team1Player2ID, &m.Team2Player1ID, &m.Team2Player2ID,
		&m.ScheduledAt, &m.Location, &m.Status, &m.Notes, &m.Score, &m.WinnerID,
		&m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

type ListMatchesParams struct {
	LeagueID sql.NullInt64
	Status   sql.NullString
}

// ListMatches filters by league and/or status when the corresponding
// parameter is valid.
func (q *Queries) ListMatches(ctx context.Context, arg ListMatchesParams) ([]Match, error) {
	var clauses []string
	var args []any
	if arg.LeagueID.Valid {
		clauses = append(clauses, "league_id = ?")
		args = append(args, arg.LeagueID.Int64)
	}
	if arg.Status.Valid {
		clauses = append(clauses, "status = ?")
		args = append(args, arg.Status.String)
	}

	query := `SELECT ` + matchColumns + ` FROM matches`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id"

	return q.queryMatches(ctx, query, args...)
}

func (q *Queries) ListMatchesForPlayer(ctx context.Context, playerID int64) ([]Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE ` + sixSlotPredicate + ` ORDER BY id`
	return q.queryMatches(ctx, query,
		playerID, playerID, playerID, playerID, playerID, playerID)
}

func (q *Queries) ListPendingMatchesForPlayer(ctx context.Context, playerID int64) ([]Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE status = 'Pending' AND ` + sixSlotPredicate + ` ORDER BY id`
	return q.queryMatches(ctx, query,
		playerID, playerID, playerID, playerID, playerID, playerID)
}

type UpdateMatchDecisionParams struct {
	ID     int64
	Status string
	Notes  sql.NullString
}

// UpdateMatchDecision moves a match out of Pending in a single write.
// The status guard makes concurrent accept/reject resolve to exactly one
// winner; zero rows affected means the match was not Pending anymore.
func (q *Queries) UpdateMatchDecision(ctx context.Context, arg UpdateMatchDecisionParams) (int64, error) {
	result, err := q.db.ExecContext(ctx,
		`UPDATE matches SET status = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = 'Pending'`,
		arg.Status, arg.Notes, arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (q *Queries) queryMatches(ctx context.Context, query string, args ...any) ([]Match, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(
			&m.ID, &m.LeagueID, &m.MatchType, &m.Player1ID, &m.Player2ID,
			&m.Team1Player1ID, &m.Team1Player2ID, &m.Team2Player1ID, &m.Team2Player2ID,
			&m.ScheduledAt, &m.Location, &m.Status, &m.Notes, &m.Score, &m.WinnerID,
			&m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
