package store

import (
	"context"
	"database/sql"
	"time"
)

const appointmentColumns = `id, requester_id, opponent_id, league_id, start_time, end_time, status, created_at, updated_at`

type CreateAppointmentParams struct {
	RequesterID int64
	OpponentID  int64
	LeagueID    sql.NullInt64
	StartTime   time.Time
	EndTime     time.Time
	Status      string
}

func (q *Queries) CreateAppointment(ctx context.Context, arg CreateAppointmentParams) (Appointment, error) {
	result, err := q.db.ExecContext(ctx,
		`INSERT INTO appointments (requester_id, opponent_id, league_id, start_time, end_time, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		arg.RequesterID, arg.OpponentID, arg.LeagueID, arg.StartTime, arg.EndTime, arg.Status,
	)
	if err != nil {
		return Appointment{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Appointment{}, err
	}
	return q.GetAppointment(ctx, id)
}

func (q *Queries) GetAppointment(ctx context.Context, id int64) (Appointment, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = ?`, id)
	return scanAppointment(row)
}

type UpdateAppointmentStatusParams struct {
	ID     int64
	Status string
}

func (q *Queries) UpdateAppointmentStatus(ctx context.Context, arg UpdateAppointmentStatusParams) (int64, error) {
	result, err := q.db.ExecContext(ctx,
		`UPDATE appointments SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		arg.Status, arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (q *Queries) ListAppointmentsForPlayer(ctx context.Context, playerID int64) ([]Appointment, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments
		 WHERE requester_id = ? OR opponent_id = ?
		 ORDER BY start_time, id`,
		playerID, playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appointments []Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.RequesterID, &a.OpponentID, &a.LeagueID, &a.StartTime, &a.EndTime, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

func scanAppointment(row *sql.Row) (Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.RequesterID, &a.OpponentID, &a.LeagueID, &a.StartTime, &a.EndTime, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}
