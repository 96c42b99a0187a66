package store

import (
	"context"
	"database/sql"
)

const playerColumns = `id, name, email, password_hash, phone, skill_level, role, created_at`

type CreatePlayerParams struct {
	Name         string
	Email        string
	PasswordHash string
	Phone        sql.NullString
	SkillLevel   sql.NullString
	Role         sql.NullString
}

func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) (Player, error) {
	result, err := q.db.ExecContext(ctx,
		`INSERT INTO players (name, email, password_hash, phone, skill_level, role)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		arg.Name, arg.Email, arg.PasswordHash, arg.Phone, arg.SkillLevel, arg.Role,
	)
	if err != nil {
		return Player{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Player{}, err
	}
	return q.GetPlayer(ctx, id)
}

func (q *Queries) GetPlayer(ctx context.Context, id int64) (Player, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = ?`, id)
	return scanPlayer(row)
}

func (q *Queries) GetPlayerByEmail(ctx context.Context, email string) (Player, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE email = ?`, email)
	return scanPlayer(row)
}

func scanPlayer(row *sql.Row) (Player, error) {
	var p Player
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.Phone, &p.SkillLevel, &p.Role, &p.CreatedAt)
	return p, err
}
