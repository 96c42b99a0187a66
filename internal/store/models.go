package store

import (
	"database/sql"
	"time"
)

type Player struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	Phone        sql.NullString `json:"phone"`
	SkillLevel   sql.NullString `json:"skill_level"`
	Role         sql.NullString `json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
}

type League struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description sql.NullString `json:"description"`
	SkillLevel  sql.NullString `json:"skill_level"`
	IsPublic    bool           `json:"is_public"`
	CreatedBy   int64          `json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
}

type LeagueMember struct {
	PlayerID       int64         `json:"player_id"`
	LeagueID       int64         `json:"league_id"`
	Role           string        `json:"role"`
	SinglesRanking sql.NullInt64 `json:"singles_ranking"`
	DoublesRanking sql.NullInt64 `json:"doubles_ranking"`
	JoinedAt       time.Time     `json:"joined_at"`
}

type JoinRequest struct {
	ID              int64          `json:"id"`
	LeagueID        int64          `json:"league_id"`
	PlayerID        int64          `json:"player_id"`
	Description     sql.NullString `json:"description"`
	Status          string         `json:"status"`
	ResolutionNotes sql.NullString `json:"resolution_notes"`
	CreatedAt       time.Time      `json:"created_at"`
}

type Match struct {
	ID             int64          `json:"id"`
	LeagueID       int64          `json:"league_id"`
	MatchType      string         `json:"match_type"`
	Player1ID      sql.NullInt64  `json:"player1_id"`
	Player2ID      sql.NullInt64  `json:"player2_id"`
	Team1Player1ID sql.NullInt64  `json:"team1_player1_id"`
	Team1Player2ID sql.NullInt64  `json:"team1_player2_id"`
	Team2Player1ID sql.NullInt64  `json:"team2_player1_id"`
	Team2Player2ID sql.NullInt64  `json:"team2_player2_id"`
	ScheduledAt    sql.NullTime   `json:"scheduled_at"`
	Location       sql.NullString `json:"location"`
	Status         string         `json:"status"`
	Notes          sql.NullString `json:"notes"`
	Score          sql.NullString `json:"score"`
	WinnerID       sql.NullInt64  `json:"winner_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type Appointment struct {
	ID          int64         `json:"id"`
	RequesterID int64         `json:"requester_id"`
	OpponentID  int64         `json:"opponent_id"`
	LeagueID    sql.NullInt64 `json:"league_id"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	Status      string        `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
