// internal/api/matches/handlers.go
package matches

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/courtside/matchpoint/internal/api/apiutil"
	"github.com/courtside/matchpoint/internal/email"
	"github.com/courtside/matchpoint/internal/match"
	"github.com/courtside/matchpoint/internal/store"
)

const (
	matchQueryTimeout = 5 * time.Second
	matchIDPathKey    = "match_id"
)

// Handlers exposes the match lifecycle over HTTP. The notifier may be nil
// when no email sender is configured.
type Handlers struct {
	manager  *match.Manager
	notifier *email.MatchNotifier
}

func NewHandlers(manager *match.Manager, notifier *email.MatchNotifier) *Handlers {
	return &Handlers{manager: manager, notifier: notifier}
}

type createMatchRequest struct {
	LeagueID       int64   `json:"league_id"`
	MatchType      string  `json:"match_type"`
	Player1ID      *int64  `json:"player1_id"`
	Player2ID      *int64  `json:"player2_id"`
	Team1Player1ID *int64  `json:"team1_player1_id"`
	Team1Player2ID *int64  `json:"team1_player2_id"`
	Team2Player1ID *int64  `json:"team2_player1_id"`
	Team2Player2ID *int64  `json:"team2_player2_id"`
	ScheduledAt    *string `json:"scheduled_at"`
	Location       *string `json:"location"`
	Status         *string `json:"status"`
	Notes          *string `json:"notes"`
}

type acceptRequest struct {
	PlayerID int64   `json:"player_id"`
	Comments *string `json:"comments"`
}

type rejectRequest struct {
	PlayerID int64   `json:"player_id"`
	Reason   *string `json:"reason"`
}

// POST /api/matches
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	var req createMatchRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if req.LeagueID <= 0 {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "league_id must be a positive integer"})
		return
	}
	matchType := strings.ToLower(strings.TrimSpace(req.MatchType))
	if matchType != match.TypeSingles && matchType != match.TypeDoubles {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "match_type must be singles or doubles"})
		return
	}

	var scheduledAt sql.NullTime
	if req.ScheduledAt != nil && *req.ScheduledAt != "" {
		parsed, err := apiutil.ParseDateTime(*req.ScheduledAt, "scheduled_at")
		if err != nil {
			apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scheduled_at"})
			return
		}
		scheduledAt = sql.NullTime{Time: parsed, Valid: true}
	}

	status := ""
	if req.Status != nil {
		status = strings.TrimSpace(*req.Status)
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	created, err := h.manager.Create(ctx, match.CreateParams{
		LeagueID:  req.LeagueID,
		MatchType: matchType,
		Slots: match.Slots{
			Player1:      apiutil.ToNullInt64(req.Player1ID),
			Player2:      apiutil.ToNullInt64(req.Player2ID),
			Team1Player1: apiutil.ToNullInt64(req.Team1Player1ID),
			Team1Player2: apiutil.ToNullInt64(req.Team1Player2ID),
			Team2Player1: apiutil.ToNullInt64(req.Team2Player1ID),
			Team2Player2: apiutil.ToNullInt64(req.Team2Player2ID),
		},
		ScheduledAt: scheduledAt,
		Location:    apiutil.ToNullString(req.Location),
		Status:      status,
		Notes:       apiutil.ToNullString(req.Notes),
	})
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, created); err != nil {
		logger.Error().Err(err).Int64("match_id", created.ID).Msg("Failed to write match response")
	}
}

// GET /api/matches?league_id=&status=
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	var leagueID sql.NullInt64
	if raw := r.URL.Query().Get("league_id"); raw != "" {
		parsed, err := apiutil.ParsePositiveInt64Field(raw, "league_id")
		if err != nil {
			apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid league_id"})
			return
		}
		leagueID = sql.NullInt64{Int64: parsed, Valid: true}
	}

	var status sql.NullString
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = sql.NullString{String: raw, Valid: true}
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	matches, err := h.manager.List(ctx, leagueID, status)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"matches": matches, "count": len(matches)})
}

// GET /api/matches/{match_id}
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	matchID, err := apiutil.PathID(r, matchIDPathKey)
	if err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid match ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	found, err := h.manager.Get(ctx, matchID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, found)
}

// GET /api/matches/player/{player_id}
func (h *Handlers) HandleListForPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := apiutil.PathID(r, "player_id")
	if err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid player ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	matches, err := h.manager.ListForPlayer(ctx, playerID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"matches": matches, "count": len(matches)})
}

// GET /api/matches/pending/{player_id}
func (h *Handlers) HandleListPendingForPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := apiutil.PathID(r, "player_id")
	if err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid player ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	matches, err := h.manager.ListPendingForPlayer(ctx, playerID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"matches": matches, "count": len(matches)})
}

// POST /api/matches/{match_id}/accept
func (h *Handlers) HandleAccept(w http.ResponseWriter, r *http.Request) {
	var req acceptRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil || req.PlayerID <= 0 {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "player_id must be a positive integer"})
		return
	}
	h.handleDecision(w, r, "accepted", req.PlayerID, apiutil.ToNullString(req.Comments), h.manager.Accept)
}

// POST /api/matches/{match_id}/reject
func (h *Handlers) HandleReject(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil || req.PlayerID <= 0 {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "player_id must be a positive integer"})
		return
	}
	h.handleDecision(w, r, "rejected", req.PlayerID, apiutil.ToNullString(req.Reason), h.manager.Reject)
}

func (h *Handlers) handleDecision(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	playerID int64,
	detail sql.NullString,
	decide func(ctx context.Context, matchID, playerID int64, detail sql.NullString) (store.Match, error),
) {
	logger := log.Ctx(r.Context())

	matchID, err := apiutil.PathID(r, matchIDPathKey)
	if err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid match ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	updated, err := decide(ctx, matchID, playerID, detail)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	h.notifier.MatchDecided(r.Context(), updated, action, logger)

	apiutil.WriteJSON(w, http.StatusOK, updated)
}
