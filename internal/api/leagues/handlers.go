// internal/api/leagues/handlers.go
package leagues

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/courtside/matchpoint/internal/api/apiutil"
	"github.com/courtside/matchpoint/internal/league"
)

const (
	leagueQueryTimeout = 5 * time.Second
	leagueIDPathKey    = "id"
	playerIDPathKey    = "player_id"
	requestIDPathKey   = "request_id"
)

// Handlers exposes the league membership manager over HTTP.
type Handlers struct {
	manager *league.Manager
}

func NewHandlers(manager *league.Manager) *Handlers {
	return &Handlers{manager: manager}
}

type createLeagueRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	SkillLevel  *string `json:"skill_level"`
	IsPublic    *bool   `json:"is_public"`
	CreatedBy   int64   `json:"created_by"`
}

type membershipRequest struct {
	PlayerID int64 `json:"player_id"`
}

type roleRequest struct {
	Role string `json:"role"`
}

type joinRequestRequest struct {
	PlayerID    int64   `json:"player_id"`
	Description *string `json:"description"`
}

type resolveRequestRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// POST /api/leagues
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	var req createLeagueRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "League name is required"})
		return
	}
	if req.CreatedBy <= 0 {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "created_by must be a positive integer"})
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	created, err := h.manager.CreateLeague(ctx, league.CreateLeagueParams{
		Name:        req.Name,
		Description: apiutil.ToNullString(req.Description),
		SkillLevel:  apiutil.ToNullString(req.SkillLevel),
		IsPublic:    isPublic,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, created); err != nil {
		logger.Error().Err(err).Int64("league_id", created.ID).Msg("Failed to write league response")
	}
}

// GET /api/leagues
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	leagues, err := h.manager.ListLeagues(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"leagues": leagues, "count": len(leagues)}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write leagues response")
	}
}

// GET /api/leagues/{id}
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid league ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	found, err := h.manager.GetLeague(ctx, leagueID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, found); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("league_id", leagueID).Msg("Failed to write league response")
	}
}

// GET /api/leagues/{id}/players
func (h *Handlers) HandleRoster(w http.ResponseWriter, r *http.Request) {
	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid league ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	roster, err := h.manager.ListRoster(ctx, leagueID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"players": roster, "count": len(roster)}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Int64("league_id", leagueID).Msg("Failed to write roster response")
	}
}

// POST /api/leagues/{id}/join
func (h *Handlers) HandleJoin(w http.ResponseWriter, r *http.Request) {
	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid league ID"})
		return
	}

	var req membershipRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil || req.PlayerID <= 0 {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "player_id must be a positive integer"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	if err := h.manager.Join(ctx, leagueID, req.PlayerID); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"message": "Joined league successfully", "success": true})
}

// DELETE /api/leagues/{id}/leave
func (h *Handlers) HandleLeave(w http.ResponseWriter, r *http.Request) {
	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid league ID"})
		return
	}

	var req membershipRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil || req.PlayerID <= 0 {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "player_id must be a positive integer"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	if err := h.manager.Leave(ctx, leagueID, req.PlayerID); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"message": "Left league successfully", "success": true})
}

// PUT /api/leagues/{id}/members/{player_id}/role
func (h *Handlers) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid league ID"})
		return
	}
	playerID, err := apiutil.PathID(r, playerIDPathKey)
	if err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid player ID"})
		return
	}

	var req roleRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	if err := h.manager.UpdateMemberRole(ctx, leagueID, playerID, strings.ToLower(strings.TrimSpace(req.Role))); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"message": "Role updated", "success": true})
}

// POST /api/leagues/{id}/requests
func (h *Handlers) HandleCreateJoinRequest(w http.ResponseWriter, r *http.Request) {
	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid league ID"})
		return
	}

	var req joinRequestRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil || req.PlayerID <= 0 {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "player_id must be a positive integer"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	created, err := h.manager.CreateJoinRequest(ctx, league.CreateJoinRequestParams{
		LeagueID:    leagueID,
		PlayerID:    req.PlayerID,
		Description: apiutil.ToNullString(req.Description),
	})
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// GET /api/leagues/{id}/requests
func (h *Handlers) HandleListJoinRequests(w http.ResponseWriter, r *http.Request) {
	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid league ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	requests, err := h.manager.ListJoinRequests(ctx, leagueID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"requests": requests, "count": len(requests)})
}

// PUT /api/leagues/{id}/requests/{request_id}
func (h *Handlers) HandleResolveJoinRequest(w http.ResponseWriter, r *http.Request) {
	leagueID, err := apiutil.PathID(r, leagueIDPathKey)
	if err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid league ID"})
		return
	}
	requestID, err := apiutil.PathID(r, requestIDPathKey)
	if err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request ID"})
		return
	}

	var req resolveRequestRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), leagueQueryTimeout)
	defer cancel()

	status := strings.ToLower(strings.TrimSpace(req.Status))
	if err := h.manager.ResolveJoinRequest(ctx, leagueID, requestID, status, apiutil.ToNullString(req.Notes)); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"message": "Join request resolved", "success": true})
}
