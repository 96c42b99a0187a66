// internal/api/players/handlers.go
package players

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/courtside/matchpoint/internal/api/apiutil"
	"github.com/courtside/matchpoint/internal/apperr"
	"github.com/courtside/matchpoint/internal/appointment"
	"github.com/courtside/matchpoint/internal/match"
	"github.com/courtside/matchpoint/internal/store"
)

const (
	playerQueryTimeout = 5 * time.Second
	playerIDPathKey    = "player_id"
)

// Handlers serves player profiles and the combined calendar view.
type Handlers struct {
	queries      *store.Queries
	matches      *match.Manager
	appointments *appointment.Manager
}

func NewHandlers(queries *store.Queries, matches *match.Manager, appointments *appointment.Manager) *Handlers {
	return &Handlers{queries: queries, matches: matches, appointments: appointments}
}

// GET /api/players/{player_id}
func (h *Handlers) HandleProfile(w http.ResponseWriter, r *http.Request) {
	playerID, err := apiutil.PathID(r, playerIDPathKey)
	if err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid player ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	player, err := h.queries.GetPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, apperr.NotFound("Player"))
			return
		}
		apiutil.WriteError(w, r, apperr.Internal(err))
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, player)
}

// GET /api/players/{player_id}/calendar
//
// The calendar is the union of the player's appointments and every match
// where the player occupies a participant slot.
func (h *Handlers) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	playerID, err := apiutil.PathID(r, playerIDPathKey)
	if err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid player ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	if _, err := h.queries.GetPlayer(ctx, playerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, apperr.NotFound("Player"))
			return
		}
		apiutil.WriteError(w, r, apperr.Internal(err))
		return
	}

	playerMatches, err := h.matches.ListForPlayer(ctx, playerID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	playerAppointments, err := h.appointments.ListForPlayer(ctx, playerID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	response := map[string]any{
		"player_id":    playerID,
		"matches":      playerMatches,
		"appointments": playerAppointments,
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, response); err != nil {
		logger.Error().Err(err).Int64("player_id", playerID).Msg("Failed to write calendar response")
	}
}
