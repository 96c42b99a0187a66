// internal/api/appointments/handlers.go
package appointments

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/courtside/matchpoint/internal/api/apiutil"
	"github.com/courtside/matchpoint/internal/appointment"
	"github.com/courtside/matchpoint/internal/store"
)

const (
	appointmentQueryTimeout = 5 * time.Second
	appointmentIDPathKey    = "appointment_id"
)

type Handlers struct {
	manager *appointment.Manager
}

func NewHandlers(manager *appointment.Manager) *Handlers {
	return &Handlers{manager: manager}
}

type createAppointmentRequest struct {
	RequesterID int64  `json:"requester_id"`
	OpponentID  int64  `json:"opponent_id"`
	LeagueID    *int64 `json:"league_id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// POST /api/appointments
func (h *Handlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if req.RequesterID <= 0 || req.OpponentID <= 0 {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "requester_id and opponent_id must be positive integers"})
		return
	}

	startTime, err := apiutil.ParseDateTime(req.StartTime, "start_time")
	if err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid start_time"})
		return
	}
	endTime, err := apiutil.ParseDateTime(req.EndTime, "end_time")
	if err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid end_time"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), appointmentQueryTimeout)
	defer cancel()

	created, err := h.manager.Create(ctx, store.CreateAppointmentParams{
		RequesterID: req.RequesterID,
		OpponentID:  req.OpponentID,
		LeagueID:    apiutil.ToNullInt64(req.LeagueID),
		StartTime:   startTime,
		EndTime:     endTime,
	})
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	apiutil.WriteJSON(w, http.StatusCreated, created)
}

// PUT /api/appointments/{appointment_id}
func (h *Handlers) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := apiutil.PathID(r, appointmentIDPathKey)
	if err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid appointment ID"})
		return
	}

	var req statusRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), appointmentQueryTimeout)
	defer cancel()

	status := strings.ToLower(strings.TrimSpace(req.Status))
	if err := h.manager.UpdateStatus(ctx, appointmentID, status); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"message": "Appointment updated", "success": true})
}

// DELETE /api/appointments/{appointment_id}
func (h *Handlers) HandleCancel(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := apiutil.PathID(r, appointmentIDPathKey)
	if err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid appointment ID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), appointmentQueryTimeout)
	defer cancel()

	if err := h.manager.Cancel(ctx, appointmentID); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, map[string]any{"message": "Appointment cancelled", "success": true})
}
