// internal/appointment/manager.go
package appointment

import (
	"context"
	"fmt"

	"github.com/courtside/matchpoint/internal/apperr"
	"github.com/courtside/matchpoint/internal/store"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// Manager handles pairwise bookings. Unlike matches there is no membership
// validation; an appointment only references its two players.
type Manager struct {
	queries *store.Queries
}

func NewManager(queries *store.Queries) *Manager {
	return &Manager{queries: queries}
}

func (m *Manager) Create(ctx context.Context, arg store.CreateAppointmentParams) (store.Appointment, error) {
	if !arg.EndTime.After(arg.StartTime) {
		return store.Appointment{}, apperr.BadRequest("End time must be after start time")
	}
	if arg.Status == "" {
		arg.Status = StatusPending
	}
	created, err := m.queries.CreateAppointment(ctx, arg)
	if err != nil {
		if store.IsForeignKeyViolation(err) {
			return store.Appointment{}, apperr.BadRequest("Player or league does not exist")
		}
		return store.Appointment{}, apperr.Internal(fmt.Errorf("create appointment: %w", err))
	}
	return created, nil
}

// UpdateStatus overwrites the appointment status with one of the known
// states.
func (m *Manager) UpdateStatus(ctx context.Context, appointmentID int64, status string) error {
	switch status {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled:
	default:
		return apperr.BadRequest("Status must be pending, confirmed, rejected, or cancelled")
	}
	affected, err := m.queries.UpdateAppointmentStatus(ctx, store.UpdateAppointmentStatusParams{
		ID:     appointmentID,
		Status: status,
	})
	if err != nil {
		return apperr.Internal(fmt.Errorf("update appointment %d: %w", appointmentID, err))
	}
	if affected == 0 {
		return apperr.NotFound("Appointment")
	}
	return nil
}

// Cancel marks the appointment cancelled.
func (m *Manager) Cancel(ctx context.Context, appointmentID int64) error {
	return m.UpdateStatus(ctx, appointmentID, StatusCancelled)
}

func (m *Manager) ListForPlayer(ctx context.Context, playerID int64) ([]store.Appointment, error) {
	appointments, err := m.queries.ListAppointmentsForPlayer(ctx, playerID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list appointments for player %d: %w", playerID, err))
	}
	return appointments, nil
}
