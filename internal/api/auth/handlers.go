// internal/api/auth/handlers.go
package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/courtside/matchpoint/internal/api/apiutil"
	"github.com/courtside/matchpoint/internal/ratelimit"
	"github.com/courtside/matchpoint/internal/store"
)

const authQueryTimeout = 5 * time.Second

// Handlers serves registration and login over the player table.
type Handlers struct {
	queries  *store.Queries
	sessions *Sessions
	limiter  *ratelimit.Limiter
}

func NewHandlers(queries *store.Queries, sessions *Sessions, limiter *ratelimit.Limiter) *Handlers {
	return &Handlers{
		queries:  queries,
		sessions: sessions,
		limiter:  limiter,
	}
}

type registerRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	SkillLevel *string `json:"skill_level"`
	Phone      *string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/register
func (h *Handlers) HandleRegister(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !h.allow(w, r) {
		return
	}

	var req registerRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Name, email, and password are required"})
		return
	}

	var phone sql.NullString
	if req.Phone != nil && strings.TrimSpace(*req.Phone) != "" {
		normalized, err := NormalizePhone(*req.Phone)
		if err != nil {
			apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		phone = sql.NullString{String: normalized, Valid: true}
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		apiutil.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	player, err := h.queries.CreatePlayer(ctx, store.CreatePlayerParams{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        phone,
		SkillLevel:   apiutil.ToNullString(req.SkillLevel),
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			apiutil.WriteJSON(w, http.StatusConflict, map[string]string{"error": "Name or email is already registered"})
			return
		}
		logger.Error().Err(err).Str("email", req.Email).Msg("Failed to create player")
		apiutil.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusCreated, player); err != nil {
		logger.Error().Err(err).Int64("player_id", player.ID).Msg("Failed to write register response")
	}
}

// POST /api/login
func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !h.allow(w, r) {
		return
	}

	var req loginRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	player, err := h.queries.GetPlayerByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Error().Err(err).Str("email", req.Email).Msg("Failed to load player")
			apiutil.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
			return
		}
		// Fall through to the generic rejection so probes cannot tell a
		// missing account from a wrong password.
	}
	if err != nil || !VerifyPassword(player.PasswordHash, req.Password) {
		apiutil.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
		return
	}

	if err := h.sessions.Create(w, player.ID); err != nil {
		logger.Error().Err(err).Int64("player_id", player.ID).Msg("Failed to create session")
		apiutil.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"player":  player,
	}); err != nil {
		logger.Error().Err(err).Int64("player_id", player.ID).Msg("Failed to write login response")
	}
}

// POST /api/logout
func (h *Handlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w, r)
	apiutil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *Handlers) allow(w http.ResponseWriter, r *http.Request) bool {
	if h.limiter == nil {
		return true
	}
	result := h.limiter.Check(ratelimit.ClientIP(r))
	if !result.Allowed {
		log.Ctx(r.Context()).Warn().Str("path", r.URL.Path).Msg("Auth rate limit exceeded")
		w.Header().Set("Retry-After", result.RetryAfter.Round(time.Second).String())
		apiutil.WriteJSON(w, http.StatusTooManyRequests, map[string]string{"error": "Too many attempts, try again later"})
		return false
	}
	return true
}
