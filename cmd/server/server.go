// cmd/server/server.go
package main

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/courtside/matchpoint/internal/api"
	"github.com/courtside/matchpoint/internal/api/appointments"
	"github.com/courtside/matchpoint/internal/api/auth"
	"github.com/courtside/matchpoint/internal/api/leagues"
	"github.com/courtside/matchpoint/internal/api/matches"
	"github.com/courtside/matchpoint/internal/api/players"
	"github.com/courtside/matchpoint/internal/appointment"
	"github.com/courtside/matchpoint/internal/config"
	"github.com/courtside/matchpoint/internal/db"
	"github.com/courtside/matchpoint/internal/email"
	"github.com/courtside/matchpoint/internal/league"
	"github.com/courtside/matchpoint/internal/match"
	"github.com/courtside/matchpoint/internal/ratelimit"
)

func newServer(cfg *config.Config, database *db.DB) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	allowedOrigin := os.Getenv("FRONTEND_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = cfg.App.BaseURL
	}
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithCORS(allowedOrigin),
	)

	registerRoutes(router, cfg, database)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, cfg *config.Config, database *db.DB) {
	var sender email.Sender
	if cfg.Email.Sender != "" {
		sesClient, err := email.NewSESClient(
			cfg.Email.AccessKeyID,
			cfg.Email.SecretAccessKey,
			cfg.Email.Region,
			cfg.Email.Sender,
		)
		if err != nil {
			log.Warn().Err(err).Msg("Email sending disabled")
		} else {
			sender = sesClient
		}
	}

	matchManager := match.NewManager(database.Queries)
	leagueManager := league.NewManager(database)
	appointmentManager := appointment.NewManager(database.Queries)
	notifier := email.NewMatchNotifier(database.Queries, sender)

	sessions := auth.NewSessions(cfg.App.Environment == "production")
	limiter := ratelimit.New(nil)

	authHandlers := auth.NewHandlers(database.Queries, sessions, limiter)
	playerHandlers := players.NewHandlers(database.Queries, matchManager, appointmentManager)
	leagueHandlers := leagues.NewHandlers(leagueManager)
	matchHandlers := matches.NewHandlers(matchManager, notifier)
	appointmentHandlers := appointments.NewHandlers(appointmentManager)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth
	mux.HandleFunc("POST /api/register", authHandlers.HandleRegister)
	mux.HandleFunc("POST /api/login", authHandlers.HandleLogin)
	mux.HandleFunc("POST /api/logout", authHandlers.HandleLogout)

	// Players
	mux.HandleFunc("GET /api/players/{player_id}", playerHandlers.HandleProfile)
	mux.HandleFunc("GET /api/players/{player_id}/calendar", playerHandlers.HandleCalendar)

	// Leagues and membership
	mux.HandleFunc("POST /api/leagues", leagueHandlers.HandleCreate)
	mux.HandleFunc("GET /api/leagues", leagueHandlers.HandleList)
	mux.HandleFunc("GET /api/leagues/{id}", leagueHandlers.HandleDetail)
	mux.HandleFunc("GET /api/leagues/{id}/players", leagueHandlers.HandleRoster)
	mux.HandleFunc("POST /api/leagues/{id}/join", leagueHandlers.HandleJoin)
	mux.HandleFunc("DELETE /api/leagues/{id}/leave", leagueHandlers.HandleLeave)
	mux.HandleFunc("PUT /api/leagues/{id}/members/{player_id}/role", leagueHandlers.HandleUpdateRole)
	mux.HandleFunc("POST /api/leagues/{id}/requests", leagueHandlers.HandleCreateJoinRequest)
	mux.HandleFunc("GET /api/leagues/{id}/requests", leagueHandlers.HandleListJoinRequests)
	mux.HandleFunc("PUT /api/leagues/{id}/requests/{request_id}", leagueHandlers.HandleResolveJoinRequest)

	// Matches
	mux.HandleFunc("POST /api/matches", matchHandlers.HandleCreate)
	mux.HandleFunc("GET /api/matches", matchHandlers.HandleList)
	mux.HandleFunc("GET /api/matches/{match_id}", matchHandlers.HandleDetail)
	mux.HandleFunc("GET /api/matches/player/{player_id}", matchHandlers.HandleListForPlayer)
	mux.HandleFunc("GET /api/matches/pending/{player_id}", matchHandlers.HandleListPendingForPlayer)
	mux.HandleFunc("POST /api/matches/{match_id}/accept", matchHandlers.HandleAccept)
	mux.HandleFunc("POST /api/matches/{match_id}/reject", matchHandlers.HandleReject)

	// Appointments
	mux.HandleFunc("POST /api/appointments", appointmentHandlers.HandleCreate)
	mux.HandleFunc("PUT /api/appointments/{appointment_id}", appointmentHandlers.HandleUpdateStatus)
	mux.HandleFunc("DELETE /api/appointments/{appointment_id}", appointmentHandlers.HandleCancel)
}
