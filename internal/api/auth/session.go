package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"sync"
	"time"
)

const (
	sessionCookieName = "matchpoint_session"
	sessionTTL        = 8 * time.Hour
	sessionTokenBytes = 32
)

type sessionRecord struct {
	PlayerID  int64
	ExpiresAt time.Time
}

// Sessions is an in-memory session store. Sessions are intentionally
// ephemeral; a restart logs everyone out.
type Sessions struct {
	mu     sync.RWMutex
	store  map[string]sessionRecord
	secure bool
}

// NewSessions creates a session store. secure controls the cookie's Secure
// flag; development runs over plain HTTP.
func NewSessions(secure bool) *Sessions {
	return &Sessions{
		store:  make(map[string]sessionRecord),
		secure: secure,
	}
}

// Create issues a session token for the player and sets the session cookie.
func (s *Sessions) Create(w http.ResponseWriter, playerID int64) error {
	token, err := newSessionToken()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(sessionTTL)
	s.mu.Lock()
	for existing, record := range s.store {
		if record.PlayerID == playerID {
			delete(s.store, existing)
		}
	}
	s.store[token] = sessionRecord{PlayerID: playerID, ExpiresAt: expiresAt}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
		MaxAge:   int(sessionTTL.Seconds()),
	})
	return nil
}

// PlayerID resolves the session cookie to a player id. Expired sessions are
// pruned on access.
func (s *Sessions) PlayerID(r *http.Request) (int64, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return 0, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.store[cookie.Value]
	if !ok {
		return 0, false
	}
	if time.Now().After(record.ExpiresAt) {
		delete(s.store, cookie.Value)
		return 0, false
	}
	return record.PlayerID, true
}

// Clear deletes the request's session and expires the cookie.
func (s *Sessions) Clear(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		s.mu.Lock()
		delete(s.store, cookie.Value)
		s.mu.Unlock()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.New("could not generate session token")
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
