// Package ratelimit provides rate limiting for authentication endpoints.
package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

// realClock implements Clock using the system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds rate limit configuration.
type Config struct {
	MaxPerWindow int           // Max attempts per IP per window (default: 10)
	Window       time.Duration // Sliding window length (default: 1m)
	Lockout      time.Duration // Lockout duration after the window fills (default: 5m)

	// Clock for testing (nil uses real time)
	Clock Clock
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxPerWindow: 10,
		Window:       time.Minute,
		Lockout:      5 * time.Minute,
	}
}

// LimitResult contains the result of a rate limit check.
type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

type entry struct {
	count    int
	firstAt  time.Time
	lockedAt time.Time
}

// Limiter tracks authentication attempts per client IP.
type Limiter struct {
	config *Config
	clock  Clock
	mu     sync.Mutex
	byIP   map[string]*entry
}

// New creates a new rate limiter with the given config.
func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	return &Limiter{
		config: cfg,
		clock:  clock,
		byIP:   make(map[string]*entry),
	}
}

// Check records an attempt for ip and reports whether it is allowed. Once
// the window fills, further attempts are refused until the lockout elapses.
func (l *Limiter) Check(ip string) LimitResult {
	key := hashKey(ip)
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.byIP[key]
	if !ok {
		l.byIP[key] = &entry{count: 1, firstAt: now}
		return LimitResult{Allowed: true}
	}

	if !e.lockedAt.IsZero() {
		remaining := l.config.Lockout - now.Sub(e.lockedAt)
		if remaining > 0 {
			return LimitResult{Allowed: false, RetryAfter: remaining}
		}
		*e = entry{count: 1, firstAt: now}
		return LimitResult{Allowed: true}
	}

	if now.Sub(e.firstAt) > l.config.Window {
		*e = entry{count: 1, firstAt: now}
		return LimitResult{Allowed: true}
	}

	e.count++
	if e.count > l.config.MaxPerWindow {
		e.lockedAt = now
		return LimitResult{Allowed: false, RetryAfter: l.config.Lockout}
	}
	return LimitResult{Allowed: true}
}

// ClientIP extracts the client IP from a request, preferring the first
// X-Forwarded-For hop.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// hashKey avoids keeping raw IPs in memory.
func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
