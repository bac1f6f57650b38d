package ban

import (
	"log/slog"
	"sync"
	"time"
)

// Config holds configuration for failed-attempt tracking and banning
type Config struct {
	MaxFailedAttempts  int           // Failures that trigger a ban
	BanDuration        time.Duration // How long a ban lasts once imposed
	FailureWindowReset time.Duration // Inactivity after which stale failures are discarded
}

// DefaultConfig returns the tracking thresholds used by the gateway
func DefaultConfig() Config {
	return Config{
		MaxFailedAttempts:  5,
		BanDuration:        5 * time.Minute,
		FailureWindowReset: 30 * time.Minute,
	}
}

// clientRecord tracks authentication failures for a single client.
// A record exists only while failureCount > 0; bannedAt is zero unless
// the client is currently banned.
type clientRecord struct {
	failureCount  int
	lastFailureAt time.Time
	bannedAt      time.Time
}

// Tracker maintains per-client failure counts and time-bounded bans.
// It owns the client map exclusively; all access goes through its methods,
// which are safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	clients map[string]*clientRecord
	config  Config
	logger  *slog.Logger
}

// NewTracker creates a new Tracker
func NewTracker(config Config, logger *slog.Logger) *Tracker {
	return &Tracker{
		clients: make(map[string]*clientRecord),
		config:  config,
		logger:  logger,
	}
}

// IsBanned reports whether the client is currently banned as of now.
// An expired ban is cleared here, failure count included: expiry is only
// ever evaluated lazily at query time, there is no background sweep.
func (t *Tracker) IsBanned(clientID string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.clients[clientID]
	if !ok || rec.bannedAt.IsZero() {
		return false
	}

	if now.Sub(rec.bannedAt) > t.config.BanDuration {
		delete(t.clients, clientID)
		t.logger.Info("ban expired",
			slog.String("client_id", clientID),
			slog.Time("banned_at", rec.bannedAt))
		return false
	}

	return true
}

// RecordFailure counts a failed authentication attempt from the client.
// Failures older than the reset window do not compound with a fresh one:
// the count restarts at zero before this failure is added. Crossing the
// threshold imposes a ban stamped at now; re-crossing while already banned
// leaves the original ban timestamp in place.
func (t *Tracker) RecordFailure(clientID string, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.clients[clientID]
	if !ok {
		rec = &clientRecord{}
		t.clients[clientID] = rec
	}

	if !rec.lastFailureAt.IsZero() && now.Sub(rec.lastFailureAt) > t.config.FailureWindowReset {
		rec.failureCount = 0
	}

	rec.failureCount++
	rec.lastFailureAt = now

	if rec.failureCount >= t.config.MaxFailedAttempts && rec.bannedAt.IsZero() {
		rec.bannedAt = now
		t.logger.Warn("client banned after repeated failed attempts",
			slog.String("client_id", clientID),
			slog.Int("failed_attempts", rec.failureCount),
			slog.Duration("ban_duration", t.config.BanDuration))
	}
}

// RecordSuccess clears all tracked state for the client. A successful
// authentication fully rehabilitates a client that had accumulated
// failures; a banned client never reaches credential validation, so this
// cannot lift an active ban.
func (t *Tracker) RecordSuccess(clientID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.clients[clientID]; !ok {
		return
	}

	delete(t.clients, clientID)
	t.logger.Info("reset failed attempts after successful authentication",
		slog.String("client_id", clientID))
}

// FailureCount returns the client's current consecutive failure count
func (t *Tracker) FailureCount(clientID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.clients[clientID]
	if !ok {
		return 0
	}
	return rec.failureCount
}

// TrackedClients returns the number of clients with live records
func (t *Tracker) TrackedClients() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.clients)
}
