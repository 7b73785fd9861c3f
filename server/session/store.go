// Package session holds uploaded tables behind opaque handles. The
// store bounds both session lifetime and count, so an abandoned upload
// cannot pin memory forever and a burst of uploads cannot grow the
// process without limit.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/gear6io/sift/pkg/errors"
	"github.com/gear6io/sift/server/config"
	"github.com/gear6io/sift/server/tabular"
	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog"
)

// Package-specific error codes for session
var (
	ErrNotFound = errors.MustNewCode("session.not_found")
)

// Session binds an uploaded table to its handle.
//
// The table is guarded by the session mutex: handlers hold it for the
// whole load-compute-commit window, so concurrent operations on one
// session serialize and a failed operation can never leave a half
// mutated table behind.
type Session struct {
	ID        string
	Filename  string
	CreatedAt time.Time

	mu    sync.Mutex
	table *tabular.Table
}

func (s *Session) Lock() {
	s.mu.Lock()
}

func (s *Session) Unlock() {
	s.mu.Unlock()
}

// Table returns the current table. Callers hold the session lock.
func (s *Session) Table() *tabular.Table {
	return s.table
}

// SetTable commits a replacement table. Callers hold the session lock
// and commit only after the producing operation fully succeeded.
func (s *Session) SetTable(t *tabular.Table) {
	s.table = t
}

// Stats reports store counters for the status endpoint.
type Stats struct {
	Active  int   `json:"active"`
	Created int64 `json:"created"`
	Expired int64 `json:"expired"`
	Evicted int64 `json:"evicted"`
	Deleted int64 `json:"deleted"`
}

// Store is a TTL- and capacity-bounded session registry backed by
// ttlcache. Reads refresh the TTL, so sessions expire from inactivity,
// not age. When the capacity is reached the least recently used
// session is evicted to make room.
type Store struct {
	cache  *ttlcache.Cache[string, *Session]
	logger zerolog.Logger

	statsMux sync.RWMutex
	created  int64
	expired  int64
	evicted  int64
	deleted  int64
}

// NewStore builds a store from the session configuration.
func NewStore(cfg *config.SessionConfig, logger zerolog.Logger) *Store {
	return newStore(time.Duration(cfg.TTLMinutes)*time.Minute, cfg.MaxSessions, logger)
}

func newStore(ttl time.Duration, capacity int, logger zerolog.Logger) *Store {
	cache := ttlcache.New[string, *Session](
		ttlcache.WithTTL[string, *Session](ttl),
		ttlcache.WithCapacity[string, *Session](uint64(capacity)),
	)

	s := &Store{
		cache:  cache,
		logger: logger.With().Str("component", "session-store").Logger(),
	}
	s.setupEventHandlers()

	// Start the reaper so idle sessions actually expire.
	go cache.Start()

	return s
}

func (s *Store) setupEventHandlers() {
	s.cache.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, *Session]) {
		s.statsMux.Lock()
		switch reason {
		case ttlcache.EvictionReasonExpired:
			s.expired++
		case ttlcache.EvictionReasonCapacityReached:
			s.evicted++
		case ttlcache.EvictionReasonDeleted:
			s.deleted++
		}
		s.statsMux.Unlock()

		s.logger.Debug().
			Str("session_id", item.Key()).
			Str("reason", evictionReasonString(reason)).
			Msg("Session removed")
	})
}

// Create registers a table under a fresh handle.
func (s *Store) Create(table *tabular.Table, filename string) *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		Filename:  filename,
		CreatedAt: time.Now(),
		table:     table,
	}
	s.cache.Set(sess.ID, sess, ttlcache.DefaultTTL)

	s.statsMux.Lock()
	s.created++
	s.statsMux.Unlock()

	s.logger.Debug().
		Str("session_id", sess.ID).
		Str("filename", filename).
		Int("rows", table.NumRows()).
		Int("columns", table.NumCols()).
		Msg("Session created")

	return sess
}

// Get resolves a handle, refreshing its TTL on the way.
func (s *Store) Get(id string) (*Session, error) {
	item := s.cache.Get(id)
	if item == nil {
		return nil, errors.New(ErrNotFound, "Session expired or not found. Please re-upload.", nil).
			AddContext("session_id", id)
	}
	return item.Value(), nil
}

// Delete releases a session. Unknown handles are not an error.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.cache.Len()
}

// Stats returns a snapshot of the store counters.
func (s *Store) Stats() Stats {
	s.statsMux.RLock()
	defer s.statsMux.RUnlock()

	return Stats{
		Active:  s.cache.Len(),
		Created: s.created,
		Expired: s.expired,
		Evicted: s.evicted,
		Deleted: s.deleted,
	}
}

// Stop shuts down the expiration loop. Sessions are memory-only and die
// with the process.
func (s *Store) Stop() {
	s.cache.Stop()
}

func evictionReasonString(reason ttlcache.EvictionReason) string {
	switch reason {
	case ttlcache.EvictionReasonExpired:
		return "expired"
	case ttlcache.EvictionReasonCapacityReached:
		return "capacity"
	case ttlcache.EvictionReasonDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}
