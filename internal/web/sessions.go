package web

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/huangsam/moodmixer/core"
	"github.com/huangsam/moodmixer/internal/contract"
	"github.com/huangsam/moodmixer/internal/logging"
	"github.com/huangsam/moodmixer/schema"
)

const (
	sessionHeader  = "X-Session-ID"
	sessionParam   = "session"
	defaultSession = "default"
	maxSessionID   = 64
)

// entry pairs a session with the lock that serializes its requests.
type entry struct {
	mu       sync.Mutex
	session  *core.Session
	lastUsed time.Time
}

// registry hands out one session per id. Sessions share the catalog and the
// profile store but keep their own mood vector and poll. At most maxSessions
// are kept; the least recently used one is dropped first, and sessions idle
// for longer than ttl start over.
type registry struct {
	mu      sync.Mutex
	entries *lru.Cache[string, *entry]
	ttl     time.Duration
	now     func() time.Time

	cfg    *contract.Config
	drinks []schema.Drink
	bars   []schema.Bar
	store  contract.ProfileStore
}

func newRegistry(cfg *contract.Config, drinks []schema.Drink, bars []schema.Bar, store contract.ProfileStore) (*registry, error) {
	size := cfg.MaxSessions
	if size <= 0 {
		size = contract.DefaultMaxSessions
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = contract.DefaultSessionTTL
	}
	entries, err := lru.New[string, *entry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	return &registry{
		entries: entries,
		ttl:     ttl,
		now:     time.Now,
		cfg:     cfg,
		drinks:  drinks,
		bars:    bars,
		store:   store,
	}, nil
}

// get returns the entry for id, creating it on first use or after it expired.
func (r *registry) get(id string) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.pruneIdle(now)
	if e, ok := r.entries.Get(id); ok {
		e.lastUsed = now
		return e
	}
	e := &entry{
		session:  core.NewSession(r.cfg.Clone(), r.drinks, r.bars, r.store),
		lastUsed: now,
	}
	if r.entries.Add(id, e) {
		logging.Debug().Int("max_sessions", r.entries.Len()).Msg("evicted least recently used web session")
	}
	return e
}

// pruneIdle drops sessions idle past the ttl. The cache is ordered by use,
// so the scan stops at the first live entry.
func (r *registry) pruneIdle(now time.Time) {
	for {
		_, e, ok := r.entries.GetOldest()
		if !ok || now.Sub(e.lastUsed) <= r.ttl {
			return
		}
		r.entries.RemoveOldest()
	}
}

// len reports how many sessions exist.
func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries.Len()
}

// sessionID reads the session id from the query string, then the header.
func sessionID(req *http.Request) string {
	id := strings.TrimSpace(req.URL.Query().Get(sessionParam))
	if id == "" {
		id = strings.TrimSpace(req.Header.Get(sessionHeader))
	}
	if id == "" {
		return defaultSession
	}
	id, _ = contract.TruncateRunes(id, maxSessionID)
	return id
}

// withSession runs fn while holding the request's session lock.
func (s *Server) withSession(req *http.Request, fn func(*core.Session)) {
	e := s.sessions.get(sessionID(req))
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.session)
}
