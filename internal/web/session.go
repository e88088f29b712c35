package web

import (
	"context"
	"sync"
	"time"

	"adventure/internal/logger"
	"adventure/internal/transcript"

	"github.com/google/uuid"
)

// pageDisplay collects entries produced by one key event so they can be
// returned to the browser, which renders them as text nodes.
type pageDisplay struct {
	pending []transcript.Entry
	scroll  bool
}

func (d *pageDisplay) Append(entry transcript.Entry) {
	d.pending = append(d.pending, entry)
}

func (d *pageDisplay) ScrollToNewest() {
	d.scroll = true
}

func (d *pageDisplay) drain() ([]transcript.Entry, bool) {
	entries, scroll := d.pending, d.scroll
	d.pending, d.scroll = nil, false
	return entries, scroll
}

// KeyResult is what one key event changed in a session.
type KeyResult struct {
	Entries []transcript.Entry `json:"entries"`
	Value   string             `json:"value"`
	Scroll  bool               `json:"scroll"`
	// Reset tells the page to replace its transcript with Entries.
	Reset bool `json:"reset,omitempty"`
}

// Session is one browser tab's controller. Requests for the same session
// are serialized by mu.
type Session struct {
	ID string

	mu      sync.Mutex
	ctrl    *transcript.Controller
	buf     *transcript.Buffer
	display *pageDisplay
}

// Key mirrors the browser field into the buffer and delivers key.
func (s *Session) Key(key, value string) KeyResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Set(value)
	s.ctrl.OnKeyEvent(key, s.buf.Value())
	entries, scroll := s.display.drain()
	if entries == nil {
		entries = []transcript.Entry{}
	}
	return KeyResult{Entries: entries, Value: s.buf.Value(), Scroll: scroll}
}

func (s *Session) Entries() []transcript.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Entries()
}

const (
	DefaultSessionTTL  = 30 * time.Minute
	DefaultMaxSessions = 1000
)

type SessionsOptions struct {
	// TTL is how long a session may go unseen before it is dropped.
	TTL time.Duration
	// Max bounds live sessions; the least recently seen is evicted first.
	Max     int
	Metrics *Metrics
	Logger  *logger.LogEntry
	// Now is the clock, replaceable in tests.
	Now func() time.Time
}

// Sessions holds live sessions in memory. Nothing is persisted.
type Sessions struct {
	mu       sync.Mutex
	byID     map[string]*Session
	lastSeen map[string]time.Time
	ttl      time.Duration
	max      int
	now      func() time.Time
	metrics  *Metrics
	log      *logger.LogEntry
}

func NewSessions(opts SessionsOptions) *Sessions {
	s := &Sessions{
		byID:     map[string]*Session{},
		lastSeen: map[string]time.Time{},
		ttl:      opts.TTL,
		max:      opts.Max,
		now:      opts.Now,
		metrics:  opts.Metrics,
		log:      opts.Logger,
	}
	if s.ttl <= 0 {
		s.ttl = DefaultSessionTTL
	}
	if s.max <= 0 {
		s.max = DefaultMaxSessions
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = logger.Discard()
	}
	return s
}

// Create starts a session; creation is the startup signal, so the welcome
// entry exists before the page is first rendered. Expired sessions are
// swept first, and the least recently seen one is evicted when full.
func (s *Sessions) Create() *Session {
	id := uuid.NewString()
	display := &pageDisplay{}
	buf := &transcript.Buffer{}
	opts := []transcript.Option{transcript.WithLogger(s.log.WithField("session", id))}
	if s.metrics != nil {
		opts = append(opts, transcript.WithObserver(s.metrics.Observe))
	}
	sess := &Session{
		ID:      id,
		ctrl:    transcript.New(display, buf, opts...),
		buf:     buf,
		display: display,
	}
	sess.ctrl.Initialize()
	display.drain()

	s.mu.Lock()
	now := s.now()
	removed := s.sweepLocked(now)
	for len(s.byID) >= s.max {
		s.removeLocked(s.oldestLocked())
		removed++
	}
	s.byID[id] = sess
	s.lastSeen[id] = now
	s.mu.Unlock()

	s.metrics.sessionsEnded(removed)
	s.metrics.sessionStarted()
	s.log.WithField("session", id).Info("session started")
	return sess
}

// Get returns a live session and marks it as seen.
func (s *Sessions) Get(id string) (*Session, bool) {
	s.mu.Lock()
	sess, ok := s.byID[id]
	expired := false
	if ok {
		now := s.now()
		if now.Sub(s.lastSeen[id]) > s.ttl {
			s.removeLocked(id)
			sess, ok, expired = nil, false, true
		} else {
			s.lastSeen[id] = now
		}
	}
	s.mu.Unlock()
	if expired {
		s.metrics.sessionsEnded(1)
	}
	return sess, ok
}

// Sweep drops every session idle for longer than the TTL.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	removed := s.sweepLocked(s.now())
	s.mu.Unlock()
	s.metrics.sessionsEnded(removed)
	if removed > 0 {
		s.log.WithField("removed", removed).Debug("swept idle sessions")
	}
	return removed
}

// sweepEvery runs Sweep on a ticker until ctx is done.
func (s *Sessions) sweepEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

func (s *Sessions) sweepLocked(now time.Time) int {
	removed := 0
	for id, seen := range s.lastSeen {
		if now.Sub(seen) > s.ttl {
			s.removeLocked(id)
			removed++
		}
	}
	return removed
}

func (s *Sessions) oldestLocked() string {
	oldest := ""
	var at time.Time
	for id, seen := range s.lastSeen {
		if oldest == "" || seen.Before(at) {
			oldest, at = id, seen
		}
	}
	return oldest
}

func (s *Sessions) removeLocked(id string) {
	delete(s.byID, id)
	delete(s.lastSeen, id)
}
