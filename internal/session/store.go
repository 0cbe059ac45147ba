// Package session keeps one storefront per client. Each storefront lives on
// its own Loop, so concurrent HTTP requests for the same session are
// serialized while different sessions proceed in parallel.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/NetLive5/weblarek/internal/presenter"
	"github.com/NetLive5/weblarek/pkg/errors"
)

// Factory builds a storefront that schedules its network work on sched
type Factory func(sched presenter.Scheduler) (*presenter.Presenter, error)

// Session is one client's storefront
type Session struct {
	ID         string
	loop       *Loop
	storefront *presenter.Presenter

	mu       sync.Mutex
	lastSeen time.Time
}

// Act runs fn against the storefront, waits for the network work it started,
// and returns what the screen looks like afterwards.
func (s *Session) Act(ctx context.Context, fn func(p *presenter.Presenter) error) (presenter.Screen, error) {
	if fn != nil {
		if err := s.loop.Do(ctx, func() error { return fn(s.storefront) }); err != nil {
			return presenter.Screen{}, err
		}
	}
	if err := s.loop.Settle(ctx); err != nil {
		return presenter.Screen{}, err
	}

	var screen presenter.Screen
	err := s.loop.Do(ctx, func() error {
		screen = s.storefront.Screen()
		return nil
	})
	return screen, err
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) close() {
	_ = s.loop.Do(context.Background(), func() error {
		s.storefront.Close()
		return nil
	})
	s.loop.Close()
}

// Store holds live sessions and expires idle ones
type Store struct {
	factory Factory
	ttl     time.Duration
	logger  *zap.Logger
	now     func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty store. Sessions idle for longer than ttl are removed by Sweep.
func NewStore(factory Factory, ttl time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Store{
		factory:  factory,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new storefront and loads its catalog
func (s *Store) Create(ctx context.Context) (*Session, error) {
	loop := NewLoop(s.ctx, s.logger)
	storefront, err := s.factory(loop)
	if err != nil {
		loop.Close()
		return nil, err
	}

	sess := &Session{
		ID:         uuid.NewString(),
		loop:       loop,
		storefront: storefront,
		lastSeen:   s.now(),
	}
	if _, err := sess.Act(ctx, func(p *presenter.Presenter) error {
		p.LoadCatalog()
		return nil
	}); err != nil {
		sess.close()
		return nil, err
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Info("Session created", zap.String("session_id", sess.ID))
	return sess, nil
}

// Get returns a live session and marks it as used
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "session", ID: id}
	}
	sess.touch(s.now())
	return sess, nil
}

// Delete ends a session. It reports whether the session existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		sess.close()
	}
	return ok
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how many were removed
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	var expired []*Session
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.idleSince().Before(cutoff) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.close()
		s.logger.Info("Session expired", zap.String("session_id", sess.ID))
	}
	return len(expired)
}

// RunSweeper sweeps every interval until ctx is done
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug("Swept idle sessions", zap.Int("count", n))
			}
		}
	}
}

// Close ends every session
func (s *Store) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.close()
	}
	s.cancel()
}
