// Package sessions keeps one range per connected player and drives each at
// a fixed tick rate.
package sessions

import (
	"context"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"aimrange/internal/clock"
	"aimrange/internal/config"
	"aimrange/internal/events"
	"aimrange/internal/gamedata"
	"aimrange/internal/wshub"

	"github.com/google/uuid"
)

const (
	staleTTL      = 1 * time.Hour
	sweepInterval = 5 * time.Minute
	inboxSize     = 64
)

type Options struct {
	TickRate int
	// Seed makes every session's gameplay RNG reproducible. Zero seeds
	// each session randomly.
	Seed  uint64
	Clock clock.Clock
}

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	tun      config.Tuning
	bus      *events.Bus
	opts     Options
	created  uint64
}

func NewStore(tun config.Tuning, bus *events.Bus, opts Options) *Store {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	return &Store{
		sessions: make(map[string]*Session),
		tun:      tun,
		bus:      bus,
		opts:     opts,
	}
}

func (s *Store) Create(playerID, name string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if playerID == "" {
		playerID = uuid.NewString()
	}
	if name == "" {
		name = "Player"
	}

	s.created++
	id := uuid.NewString()
	game := gamedata.NewGame(s.tun, s.opts.Clock, s.rng(), s.bus)
	game.SetPlayer(id, playerID, name)

	sess := &Session{
		ID:           id,
		PlayerID:     playerID,
		PlayerName:   name,
		Game:         game,
		CreatedAt:    time.Now(),
		inbox:        make(chan wshub.ClientMessage, inboxSize),
		tickInterval: time.Second / time.Duration(s.opts.TickRate),
		clock:        s.opts.Clock,
		done:         make(chan struct{}),
	}
	sess.touch()
	s.sessions[id] = sess
	return sess
}

// rng must be called with s.mu held.
func (s *Store) rng() *rand.Rand {
	if s.opts.Seed != 0 {
		return rand.New(rand.NewPCG(s.opts.Seed, s.created))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (s *Store) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

// Delete removes the session and stops its loop.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		sess.Close()
	}
}

func (s *Store) List() []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		list = append(list, sess)
	}
	return list
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// SweepStale drops sessions nobody has talked to for staleTTL until ctx is
// cancelled.
func (s *Store) SweepStale(ctx context.Context) error {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.sweep(time.Now()); n > 0 {
				log.Printf("[Session] swept %d stale sessions\n", n)
			}
		}
	}
}

func (s *Store) sweep(now time.Time) int {
	s.mu.Lock()
	var stale []*Session
	for id, sess := range s.sessions {
		if now.Sub(sess.LastSeen()) > staleTTL {
			stale = append(stale, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range stale {
		sess.Close()
	}
	return len(stale)
}
