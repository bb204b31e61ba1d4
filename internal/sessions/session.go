package sessions

import (
	"context"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"aimrange/internal/clock"
	"aimrange/internal/gamedata"
	"aimrange/internal/metrics"
	"aimrange/internal/projection"
	"aimrange/internal/shots"
	"aimrange/internal/stats"
	"aimrange/internal/wshub"
)

// Sender is the outbound half of a connection.
type Sender interface {
	Enqueue(msg wshub.ServerMessage) bool
}

// Session is one player's range. Its Game is touched only from Run.
type Session struct {
	ID         string
	PlayerID   string
	PlayerName string
	Game       *gamedata.Game
	CreatedAt  time.Time

	inbox        chan wshub.ClientMessage
	tickInterval time.Duration
	clock        clock.Clock
	lastSeen     atomic.Int64

	closeOnce sync.Once
	done      chan struct{}

	// per-tick scratch, owned by Run
	out   Sender
	aim   shots.Point
	sfx   []wshub.ServerMessage
	scene gamedata.Scene
}

// Submit queues an inbound message for the next tick. It reports false if
// the inbox is full or the session has stopped.
func (s *Session) Submit(msg wshub.ClientMessage) bool {
	s.touch()
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.inbox <- msg:
		return true
	default:
		metrics.DroppedMessages.WithLabelValues("inbox").Inc()
		return false
	}
}

// Close stops Run. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

// Run drives the session at its tick rate until ctx is cancelled or the
// session is closed. Each tick drains the inbox, advances the game by the
// measured elapsed time and pushes a snapshot.
func (s *Session) Run(ctx context.Context, out Sender) error {
	s.out = out
	s.Game.SetAudio(s)
	s.scene = s.Game.Scene()

	s.send(wshub.ServerMessage{
		Type:      wshub.TypeWelcome,
		SessionID: s.ID,
		PlayerID:  s.PlayerID,
		Modes:     s.Game.Director.Catalog(),
	})

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	last := s.clock.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.done:
			return nil
		case <-ticker.C:
			now := s.clock.Now()
			s.Step(now.Sub(last).Seconds())
			last = now
		}
	}
}

// Step runs one tick: inbound messages first, then the simulation, then
// whatever the tick produced goes out.
func (s *Session) Step(dt float64) {
	start := time.Now()

RECEIVE_LOOP:
	for {
		select {
		case msg := <-s.inbox:
			s.handle(msg)
		default:
			break RECEIVE_LOOP
		}
	}

	s.Game.Tick(dt)
	s.checkRoundEnd()
	s.flushSfx()
	if s.Game.Scene() == gamedata.SceneRunning {
		s.sendSnapshot()
	}

	metrics.TickDuration.Observe(time.Since(start).Seconds())
}

func (s *Session) handle(msg wshub.ClientMessage) {
	switch msg.Type {
	case wshub.TypeHello:
		if msg.X > 0 && msg.Y > 0 {
			s.Game.SetProjector(projection.NewPerspective(msg.X, msg.Y))
		}
		s.sendSnapshot()
	case wshub.TypeAim:
		s.aim = shots.Point{X: msg.X, Y: msg.Y}
	case wshub.TypeFire:
		if msg.X != 0 || msg.Y != 0 {
			s.aim = shots.Point{X: msg.X, Y: msg.Y}
		}
		s.fire()
	case wshub.TypeMode:
		s.Game.StartMode(msg.Key)
		s.sendSnapshot()
	case wshub.TypePreset:
		s.Game.StartPreset(msg.Key)
		s.sendSnapshot()
	case wshub.TypeRetry:
		s.Game.Restart()
		s.sendSnapshot()
	case wshub.TypeMenu:
		s.Game.ToMenu()
		s.checkRoundEnd()
		s.sendSnapshot()
	default:
		s.send(wshub.ServerMessage{Type: wshub.TypeError, Error: "unknown message type: " + msg.Type})
	}
}

func (s *Session) fire() {
	shot := s.Game.Fire(s.aim)
	if !shot.Fired {
		return
	}
	mode := s.Game.Mode().Key
	metrics.ShotsFired.WithLabelValues(mode).Inc()
	if shot.Hit {
		metrics.ShotsHit.WithLabelValues(mode, strconv.FormatBool(shot.Center)).Inc()
	}
	if shot.Reaction > 0 && shot.Reaction < stats.MaxReaction {
		metrics.Reaction.WithLabelValues(mode).Observe(shot.Reaction.Seconds())
	}
	s.send(wshub.ServerMessage{Type: wshub.TypeShot, Shot: &shot})
}

// checkRoundEnd reports a round that finished since the last check.
func (s *Session) checkRoundEnd() {
	scene := s.Game.Scene()
	prev := s.scene
	s.scene = scene
	if prev != gamedata.SceneRunning || scene == gamedata.SceneRunning {
		return
	}
	res := s.Game.Result()
	if res == nil {
		return
	}
	metrics.RoundsCompleted.WithLabelValues(res.Mode).Inc()
	log.Printf("[Session] %s finished %s: %d/%d hits, score %d\n", s.ID, res.Mode, res.Hits, res.Shots, res.Score)
	s.send(wshub.ServerMessage{Type: wshub.TypeRound, Payload: res})
}

func (s *Session) sendSnapshot() {
	frame := s.Game.Get()
	s.send(wshub.ServerMessage{Type: wshub.TypeSnapshot, Frame: &frame})
}

func (s *Session) flushSfx() {
	for _, m := range s.sfx {
		s.send(m)
	}
	s.sfx = s.sfx[:0]
}

func (s *Session) send(msg wshub.ServerMessage) {
	if s.out == nil {
		return
	}
	if !s.out.Enqueue(msg) {
		metrics.DroppedMessages.WithLabelValues(msg.Type).Inc()
	}
}

func (s *Session) PlayGunshot() {
	s.sfx = append(s.sfx, wshub.ServerMessage{Type: wshub.TypeSfx, Sound: "gunshot"})
}

func (s *Session) PlayMetalPing(distance float64, center bool) {
	s.sfx = append(s.sfx, wshub.ServerMessage{Type: wshub.TypeSfx, Sound: "ping", Distance: distance, Center: center})
}
