// Package gamedata ties the range together: it owns one player's targets,
// weapon, stats and mode director and advances them one tick at a time.
package gamedata

import (
	"log"
	"math"
	"math/rand/v2"
	"time"

	"aimrange/internal/clock"
	"aimrange/internal/config"
	"aimrange/internal/events"
	"aimrange/internal/modes"
	"aimrange/internal/projection"
	"aimrange/internal/shots"
	"aimrange/internal/stats"
	"aimrange/internal/targets"
	"aimrange/internal/weapon"

	"github.com/google/uuid"
)

type Scene string

const (
	SceneMenu    = Scene("menu")
	SceneRunning = Scene("running")
	SceneEnded   = Scene("ended")
)

// Shot reports what a single Fire call did.
type Shot struct {
	Fired    bool          `json:"fired"`
	Hit      bool          `json:"hit"`
	Center   bool          `json:"center"`
	Unscored bool          `json:"unscored,omitempty"`
	TargetID int           `json:"targetId,omitempty"`
	Reaction time.Duration `json:"-"`
	Point    shots.Point   `json:"point"`
}

// GameData is the per-tick snapshot a renderer draws from.
type GameData struct {
	Scene      Scene          `json:"scene"`
	Mode       string         `json:"mode"`
	Timed      bool           `json:"timed"`
	TimeLeft   float64        `json:"timeLeft"`
	Targets    []targets.View `json:"targets"`
	Weapon     weapon.State   `json:"weapon"`
	Recoil     weapon.Offset  `json:"recoil"`
	Shots      int            `json:"shots"`
	Hits       int            `json:"hits"`
	Accuracy   float64        `json:"accuracy"`
	Streak     int            `json:"streak"`
	Score      int            `json:"score"`
	AvgMs      float64        `json:"avgMs"`
	BestMs     float64        `json:"bestMs"`
	LastResult *stats.Summary `json:"result,omitempty"`
}

// Game has exactly one mutator: the goroutine that calls Tick and Fire.
type Game struct {
	tun   config.Tuning
	clock clock.Clock

	scene    Scene
	mode     modes.Mode
	timeLeft float64
	elapsed  float64

	sessionID  string
	playerID   string
	playerName string
	last       *stats.Summary

	Targets  *targets.Store
	Weapon   *weapon.Model
	Stats    *stats.Session
	Director *modes.Director
	Events   *events.Bus

	audio     Audio
	projector projection.Projector
}

func NewGame(tun config.Tuning, c clock.Clock, rng *rand.Rand, bus *events.Bus) *Game {
	ts := targets.NewStore(tun, c)
	w := weapon.New(tun.Weapon, rng, c)
	s := stats.NewSession(tun.Score)
	return &Game{
		tun:       tun,
		clock:     c,
		scene:     SceneMenu,
		Targets:   ts,
		Weapon:    w,
		Stats:     s,
		Director:  modes.NewDirector(tun, ts, w, s, rng),
		Events:    bus,
		audio:     Silent{},
		projector: projection.NewPerspective(0, 0),
	}
}

func (g *Game) SetAudio(a Audio) {
	if a == nil {
		a = Silent{}
	}
	g.audio = a
}

func (g *Game) SetProjector(p projection.Projector) {
	if p != nil {
		g.projector = p
	}
}

func (g *Game) SetPlayer(sessionID, playerID, name string) {
	g.sessionID, g.playerID, g.playerName = sessionID, playerID, name
}

func (g *Game) Scene() Scene           { return g.scene }
func (g *Game) Mode() modes.Mode       { return g.mode }
func (g *Game) TimeLeft() float64      { return g.timeLeft }
func (g *Game) Elapsed() float64       { return g.elapsed }
func (g *Game) Timed() bool            { return g.mode.DurationS > 0 }
func (g *Game) Result() *stats.Summary { return g.last }

func (g *Game) StartMode(key string) modes.Mode {
	return g.StartRound(g.Director.StartMode(key))
}

func (g *Game) StartPreset(key string) modes.Mode {
	return g.StartRound(g.Director.StartPreset(key))
}

// Restart replays whatever was last started, or the default mode.
func (g *Game) Restart() modes.Mode {
	return g.StartRound(g.Director.RestartLast())
}

// StartRound puts the game into Running for a mode the director has already
// laid out.
func (g *Game) StartRound(m modes.Mode) modes.Mode {
	g.mode = m
	g.timeLeft = m.DurationS
	g.elapsed = 0
	g.last = nil
	g.setScene(SceneRunning)
	return m
}

// Tick advances the simulation by dt seconds. dt is clamped to
// [0, Round.MaxDT] so a stalled client cannot fling targets across the range.
func (g *Game) Tick(dt float64) {
	if g.scene != SceneRunning {
		return
	}
	dt = g.clampDT(dt)

	g.elapsed += dt
	g.Weapon.Update(dt)
	for _, t := range g.Targets.GetList() {
		t.Update(dt, g.elapsed)
	}
	g.Director.HandleRespawns(dt)

	if !g.Timed() {
		return
	}
	g.timeLeft -= dt
	if g.timeLeft <= 0 {
		g.timeLeft = 0
		g.EndRound()
	}
}

func (g *Game) clampDT(dt float64) float64 {
	if math.IsNaN(dt) || dt < 0 {
		return 0
	}
	limit := g.tun.Round.MaxDT.Seconds()
	if limit > 0 && dt > limit {
		return limit
	}
	return dt
}

// Fire pulls the trigger at the given crosshair position. A pull inside the
// fire-rate cooldown is ignored entirely and reports Fired=false.
func (g *Game) Fire(aim shots.Point) Shot {
	if g.scene != SceneRunning || !g.Weapon.CanFire() {
		return Shot{}
	}
	offset, ok := g.Weapon.Fire()
	if !ok {
		return Shot{}
	}
	g.audio.PlayGunshot()

	res := shots.Resolve(aim, offset, g.Targets.GetList(), g.projector)
	shot := Shot{Fired: true, Point: res.ShotPoint}
	if !res.Hit {
		g.Stats.Record(stats.Shot{})
		return shot
	}

	t := res.Target
	wasFalling := t.Falling
	reaction := t.OnHit(res.IsCenterHit)
	g.audio.PlayMetalPing(t.Distance, res.IsCenterHit)
	g.Stats.Record(stats.Shot{
		Hit:      true,
		Center:   res.IsCenterHit,
		Reaction: reaction,
		Unscored: wasFalling,
	})

	shot.Hit = true
	shot.Center = res.IsCenterHit
	shot.Unscored = wasFalling
	shot.TargetID = t.ID
	shot.Reaction = reaction
	return shot
}

// EndRound freezes the range and hands the round summary to the bus.
func (g *Game) EndRound() stats.Summary {
	sum := g.Stats.Summary(g.mode.Key)
	sum.ID = uuid.NewString()
	sum.PlayerID = g.playerID
	sum.PlayerName = g.playerName
	sum.DurationS = g.elapsed
	sum.EndedAt = g.clock.Now()
	g.last = &sum

	g.setScene(SceneEnded)
	if g.Events != nil && !g.Events.PublishRound(events.RoundEndedEvent{Summary: sum}) {
		log.Printf("[Game] round queue full, dropping result for %s\n", g.sessionID)
	}
	return sum
}

// ToMenu leaves the range. Free play has no timer, so leaving it is how
// the round ends; leaving a timed round early discards it.
func (g *Game) ToMenu() {
	if g.scene == SceneRunning && !g.Timed() && g.Stats.Shots > 0 {
		g.EndRound()
	}
	g.Targets.Clear()
	g.timeLeft = 0
	g.setScene(SceneMenu)
}

func (g *Game) setScene(s Scene) {
	g.scene = s
	if g.Events == nil {
		return
	}
	g.Events.PublishScene(events.SceneChangeEvent{
		SessionID: g.sessionID,
		Scene:     string(s),
		Mode:      g.mode.Key,
	})
}

func (g *Game) Get() GameData {
	return GameData{
		Scene:      g.scene,
		Mode:       g.mode.Key,
		Timed:      g.Timed(),
		TimeLeft:   g.timeLeft,
		Targets:    g.Targets.Views(),
		Weapon:     g.Weapon.State(),
		Recoil:     g.Weapon.RecoilOffset(),
		Shots:      g.Stats.Shots,
		Hits:       g.Stats.Hits,
		Accuracy:   g.Stats.Accuracy(),
		Streak:     g.Stats.Streak,
		Score:      g.Stats.Score,
		AvgMs:      g.Stats.AvgReaction,
		BestMs:     g.Stats.BestReaction,
		LastResult: g.last,
	}
}
