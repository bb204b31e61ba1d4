// Package weapon models the rifle's fire-rate gate, recoil and spread.
package weapon

import (
	"math"
	"math/rand/v2"
	"time"

	"aimrange/internal/clock"
	"aimrange/internal/config"
)

// Offset is a screen-space displacement in pixels.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// State is the read-only view handed to renderers and snapshots.
type State struct {
	Recoil     float64 `json:"recoil"`
	Spread     float64 `json:"spread"`
	Multiplier float64 `json:"mult"`
}

type Model struct {
	cfg   config.Weapon
	rng   *rand.Rand
	clock clock.Clock

	recoil     float64
	spread     float64
	multiplier float64

	lastFire time.Time
	shots    []time.Time
}

// New builds a weapon. rng drives spread sampling and must be seeded by the
// caller when shot outcomes need to be reproducible.
func New(cfg config.Weapon, rng *rand.Rand, c clock.Clock) *Model {
	m := &Model{cfg: cfg, rng: rng, clock: c}
	m.Reset()
	return m
}

func (m *Model) Reset() {
	m.recoil = 0
	m.spread = m.cfg.SpreadBase
	m.multiplier = 1
	m.lastFire = time.Time{}
	m.shots = m.shots[:0]
}

func (m *Model) CanFire() bool {
	return m.canFireAt(m.clock.Now())
}

func (m *Model) canFireAt(now time.Time) bool {
	return m.lastFire.IsZero() || now.Sub(m.lastFire) >= m.cfg.FireRate
}

// Fire discharges one round and returns the shot's deviation from the aim
// point. It returns false without touching any state while the fire-rate
// cooldown is running.
func (m *Model) Fire() (Offset, bool) {
	now := m.clock.Now()
	if !m.canFireAt(now) {
		return Offset{}, false
	}
	m.lastFire = now

	m.shots = append(m.shots, now)
	m.prune(now)
	if n := len(m.shots); n > 2 {
		m.multiplier = math.Min(1+float64(n-2)*m.cfg.MultiplierInc, m.cfg.MultiplierMax)
	}

	m.recoil = math.Min(m.recoil+m.cfg.RecoilKick*m.multiplier, m.cfg.RecoilMax)
	m.spread = math.Min(m.spread+m.cfg.SpreadPerShot*m.multiplier, m.cfg.SpreadMax)

	// Uniform angle and uniform radius: denser toward the middle than a
	// uniform-area disc.
	angle := m.rng.Float64() * 2 * math.Pi
	r := m.rng.Float64() * m.spread
	return Offset{X: math.Cos(angle) * r, Y: math.Sin(angle) * r}, true
}

// Update decays recoil and spread by dt seconds and ages the rapid-fire window.
func (m *Model) Update(dt float64) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	m.recoil = math.Max(0, m.recoil-m.cfg.RecoilRecovery*dt)
	m.spread = math.Max(m.cfg.SpreadBase, m.spread-m.cfg.SpreadRecovery*dt)

	m.prune(m.clock.Now())
	if len(m.shots) <= 2 {
		m.multiplier = 1
	}
}

func (m *Model) prune(now time.Time) {
	keep := m.shots[:0]
	for _, ts := range m.shots {
		if now.Sub(ts) < m.cfg.RapidFireWindow {
			keep = append(keep, ts)
		}
	}
	m.shots = keep
}

// RecoilOffset is the camera kick for this frame. The horizontal jitter is
// cosmetic and draws from the unseeded global source.
func (m *Model) RecoilOffset() Offset {
	return Offset{
		X: (rand.Float64()*2 - 1) * m.recoil * 0.2,
		Y: -m.recoil,
	}
}

func (m *Model) State() State {
	return State{Recoil: m.recoil, Spread: m.spread, Multiplier: m.multiplier}
}

func (m *Model) Recoil() float64     { return m.recoil }
func (m *Model) Spread() float64     { return m.spread }
func (m *Model) Multiplier() float64 { return m.multiplier }

// ShotsInWindow reports how many recent shots still count toward rapid fire.
func (m *Model) ShotsInWindow() int { return len(m.shots) }
