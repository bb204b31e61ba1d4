// Package modes configures the range for a selected mode or preset and
// brings downed targets back according to that mode's respawn policy.
package modes

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand/v2"

	"aimrange/internal/config"
	"aimrange/internal/stats"
	"aimrange/internal/targets"
	"aimrange/internal/weapon"
)

var ErrUnknownMode = errors.New("unknown mode")

type Director struct {
	tun     config.Tuning
	catalog map[string]Mode
	store   *targets.Store
	weapon  *weapon.Model
	stats   *stats.Session
	rng     *rand.Rand

	current    Mode
	started    bool
	lastKey    string
	lastPreset bool
	graceTimer float64
}

func NewDirector(tun config.Tuning, store *targets.Store, w *weapon.Model, s *stats.Session, rng *rand.Rand) *Director {
	return &Director{
		tun:     tun,
		catalog: Catalog(tun),
		store:   store,
		weapon:  w,
		stats:   s,
		rng:     rng,
	}
}

// Lookup finds a mode or preset by key.
func (d *Director) Lookup(key string, preset bool) (Mode, error) {
	m, ok := d.catalog[key]
	if !ok || m.Preset != preset {
		return Mode{}, fmt.Errorf("%w: %q", ErrUnknownMode, key)
	}
	return m, nil
}

func (d *Director) Catalog() []Mode { return List(d.catalog) }

func (d *Director) Current() Mode { return d.current }

// StartMode sets up a mode. An unknown key starts the static layout so the
// player is never left without a range.
func (d *Director) StartMode(key string) Mode {
	return d.start(key, false)
}

func (d *Director) StartPreset(key string) Mode {
	return d.start(key, true)
}

// RestartLast repeats the most recent StartMode or StartPreset call.
func (d *Director) RestartLast() Mode {
	if !d.started {
		return d.StartMode(DefaultMode)
	}
	return d.start(d.lastKey, d.lastPreset)
}

func (d *Director) start(key string, preset bool) Mode {
	d.lastKey, d.lastPreset, d.started = key, preset, true

	m, err := d.Lookup(key, preset)
	if err != nil {
		log.Printf("[Modes] %v, falling back to %s\n", err, DefaultMode)
		m = d.catalog[DefaultMode]
	}
	d.current = m
	d.graceTimer = 0

	d.store.Clear()
	switch {
	case m.Policy == PolicySpawn:
		d.spawn()
	case m.Scatter > 0:
		d.scatter(m)
	default:
		for i, pl := range m.Layout {
			d.store.Add(d.placementSpec(m, pl, i))
		}
	}

	d.weapon.Reset()
	d.stats.Reset()
	return m
}

func (d *Director) placementSpec(m Mode, pl Placement, i int) targets.Spec {
	kind := pl.Kind
	if kind == "" {
		kind = m.Kind
	}
	dir := 1.0
	if i%2 == 1 {
		dir = -1
	}
	return targets.Spec{
		Kind:       kind,
		X:          pl.X,
		Distance:   pl.Distance,
		SwingPhase: float64(i) * 0.9,
		StrafeDir:  dir,
	}
}

func (d *Director) scatter(m Mode) {
	for i := 0; i < m.Scatter; i++ {
		pl := Placement{
			X:        (d.rng.Float64()*2 - 1) * m.ScatterX,
			Distance: m.ScatterMinD + d.rng.Float64()*(m.ScatterMaxD-m.ScatterMinD),
		}
		d.store.Add(d.placementSpec(m, pl, i))
	}
}

// spawnSpec picks a random bearing and a distance from the preset's pool.
func (d *Director) spawnSpec() targets.Spec {
	maxAngle := d.tun.Flick.MaxAngleDeg * math.Pi / 180
	angle := (d.rng.Float64()*2 - 1) * maxAngle
	dist := 0.3
	if pool := d.current.Distances; len(pool) > 0 {
		dist = pool[d.rng.IntN(len(pool))]
	}
	return targets.Spec{
		Kind:       d.current.Kind,
		X:          math.Sin(angle) * d.tun.Flick.LateralRange,
		Distance:   dist,
		SwingPhase: d.rng.Float64() * 2 * math.Pi,
	}
}

func (d *Director) spawn() *targets.Target {
	t := d.store.Add(d.spawnSpec())
	t.Arm()
	return t
}

// HandleRespawns runs once per tick after targets have been updated.
func (d *Director) HandleRespawns(dt float64) {
	switch d.current.Policy {
	case PolicySpawn:
		for _, t := range d.store.GetList() {
			if t.IsDown() && t.DownFor() >= d.current.SpawnDelayS {
				fresh := d.store.Replace(t.ID, d.spawnSpec())
				fresh.Arm()
			}
		}
	case PolicyAllDown:
		if !d.store.AllDown() {
			d.graceTimer = 0
			return
		}
		d.graceTimer += dt
		if d.graceTimer >= d.tun.Round.GraceDelayS {
			for _, t := range d.store.GetList() {
				t.Reset()
			}
			d.graceTimer = 0
		}
	default:
		for _, t := range d.store.GetList() {
			if t.IsDown() && t.DownFor() > d.tun.Round.ResetDelayS {
				t.Reset()
			}
		}
	}
}
