package targets

import (
	"math"
	"time"

	"aimrange/internal/clock"
	"aimrange/internal/config"
	"aimrange/internal/projection"
)

const (
	// DeadAngle is the fall angle past which a plate no longer takes hits.
	DeadAngle = -45.0
	// DownAngle is the fall angle at which a plate counts as down for respawn.
	DownAngle = -88.0

	centerHitVelocity = 120.0
	edgeHitVelocity   = 80.0
)

func New(id int, s Spec, tun config.Tuning, c clock.Clock) *Target {
	t := &Target{
		ID:         id,
		Kind:       s.Kind,
		WorldX:     s.X,
		Distance:   s.Distance,
		BaseSize:   s.Size,
		SpawnX:     s.X,
		swingPhase: s.SwingPhase,
		swingSpeed: tun.Target.SwingSpeed,
		swingAmp:   tun.Target.SwingAmp,
		SpawnedAt:  c.Now(),
		tgt:        tun.Target,
		peek:       tun.Peek,
		clock:      c,
	}
	if t.BaseSize <= 0 {
		t.BaseSize = tun.Target.BaseSize
		if s.Kind == KindMicro {
			t.BaseSize = tun.Target.MicroSize
		}
	}

	switch s.Kind {
	case KindStrafe:
		dir := s.StrafeDir
		if dir == 0 {
			dir = 1
		}
		t.Behavior = &Strafe{
			MinX:  s.X - tun.Strafe.Range,
			MaxX:  s.X + tun.Strafe.Range,
			Speed: tun.Strafe.Speed,
			Dir:   math.Copysign(1, dir),
		}
	case KindPeek:
		t.Behavior = &Peek{Phase: PeekHidden}
	default:
		t.Behavior = Swing{}
	}
	t.Reset()
	return t
}

// Arm stamps the reaction origin now. Spawn-driven drills call it when a
// target appears so hits on it yield a reaction time.
func (t *Target) Arm() {
	t.activeAt = t.clock.Now()
}

// ActiveAt is the reaction origin; zero when the target never had a
// discrete activation.
func (t *Target) ActiveAt() time.Time { return t.activeAt }

// Update advances the target by dt seconds; total is the session's
// accumulated time and drives the idle swing.
func (t *Target) Update(dt, total float64) {
	t.ImpactFlash = math.Max(0, t.ImpactFlash-t.tgt.FlashDecay*dt)

	if t.Falling {
		t.fallTimer += dt
		t.FallVelocity += t.tgt.FallAccel * dt
		t.FallAngle = math.Max(-90, t.FallAngle-t.FallVelocity*dt)
		if t.FallAngle <= DownAngle {
			t.downFor += dt
		}
		return
	}

	switch b := t.Behavior.(type) {
	case *Strafe:
		t.WorldX += b.Speed * b.Dir * dt
		if t.WorldX >= b.MaxX {
			t.WorldX = b.MaxX
			b.Dir = -1
		} else if t.WorldX <= b.MinX {
			t.WorldX = b.MinX
			b.Dir = 1
		}
		t.Active = true
	case *Peek:
		t.updatePeek(b, dt)
	default:
		t.SwingAngle = math.Sin(total*t.swingSpeed+t.swingPhase) * t.swingAmp
		t.Active = true
	}
}

func (t *Target) updatePeek(p *Peek, dt float64) {
	switch p.Phase {
	case PeekHidden:
		t.Active = false
		p.Timer += dt
		if p.Timer >= t.peek.Rest.Seconds() {
			p.Phase = PeekRising
			p.Timer = 0
		}
	case PeekRising:
		t.WorldY = math.Min(0, t.WorldY+t.peek.RiseSpeed*dt)
		if t.WorldY >= 0 {
			p.Phase = PeekExposed
			p.Timer = 0
			t.Glowing = true
			t.glowStart = t.clock.Now()
		}
	case PeekExposed:
		p.Timer += dt
		if t.Glowing && p.Timer >= t.peek.Glow.Seconds() {
			t.Glowing = false
			t.Active = true
			t.activeAt = t.clock.Now()
		}
		if p.Timer >= t.peek.Expose.Seconds() {
			p.Phase = PeekDropping
			p.Timer = 0
			t.Active = false
			t.Glowing = false
		}
	case PeekDropping:
		t.WorldY = math.Max(t.peek.HiddenY, t.WorldY-t.peek.DropSpeed*dt)
		if t.WorldY <= t.peek.HiddenY {
			p.Phase = PeekHidden
			p.Timer = 0
			t.activeAt = time.Time{}
		}
	}
}

// OnHit knocks the plate over and returns the reaction time measured from
// its activation. A plate already falling is left alone and yields 0.
func (t *Target) OnHit(center bool) time.Duration {
	if t.Falling {
		return 0
	}
	t.Hit = true
	t.Falling = true
	t.Glowing = false
	t.fallTimer = 0
	t.downFor = 0
	t.ImpactFlash = 1
	t.FallVelocity = edgeHitVelocity
	if center {
		t.FallVelocity = centerHitVelocity
	}

	if t.activeAt.IsZero() {
		return 0
	}
	return t.clock.Now().Sub(t.activeAt)
}

// HitTestable reports whether a shot can register on the target at all.
func (t *Target) HitTestable() bool {
	if !t.Active {
		return false
	}
	return !(t.Falling && t.FallAngle < DeadAngle)
}

// CheckHit tests a screen point against the projected plate.
func (t *Target) CheckHit(p projection.Projector, sx, sy float64) bool {
	if !t.HitTestable() {
		return false
	}
	d, r := t.screenDistance(p, sx, sy)
	return d <= r
}

// IsCenterHit tests against the inner precision ring of the plate.
func (t *Target) IsCenterHit(p projection.Projector, sx, sy float64) bool {
	d, r := t.screenDistance(p, sx, sy)
	return d <= r*t.tgt.CenterRatio
}

func (t *Target) screenDistance(p projection.Projector, sx, sy float64) (dist, radius float64) {
	pt := p.WorldToScreen(t.WorldX, t.WorldY, t.Distance)
	return math.Hypot(sx-pt.X, sy-pt.Y), t.BaseSize * pt.Scale * 0.5
}

// IsDown reports whether the plate has toppled to the respawn threshold.
func (t *Target) IsDown() bool {
	return t.Falling && t.FallAngle <= DownAngle
}

// DownFor is how long, in seconds, the plate has lain past DownAngle.
func (t *Target) DownFor() float64 { return t.downFor }

// FallTime is seconds since the plate was hit.
func (t *Target) FallTime() float64 { return t.fallTimer }

func (t *Target) Reset() {
	t.Hit = false
	t.Falling = false
	t.FallAngle = 0
	t.FallVelocity = 0
	t.fallTimer = 0
	t.downFor = 0
	t.ImpactFlash = 0
	t.Glowing = false
	t.glowStart = time.Time{}
	t.activeAt = time.Time{}

	switch b := t.Behavior.(type) {
	case *Strafe:
		t.WorldX = t.SpawnX
		t.WorldY = 0
		t.Active = true
	case *Peek:
		b.Phase = PeekHidden
		b.Timer = 0
		t.WorldY = t.peek.HiddenY
		t.Active = false
	default:
		t.WorldY = 0
		t.Active = true
	}
}

func (t *Target) View() View {
	v := View{
		ID:          t.ID,
		Kind:        t.Kind,
		X:           t.WorldX,
		Y:           t.WorldY,
		Distance:    t.Distance,
		BaseSize:    t.BaseSize,
		Angle:       t.SwingAngle,
		Falling:     t.Falling,
		ImpactFlash: t.ImpactFlash,
		Glowing:     t.Glowing,
		Active:      t.HitTestable(),
	}
	if t.Falling {
		v.Angle = t.FallAngle
	}
	if p, ok := t.Behavior.(*Peek); ok {
		v.PeekPhase = string(p.Phase)
	}
	return v
}

// GlowStart is when the current warning glow began.
func (t *Target) GlowStart() time.Time { return t.glowStart }
