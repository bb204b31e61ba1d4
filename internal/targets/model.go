package targets

import (
	"time"

	"aimrange/internal/clock"
	"aimrange/internal/config"
)

type Kind string

const (
	KindStatic Kind = "static"
	KindStrafe Kind = "strafe"
	KindPeek   Kind = "peek"
	KindMicro  Kind = "micro"
)

// ParseKind maps a layout string onto a Kind, defaulting to static.
func ParseKind(s string) Kind {
	switch Kind(s) {
	case KindStrafe, KindPeek, KindMicro:
		return Kind(s)
	}
	return KindStatic
}

// Behavior is the per-kind movement state. Only the variant a target was
// built with carries fields; static and micro plates share Swing.
type Behavior interface {
	behavior()
}

type Swing struct{}

type Strafe struct {
	MinX  float64
	MaxX  float64
	Speed float64
	Dir   float64 // +1 or -1
}

type PeekPhase string

const (
	PeekHidden   PeekPhase = "hidden"
	PeekRising   PeekPhase = "rising"
	PeekExposed  PeekPhase = "exposed"
	PeekDropping PeekPhase = "dropping"
)

type Peek struct {
	Phase PeekPhase
	Timer float64 // seconds spent in the current phase
}

func (Swing) behavior()   {}
func (*Strafe) behavior() {}
func (*Peek) behavior()   {}

// Spec describes a target to place on the range.
type Spec struct {
	Kind       Kind
	X          float64
	Distance   float64
	SwingPhase float64
	StrafeDir  float64
	Size       float64 // 0 picks the kind's default
}

type Target struct {
	ID       int
	Kind     Kind
	WorldX   float64
	WorldY   float64
	Distance float64
	BaseSize float64
	SpawnX   float64
	Behavior Behavior

	swingPhase float64
	swingSpeed float64
	swingAmp   float64
	SwingAngle float64

	Active       bool
	Hit          bool
	Falling      bool
	FallAngle    float64
	FallVelocity float64
	ImpactFlash  float64

	fallTimer float64
	downFor   float64

	Glowing   bool
	glowStart time.Time
	activeAt  time.Time
	SpawnedAt time.Time

	tgt   config.Target
	peek  config.Peek
	clock clock.Clock
}

// View is the per-frame renderer snapshot of one target.
type View struct {
	ID          int     `json:"id"`
	Kind        Kind    `json:"k"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Distance    float64 `json:"d"`
	BaseSize    float64 `json:"s"`
	Angle       float64 `json:"a"`
	Falling     bool    `json:"f,omitempty"`
	ImpactFlash float64 `json:"fl,omitempty"`
	Glowing     bool    `json:"g,omitempty"`
	Active      bool    `json:"on,omitempty"`
	PeekPhase   string  `json:"pp,omitempty"`
}
