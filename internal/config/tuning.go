package config

import "time"

// Tuning is the single source of gameplay constants. It is passed by value
// into each component constructor; nothing reads it globally.
type Tuning struct {
	Weapon Weapon
	Target Target
	Peek   Peek
	Strafe Strafe
	Round  Round
	Flick  Flick
	Score  Score
}

type Weapon struct {
	FireRate time.Duration

	RecoilKick     float64 // px per shot before multiplier
	RecoilMax      float64
	RecoilRecovery float64 // px/s

	SpreadBase     float64
	SpreadPerShot  float64
	SpreadMax      float64
	SpreadRecovery float64 // px/s

	RapidFireWindow time.Duration
	MultiplierInc   float64
	MultiplierMax   float64
}

type Target struct {
	BaseSize    float64 // px at scale 1
	MicroSize   float64
	FallAccel   float64 // deg/s²
	SwingSpeed  float64 // rad/s
	SwingAmp    float64 // deg
	FlashDecay  float64 // per second
	CenterRatio float64 // fraction of radius counted as center
}

type Peek struct {
	Rest      time.Duration
	RiseSpeed float64 // world units/s
	DropSpeed float64
	HiddenY   float64
	Glow      time.Duration
	Expose    time.Duration // total exposed time, glow included
}

type Strafe struct {
	Range float64 // half-width of travel around spawn X, world units
	Speed float64 // world units/s
}

type Round struct {
	DefaultDurationS float64
	ResetDelayS      float64 // per-target reset after falling
	GraceDelayS      float64 // all-down reset
	MaxDT            time.Duration
}

type Flick struct {
	SpawnDelayS  float64
	MaxAngleDeg  float64
	LateralRange float64
	Distances    []float64
}

type Score struct {
	Hit         int
	CenterBonus int
	StreakEvery int
	StreakBonus int
}

func DefaultTuning() Tuning {
	return Tuning{
		Weapon: Weapon{
			FireRate:        120 * time.Millisecond,
			RecoilKick:      8,
			RecoilMax:       40,
			RecoilRecovery:  60,
			SpreadBase:      2,
			SpreadPerShot:   4,
			SpreadMax:       30,
			SpreadRecovery:  40,
			RapidFireWindow: 1000 * time.Millisecond,
			MultiplierInc:   0.25,
			MultiplierMax:   2.5,
		},
		Target: Target{
			BaseSize:    80,
			MicroSize:   30,
			FallAccel:   400,
			SwingSpeed:  1.5,
			SwingAmp:    4,
			FlashDecay:  4,
			CenterRatio: 0.3,
		},
		Peek: Peek{
			Rest:      1500 * time.Millisecond,
			RiseSpeed: 4,
			DropSpeed: 5,
			HiddenY:   -1.2,
			Glow:      350 * time.Millisecond,
			Expose:    1200 * time.Millisecond,
		},
		Strafe: Strafe{
			Range: 0.35,
			Speed: 0.3,
		},
		Round: Round{
			DefaultDurationS: 60,
			ResetDelayS:      2,
			GraceDelayS:      1,
			MaxDT:            100 * time.Millisecond,
		},
		Flick: Flick{
			SpawnDelayS:  0.3,
			MaxAngleDeg:  35,
			LateralRange: 0.9,
			Distances:    []float64{0.15, 0.3, 0.45, 0.6},
		},
		Score: Score{
			Hit:         10,
			CenterBonus: 5,
			StreakEvery: 5,
			StreakBonus: 10,
		},
	}
}
