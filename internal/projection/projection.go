// Package projection maps range-space target positions onto the player's
// screen. The browser supplies its viewport; hit testing on the server uses
// the same mapping the client draws with.
package projection

import "math"

// Point is a projected screen position.
type Point struct {
	X     float64
	Y     float64
	Scale float64
	Fog   float64
}

// Projector is the renderer-side world-to-screen mapping.
type Projector interface {
	WorldToScreen(x, y, distance float64) Point
}

const (
	horizonRatio = 0.42 // horizon line, fraction of height from top
	groundRatio  = 0.96 // where distance 0 meets the ground
	minScale     = 0.12 // scale at distance 1
	liftRatio    = 0.22 // target disc center height above ground at scale 1
	maxFog       = 0.65
)

// Perspective is the default flat-range projection: distance 0 is the near
// ground line, distance 1 the horizon, scale shrinks linearly in between.
type Perspective struct {
	Width  float64
	Height float64
}

func NewPerspective(width, height float64) Perspective {
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		width = 1280
	}
	if height <= 0 || math.IsNaN(height) || math.IsInf(height, 0) {
		height = 720
	}
	return Perspective{Width: width, Height: height}
}

func (p Perspective) WorldToScreen(x, y, distance float64) Point {
	d := clamp01(distance)
	scale := 1 - (1-minScale)*d
	horizon := p.Height * horizonRatio
	ground := p.Height * groundRatio
	baseY := ground + (horizon-ground)*d
	lift := p.Height * liftRatio * scale
	return Point{
		X:     p.Width/2 + x*scale*p.Width*0.5,
		Y:     baseY - lift*(1+y),
		Scale: scale,
		Fog:   d * maxFog,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
