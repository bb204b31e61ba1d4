// Package shots resolves a fired round against the live target set.
package shots

import (
	"sort"

	"aimrange/internal/projection"
	"aimrange/internal/targets"
	"aimrange/internal/weapon"
)

// Point is a crosshair position in screen pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Result struct {
	Hit         bool
	Target      *targets.Target
	IsCenterHit bool
	ShotPoint   Point
}

// Resolve offsets the aim point by the weapon's spread and returns the first
// target under it, testing nearer targets before farther ones so a near
// plate occludes a far one at the same screen position.
func Resolve(aim Point, spread weapon.Offset, list []*targets.Target, p projection.Projector) Result {
	shot := Point{X: aim.X + spread.X, Y: aim.Y + spread.Y}
	res := Result{ShotPoint: shot}

	for _, t := range NearestFirst(list) {
		if t.CheckHit(p, shot.X, shot.Y) {
			res.Hit = true
			res.Target = t
			res.IsCenterHit = t.IsCenterHit(p, shot.X, shot.Y)
			return res
		}
	}
	return res
}

// NearestFirst returns a copy of list ordered by ascending distance, ties
// broken by ID.
func NearestFirst(list []*targets.Target) []*targets.Target {
	ordered := make([]*targets.Target, len(list))
	copy(ordered, list)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Distance != ordered[j].Distance {
			return ordered[i].Distance < ordered[j].Distance
		}
		return ordered[i].ID < ordered[j].ID
	})
	return ordered
}
