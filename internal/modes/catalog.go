package modes

import (
	"sort"

	"aimrange/internal/config"
	"aimrange/internal/targets"
)

// Policy decides how downed targets come back.
type Policy string

const (
	// PolicyIndividual resets each target in place once it has lain down
	// for ResetDelayS.
	PolicyIndividual Policy = "individual"
	// PolicyAllDown waits for the whole field to be cleared, then resets
	// everything together after GraceDelayS.
	PolicyAllDown Policy = "all-down"
	// PolicySpawn replaces a downed target with a freshly placed one after
	// SpawnDelayS.
	PolicySpawn Policy = "spawn"
)

type Placement struct {
	X        float64      `json:"x"`
	Distance float64      `json:"d"`
	Kind     targets.Kind `json:"k,omitempty"`
}

type Mode struct {
	Key       string       `json:"key"`
	Name      string       `json:"name"`
	Preset    bool         `json:"preset"`
	Kind      targets.Kind `json:"kind"`
	DurationS float64      `json:"durationS"` // 0 is untimed
	Policy    Policy       `json:"policy"`
	Layout    []Placement  `json:"layout,omitempty"`

	// Scatter places this many targets procedurally instead of Layout.
	Scatter     int       `json:"scatter,omitempty"`
	ScatterX    float64   `json:"-"`
	ScatterMinD float64   `json:"-"`
	ScatterMaxD float64   `json:"-"`
	SpawnDelayS float64   `json:"spawnDelayS,omitempty"`
	Distances   []float64 `json:"distances,omitempty"`
}

const DefaultMode = "static"

var staticLayout = []Placement{
	{X: -0.6, Distance: 0.25},
	{X: -0.3, Distance: 0.45},
	{X: 0, Distance: 0.35},
	{X: 0.3, Distance: 0.55},
	{X: 0.6, Distance: 0.3},
}

// Catalog builds every mode and preset for the given tuning.
func Catalog(tun config.Tuning) map[string]Mode {
	d := tun.Round.DefaultDurationS
	modes := []Mode{
		{
			Key: "static", Name: "Static Plates", Kind: targets.KindStatic,
			DurationS: d, Policy: PolicyIndividual, Layout: staticLayout,
		},
		{
			Key: "strafe", Name: "Strafing Plates", Kind: targets.KindStrafe,
			DurationS: d, Policy: PolicyIndividual,
			Layout: []Placement{
				{X: -0.4, Distance: 0.3},
				{X: 0, Distance: 0.5},
				{X: 0.4, Distance: 0.4},
			},
		},
		{
			Key: "peek", Name: "Peek-a-boo", Kind: targets.KindPeek,
			DurationS: d, Policy: PolicyIndividual,
			Layout: []Placement{
				{X: -0.5, Distance: 0.3},
				{X: -0.15, Distance: 0.5},
				{X: 0.2, Distance: 0.4},
				{X: 0.55, Distance: 0.6},
			},
		},
		{
			Key: "micro", Name: "Micro Plates", Kind: targets.KindMicro,
			DurationS: d, Policy: PolicyIndividual,
			Layout: []Placement{
				{X: -0.45, Distance: 0.2},
				{X: -0.2, Distance: 0.35},
				{X: 0.05, Distance: 0.25},
				{X: 0.25, Distance: 0.45},
				{X: 0.45, Distance: 0.3},
				{X: 0.65, Distance: 0.5},
			},
		},
		{
			Key: "free", Name: "Free Play", Kind: targets.KindStatic,
			DurationS: 0, Policy: PolicyIndividual, Layout: staticLayout,
		},
		{
			Key: "flick", Name: "Flick", Preset: true, Kind: targets.KindStatic,
			DurationS: d, Policy: PolicySpawn,
			SpawnDelayS: tun.Flick.SpawnDelayS, Distances: tun.Flick.Distances,
		},
		{
			Key: "tracking", Name: "Tracking", Preset: true, Kind: targets.KindStrafe,
			DurationS: d, Policy: PolicyIndividual,
			Scatter: 4, ScatterX: 0.5, ScatterMinD: 0.2, ScatterMaxD: 0.7,
		},
		{
			Key: "micro-adjust", Name: "Micro Adjust", Preset: true, Kind: targets.KindMicro,
			DurationS: d, Policy: PolicyAllDown,
			Scatter: 6, ScatterX: 0.25, ScatterMinD: 0.25, ScatterMaxD: 0.5,
		},
	}

	catalog := make(map[string]Mode, len(modes))
	for _, m := range modes {
		catalog[m.Key] = m
	}
	return catalog
}

// List returns the catalog sorted with modes before presets, then by key.
func List(catalog map[string]Mode) []Mode {
	list := make([]Mode, 0, len(catalog))
	for _, m := range catalog {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Preset != list[j].Preset {
			return !list[i].Preset
		}
		return list[i].Key < list[j].Key
	})
	return list
}
