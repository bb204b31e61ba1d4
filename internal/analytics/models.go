package analytics

import (
	"aimrange/internal/ledger"
	"aimrange/internal/stats"
)

// Profile is everything the ledger knows about one player.
type Profile struct {
	Lifetime ledger.Lifetime   `json:"lifetime"`
	Modes    []ledger.ModeBest `json:"modes"`
	Badges   []Badge           `json:"badges"`
}

// RoundRecap is what the round feed announces once a round is recorded.
type RoundRecap struct {
	Summary stats.Summary `json:"summary"`
	Badges  []Badge       `json:"badges,omitempty"`
}
