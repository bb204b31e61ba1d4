// Package stats accumulates one round's shooting statistics.
package stats

import (
	"math"
	"time"

	"aimrange/internal/config"
)

// MaxReaction bounds accepted reaction samples; anything at or beyond it is
// an AFK gap, not a reaction.
const MaxReaction = 5000 * time.Millisecond

// Shot is one resolved trigger pull.
type Shot struct {
	Hit      bool
	Center   bool
	Reaction time.Duration
	// Unscored marks a hit on a plate that was already going down: it
	// counts toward accuracy but earns nothing.
	Unscored bool
}

type Session struct {
	score config.Score

	Shots      int
	Hits       int
	CenterHits int

	ReactionTimes []float64 // ms
	BestReaction  float64
	AvgReaction   float64
	Consistency   float64

	Streak     int
	BestStreak int
	Score      int
}

func NewSession(score config.Score) *Session {
	return &Session{score: score}
}

func (s *Session) RecordShot(hit bool, reaction time.Duration) {
	s.Record(Shot{Hit: hit, Reaction: reaction})
}

func (s *Session) Record(shot Shot) {
	s.Shots++
	if !shot.Hit {
		s.Streak = 0
		return
	}
	s.Hits++
	if shot.Unscored {
		return
	}

	if shot.Center {
		s.CenterHits++
	}
	s.Streak++
	if s.Streak > s.BestStreak {
		s.BestStreak = s.Streak
	}
	s.Score += s.score.Hit
	if shot.Center {
		s.Score += s.score.CenterBonus
	}
	if s.score.StreakEvery > 0 && s.Streak%s.score.StreakEvery == 0 {
		s.Score += s.score.StreakBonus
	}

	if shot.Reaction > 0 && shot.Reaction < MaxReaction {
		s.addReaction(float64(shot.Reaction) / float64(time.Millisecond))
	}
}

func (s *Session) addReaction(ms float64) {
	s.ReactionTimes = append(s.ReactionTimes, ms)
	if len(s.ReactionTimes) == 1 || ms < s.BestReaction {
		s.BestReaction = ms
	}

	var sum float64
	for _, v := range s.ReactionTimes {
		sum += v
	}
	n := float64(len(s.ReactionTimes))
	s.AvgReaction = sum / n

	if len(s.ReactionTimes) < 2 {
		s.Consistency = 0
		return
	}
	var sq float64
	for _, v := range s.ReactionTimes {
		d := v - s.AvgReaction
		sq += d * d
	}
	s.Consistency = math.Sqrt(sq / n)
}

// Accuracy is hits/shots as a percentage, 0 before the first shot.
func (s *Session) Accuracy() float64 {
	if s.Shots == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Shots) * 100
}

func (s *Session) Reset() {
	*s = Session{score: s.score}
}

// Summary is the round result handed to the high-score ledger.
type Summary struct {
	ID             string    `json:"id"`
	PlayerID       string    `json:"playerId"`
	PlayerName     string    `json:"playerName"`
	Mode           string    `json:"mode"`
	Shots          int       `json:"shots"`
	Hits           int       `json:"hits"`
	CenterHits     int       `json:"centerHits"`
	Accuracy       float64   `json:"accuracy"`
	AvgReactionMs  float64   `json:"avgReactionMs"`
	BestReactionMs float64   `json:"bestReactionMs"`
	ConsistencyMs  float64   `json:"consistencyMs"`
	BestStreak     int       `json:"bestStreak"`
	Score          int       `json:"score"`
	DurationS      float64   `json:"durationS"`
	EndedAt        time.Time `json:"endedAt"`
}

func (s *Session) Summary(mode string) Summary {
	return Summary{
		Mode:           mode,
		Shots:          s.Shots,
		Hits:           s.Hits,
		CenterHits:     s.CenterHits,
		Accuracy:       s.Accuracy(),
		AvgReactionMs:  s.AvgReaction,
		BestReactionMs: s.BestReaction,
		ConsistencyMs:  s.Consistency,
		BestStreak:     s.BestStreak,
		Score:          s.Score,
	}
}
