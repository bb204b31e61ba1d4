// Package ledger keeps finished rounds and answers high-score questions
// about them.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"aimrange/internal/stats"
)

//go:generate go tool mockgen -destination=./mocks/store_mock.go -package=mocks . Store

var (
	ErrNotFound        = errors.New("not found")
	ErrUnknownCategory = errors.New("unknown leaderboard category")
)

type Store interface {
	Record(ctx context.Context, sum stats.Summary) error
	RecordBatch(ctx context.Context, sums []stats.Summary) error
	Lifetime(ctx context.Context, playerID string) (Lifetime, error)
	ModeBests(ctx context.Context, playerID string) ([]ModeBest, error)
	Leaderboard(ctx context.Context, mode string, cat Category, limit int) ([]Entry, error)
	AwardBadge(ctx context.Context, playerID, badgeID, roundID string) error
	Badges(ctx context.Context, playerID string) ([]string, error)
}

// Lifetime aggregates every recorded round for one player.
type Lifetime struct {
	PlayerID       string  `json:"playerId"`
	PlayerName     string  `json:"playerName"`
	Rounds         int     `json:"rounds"`
	Shots          int     `json:"shots"`
	Hits           int     `json:"hits"`
	CenterHits     int     `json:"centerHits"`
	Accuracy       float64 `json:"accuracy"`
	BestAccuracy   float64 `json:"bestAccuracy"`
	BestReactionMs float64 `json:"bestReactionMs"` // 0 if never measured
	BestScore      int     `json:"bestScore"`
	BestStreak     int     `json:"bestStreak"`
	TotalScore     int     `json:"totalScore"`
}

type ModeBest struct {
	Mode           string  `json:"mode"`
	Rounds         int     `json:"rounds"`
	Shots          int     `json:"shots"`
	BestAccuracy   float64 `json:"bestAccuracy"`
	BestReactionMs float64 `json:"bestReactionMs"`
	BestScore      int     `json:"bestScore"`
}

type Entry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"playerId"`
	PlayerName string  `json:"playerName"`
	Value      float64 `json:"value"`
}

type Category string

const (
	CategoryScore    Category = "score"
	CategoryAccuracy Category = "accuracy"
	CategoryReaction Category = "reaction"
	CategoryStreak   Category = "streak"
)

func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryScore, CategoryAccuracy, CategoryReaction, CategoryStreak:
		return c, nil
	case "":
		return CategoryScore, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownCategory, s)
	}
}

// Ascending reports whether lower values rank higher.
func (c Category) Ascending() bool { return c == CategoryReaction }

// value picks the number a category ranks a round by. ok is false when the
// round has nothing to contribute, e.g. no reaction samples.
func (c Category) value(sum stats.Summary) (v float64, ok bool) {
	switch c {
	case CategoryAccuracy:
		return sum.Accuracy, sum.Shots > 0
	case CategoryReaction:
		return sum.BestReactionMs, sum.BestReactionMs > 0
	case CategoryStreak:
		return float64(sum.BestStreak), true
	default:
		return float64(sum.Score), true
	}
}
