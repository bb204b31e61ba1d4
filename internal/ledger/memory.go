package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"aimrange/internal/stats"
)

// Memory is the ledger used when no database is configured. Everything is
// lost on restart.
type Memory struct {
	mu     sync.RWMutex
	rounds []stats.Summary
	badges map[string][]string
}

func NewMemory() *Memory {
	return &Memory{badges: make(map[string][]string)}
}

func (m *Memory) Record(ctx context.Context, sum stats.Summary) error {
	return m.RecordBatch(ctx, []stats.Summary{sum})
}

func (m *Memory) RecordBatch(_ context.Context, sums []stats.Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds = append(m.rounds, sums...)
	return nil
}

func (m *Memory) Lifetime(_ context.Context, playerID string) (Lifetime, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lt := Lifetime{PlayerID: playerID}
	for _, r := range m.rounds {
		if r.PlayerID != playerID {
			continue
		}
		lt.PlayerName = r.PlayerName
		lt.Rounds++
		lt.Shots += r.Shots
		lt.Hits += r.Hits
		lt.CenterHits += r.CenterHits
		lt.TotalScore += r.Score
		lt.BestAccuracy = max(lt.BestAccuracy, r.Accuracy)
		lt.BestScore = max(lt.BestScore, r.Score)
		lt.BestStreak = max(lt.BestStreak, r.BestStreak)
		lt.BestReactionMs = bestReaction(lt.BestReactionMs, r.BestReactionMs)
	}
	if lt.Rounds == 0 {
		return Lifetime{}, fmt.Errorf("lifetime for %s: %w", playerID, ErrNotFound)
	}
	if lt.Shots > 0 {
		lt.Accuracy = float64(lt.Hits) / float64(lt.Shots) * 100
	}
	return lt, nil
}

func (m *Memory) ModeBests(_ context.Context, playerID string) ([]ModeBest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byMode := make(map[string]*ModeBest)
	for _, r := range m.rounds {
		if r.PlayerID != playerID {
			continue
		}
		mb, ok := byMode[r.Mode]
		if !ok {
			mb = &ModeBest{Mode: r.Mode}
			byMode[r.Mode] = mb
		}
		mb.Rounds++
		mb.Shots += r.Shots
		mb.BestAccuracy = max(mb.BestAccuracy, r.Accuracy)
		mb.BestScore = max(mb.BestScore, r.Score)
		mb.BestReactionMs = bestReaction(mb.BestReactionMs, r.BestReactionMs)
	}

	bests := make([]ModeBest, 0, len(byMode))
	for _, mb := range byMode {
		bests = append(bests, *mb)
	}
	sort.Slice(bests, func(i, j int) bool { return bests[i].Mode < bests[j].Mode })
	return bests, nil
}

// Leaderboard ranks each player's best round in mode, or across all modes
// when mode is empty.
func (m *Memory) Leaderboard(_ context.Context, mode string, cat Category, limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	best := make(map[string]*Entry)
	for _, r := range m.rounds {
		if mode != "" && r.Mode != mode {
			continue
		}
		v, ok := cat.value(r)
		if !ok {
			continue
		}
		e, seen := best[r.PlayerID]
		if !seen {
			best[r.PlayerID] = &Entry{PlayerID: r.PlayerID, PlayerName: r.PlayerName, Value: v}
			continue
		}
		if better(cat, v, e.Value) {
			e.Value = v
			e.PlayerName = r.PlayerName
		}
	}

	entries := make([]Entry, 0, len(best))
	for _, e := range best {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return better(cat, entries[i].Value, entries[j].Value)
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func (m *Memory) AwardBadge(_ context.Context, playerID, badgeID, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.badges[playerID] {
		if b == badgeID {
			return nil
		}
	}
	m.badges[playerID] = append(m.badges[playerID], badgeID)
	return nil
}

func (m *Memory) Badges(_ context.Context, playerID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.badges[playerID]...), nil
}

func better(cat Category, a, b float64) bool {
	if cat.Ascending() {
		return a < b
	}
	return a > b
}

// bestReaction keeps the lower of two reaction times, ignoring zeros.
func bestReaction(cur, v float64) float64 {
	if v <= 0 {
		return cur
	}
	if cur == 0 || v < cur {
		return v
	}
	return cur
}
