package analytics

import (
	"context"
	"errors"
	"fmt"
	"log"

	"aimrange/internal/ledger"
	"aimrange/internal/stats"
)

type Service struct {
	Store ledger.Store
}

func NewService(store ledger.Store) *Service {
	return &Service{Store: store}
}

// AwardRound evaluates a recorded round, and the lifetime it now belongs
// to, and stores whatever badges were earned.
func (s *Service) AwardRound(ctx context.Context, sum stats.Summary) ([]Badge, error) {
	earned := EvaluateRoundBadges(sum)
	for _, b := range earned {
		if err := s.Store.AwardBadge(ctx, sum.PlayerID, string(b.ID), sum.ID); err != nil {
			return earned, fmt.Errorf("awarding %s: %w", b.ID, err)
		}
	}

	lt, err := s.Store.Lifetime(ctx, sum.PlayerID)
	if err != nil {
		return earned, fmt.Errorf("loading lifetime: %w", err)
	}
	for _, b := range EvaluateLifetimeBadges(lt) {
		if err := s.Store.AwardBadge(ctx, sum.PlayerID, string(b.ID), ""); err != nil {
			return earned, fmt.Errorf("awarding %s: %w", b.ID, err)
		}
		earned = append(earned, b)
	}
	return earned, nil
}

// Recap awards a recorded round and logs rather than fails on ledger
// errors, so the round feed always gets something to announce.
func (s *Service) Recap(ctx context.Context, sum stats.Summary) RoundRecap {
	badges, err := s.AwardRound(ctx, sum)
	if err != nil {
		log.Printf("[Analytics] badges for round %s: %v\n", sum.ID, err)
	}
	return RoundRecap{Summary: sum, Badges: badges}
}

func (s *Service) Profile(ctx context.Context, playerID string) (*Profile, error) {
	lt, err := s.Store.Lifetime(ctx, playerID)
	if err != nil {
		return nil, err
	}
	modes, err := s.Store.ModeBests(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("loading mode bests: %w", err)
	}
	ids, err := s.Store.Badges(ctx, playerID)
	if err != nil && !errors.Is(err, ledger.ErrNotFound) {
		return nil, fmt.Errorf("loading badges: %w", err)
	}

	p := &Profile{Lifetime: lt, Modes: modes}
	for _, id := range ids {
		if b, ok := AllBadges[BadgeID(id)]; ok {
			p.Badges = append(p.Badges, b)
		}
	}
	return p, nil
}
