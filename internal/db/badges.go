package db

import (
	"context"
	"fmt"
)

// AwardBadge is idempotent per player and badge. An empty roundID marks a
// lifetime badge.
func (d *DB) AwardBadge(ctx context.Context, playerID, badgeID, roundID string) error {
	var round *string
	if roundID != "" {
		round = &roundID
	}
	_, err := d.conn.ExecContext(ctx, `
		INSERT INTO player_badges (player_id, badge_id, round_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, badge_id) DO NOTHING
	`, playerID, badgeID, round)
	if err != nil {
		return fmt.Errorf("awarding badge: %w", err)
	}
	return nil
}

func (d *DB) Badges(ctx context.Context, playerID string) ([]string, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT badge_id FROM player_badges WHERE player_id = $1 ORDER BY awarded_at
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("getting badges: %w", err)
	}
	defer rows.Close()

	var badges []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		badges = append(badges, id)
	}
	return badges, rows.Err()
}
