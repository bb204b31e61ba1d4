package db

import (
	"context"
	"fmt"

	"aimrange/internal/ledger"
	"aimrange/internal/stats"
)

const insertRound = `
	INSERT INTO rounds (id, player_id, mode, shots, hits, center_hits, accuracy, avg_reaction_ms,
		best_reaction_ms, consistency_ms, best_streak, score, duration_s, ended_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (id) DO NOTHING`

const upsertPlayer = `
	INSERT INTO players (id, name)
	VALUES ($1, $2)
	ON CONFLICT (id) DO UPDATE SET name = $2`

func (d *DB) Record(ctx context.Context, sum stats.Summary) error {
	return d.RecordBatch(ctx, []stats.Summary{sum})
}

// RecordBatch writes rounds, and the players who shot them, in one
// transaction.
func (d *DB) RecordBatch(ctx context.Context, sums []stats.Summary) error {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	players, err := tx.PrepareContext(ctx, upsertPlayer)
	if err != nil {
		return fmt.Errorf("preparing player statement: %w", err)
	}
	defer players.Close()

	rounds, err := tx.PrepareContext(ctx, insertRound)
	if err != nil {
		return fmt.Errorf("preparing round statement: %w", err)
	}
	defer rounds.Close()

	for _, s := range sums {
		if _, err := players.ExecContext(ctx, s.PlayerID, s.PlayerName); err != nil {
			return fmt.Errorf("upserting player in batch: %w", err)
		}
		if _, err := rounds.ExecContext(ctx, s.ID, s.PlayerID, s.Mode, s.Shots, s.Hits, s.CenterHits,
			s.Accuracy, s.AvgReactionMs, s.BestReactionMs, s.ConsistencyMs, s.BestStreak, s.Score,
			s.DurationS, s.EndedAt); err != nil {
			return fmt.Errorf("recording round in batch: %w", err)
		}
	}

	return tx.Commit()
}

func (d *DB) Lifetime(ctx context.Context, playerID string) (ledger.Lifetime, error) {
	lt := ledger.Lifetime{PlayerID: playerID}

	p, err := d.GetPlayer(ctx, playerID)
	if err != nil {
		return ledger.Lifetime{}, err
	}
	lt.PlayerName = p.Name

	err = d.conn.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(shots), 0),
			COALESCE(SUM(hits), 0),
			COALESCE(SUM(center_hits), 0),
			COALESCE(MAX(accuracy), 0),
			COALESCE(MIN(best_reaction_ms) FILTER (WHERE best_reaction_ms > 0), 0),
			COALESCE(MAX(score), 0),
			COALESCE(MAX(best_streak), 0),
			COALESCE(SUM(score), 0)
		FROM rounds
		WHERE player_id = $1
	`, playerID).Scan(&lt.Rounds, &lt.Shots, &lt.Hits, &lt.CenterHits, &lt.BestAccuracy,
		&lt.BestReactionMs, &lt.BestScore, &lt.BestStreak, &lt.TotalScore)
	if err != nil {
		return ledger.Lifetime{}, fmt.Errorf("getting lifetime stats: %w", err)
	}
	if lt.Rounds == 0 {
		return ledger.Lifetime{}, fmt.Errorf("lifetime for %s: %w", playerID, ledger.ErrNotFound)
	}
	if lt.Shots > 0 {
		lt.Accuracy = float64(lt.Hits) / float64(lt.Shots) * 100
	}
	return lt, nil
}

func (d *DB) ModeBests(ctx context.Context, playerID string) ([]ledger.ModeBest, error) {
	rows, err := d.conn.QueryContext(ctx, `
		SELECT
			mode,
			COUNT(*),
			SUM(shots),
			MAX(accuracy),
			COALESCE(MIN(best_reaction_ms) FILTER (WHERE best_reaction_ms > 0), 0),
			MAX(score)
		FROM rounds
		WHERE player_id = $1
		GROUP BY mode
		ORDER BY mode
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("getting mode bests: %w", err)
	}
	defer rows.Close()

	var bests []ledger.ModeBest
	for rows.Next() {
		var mb ledger.ModeBest
		if err := rows.Scan(&mb.Mode, &mb.Rounds, &mb.Shots, &mb.BestAccuracy, &mb.BestReactionMs, &mb.BestScore); err != nil {
			return nil, err
		}
		bests = append(bests, mb)
	}
	return bests, rows.Err()
}

// Leaderboard ranks each player's best round. An empty mode spans all modes.
func (d *DB) Leaderboard(ctx context.Context, mode string, cat ledger.Category, limit int) ([]ledger.Entry, error) {
	var query string
	switch cat {
	case ledger.CategoryScore:
		query = `
			SELECT p.id, p.name, MAX(r.score)::float8 AS value
			FROM players p
			JOIN rounds r ON r.player_id = p.id
			WHERE ($1 = '' OR r.mode = $1)
			GROUP BY p.id, p.name
			ORDER BY value DESC, p.id
			LIMIT $2`
	case ledger.CategoryAccuracy:
		query = `
			SELECT p.id, p.name, MAX(r.accuracy) AS value
			FROM players p
			JOIN rounds r ON r.player_id = p.id
			WHERE ($1 = '' OR r.mode = $1) AND r.shots > 0
			GROUP BY p.id, p.name
			ORDER BY value DESC, p.id
			LIMIT $2`
	case ledger.CategoryReaction:
		query = `
			SELECT p.id, p.name, MIN(r.best_reaction_ms) AS value
			FROM players p
			JOIN rounds r ON r.player_id = p.id
			WHERE ($1 = '' OR r.mode = $1) AND r.best_reaction_ms > 0
			GROUP BY p.id, p.name
			ORDER BY value ASC, p.id
			LIMIT $2`
	case ledger.CategoryStreak:
		query = `
			SELECT p.id, p.name, MAX(r.best_streak)::float8 AS value
			FROM players p
			JOIN rounds r ON r.player_id = p.id
			WHERE ($1 = '' OR r.mode = $1)
			GROUP BY p.id, p.name
			ORDER BY value DESC, p.id
			LIMIT $2`
	default:
		return nil, fmt.Errorf("%w: %s", ledger.ErrUnknownCategory, cat)
	}

	if limit <= 0 {
		limit = 10
	}
	rows, err := d.conn.QueryContext(ctx, query, mode, limit)
	if err != nil {
		return nil, fmt.Errorf("getting leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []ledger.Entry
	rank := 1
	for rows.Next() {
		var e ledger.Entry
		if err := rows.Scan(&e.PlayerID, &e.PlayerName, &e.Value); err != nil {
			return nil, err
		}
		e.Rank = rank
		rank++
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

var _ ledger.Store = (*DB)(nil)
