package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"aimrange/internal/ledger"
)

type PlayerRecord struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

func (d *DB) UpsertPlayer(ctx context.Context, id, name string) error {
	_, err := d.conn.ExecContext(ctx, `
		INSERT INTO players (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = $2
	`, id, name)
	if err != nil {
		return fmt.Errorf("upserting player: %w", err)
	}
	return nil
}

func (d *DB) GetPlayer(ctx context.Context, id string) (*PlayerRecord, error) {
	var p PlayerRecord
	err := d.conn.QueryRowContext(ctx, `
		SELECT id, name, created_at FROM players WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting player %s: %w", id, ledger.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting player: %w", err)
	}
	return &p, nil
}
