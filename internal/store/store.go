package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PG struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*PG, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PG{pool: pool}, nil
}

func (s *PG) Close() {
	s.pool.Close()
}

func (s *PG) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// GetIdentity returns the locked identity blob for a character.
func (s *PG) GetIdentity(ctx context.Context, characterID string) (json.RawMessage, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT identity FROM character_identities WHERE character_id = $1`,
		characterID,
	)

	var identity json.RawMessage
	if err := row.Scan(&identity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get identity: %w", err)
	}
	return identity, nil
}

// PutIdentity stores a character identity once. The exists check and insert
// are not atomic: concurrent creates for the same id can both pass the
// check, and the second insert fails on the primary key instead.
func (s *PG) PutIdentity(ctx context.Context, characterID string, identity json.RawMessage) error {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM character_identities WHERE character_id = $1)`,
		characterID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check identity: %w", err)
	}
	if exists {
		return ErrAlreadyExists
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO character_identities (character_id, identity, created_at) VALUES ($1, $2, now())`,
		characterID, identity,
	)
	if err != nil {
		return fmt.Errorf("insert identity: %w", err)
	}

	slog.Debug("identity stored", "character_id", characterID)
	return nil
}

// PutPlan stores a transient video plan with an expiry.
func (s *PG) PutPlan(ctx context.Context, planID, characterID string, plan json.RawMessage, ttl time.Duration) error {
	expiresAt := time.Now().UTC().Add(ttl)
	_, err := s.pool.Exec(ctx, `
		INSERT INTO video_plans (plan_id, character_id, plan, created_at, expires_at)
		VALUES ($1, $2, $3, now(), $4)
	`, planID, characterID, plan, expiresAt)
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}

	slog.Debug("plan stored", "plan_id", planID, "character_id", characterID, "ttl", ttl)
	return nil
}

// GetPlan returns a stored plan. Expired plans behave as absent.
func (s *PG) GetPlan(ctx context.Context, planID string) (json.RawMessage, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT plan FROM video_plans WHERE plan_id = $1 AND expires_at > now()`,
		planID,
	)

	var plan json.RawMessage
	if err := row.Scan(&plan); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return plan, nil
}
