package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a character or plan does not exist (or the
// plan has expired).
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when creating an identity for a character
// that already has one. Identities are write-once.
var ErrAlreadyExists = errors.New("already exists")

// Store is the key-value collaborator consumed by the API. The concrete
// implementation is *PG (pgx-backed); tests use testutil.MockStore.
type Store interface {
	GetIdentity(ctx context.Context, characterID string) (json.RawMessage, error)
	PutIdentity(ctx context.Context, characterID string, identity json.RawMessage) error
	PutPlan(ctx context.Context, planID, characterID string, plan json.RawMessage, ttl time.Duration) error
	GetPlan(ctx context.Context, planID string) (json.RawMessage, error)
	Ping(ctx context.Context) error
	Close()
}
