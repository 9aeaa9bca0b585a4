package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"
)

func skipWithoutDB(t *testing.T) string {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}
	return url
}

func setupTestStore(t *testing.T) *PG {
	t.Helper()
	url := skipWithoutDB(t)
	ctx := context.Background()
	s, err := New(ctx, url)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestIntegration_PutAndGetIdentity(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	characterID := "int-char-" + time.Now().Format("20060102150405")
	identity := json.RawMessage(`{"hair":"black","voice":"low"}`)

	if err := s.PutIdentity(ctx, characterID, identity); err != nil {
		t.Fatalf("put identity: %v", err)
	}

	got, err := s.GetIdentity(ctx, characterID)
	if err != nil {
		t.Fatalf("get identity: %v", err)
	}
	if string(got) != string(identity) {
		t.Errorf("expected %s, got %s", identity, got)
	}

	// Identities are write-once.
	err = s.PutIdentity(ctx, characterID, json.RawMessage(`{"hair":"red"}`))
	if !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	// Cleanup.
	s.pool.Exec(ctx, "DELETE FROM character_identities WHERE character_id = $1", characterID)
}

func TestIntegration_GetIdentity_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetIdentity(context.Background(), "no-such-character")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestIntegration_PutAndGetPlan(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	planID := "int-plan-" + time.Now().Format("20060102150405")
	plan := json.RawMessage(`{"scenes":[]}`)

	if err := s.PutPlan(ctx, planID, "int-char", plan, 24*time.Hour); err != nil {
		t.Fatalf("put plan: %v", err)
	}

	got, err := s.GetPlan(ctx, planID)
	if err != nil {
		t.Fatalf("get plan: %v", err)
	}
	if string(got) != string(plan) {
		t.Errorf("expected %s, got %s", plan, got)
	}

	// Cleanup.
	s.pool.Exec(ctx, "DELETE FROM video_plans WHERE plan_id = $1", planID)
}

func TestIntegration_ExpiredPlanBehavesAsAbsent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	planID := "int-expired-" + time.Now().Format("20060102150405")
	if err := s.PutPlan(ctx, planID, "int-char", json.RawMessage(`{}`), -time.Hour); err != nil {
		t.Fatalf("put plan: %v", err)
	}

	_, err := s.GetPlan(ctx, planID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for expired plan, got %v", err)
	}

	// Cleanup.
	s.pool.Exec(ctx, "DELETE FROM video_plans WHERE plan_id = $1", planID)
}
