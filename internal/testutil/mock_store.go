package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/kago96/character-worker/internal/store"
)

// MockStore is a thread-safe in-memory implementation of store.Store for
// testing.
type MockStore struct {
	mu sync.Mutex

	Identities map[string]json.RawMessage
	Plans      map[string]planRecord

	GetIdentityErr error
	PutIdentityErr error
	PutPlanErr     error

	PutIdentityCalls int
	PutPlanCalls     int
}

type planRecord struct {
	CharacterID string
	Plan        json.RawMessage
	ExpiresAt   time.Time
}

func NewMockStore() *MockStore {
	return &MockStore{
		Identities: make(map[string]json.RawMessage),
		Plans:      make(map[string]planRecord),
	}
}

func (m *MockStore) GetIdentity(_ context.Context, characterID string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetIdentityErr != nil {
		return nil, m.GetIdentityErr
	}
	id, ok := m.Identities[characterID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return id, nil
}

func (m *MockStore) PutIdentity(_ context.Context, characterID string, identity json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutIdentityCalls++
	if m.PutIdentityErr != nil {
		return m.PutIdentityErr
	}
	if _, ok := m.Identities[characterID]; ok {
		return store.ErrAlreadyExists
	}
	m.Identities[characterID] = identity
	return nil
}

func (m *MockStore) PutPlan(_ context.Context, planID, characterID string, plan json.RawMessage, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutPlanCalls++
	if m.PutPlanErr != nil {
		return m.PutPlanErr
	}
	m.Plans[planID] = planRecord{
		CharacterID: characterID,
		Plan:        plan,
		ExpiresAt:   time.Now().UTC().Add(ttl),
	}
	return nil
}

func (m *MockStore) GetPlan(_ context.Context, planID string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Plans[planID]
	if !ok || time.Now().UTC().After(p.ExpiresAt) {
		return nil, store.ErrNotFound
	}
	return p.Plan, nil
}

func (m *MockStore) Ping(_ context.Context) error { return nil }

func (m *MockStore) Close() {}

// SetIdentity seeds an identity for testing.
func (m *MockStore) SetIdentity(characterID string, identity json.RawMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Identities[characterID] = identity
}

// PlanCount returns how many plans are stored.
func (m *MockStore) PlanCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Plans)
}
