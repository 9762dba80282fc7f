package store

import (
	"sync"
	"time"
)

// Memory is an in-process Store used by tests and single-node deployments
// that do not need durability.
type Memory struct {
	mu     sync.RWMutex
	seeds  map[string]SeedRecord
	rounds map[string]RoundRecord
}

func NewMemory() *Memory {
	return &Memory{
		seeds:  make(map[string]SeedRecord),
		rounds: make(map[string]RoundRecord),
	}
}

func (m *Memory) CreateSeed(rec SeedRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seeds[rec.ID] = rec
	return nil
}

func (m *Memory) Seed(id string) (SeedRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.seeds[id]
	if !ok {
		return SeedRecord{}, ErrNotFound
	}
	return rec, nil
}

func (m *Memory) MarkSeedRevealed(id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.seeds[id]
	if !ok {
		return ErrNotFound
	}
	rec.RevealedAt = &at
	m.seeds[id] = rec
	return nil
}

func (m *Memory) CreateRound(rec RoundRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds[rec.ID] = rec
	return nil
}

func (m *Memory) Round(id string) (RoundRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.rounds[id]
	if !ok {
		return RoundRecord{}, ErrNotFound
	}
	return rec, nil
}

func (m *Memory) AttachOutcome(id, outcome string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.rounds[id]
	if !ok {
		return ErrNotFound
	}
	rec.Outcome = outcome
	m.rounds[id] = rec
	return nil
}

func (m *Memory) AttachReveal(seedID, raw string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, rec := range m.rounds {
		if rec.SeedID == seedID {
			rec.RevealedSeed = raw
			m.rounds[id] = rec
		}
	}
	return nil
}

func (m *Memory) RoundsBySeed(seedID string) ([]RoundRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []RoundRecord
	for _, rec := range m.rounds {
		if rec.SeedID == seedID {
			out = append(out, rec)
		}
	}
	return out, nil
}
