package fair

import (
	crand "crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"fairness-platform/internal/store"
)

type seedState int

const (
	seedActive seedState = iota
	seedRevealed
)

type serverSeed struct {
	id         string
	entityID   string
	raw        string
	commitment string
	state      seedState
	createdAt  time.Time
}

// SeedHandle is the public view of a server seed while it is active. The raw
// value stays inside the manager until the seed is revealed.
type SeedHandle struct {
	ID         string
	Commitment string
}

// SeedManager generates server seeds, persists their commitments and decides
// when raw values may leave the trusted boundary. Seeds become revealable
// only once the entity they belong to reports closed.
type SeedManager struct {
	mu     sync.RWMutex
	seeds  map[string]*serverSeed
	store  store.Store
	closed func(entityID string) bool
}

func NewSeedManager(st store.Store, closed func(entityID string) bool) *SeedManager {
	return &SeedManager{
		seeds:  make(map[string]*serverSeed),
		store:  st,
		closed: closed,
	}
}

// Create draws 32 bytes from crypto/rand, computes the commitment and
// persists the seed record. The commitment is durable before the handle is
// handed out; if persistence fails the round must not proceed.
func (m *SeedManager) Create(entityID string) (SeedHandle, error) {
	raw, err := randomHex(32)
	if err != nil {
		return SeedHandle{}, fmt.Errorf("generate server seed: %w", err)
	}

	s := &serverSeed{
		id:         uuid.New().String(),
		entityID:   entityID,
		raw:        raw,
		commitment: HexDigest([]byte(raw)),
		state:      seedActive,
		createdAt:  time.Now().UTC(),
	}

	if err := m.store.CreateSeed(store.SeedRecord{
		ID:         s.id,
		EntityID:   entityID,
		Raw:        raw,
		Commitment: s.commitment,
		CreatedAt:  s.createdAt,
	}); err != nil {
		return SeedHandle{}, fmt.Errorf("persist seed commitment: %w", err)
	}

	m.mu.Lock()
	m.seeds[s.id] = s
	m.mu.Unlock()

	return SeedHandle{ID: s.id, Commitment: s.commitment}, nil
}

// Commitment returns the published commitment for a seed, falling back to
// the store for seeds created before the last restart.
func (m *SeedManager) Commitment(id string) (string, error) {
	m.mu.RLock()
	s, ok := m.seeds[id]
	m.mu.RUnlock()
	if ok {
		return s.commitment, nil
	}

	rec, err := m.store.Seed(id)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrUnknownSeed
	}
	if err != nil {
		return "", fmt.Errorf("load seed: %w", err)
	}
	return rec.Commitment, nil
}

// Reveal returns the raw seed value once the owning entity is closed. The
// first call marks the seed revealed; repeated calls return the same value,
// including after a restart.
func (m *SeedManager) Reveal(id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.seeds[id]
	if !ok {
		return m.revealFromStore(id)
	}
	if s.state == seedRevealed {
		return s.raw, nil
	}
	if !m.closed(s.entityID) {
		return "", fmt.Errorf("%w: seed %s", ErrSeedNotRevealable, s.id)
	}

	if err := m.store.MarkSeedRevealed(s.id, time.Now().UTC()); err != nil {
		return "", fmt.Errorf("persist seed reveal: %w", err)
	}
	s.state = seedRevealed
	return s.raw, nil
}

func (m *SeedManager) revealFromStore(id string) (string, error) {
	rec, err := m.store.Seed(id)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrUnknownSeed
	}
	if err != nil {
		return "", fmt.Errorf("load seed: %w", err)
	}
	if rec.RevealedAt == nil {
		// The live entity state is gone, so there is no close signal to
		// honor. Withholding is the safe answer.
		return "", fmt.Errorf("%w: seed %s", ErrSeedNotRevealable, id)
	}
	return rec.Raw, nil
}

// rawFor hands the raw value to the derivation path. Callers outside this
// package only ever see the commitment until reveal.
func (m *SeedManager) rawFor(id string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.seeds[id]
	if !ok {
		return "", ErrUnknownSeed
	}
	return s.raw, nil
}

// VerifyCommitment recomputes the commitment of raw and compares it with the
// published value. Live play and offline verification both go through this
// one function; any divergence between them would break the fairness anchor.
func VerifyCommitment(raw, commitment string) bool {
	return HexDigest([]byte(raw)) == commitment
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := crand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
