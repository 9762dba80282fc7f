package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned for lookups of unknown seeds or rounds.
var ErrNotFound = errors.New("store: not found")

// SeedRecord is the persisted form of a server seed. Raw is stored so
// outcomes can be re-derived after a restart; it never leaves the platform
// through the API until RevealedAt is set.
type SeedRecord struct {
	ID         string
	EntityID   string
	Raw        string
	Commitment string
	CreatedAt  time.Time
	RevealedAt *time.Time
}

// RoundRecord is the append-only audit record of one round. It carries the
// mode it was created under so the record stays independently verifiable
// after a process-wide mode change.
type RoundRecord struct {
	ID           string
	SeedID       string
	SessionID    string
	Commitment   string
	ClientSeed   string
	Nonce        uint64
	Cursor       int
	Mode         string
	Game         string
	Outcome      string
	RevealedSeed string
	CreatedAt    time.Time
}

// Store is the durable persistence collaborator for seeds and rounds.
// CreateSeed must be durable before it returns: the commitment is published
// to the player immediately afterwards, and a fairness claim without a
// persisted record is worthless.
type Store interface {
	CreateSeed(rec SeedRecord) error
	Seed(id string) (SeedRecord, error)
	MarkSeedRevealed(id string, at time.Time) error

	CreateRound(rec RoundRecord) error
	Round(id string) (RoundRecord, error)
	AttachOutcome(id, outcome string) error
	AttachReveal(seedID, raw string) error
	RoundsBySeed(seedID string) ([]RoundRecord, error)
}
