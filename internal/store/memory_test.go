package store

import (
	"errors"
	"testing"
	"time"
)

func testSeed() SeedRecord {
	return SeedRecord{
		ID:         "seed-1",
		EntityID:   "entity-1",
		Raw:        "raw-value",
		Commitment: "commitment-hash",
		CreatedAt:  time.Unix(1700000000, 0).UTC(),
	}
}

func testRound() RoundRecord {
	return RoundRecord{
		ID:         "round-1",
		SeedID:     "seed-1",
		SessionID:  "session-1",
		Commitment: "commitment-hash",
		ClientSeed: "client",
		Nonce:      2,
		Mode:       "session_nonce_v1",
		Game:       "dice",
		CreatedAt:  time.Unix(1700000000, 0).UTC(),
	}
}

func TestMemorySeedLifecycle(t *testing.T) {
	m := NewMemory()

	if err := m.CreateSeed(testSeed()); err != nil {
		t.Fatal(err)
	}

	rec, err := m.Seed("seed-1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Commitment != "commitment-hash" || rec.RevealedAt != nil {
		t.Errorf("unexpected record %+v", rec)
	}

	at := time.Unix(1700000100, 0).UTC()
	if err := m.MarkSeedRevealed("seed-1", at); err != nil {
		t.Fatal(err)
	}
	rec, err = m.Seed("seed-1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.RevealedAt == nil || !rec.RevealedAt.Equal(at) {
		t.Errorf("reveal time not persisted: %+v", rec.RevealedAt)
	}

	if _, err := m.Seed("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := m.MarkSeedRevealed("missing", at); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRoundLifecycle(t *testing.T) {
	m := NewMemory()

	if err := m.CreateRound(testRound()); err != nil {
		t.Fatal(err)
	}
	if err := m.AttachOutcome("round-1", "52.31"); err != nil {
		t.Fatal(err)
	}
	if err := m.AttachReveal("seed-1", "raw-value"); err != nil {
		t.Fatal(err)
	}

	rec, err := m.Round("round-1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Outcome != "52.31" {
		t.Errorf("outcome not attached: %q", rec.Outcome)
	}
	if rec.RevealedSeed != "raw-value" {
		t.Errorf("reveal not attached: %q", rec.RevealedSeed)
	}

	rounds, err := m.RoundsBySeed("seed-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rounds) != 1 {
		t.Errorf("expected 1 round, got %d", len(rounds))
	}

	if err := m.AttachOutcome("missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
