package fair

import (
	"fmt"

	"fairness-platform/internal/store"
)

// Record is the historical round data a verification request supplies. It
// mirrors the persisted round record; nothing here depends on live state.
type Record struct {
	Commitment         string `json:"commitment"`
	ClientSeed         string `json:"client_seed"`
	Nonce              uint64 `json:"nonce"`
	Cursor             int    `json:"cursor"`
	Mode               string `json:"mode"`
	Game               string `json:"game"`
	Outcome            string `json:"outcome"`
	RevealedServerSeed string `json:"revealed_server_seed"`
}

// VerificationResult reports the two fairness checks separately. A false
// CommitmentValid means the revealed seed does not hash to the published
// commitment (forgery); a false OutcomeValid means the recorded outcome does
// not match the derivation (bug or tampering). They are never conflated.
type VerificationResult struct {
	CommitmentValid bool `json:"commitment_valid"`
	OutcomeValid    bool `json:"outcome_valid"`
}

// Verifier recomputes commitments and outcomes from historical records,
// independent of any live sequencing or seed state. Records carry the mode
// they were created under, so a verifier serves mixed-mode history without
// caring what mode the platform currently runs in.
type Verifier struct {
	store   store.Store
	mappers MapperLookup
}

func NewVerifier(st store.Store, mappers MapperLookup) *Verifier {
	return &Verifier{store: st, mappers: mappers}
}

// Verify replays a record. Verification is only possible after reveal: the
// commitment existed before the outcome, the raw seed was withheld until the
// usage window closed, and only then can anyone check.
func (v *Verifier) Verify(rec Record) (VerificationResult, error) {
	if rec.RevealedServerSeed == "" {
		return VerificationResult{}, ErrNotYetRevealed
	}
	mapper, ok := v.mappers(rec.Game)
	if !ok {
		return VerificationResult{}, fmt.Errorf("%w: %q", ErrUnknownGame, rec.Game)
	}

	result := VerificationResult{
		CommitmentValid: VerifyCommitment(rec.RevealedServerSeed, rec.Commitment),
	}

	gen, err := NewByteGenerator(rec.RevealedServerSeed, rec.ClientSeed, rec.Nonce, rec.Cursor)
	if err != nil {
		return VerificationResult{}, err
	}
	result.OutcomeValid = mapper.Map(gen) == rec.Outcome

	return result, nil
}

// VerifyRound loads a persisted round by id and verifies it against its own
// record.
func (v *Verifier) VerifyRound(roundID string) (VerificationResult, error) {
	rec, err := v.store.Round(roundID)
	if err != nil {
		return VerificationResult{}, fmt.Errorf("load round: %w", err)
	}
	return v.Verify(Record{
		Commitment:         rec.Commitment,
		ClientSeed:         rec.ClientSeed,
		Nonce:              rec.Nonce,
		Cursor:             rec.Cursor,
		Mode:               rec.Mode,
		Game:               rec.Game,
		Outcome:            rec.Outcome,
		RevealedServerSeed: rec.RevealedSeed,
	})
}
