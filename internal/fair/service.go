package fair

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fairness-platform/internal/event"
	"fairness-platform/internal/store"
)

// OutcomeMapper is implemented by game logic. It consumes bytes from the
// derived stream and maps them into the game's outcome space. Mappers must
// be strictly deterministic: the verifier re-runs them against replayed
// streams.
type OutcomeMapper interface {
	Map(stream *ByteGenerator) string
}

// MapperLookup resolves a game name to its mapper.
type MapperLookup func(game string) (OutcomeMapper, bool)

// Session is the public view of an open session-nonce session.
type Session struct {
	ID         string    `json:"session_id"`
	SeedID     string    `json:"seed_id"`
	Commitment string    `json:"commitment"`
	CreatedAt  time.Time `json:"created_at"`
}

type session struct {
	seed      SeedHandle
	createdAt time.Time
	lastRound time.Time
}

// RoundRequest asks for one round of the named game.
type RoundRequest struct {
	SessionID  string `json:"session_id"`
	Game       string `json:"game"`
	ClientSeed string `json:"client_seed"`
}

// RoundResult carries everything a player needs to verify the round later.
// RevealedSeed is populated only in legacy mode, where the seed's usage
// window closes with the round itself.
type RoundResult struct {
	RoundID      string `json:"round_id"`
	SessionID    string `json:"session_id,omitempty"`
	SeedID       string `json:"seed_id"`
	Commitment   string `json:"commitment"`
	ClientSeed   string `json:"client_seed"`
	Nonce        uint64 `json:"nonce"`
	Cursor       int    `json:"cursor"`
	Mode         string `json:"mode"`
	Game         string `json:"game"`
	Outcome      string `json:"outcome"`
	RevealedSeed string `json:"revealed_seed,omitempty"`
}

// Service coordinates seed commitment, nonce sequencing, outcome derivation
// and round persistence. The operating mode is fixed at construction.
type Service struct {
	mode    Mode
	seeds   *SeedManager
	seq     *Sequencer
	store   store.Store
	mappers MapperLookup
	bus     *event.Bus
	log     *zap.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

func NewService(mode Mode, strictClose bool, st store.Store, mappers MapperLookup, bus *event.Bus, log *zap.Logger) *Service {
	s := &Service{
		mode:     mode,
		store:    st,
		mappers:  mappers,
		bus:      bus,
		log:      log,
		sessions: make(map[string]*session),
	}
	s.seq = NewSequencer(strictClose)
	s.seeds = NewSeedManager(st, s.seq.Closed)
	return s
}

// Mode returns the mode the service was constructed with.
func (s *Service) Mode() Mode {
	return s.mode
}

// StartSession opens a session and commits a fresh server seed to it. The
// commitment in the returned Session is durable before this returns.
func (s *Service) StartSession() (Session, error) {
	if s.mode != ModeSessionNonce {
		return Session{}, fmt.Errorf("%w: sessions require %s", ErrWrongMode, ModeSessionNonce)
	}

	id := uuid.New().String()
	s.seq.Open(id)
	seed, err := s.seeds.Create(id)
	if err != nil {
		return Session{}, err
	}

	now := time.Now().UTC()
	s.mu.Lock()
	s.sessions[id] = &session{seed: seed, createdAt: now, lastRound: now}
	s.mu.Unlock()

	s.bus.Publish(event.EventSeedCommitted, seed.ID)
	s.log.Info("session started",
		zap.String("session_id", id),
		zap.String("seed_id", seed.ID))

	return Session{ID: id, SeedID: seed.ID, Commitment: seed.Commitment, CreatedAt: now}, nil
}

// PlayRound runs one round end to end: commitment, nonce, derivation,
// outcome mapping and persistence. In legacy mode every round gets its own
// seed, which is revealed before the result is returned. In session-nonce
// mode the round consumes the session's next nonce and the seed stays
// hidden until the session closes.
func (s *Service) PlayRound(req RoundRequest) (*RoundResult, error) {
	mapper, ok := s.mappers(req.Game)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGame, req.Game)
	}

	clientSeed := req.ClientSeed
	if clientSeed == "" {
		cs, err := DefaultClientSeed()
		if err != nil {
			return nil, fmt.Errorf("default client seed: %w", err)
		}
		clientSeed = cs
	}

	if s.mode == ModeSessionNonce {
		return s.playSessionRound(req.SessionID, req.Game, mapper, clientSeed)
	}
	if req.SessionID != "" {
		return nil, fmt.Errorf("%w: session ids are not used in %s", ErrWrongMode, s.mode)
	}
	return s.playLegacyRound(req.Game, mapper, clientSeed)
}

func (s *Service) playLegacyRound(game string, mapper OutcomeMapper, clientSeed string) (*RoundResult, error) {
	roundID := uuid.New().String()
	s.seq.Open(roundID)

	seed, err := s.seeds.Create(roundID)
	if err != nil {
		return nil, err
	}
	s.bus.Publish(event.EventSeedCommitted, seed.ID)

	res, err := s.recordAndDerive(roundID, "", roundID, seed, clientSeed, game, mapper)
	if err != nil {
		return nil, err
	}

	// One seed per round: the usage window closes with the outcome.
	if err := s.seq.Close(roundID); err != nil {
		return nil, err
	}
	raw, err := s.seeds.Reveal(seed.ID)
	if err != nil {
		return nil, err
	}
	if err := s.store.AttachReveal(seed.ID, raw); err != nil {
		return nil, fmt.Errorf("persist seed reveal: %w", err)
	}
	res.RevealedSeed = raw

	s.announce(res)
	s.bus.Publish(event.EventSeedRevealed, seed.ID)
	return res, nil
}

func (s *Service) playSessionRound(sessionID, game string, mapper OutcomeMapper, clientSeed string) (*RoundResult, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: session %s", ErrUnknownEntity, sessionID)
	}

	res, err := s.recordAndDerive(uuid.New().String(), sessionID, sessionID, sess.seed, clientSeed, game, mapper)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	sess.lastRound = time.Now().UTC()
	s.mu.Unlock()

	s.announce(res)
	return res, nil
}

// recordAndDerive takes the entity's next nonce, persists the round record
// with its commitment, then derives and attaches the mapped outcome. The
// nonce is consumed only once the record is durable, so a failed write
// leaves no gap in the sequence, and derivation never proceeds for a round
// whose record failed to persist.
func (s *Service) recordAndDerive(roundID, sessionID, entityID string, seed SeedHandle, clientSeed, game string, mapper OutcomeMapper) (*RoundResult, error) {
	nonce, err := s.seq.NextNonceIf(entityID, func(n uint64) error {
		if err := s.store.CreateRound(store.RoundRecord{
			ID:         roundID,
			SeedID:     seed.ID,
			SessionID:  sessionID,
			Commitment: seed.Commitment,
			ClientSeed: clientSeed,
			Nonce:      n,
			Cursor:     0,
			Mode:       string(s.mode),
			Game:       game,
			CreatedAt:  time.Now().UTC(),
		}); err != nil {
			return fmt.Errorf("persist round: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	raw, err := s.seeds.rawFor(seed.ID)
	if err != nil {
		return nil, err
	}
	gen, err := NewByteGenerator(raw, clientSeed, nonce, 0)
	if err != nil {
		return nil, err
	}
	outcome := mapper.Map(gen)

	if err := s.store.AttachOutcome(roundID, outcome); err != nil {
		return nil, fmt.Errorf("persist outcome: %w", err)
	}

	res := &RoundResult{
		RoundID:    roundID,
		SessionID:  sessionID,
		SeedID:     seed.ID,
		Commitment: seed.Commitment,
		ClientSeed: clientSeed,
		Nonce:      nonce,
		Cursor:     0,
		Mode:       string(s.mode),
		Game:       game,
		Outcome:    outcome,
	}
	return res, nil
}

// announce publishes a finished round. Consumers read the result from their
// own goroutines, so callers must not modify it after this point.
func (s *Service) announce(res *RoundResult) {
	s.bus.Publish(event.EventRoundRecorded, res)
	s.log.Info("round recorded",
		zap.String("round_id", res.RoundID),
		zap.String("game", res.Game),
		zap.Uint64("nonce", res.Nonce))
}

// CloseSession ends a session and reveals its seed. Closing an already
// closed session is a no-op that returns the same raw value, unless strict
// close semantics were configured.
func (s *Service) CloseSession(sessionID string) (string, error) {
	if s.mode != ModeSessionNonce {
		return "", fmt.Errorf("%w: sessions require %s", ErrWrongMode, ModeSessionNonce)
	}

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("%w: session %s", ErrUnknownEntity, sessionID)
	}

	if err := s.seq.Close(sessionID); err != nil {
		return "", err
	}
	raw, err := s.seeds.Reveal(sess.seed.ID)
	if err != nil {
		return "", err
	}
	if err := s.store.AttachReveal(sess.seed.ID, raw); err != nil {
		return "", fmt.Errorf("persist seed reveal: %w", err)
	}

	s.bus.Publish(event.EventSeedRevealed, sess.seed.ID)
	s.log.Info("session closed", zap.String("session_id", sessionID))
	return raw, nil
}

// CloseIdleSessions closes sessions that have not played a round within ttl.
// It returns how many sessions were closed.
func (s *Service) CloseIdleSessions(ttl time.Duration) int {
	if s.mode != ModeSessionNonce {
		return 0
	}

	cutoff := time.Now().UTC().Add(-ttl)
	s.mu.Lock()
	var idle []string
	for id, sess := range s.sessions {
		if sess.lastRound.Before(cutoff) && !s.seq.Closed(id) {
			idle = append(idle, id)
		}
	}
	s.mu.Unlock()

	closed := 0
	for _, id := range idle {
		if _, err := s.CloseSession(id); err != nil {
			s.log.Warn("close idle session",
				zap.String("session_id", id),
				zap.Error(err))
			continue
		}
		closed++
	}
	return closed
}

// RevealSeed discloses a seed whose usage window has closed. Premature
// attempts are rejected and reported; the raw value never appears in the
// rejection.
func (s *Service) RevealSeed(seedID string) (string, error) {
	raw, err := s.seeds.Reveal(seedID)
	if err != nil {
		if errors.Is(err, ErrSeedNotRevealable) {
			s.bus.Publish(event.EventRevealDenied, seedID)
		}
		return "", err
	}
	if err := s.store.AttachReveal(seedID, raw); err != nil {
		return "", fmt.Errorf("persist seed reveal: %w", err)
	}
	s.bus.Publish(event.EventSeedRevealed, seedID)
	return raw, nil
}

// Commitment returns the published commitment for a seed.
func (s *Service) Commitment(seedID string) (string, error) {
	return s.seeds.Commitment(seedID)
}
