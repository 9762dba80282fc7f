package fair

import "sync"

type entity struct {
	mu     sync.Mutex
	next   uint64
	closed bool
}

// Sequencer issues per-entity nonces. An entity is a single round in legacy
// mode and a whole session in session-nonce mode; the Service owns that
// distinction and passes the right entity id in. Counters are guarded per
// entity, so unrelated rounds and sessions never serialize on each other.
type Sequencer struct {
	mu          sync.RWMutex
	entities    map[string]*entity
	strictClose bool
}

// NewSequencer creates a sequencer. With strictClose set, closing an entity
// twice is an error instead of a no-op.
func NewSequencer(strictClose bool) *Sequencer {
	return &Sequencer{
		entities:    make(map[string]*entity),
		strictClose: strictClose,
	}
}

// Open registers an entity in the Active state. Opening an entity that
// already exists is a no-op.
func (s *Sequencer) Open(entityID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entities[entityID]; !ok {
		s.entities[entityID] = &entity{}
	}
}

// NextNonce returns the entity's current counter value and advances it.
// Under concurrent callers every nonce is handed out exactly once, with no
// duplicates and no gaps.
func (s *Sequencer) NextNonce(entityID string) (uint64, error) {
	return s.NextNonceIf(entityID, func(uint64) error { return nil })
}

// NextNonceIf hands the entity's next nonce to fn and advances the counter
// only when fn returns nil. The entity stays locked for the duration, so a
// failed fn leaves no gap in the sequence.
func (s *Sequencer) NextNonceIf(entityID string, fn func(nonce uint64) error) (uint64, error) {
	e, err := s.lookup(entityID)
	if err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return 0, ErrEntityClosed
	}
	n := e.next
	if err := fn(n); err != nil {
		return 0, err
	}
	e.next++
	return n, nil
}

// Close transitions the entity Active -> Closed, after which its seed
// becomes revealable and no further nonces are issued.
func (s *Sequencer) Close(entityID string) error {
	e, err := s.lookup(entityID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		if s.strictClose {
			return ErrAlreadyClosed
		}
		return nil
	}
	e.closed = true
	return nil
}

// Closed reports whether the entity has been closed. Unknown entities are
// reported as not closed, which keeps their seeds unrevealable.
func (s *Sequencer) Closed(entityID string) bool {
	e, err := s.lookup(entityID)
	if err != nil {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

func (s *Sequencer) lookup(entityID string) (*entity, error) {
	s.mu.RLock()
	e, ok := s.entities[entityID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownEntity
	}
	return e, nil
}
