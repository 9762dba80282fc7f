package fair

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrEmptyKey          = errors.New("derivation key must not be empty")
	ErrEntityClosed      = errors.New("entity is closed")
	ErrAlreadyClosed     = errors.New("entity already closed")
	ErrUnknownEntity     = errors.New("unknown entity")
	ErrUnknownSeed       = errors.New("unknown seed")
	ErrSeedNotRevealable = errors.New("seed is not yet revealable")
	ErrNotYetRevealed    = errors.New("server seed has not been revealed")
	ErrUnknownGame       = errors.New("unknown game")
	ErrWrongMode         = errors.New("operation not available in this mode")
)
