package games

import (
	"fmt"
	"math"

	"fairness-platform/internal/fair"
)

// Mappers turn the uniform byte stream of a round into a game outcome. The
// same mapper runs during live play and during verification replay, so every
// mapper must be strictly deterministic. Payout math lives elsewhere; these
// produce outcome values only.

type Dice struct{}

// Map reads one float and maps it onto a 0.00-99.99 roll.
func (Dice) Map(stream *fair.ByteGenerator) string {
	roll := math.Floor(stream.Float64()*10000) / 100
	return fmt.Sprintf("%.2f", roll)
}

type Limbo struct{}

// Map reads one float and maps it onto a crash multiplier >= 1.00x.
func (Limbo) Map(stream *fair.ByteGenerator) string {
	f := stream.Float64()
	multiplier := math.Floor(100/(1-f)) / 100
	return fmt.Sprintf("%.2fx", multiplier)
}

type Coinflip struct{}

func (Coinflip) Map(stream *fair.ByteGenerator) string {
	if stream.Next() < 128 {
		return "heads"
	}
	return "tails"
}

// Lookup resolves a game name to its mapper. Unknown names resolve to
// nothing rather than a default: verification must never silently remap a
// record onto a different game.
func Lookup(name string) (fair.OutcomeMapper, bool) {
	switch name {
	case "dice":
		return Dice{}, true
	case "limbo":
		return Limbo{}, true
	case "coinflip":
		return Coinflip{}, true
	}
	return nil, false
}
