package fair

import (
	"fmt"

	"fairness-platform/internal/event"
	"fairness-platform/internal/monitoring"
)

type Auditor interface {
	Log(subject, action, metadata string)
}

type Broadcaster interface {
	BroadcastJSON(v interface{})
}

// RegisterConsumers wires fairness lifecycle events into audit, metrics and
// the live feed. Security-relevant events (forgery detections, premature
// reveal attempts) are audited; operational ones only feed counters.
func RegisterConsumers(bus *event.Bus, auditor Auditor, feed Broadcaster) {

	bus.Subscribe(event.EventSeedCommitted, func(payload interface{}) {
		monitoring.SeedsCommitted.Inc()
	})

	bus.Subscribe(event.EventRoundRecorded, func(payload interface{}) {
		res, ok := payload.(*RoundResult)
		if !ok {
			return
		}
		monitoring.RoundsRecorded.WithLabelValues(res.Game, res.Mode).Inc()
		feed.BroadcastJSON(map[string]interface{}{
			"type":  "round.recorded",
			"round": res,
		})
	})

	bus.Subscribe(event.EventSeedRevealed, func(payload interface{}) {
		seedID, ok := payload.(string)
		if !ok {
			return
		}
		monitoring.SeedsRevealed.Inc()
		feed.BroadcastJSON(map[string]interface{}{
			"type":    "seed.revealed",
			"seed_id": seedID,
		})
	})

	bus.Subscribe(event.EventRevealDenied, func(payload interface{}) {
		seedID, ok := payload.(string)
		if !ok {
			return
		}
		monitoring.PrematureReveals.Inc()
		auditor.Log(seedID, "premature_reveal_attempt", "seed still active")
	})

	bus.Subscribe(event.EventVerifyFailed, func(payload interface{}) {
		failure, ok := payload.(*VerifyFailure)
		if !ok {
			return
		}
		if !failure.Result.CommitmentValid {
			monitoring.ForgeryDetected.Inc()
			auditor.Log(failure.Subject, "commitment_mismatch", "revealed seed does not match commitment")
			return
		}
		auditor.Log(failure.Subject, "outcome_mismatch",
			fmt.Sprintf("commitment_valid=%t outcome_valid=%t",
				failure.Result.CommitmentValid, failure.Result.OutcomeValid))
	})
}
