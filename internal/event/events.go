package event

const (
	EventSeedCommitted = "seed.committed"
	EventRoundRecorded = "round.recorded"
	EventSeedRevealed  = "seed.revealed"
	EventRevealDenied  = "reveal.denied"
	EventVerifyFailed  = "verify.failed"
)
