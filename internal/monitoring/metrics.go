package monitoring

import "github.com/prometheus/client_golang/prometheus"

var (
	RoundsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fair_rounds_recorded_total",
			Help: "Rounds with a recorded outcome",
		},
		[]string{"game", "mode"},
	)

	SeedsCommitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fair_seeds_committed_total",
			Help: "Server seeds committed",
		},
	)

	SeedsRevealed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fair_seeds_revealed_total",
			Help: "Server seeds revealed",
		},
	)

	Verifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fair_verifications_total",
			Help: "Verification requests by result",
		},
		[]string{"result"},
	)

	ForgeryDetected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fair_forgery_detected_total",
			Help: "Verifications where the revealed seed did not match its commitment",
		},
	)

	PrematureReveals = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fair_premature_reveal_attempts_total",
			Help: "Reveal attempts on seeds whose entity was still active",
		},
	)

	UnknownLookups = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fair_unknown_lookups_total",
			Help: "Lookups of unknown seeds, rounds or sessions",
		},
	)
)

func Init() {
	prometheus.MustRegister(RoundsRecorded)
	prometheus.MustRegister(SeedsCommitted)
	prometheus.MustRegister(SeedsRevealed)
	prometheus.MustRegister(Verifications)
	prometheus.MustRegister(ForgeryDetected)
	prometheus.MustRegister(PrematureReveals)
	prometheus.MustRegister(UnknownLookups)
}
