package fair

// Mode selects how nonces are scoped and when server seeds are revealed.
// It is parsed once at startup and passed explicitly into NewService;
// nothing in this package reads the environment at call time.
type Mode string

const (
	// ModeLegacyPerGame uses one server seed per round. The nonce is always
	// zero and the seed is revealed as soon as the round's outcome is
	// recorded.
	ModeLegacyPerGame Mode = "legacy_per_game_v1"

	// ModeSessionNonce uses one server seed per session with a nonce that
	// increments once per round. The seed is revealed when the session
	// closes.
	ModeSessionNonce Mode = "session_nonce_v1"
)

// ParseMode maps a configuration value to a Mode. Unrecognized or empty
// values fall back to ModeLegacyPerGame rather than failing.
func ParseMode(s string) Mode {
	if s == string(ModeSessionNonce) {
		return ModeSessionNonce
	}
	return ModeLegacyPerGame
}
