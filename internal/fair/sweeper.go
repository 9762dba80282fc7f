package fair

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper closes sessions that have gone idle, so their seeds become
// revealable without waiting on an explicit close from the client.
type Sweeper struct {
	Service  *Service
	TTL      time.Duration
	Interval time.Duration
	Log      *zap.Logger
}

func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Service.CloseIdleSessions(s.TTL); n > 0 {
				s.Log.Info("closed idle sessions", zap.Int("count", n))
			}
		}
	}
}
