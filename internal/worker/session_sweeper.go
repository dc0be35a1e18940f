package worker

import (
	"context"
	"time"

	"taskgarden/internal/logger"
	"taskgarden/internal/repository"

	"go.uber.org/zap"
)

const defaultSweepInterval = 10 * time.Minute

// SessionSweeper periodically removes expired login sessions so the
// sessions table does not grow without bound. Expired sessions are
// already rejected on read; this is purely cleanup.
type SessionSweeper struct {
	sessions repository.SessionRepository
	interval time.Duration
}

func NewSessionSweeper(sessions repository.SessionRepository, interval time.Duration) *SessionSweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
	}
}

func (w *SessionSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Sweep(ctx)
		case <-ctx.Done():
			logger.Info("Worker: session sweeper stopping")
			return
		}
	}
}

func (w *SessionSweeper) Sweep(ctx context.Context) {
	start := time.Now()

	removed, err := w.sessions.DeleteExpiredSessions(ctx, time.Now())
	if err != nil {
		logger.Warn("Worker: sweep failed", zap.Error(err))
		return
	}

	if removed > 0 {
		logger.Info("Worker: expired sessions removed",
			zap.Int64("removed", removed),
			zap.Duration("ms", time.Since(start)))
	}
}
