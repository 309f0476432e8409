package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sbilibin2017/gw-bank-client/internal/logger"
)

// DefaultSessionCheckSpec is how often stored tokens are checked for expiry.
const DefaultSessionCheckSpec = "@every 30s"

// ExpiryChecker logs out expired sessions.
type ExpiryChecker interface {
	CheckExpiry(ctx context.Context) (bool, error)
}

// SessionWatcher periodically runs ExpiryChecker on a cron schedule.
type SessionWatcher struct {
	cron    *cron.Cron
	checker ExpiryChecker
	timeout time.Duration
}

// NewSessionWatcher schedules checker with spec, e.g. "@every 30s".
func NewSessionWatcher(checker ExpiryChecker, spec string) (*SessionWatcher, error) {
	if spec == "" {
		spec = DefaultSessionCheckSpec
	}
	w := &SessionWatcher{
		cron:    cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		checker: checker,
		timeout: 5 * time.Second,
	}
	if _, err := w.cron.AddFunc(spec, w.check); err != nil {
		logger.Log.Errorw("invalid session check schedule", "spec", spec, "error", err)
		return nil, fmt.Errorf("schedule session check %q: %w", spec, err)
	}
	return w, nil
}

// Start runs the schedule in the background.
func (w *SessionWatcher) Start() {
	w.cron.Start()
}

// Stop halts the schedule; the returned context is done once a running
// check has finished.
func (w *SessionWatcher) Stop() context.Context {
	return w.cron.Stop()
}

func (w *SessionWatcher) check() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	expired, err := w.checker.CheckExpiry(ctx)
	if err != nil {
		logger.Log.Errorw("session expiry check failed", "error", err)
		return
	}
	if expired {
		logger.Log.Infow("expired session logged out")
	}
}
