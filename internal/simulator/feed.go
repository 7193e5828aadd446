// Package simulator synthesizes alarm traffic for deployments that have
// no live sensor integration. The feed runs only while a session is
// active and must never outlive it: a leaked timer after logout would
// keep mutating the registry with nobody watching.
package simulator

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aegisops/aegis-api/internal/models"
	"github.com/aegisops/aegis-api/internal/notification"
	"github.com/aegisops/aegis-api/internal/repository"
)

const (
	DefaultMinDelay = 30 * time.Second
	DefaultMaxDelay = 60 * time.Second
)

// Feed periodically inserts a synthesized alarm. Delays between alarms
// are drawn uniformly from [minDelay, maxDelay) on every round, so the
// stream is irregular rather than metronomic.
type Feed struct {
	alarms   repository.AlarmRepository
	bus      *notification.Bus
	logger   zerolog.Logger
	minDelay time.Duration
	maxDelay time.Duration
	rng      *rand.Rand

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewFeed(alarms repository.AlarmRepository, bus *notification.Bus, minDelay, maxDelay time.Duration, logger zerolog.Logger) *Feed {
	if minDelay <= 0 {
		minDelay = DefaultMinDelay
	}
	if maxDelay <= minDelay {
		maxDelay = minDelay + (DefaultMaxDelay - DefaultMinDelay)
	}
	return &Feed{
		alarms:   alarms,
		bus:      bus,
		logger:   logger.With().Str("component", "alarm_feed").Logger(),
		minDelay: minDelay,
		maxDelay: maxDelay,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start launches the feed loop. Calling Start on a running feed is a
// no-op, so repeated logins do not stack loops.
func (f *Feed) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	f.done = make(chan struct{})
	f.logger.Info().Msg("alarm feed started")
	go f.run(ctx, f.done)
}

// Stop cancels the pending wait and blocks until the loop has exited.
// A synthesis step that already inserted its alarm is not rolled back.
func (f *Feed) Stop() {
	f.mu.Lock()
	cancel, done := f.cancel, f.done
	f.cancel, f.done = nil, nil
	f.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	f.logger.Info().Msg("alarm feed stopped")
}

// Running reports whether the feed loop is active.
func (f *Feed) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancel != nil
}

func (f *Feed) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(f.nextDelay())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			f.emit(ctx)
			timer.Reset(f.nextDelay())
		}
	}
}

func (f *Feed) nextDelay() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.minDelay + time.Duration(f.rng.Int63n(int64(f.maxDelay-f.minDelay)))
}

func (f *Feed) emit(ctx context.Context) {
	f.mu.Lock()
	alarm := synthesize(f.rng, time.Now())
	f.mu.Unlock()

	if _, err := f.alarms.Add(ctx, alarm); err != nil {
		f.logger.Error().Err(err).Str("alarm_id", alarm.ID).Msg("failed to insert simulated alarm")
		return
	}
	f.logger.Info().
		Str("alarm_id", alarm.ID).
		Str("type", string(alarm.Type)).
		Msg("simulated alarm inserted")
	f.bus.Show("收到新的报警消息", models.ToastSeverityError)
}
