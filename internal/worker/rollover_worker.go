package worker

import (
	"context"
	"sync"
	"time"

	"github.com/surgearcade/portal/internal/challenge"
	"github.com/surgearcade/portal/internal/domain"
	"github.com/surgearcade/portal/internal/event"
	"github.com/surgearcade/portal/internal/logger"
	"github.com/surgearcade/portal/internal/metrics"
	"github.com/surgearcade/portal/internal/rotation"
)

// Job is a unit of maintenance work run once per rollover.
type Job interface {
	Process(ctx context.Context) error
}

// RolloverWorker pre-warms the next day's rotation and challenge set shortly
// before UTC midnight so the first request after rollover never pays the
// computation cost. Registered maintenance jobs run after each rollover.
type RolloverWorker struct {
	rotationSvc  rotation.Service
	challengeSvc challenge.Service
	bus          event.Bus
	jobs         []Job
	timer        *time.Timer
	shutdown     chan struct{}
	wg           sync.WaitGroup
	mu           sync.Mutex
	now          func() time.Time
}

// NewRolloverWorker creates a new RolloverWorker
func NewRolloverWorker(rotationSvc rotation.Service, challengeSvc challenge.Service, bus event.Bus, jobs ...Job) *RolloverWorker {
	return &RolloverWorker{
		rotationSvc:  rotationSvc,
		challengeSvc: challengeSvc,
		bus:          bus,
		jobs:         jobs,
		shutdown:     make(chan struct{}),
		now:          time.Now,
	}
}

// Start warms today's content immediately and schedules the first rollover
func (w *RolloverWorker) Start() {
	w.warm(context.Background(), domain.NewDateKey(w.now().UTC()))
	w.scheduleNext()
}

// scheduleNext calculates the time until the next warm point and arms the timer
func (w *RolloverWorker) scheduleNext() {
	duration := w.timeUntilNextRollover()
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}

	// Two-stage scheduling to prevent tight-loop rescheduling caused by
	// early timer triggers.
	if duration > 1*time.Hour {
		// Stage 1: long-range standby. Wake up 30 minutes before midnight.
		waitDuration := duration - 30*time.Minute
		w.timer = time.AfterFunc(waitDuration, func() {
			w.scheduleNext()
		})
		w.mu.Unlock()

		log.Info(LogMsgRolloverStandby, "next_check_at", w.now().UTC().Add(waitDuration))
		return
	}

	// Stage 2: final approach. Arm the actual rollover.
	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// If the timer fired early, reschedule for the remaining time.
		rem := w.timeUntilNextRollover()
		if rem > 10*time.Second && rem < 23*time.Hour {
			w.scheduleNext()
			return
		}

		w.executeRollover()
		w.scheduleNext()
	})
	w.mu.Unlock()

	log.Info(LogMsgRolloverScheduled, "next_rollover_at", w.now().UTC().Add(duration))
}

// executeRollover warms the new day's content in a tracked goroutine
func (w *RolloverWorker) executeRollover() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ctx := context.Background()
		log := logger.FromContext(ctx)
		log.Info(LogMsgRolloverStarting)

		key := domain.NewDateKey(w.now().UTC())
		w.warm(ctx, key)

		for _, job := range w.jobs {
			if err := job.Process(ctx); err != nil {
				log.Error(LogMsgRolloverJobFailed, "error", err)
			}
		}

		metrics.RolloversCompleted.Inc()
		log.Info(LogMsgRolloverCompleted, "date_key", int(key))

		if w.bus != nil {
			evt := event.New(domain.EventTypeDailyRolloverDone, map[string]interface{}{
				"date_key":    int(key),
				"rolled_over": w.now().UTC(),
			})
			if err := w.bus.Publish(ctx, evt); err != nil {
				log.Error(LogMsgRolloverPublishFailed, "error", err)
			}
		}
	}()
}

// warm computes and caches the rotation and challenge set for the given day
func (w *RolloverWorker) warm(ctx context.Context, key domain.DateKey) {
	rot := w.rotationSvc.Rotation(ctx, key)
	challenges := w.challengeSvc.Daily(key)

	logger.FromContext(ctx).Info(LogMsgContentWarmed,
		"date_key", int(key),
		"rotation_items", len(rot.Items),
		"challenges", len(challenges))
}

// Shutdown cancels the pending timer and waits for an in-flight rollover
func (w *RolloverWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down rollover worker")

	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		log.Info("Cancelled pending rollover")
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("Rollover worker shutdown complete")
		return nil
	case <-ctx.Done():
		log.Warn("Rollover worker shutdown timeout")
		return ctx.Err()
	}
}

// timeUntilNextRollover calculates the duration until the next 00:00 UTC
func (w *RolloverWorker) timeUntilNextRollover() time.Duration {
	now := w.now().UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
