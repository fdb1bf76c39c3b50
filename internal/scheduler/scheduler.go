package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"TickerBoard/internal/session"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RefreshInterval is the fixed pause between refresh cycles.
const RefreshInterval = 5 * time.Second

// RefreshSpec is the cron spec for RefreshInterval.
var RefreshSpec = fmt.Sprintf("@every %s", RefreshInterval)

// Scheduler drives the session's refresh cycle on a timer.
type Scheduler struct {
	Cron    *cron.Cron
	Session *session.Session
	Ctx     context.Context

	logger *zap.Logger
	job    cron.Job

	mu      sync.Mutex
	stopped bool
	running sync.WaitGroup // cycles started by Trigger
}

// NewScheduler creates a new Scheduler. Cycles never overlap: a tick that
// fires while the previous cycle is still fetching is skipped.
func NewScheduler(ctx context.Context, sess *session.Session, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	cl := cronLogger{logger.Sugar()}
	s := &Scheduler{
		Cron:    cron.New(cron.WithSeconds(), cron.WithLogger(cl)),
		Session: sess,
		Ctx:     ctx,
		logger:  logger,
	}
	s.job = cron.NewChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)).Then(cron.FuncJob(s.refresh))
	return s
}

// Register schedules the refresh cycle with spec (usually RefreshSpec).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddJob(spec, s.job); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler and runs the first cycle immediately.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info("scheduler started")
	s.Trigger()
}

// Stop stops the scheduler and waits until every cycle, scheduled or
// triggered, has finished. Trigger is a no-op afterwards.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	<-s.Cron.Stop().Done()
	s.running.Wait()
	s.logger.Info("scheduler stopped")
}

// Trigger starts one refresh cycle in the background, outside the schedule.
func (s *Scheduler) Trigger() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.running.Add(1)
	go func() {
		defer s.running.Done()
		s.job.Run()
	}()
}

func (s *Scheduler) refresh() {
	if s.Ctx.Err() != nil {
		return
	}
	s.Session.Tick(s.Ctx)
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
