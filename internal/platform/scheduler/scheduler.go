// Package scheduler runs periodic cache maintenance.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Pruner deletes cache rows that expired before the given instant.
type Pruner interface {
	Prune(ctx context.Context, before time.Time) (int64, error)
}

// SymbolLister returns the symbols worth keeping warm.
type SymbolLister interface {
	ListSymbols(ctx context.Context) ([]string, error)
}

// WarmFunc refreshes the cached data for one symbol.
type WarmFunc func(ctx context.Context, symbol string)

// Scheduler manages the maintenance cron job.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	pruner Pruner
	grace  time.Duration
	now    func() time.Time

	lister SymbolLister
	warm   WarmFunc
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithWarmup makes each run also refresh every listed symbol through warm.
func WithWarmup(l SymbolLister, warm WarmFunc) Option {
	return func(s *Scheduler) {
		s.lister = l
		s.warm = warm
	}
}

// WithClock overrides the clock used to compute the prune cutoff.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// NewScheduler creates a Scheduler. Rows expired longer than grace ago are pruned.
// Schedules accept both 5-field and 6-field (with seconds) cron specs.
func NewScheduler(ctx context.Context, p Pruner, grace time.Duration, opts ...Option) *Scheduler {
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	s := &Scheduler{
		cron:   cron.New(cron.WithParser(parser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		ctx:    ctx,
		pruner: p,
		grace:  grace,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds the maintenance job on spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(s.ctx) }); err != nil {
		return fmt.Errorf("register maintenance job %q: %w", spec, err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("scheduler stopped")
}

// RunOnce prunes expired rows, then warms the listed symbols if configured.
func (s *Scheduler) RunOnce(ctx context.Context) {
	cutoff := s.now().Add(-s.grace)
	n, err := s.pruner.Prune(ctx, cutoff)
	if err != nil {
		slog.Error("cache prune failed", "error", err)
	} else {
		slog.Info("cache pruned", "rows", n, "before", cutoff)
	}

	if s.lister == nil || s.warm == nil {
		return
	}
	symbols, err := s.lister.ListSymbols(ctx)
	if err != nil {
		slog.Error("warmup: list symbols failed", "error", err)
		return
	}
	for _, sym := range symbols {
		if ctx.Err() != nil {
			return
		}
		s.warm(ctx, sym)
	}
	slog.Info("cache warmed", "symbols", len(symbols))
}
