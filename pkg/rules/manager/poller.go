package manager

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"esfpc/fpcheck/pkg/rules/source"
)

// GitPoller pulls a rule repository on a cron schedule and calls onChange
// when HEAD moved.
type GitPoller struct {
	source   *source.GitSource
	schedule string
	onChange func(context.Context) error
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewGitPoller creates a poller. schedule uses standard cron syntax plus
// descriptors such as "@every 1m".
func NewGitPoller(src *source.GitSource, schedule string, onChange func(context.Context) error, logger *slog.Logger) (*GitPoller, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid poll schedule %q: %w", schedule, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GitPoller{
		source:   src,
		schedule: schedule,
		onChange: onChange,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "manager.poller"),
	}, nil
}

// Start schedules polling. The poller stops when ctx is done.
func (p *GitPoller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return fmt.Errorf("poller already running")
	}
	if _, err := p.cron.AddFunc(p.schedule, func() { p.Poll(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule git poll: %w", err)
	}
	p.cron.Start()
	p.running = true

	p.logger.Info("git poller started", "schedule", p.schedule, "source", p.source.String())

	go func() {
		<-ctx.Done()
		p.Stop()
	}()
	return nil
}

// Poll syncs the repository once and reloads on changes. Errors are logged.
func (p *GitPoller) Poll(ctx context.Context) {
	res, err := p.source.Sync(ctx)
	if err != nil {
		p.logger.Error("git poll failed", "error", err)
		return
	}
	if !res.HadChanges() {
		p.logger.Debug("git poll found no changes")
		return
	}
	if err := p.onChange(ctx); err != nil {
		p.logger.Error("reload after git update failed", "to", res.ToSHA, "error", err)
	}
}

// Stop stops scheduling and waits for a running poll.
func (p *GitPoller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	<-p.cron.Stop().Done()
	p.running = false
	p.logger.Info("git poller stopped")
}

// NextRun returns the next scheduled poll, or the zero time when stopped.
func (p *GitPoller) NextRun() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return time.Time{}
	}
	entries := p.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
