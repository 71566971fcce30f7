package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/BrandonDHaskell/learnlog/internal/learnlog/store"
)

// InteractionPruner periodically deletes interactions older than the
// configured retention. A retention of 0 disables pruning entirely.
type InteractionPruner struct {
	store     store.InteractionStore
	retention time.Duration
	interval  time.Duration
	logger    zerolog.Logger
	cancel    context.CancelFunc
	done      chan struct{}
}

type PrunerConfig struct {
	// RetentionDays is how many days of interactions to keep; 0 keeps all.
	RetentionDays int

	// IntervalHours is how often the pruner runs. Defaults to 6.
	IntervalHours int
}

// NewInteractionPruner creates a pruner but does not start it.
func NewInteractionPruner(s store.InteractionStore, cfg PrunerConfig, logger zerolog.Logger) *InteractionPruner {
	interval := time.Duration(cfg.IntervalHours) * time.Hour
	if interval <= 0 {
		interval = 6 * time.Hour
	}

	return &InteractionPruner{
		store:     s,
		retention: time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		interval:  interval,
		logger:    logger.With().Str("component", "pruner").Logger(),
		done:      make(chan struct{}),
	}
}

// Start prunes once immediately, then on every interval until ctx is
// cancelled or Stop is called.
func (p *InteractionPruner) Start(ctx context.Context) {
	if p.retention <= 0 {
		p.logger.Info().Msg("interaction pruner disabled (retention=0)")
		close(p.done)
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)

	go p.loop(ctx)

	p.logger.Info().
		Int("retention_days", int(p.retention.Hours()/24)).
		Int("interval_hours", int(p.interval.Hours())).
		Msg("interaction pruner started")
}

// Stop signals the pruner to exit and waits for it.
func (p *InteractionPruner) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	<-p.done
}

// PruneOnce runs a single retention pass and returns the rows removed.
func (p *InteractionPruner) PruneOnce(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-p.retention)
	deleted, err := p.store.PruneOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		p.logger.Info().
			Int64("deleted", deleted).
			Time("cutoff", cutoff).
			Msg("pruned interactions")
	}
	return deleted, nil
}

func (p *InteractionPruner) loop(ctx context.Context) {
	defer close(p.done)

	p.prune(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.prune(ctx)
		}
	}
}

func (p *InteractionPruner) prune(ctx context.Context) {
	if _, err := p.PruneOnce(ctx); err != nil && ctx.Err() == nil {
		p.logger.Error().Err(err).Msg("interaction prune failed")
	}
}
