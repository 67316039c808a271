package monitoring

import (
	"fmt"
	"time"

	"github.com/isdelr/watchlist/internal/metrics"
	"github.com/isdelr/watchlist/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler runs periodic housekeeping, currently the activity log retention.
type Scheduler struct {
	app       string
	eventSvc  services.EventServiceProvider
	retention time.Duration
	cron      *cron.Cron
	now       func() time.Time
}

// NewScheduler creates a scheduler that prunes events older than retention on
// every tick of spec (standard cron syntax or descriptors such as "@hourly").
func NewScheduler(app string, eventSvc services.EventServiceProvider, spec string, retention time.Duration) (*Scheduler, error) {
	if retention <= 0 {
		return nil, fmt.Errorf("event retention must be positive, got %s", retention)
	}

	s := &Scheduler{
		app:       app,
		eventSvc:  eventSvc,
		retention: retention,
		cron:      cron.New(),
		now:       time.Now,
	}
	if _, err := s.cron.AddFunc(spec, s.PruneEvents); err != nil {
		return nil, fmt.Errorf("invalid prune schedule %q: %w", spec, err)
	}
	return s, nil
}

// Run starts the scheduler in its own goroutine.
func (s *Scheduler) Run() {
	log.Info().Str("app", s.app).Msg("Starting background scheduler...")
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Str("app", s.app).Msg("Stopped background scheduler.")
}

// PruneEvents deletes events older than the retention window.
func (s *Scheduler) PruneEvents() {
	cutoff := s.now().Add(-s.retention)
	removed, err := s.eventSvc.PruneBefore(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Scheduler: failed to prune events")
		return
	}
	metrics.EventsPrunedTotal.WithLabelValues(s.app).Add(float64(removed))
	if removed > 0 {
		log.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("Scheduler: pruned old events")
	}
}
