package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"

	"github.com/verdantly/watering-advisor/internal/advisor"
)

// Scheduler periodically recomputes watering plans for every configured
// location, so the stabilizer always has a recent snapshot to pin against.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *advisor.Service
	interval  time.Duration
	log       zerolog.Logger
}

// New creates a Scheduler over the advisor's configured locations.
func New(service *advisor.Service, interval time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler. The first run fires immediately so plans exist before the first
// request.
func (s *Scheduler) Start() error {
	if len(s.service.Locations()) == 0 {
		s.log.Info().Msg("scheduler: no locations configured; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).StartImmediately().Do(func() {
		s.log.Debug().Msg("scheduler: refreshing watering plans")

		var wg sync.WaitGroup
		for _, loc := range s.service.Locations() {
			loc := loc
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if _, err := s.service.Refresh(ctx, loc); err != nil {
					s.log.Error().Str("location", loc.Name).Err(err).Msg("scheduler: refresh failed")
				}
			}()
		}
		wg.Wait()
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
