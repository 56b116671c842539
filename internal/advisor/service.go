// Package advisor orchestrates forecast retrieval, the watering decision
// engine, and snapshot persistence. The engine itself stays pure; everything
// with a failure mode lives here.
package advisor

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/verdantly/watering-advisor/internal/engine"
	"github.com/verdantly/watering-advisor/internal/store"
	"github.com/verdantly/watering-advisor/internal/weather"
)

// Service computes and serves watering plans for configured locations.
type Service struct {
	sources   []weather.ForecastSource
	snapshots store.SnapshotStore
	policy    engine.Policy
	locations []weather.Location
	days      int
	log       zerolog.Logger

	// now is swappable in tests.
	now func() time.Time
}

// NewService creates a Service. The policy must be complete; days is the
// forecast horizon requested from sources.
func NewService(
	sources []weather.ForecastSource,
	snapshots store.SnapshotStore,
	policy engine.Policy,
	locations []weather.Location,
	days int,
	log zerolog.Logger,
) (*Service, error) {
	if err := policy.Validate(); err != nil {
		return nil, eris.Wrap(err, "advisor: invalid policy")
	}
	if len(sources) == 0 {
		return nil, eris.New("advisor: no forecast sources configured")
	}

	return &Service{
		sources:   sources,
		snapshots: snapshots,
		policy:    policy,
		locations: locations,
		days:      days,
		log:       log,
		now:       time.Now,
	}, nil
}

// Location resolves a configured location by name.
func (s *Service) Location(name string) (weather.Location, bool) {
	for _, loc := range s.locations {
		if loc.Name == name {
			return loc, true
		}
	}
	return weather.Location{}, false
}

// Locations returns the configured locations.
func (s *Service) Locations() []weather.Location {
	return s.locations
}

// Refresh fetches a fresh forecast for the location, runs the engine against
// the previously stored snapshot, and stores the result.
func (s *Service) Refresh(ctx context.Context, loc weather.Location) (store.Snapshot, error) {
	obs, err := s.fetchObservations(ctx, loc)
	if err != nil {
		return store.Snapshot{}, err
	}

	var previous *engine.Plan
	if prev, err := s.snapshots.Latest(loc); err == nil {
		previous = &prev.Plan
	}

	res, err := engine.Run(engine.Input{
		Observations: obs,
		Policy:       s.policy,
		Previous:     previous,
		Today:        s.now().UTC().Format("2006-01-02"),
	})
	if err != nil {
		return store.Snapshot{}, eris.Wrapf(err, "advisor: plan %s", loc.Key())
	}

	snap := store.Snapshot{Plan: res.Plan, Hints: res.Hints, TakenAt: s.now().UTC()}
	s.snapshots.Save(loc, snap)

	s.log.Info().
		Str("location", loc.Name).
		Int("days", len(res.Plan.Decisions)).
		Int("yesNext7", res.Hints.YesCountNext7).
		Msg("watering plan refreshed")

	return snap, nil
}

// fetchObservations tries each source in order and returns the first usable
// daily forecast. Forecasts are not blended across sources: the engine wants
// one internally consistent outlook.
func (s *Service) fetchObservations(ctx context.Context, loc weather.Location) ([]engine.Observation, error) {
	var lastErr error
	for _, src := range s.sources {
		obs, err := src.FetchDaily(ctx, loc, s.days)
		if err != nil {
			s.log.Warn().
				Str("source", src.Name()).
				Str("location", loc.Name).
				Err(err).
				Msg("forecast source failed, trying next")
			lastErr = err
			continue
		}
		if len(obs) == 0 {
			lastErr = eris.Errorf("advisor: source %s returned no days", src.Name())
			continue
		}
		return obs, nil
	}
	return nil, eris.Wrapf(lastErr, "advisor: all forecast sources failed for %s", loc.Key())
}

// Latest returns the most recent stored snapshot for the location.
func (s *Service) Latest(loc weather.Location) (store.Snapshot, error) {
	return s.snapshots.Latest(loc)
}

// History returns stored snapshots for the location between from and to.
func (s *Service) History(loc weather.Location, from, to time.Time) ([]store.Snapshot, error) {
	return s.snapshots.History(loc, from, to)
}

// PlanFromObservations runs the engine on caller-supplied data. Nothing is
// fetched or stored; the caller owns persistence of the returned plan.
func (s *Service) PlanFromObservations(in engine.Input) (*engine.Result, error) {
	return engine.Run(in)
}
