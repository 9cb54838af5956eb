package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/GoSim-25-26J-441/moonlog-backend/internal/logging"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/calc"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/domain"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/silhouette"
	"github.com/nathan-osman/go-sunrise"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// SnapshotStore caches day reports. Implemented by repository.SnapshotCache.
type SnapshotStore interface {
	Get(ctx context.Context, date, tz string, lat, lng float64) (*domain.Report, error)
	Put(ctx context.Context, report *domain.Report) error
}

// PhaseService answers moon queries for an observer. The cache is optional;
// every value it holds can be recomputed.
type PhaseService struct {
	cache    SnapshotStore
	observer domain.Location
	now      func() time.Time
}

// NewPhaseService creates a PhaseService. cache may be nil.
func NewPhaseService(cache SnapshotStore, observer domain.Location) *PhaseService {
	return &PhaseService{
		cache:    cache,
		observer: observer,
		now:      time.Now,
	}
}

// DefaultObserver is the location used when a request carries none.
func (s *PhaseService) DefaultObserver() domain.Location {
	return s.observer
}

// ValidateLocation rejects non-finite or out of range coordinates.
func ValidateLocation(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return domain.ErrInvalidLocation
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return domain.ErrInvalidLocation
	}
	return nil
}

// Snapshot computes the report for an exact instant. It is never cached.
func (s *PhaseService) Snapshot(ctx context.Context, at time.Time, lat, lng float64) (*domain.Report, error) {
	if err := ValidateLocation(lat, lng); err != nil {
		return nil, err
	}
	recordSnapshot()
	return buildReport(at, lat, lng), nil
}

// Day returns the report for a calendar day in loc, evaluated at local noon.
// Results go through the cache when one is configured; cache errors are
// logged and otherwise ignored.
func (s *PhaseService) Day(ctx context.Context, year int, month time.Month, day int, loc *time.Location, lat, lng float64) (*domain.Report, error) {
	if err := ValidateLocation(lat, lng); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}

	noon := time.Date(year, month, day, 12, 0, 0, 0, loc)
	date := noon.Format(dateLayout)
	log := logging.For(ctx, "moon.day")

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, date, loc.String(), lat, lng)
		switch {
		case err == nil:
			recordCacheHit()
			// Entries are shared across nearby coordinates; report the caller's own.
			cached.Location.Latitude, cached.Location.Longitude = lat, lng
			cached.Sun = SunTimesFor(noon, lat, lng)
			return cached, nil
		case errors.Is(err, domain.ErrCacheMiss):
			recordCacheMiss()
		default:
			recordCacheMiss()
			log.Warn("snapshot cache read failed", zap.Error(err))
		}
	}

	recordSnapshot()
	report := buildReport(noon, lat, lng)

	if s.cache != nil {
		if err := s.cache.Put(ctx, report); err != nil {
			log.Warn("snapshot cache write failed", zap.Error(err))
		}
	}
	return report, nil
}

// Today returns the report for the current day in loc.
func (s *PhaseService) Today(ctx context.Context, loc *time.Location, lat, lng float64) (*domain.Report, error) {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := s.now().In(loc).Date()
	return s.Day(ctx, y, m, d, loc, lat, lng)
}

// Calendar returns one report per day of the month.
func (s *PhaseService) Calendar(ctx context.Context, year int, month time.Month, loc *time.Location, lat, lng float64) ([]domain.Report, error) {
	if month < time.January || month > time.December {
		return nil, domain.ErrInvalidDate
	}
	if loc == nil {
		loc = time.UTC
	}

	days := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	out := make([]domain.Report, 0, days)
	for d := 1; d <= days; d++ {
		r, err := s.Day(ctx, year, month, d, loc, lat, lng)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

// WarmToday precomputes today's report for the default observer.
func (s *PhaseService) WarmToday(ctx context.Context) error {
	loc, err := time.LoadLocation(s.observer.Timezone)
	if err != nil {
		return domain.ErrInvalidTimezone
	}
	_, err = s.Today(ctx, loc, s.observer.Latitude, s.observer.Longitude)
	return err
}

// Outline returns the lit silhouette for phase on the default disc.
func (s *PhaseService) Outline(phase float64) (silhouette.Outline, error) {
	if math.IsNaN(phase) || math.IsInf(phase, 0) {
		return silhouette.Outline{}, domain.ErrInvalidPhase
	}
	return silhouette.ComputeIlluminatedOutline(phase), nil
}

func buildReport(at time.Time, lat, lng float64) *domain.Report {
	snap := calc.ComputeMoonSnapshot(at, lat, lng)
	return &domain.Report{
		Date: at.Format(dateLayout),
		Location: domain.Location{
			Latitude:  lat,
			Longitude: lng,
			Timezone:  at.Location().String(),
		},
		Moon:      snap,
		PhaseText: snap.PhaseName.Label(),
		Sun:       SunTimesFor(at, lat, lng),
	}
}

// SunTimesFor returns sunrise and sunset on at's local calendar day.
func SunTimesFor(at time.Time, lat, lng float64) domain.SunTimes {
	y, m, d := at.Date()
	rise, set := sunrise.SunriseSunset(lat, lng, y, m, d)

	var out domain.SunTimes
	if !rise.IsZero() {
		r := rise.In(at.Location())
		out.Sunrise = &r
	}
	if !set.IsZero() {
		st := set.In(at.Location())
		out.Sunset = &st
	}
	return out
}
