package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/domain"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/repository"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/silhouette"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var london = domain.Location{Latitude: 51.5074, Longitude: -0.1278, Timezone: "Europe/London"}

func setupService(t *testing.T) (*PhaseService, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	cache := repository.NewSnapshotCache(client, time.Hour)
	return NewPhaseService(cache, london), mr
}

type failingStore struct{ puts int }

func (f *failingStore) Get(context.Context, string, string, float64, float64) (*domain.Report, error) {
	return nil, errors.New("redis down")
}

func (f *failingStore) Put(context.Context, *domain.Report) error {
	f.puts++
	return errors.New("redis down")
}

func TestPhaseService_DayCachesReport(t *testing.T) {
	svc, mr := setupService(t)
	ResetMetrics()
	ctx := context.Background()
	loc, _ := time.LoadLocation("Europe/London")

	first, err := svc.Day(ctx, 2024, time.April, 23, loc, london.Latitude, london.Longitude)
	require.NoError(t, err)
	assert.Equal(t, "2024-04-23", first.Date)
	assert.Equal(t, domain.FullMoon, first.Moon.PhaseName)
	assert.Equal(t, "Full Moon", first.PhaseText)
	assert.True(t, mr.Exists("moon:snapshot:2024-04-23:Europe/London:51.51:-0.13"))

	second, err := svc.Day(ctx, 2024, time.April, 23, loc, london.Latitude, london.Longitude)
	require.NoError(t, err)
	assert.Equal(t, first.Moon.Phase, second.Moon.Phase)

	m := GetMetrics()
	assert.Equal(t, int64(1), m.CacheHits)
	assert.Equal(t, int64(1), m.CacheMisses)
	assert.Equal(t, int64(1), m.Snapshots)
	assert.Equal(t, 50.0, m.HitRate())
}

func TestPhaseService_CacheHitKeepsCallerLocation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	loc, _ := time.LoadLocation("Europe/London")

	first, err := svc.Day(ctx, 2024, time.April, 23, loc, 51.501, -0.121)
	require.NoError(t, err)

	// Same rounded cache key, different observer.
	second, err := svc.Day(ctx, 2024, time.April, 23, loc, 51.504, -0.124)
	require.NoError(t, err)

	assert.Equal(t, first.Moon.Phase, second.Moon.Phase)
	assert.Equal(t, 51.504, second.Location.Latitude)
	assert.Equal(t, -0.124, second.Location.Longitude)
	assert.Equal(t, SunTimesFor(time.Date(2024, time.April, 23, 12, 0, 0, 0, loc), 51.504, -0.124), second.Sun)
}

func TestPhaseService_CacheFailureIsNotFatal(t *testing.T) {
	store := &failingStore{}
	svc := NewPhaseService(store, london)

	r, err := svc.Day(context.Background(), 2024, time.January, 11, time.UTC, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.NewMoon, r.Moon.PhaseName)
	assert.Equal(t, 1, store.puts)
}

func TestPhaseService_WithoutCache(t *testing.T) {
	svc := NewPhaseService(nil, london)
	r, err := svc.Day(context.Background(), 2024, time.January, 11, nil, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, "UTC", r.Location.Timezone)
}

func TestPhaseService_InvalidLocation(t *testing.T) {
	svc := NewPhaseService(nil, london)
	ctx := context.Background()

	_, err := svc.Day(ctx, 2024, time.January, 1, time.UTC, 95, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidLocation)

	_, err = svc.Snapshot(ctx, time.Now(), 0, math.NaN())
	assert.ErrorIs(t, err, domain.ErrInvalidLocation)

	_, err = svc.Day(ctx, 2024, time.January, 1, time.UTC, 0, 181)
	assert.ErrorIs(t, err, domain.ErrInvalidLocation)
}

func TestPhaseService_Snapshot(t *testing.T) {
	svc := NewPhaseService(nil, london)
	at := time.Date(2024, 4, 23, 23, 49, 0, 0, time.UTC)

	r, err := svc.Snapshot(context.Background(), at, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.FullMoon, r.Moon.PhaseName)
	require.NotNil(t, r.Moon.RiseTime)
	require.NotNil(t, r.Moon.SetTime)
	assert.True(t, r.Moon.TransitTime.After(*r.Moon.RiseTime))
}

func TestPhaseService_Calendar(t *testing.T) {
	svc, _ := setupService(t)
	reports, err := svc.Calendar(context.Background(), 2024, time.February, time.UTC, 0, 0)
	require.NoError(t, err)
	require.Len(t, reports, 29)

	assert.Equal(t, "2024-02-01", reports[0].Date)
	assert.Equal(t, "2024-02-29", reports[28].Date)

	seen := map[domain.PhaseName]bool{}
	for _, r := range reports {
		seen[r.Moon.PhaseName] = true
	}
	assert.True(t, seen[domain.NewMoon])
	assert.True(t, seen[domain.FullMoon])

	_, err = svc.Calendar(context.Background(), 2024, 13, time.UTC, 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestPhaseService_WarmToday(t *testing.T) {
	svc, mr := setupService(t)
	svc.now = func() time.Time { return time.Date(2025, 3, 14, 6, 0, 0, 0, time.UTC) }

	require.NoError(t, svc.WarmToday(context.Background()))
	assert.True(t, mr.Exists("moon:snapshot:2025-03-14:Europe/London:51.51:-0.13"))

	bad := NewPhaseService(nil, domain.Location{Timezone: "Nowhere/Special"})
	assert.ErrorIs(t, bad.WarmToday(context.Background()), domain.ErrInvalidTimezone)
}

func TestPhaseService_Outline(t *testing.T) {
	svc := NewPhaseService(nil, london)

	o, err := svc.Outline(0.375)
	require.NoError(t, err)
	assert.Equal(t, silhouette.WaxingGibbous, o.Regime)

	_, err = svc.Outline(math.Inf(1))
	assert.ErrorIs(t, err, domain.ErrInvalidPhase)
}

func TestSunTimesFor(t *testing.T) {
	at := time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC)

	sun := SunTimesFor(at, 51.5, 0)
	require.NotNil(t, sun.Sunrise)
	require.NotNil(t, sun.Sunset)
	assert.True(t, sun.Sunset.After(*sun.Sunrise))

	polar := SunTimesFor(at, 80, 0)
	assert.Nil(t, polar.Sunrise)
	assert.Nil(t, polar.Sunset)
}
