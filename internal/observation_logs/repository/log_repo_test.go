package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	moon "github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/domain"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/observation_logs/domain"
)

var logRowColumns = []string{
	"id", "user_id", "observed_at", "latitude", "longitude", "location_name", "weather", "notes",
	"phase_name", "phase", "illumination", "image_mime", "has_image", "ai_commentary", "created_at",
}

func setupLogRepo(t *testing.T) (*LogRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewLogRepository(db), mock
}

func TestLogRepository_Create(t *testing.T) {
	ctx := context.Background()
	observed := time.Date(2024, 4, 23, 21, 0, 0, 0, time.UTC)

	t.Run("assigns id and created_at", func(t *testing.T) {
		repo, mock := setupLogRepo(t)
		l := &domain.ObservationLog{
			UserID:       "user-1",
			ObservedAt:   observed,
			Latitude:     51.5,
			Longitude:    -0.1,
			Weather:      domain.WeatherClear,
			PhaseName:    moon.FullMoon,
			Phase:        0.51,
			Illumination: 0.99,
		}

		mock.ExpectQuery(`INSERT INTO observation_logs`).
			WithArgs(
				sqlmock.AnyArg(), // id
				"user-1",
				observed,
				51.5,
				-0.1,
				sql.NullString{},
				"clear",
				sql.NullString{},
				"FULL_MOON",
				0.51,
				0.99,
				sql.NullString{},
				sqlmock.AnyArg(), // image_data
				sql.NullString{},
			).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(observed.Add(time.Minute)))

		require.NoError(t, repo.Create(ctx, l, nil))
		assert.NotEmpty(t, l.ID)
		assert.False(t, l.HasImage)
		assert.Equal(t, observed.Add(time.Minute), l.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stores image metadata", func(t *testing.T) {
		repo, mock := setupLogRepo(t)
		l := &domain.ObservationLog{ID: "fixed-id", UserID: "user-1", ObservedAt: observed, Weather: domain.WeatherFog}
		img := &domain.Image{Mime: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}}

		mock.ExpectQuery(`INSERT INTO observation_logs`).
			WithArgs(
				"fixed-id", "user-1", observed, 0.0, 0.0, sql.NullString{}, "fog", sql.NullString{},
				"", 0.0, 0.0,
				sql.NullString{String: "image/jpeg", Valid: true},
				[]byte{0xff, 0xd8, 0xff},
				sql.NullString{},
			).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(observed))

		require.NoError(t, repo.Create(ctx, l, img))
		assert.Equal(t, "fixed-id", l.ID)
		assert.True(t, l.HasImage)
		assert.Equal(t, "image/jpeg", l.ImageMime)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps database errors", func(t *testing.T) {
		repo, mock := setupLogRepo(t)
		mock.ExpectQuery(`INSERT INTO observation_logs`).WillReturnError(errors.New("connection reset"))

		err := repo.Create(ctx, &domain.ObservationLog{UserID: "u"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create observation log")
	})
}

func TestLogRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	observed := time.Date(2024, 4, 23, 21, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo, mock := setupLogRepo(t)
		mock.ExpectQuery(`(?s)SELECT .* FROM observation_logs\s+WHERE id = \$1 AND user_id = \$2`).
			WithArgs("log-1", "user-1").
			WillReturnRows(sqlmock.NewRows(logRowColumns).AddRow(
				"log-1", "user-1", observed, 51.5, -0.1, "Greenwich", "clear", nil,
				"FULL_MOON", 0.51, 0.99, "image/png", true, "A bright full moon.", observed,
			))

		l, err := repo.GetByID(ctx, "user-1", "log-1")
		require.NoError(t, err)
		assert.Equal(t, "Greenwich", l.LocationName)
		assert.Equal(t, "", l.Notes)
		assert.Equal(t, moon.FullMoon, l.PhaseName)
		assert.Equal(t, domain.WeatherClear, l.Weather)
		assert.True(t, l.HasImage)
		assert.Equal(t, "image/png", l.ImageMime)
		assert.Equal(t, "A bright full moon.", l.AICommentary)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := setupLogRepo(t)
		mock.ExpectQuery(`(?s)SELECT .* FROM observation_logs`).
			WithArgs("nope", "user-1").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, "user-1", "nope")
		assert.ErrorIs(t, err, domain.ErrLogNotFound)
	})

	t.Run("malformed uuid", func(t *testing.T) {
		repo, mock := setupLogRepo(t)
		mock.ExpectQuery(`(?s)SELECT .* FROM observation_logs`).
			WithArgs("not-a-uuid", "user-1").
			WillReturnError(&pq.Error{Code: "22P02", Message: "invalid input syntax for type uuid"})

		_, err := repo.GetByID(ctx, "user-1", "not-a-uuid")
		assert.ErrorIs(t, err, domain.ErrLogNotFound)
	})
}

func TestLogRepository_ListByUser(t *testing.T) {
	repo, mock := setupLogRepo(t)
	later := time.Date(2024, 4, 24, 21, 0, 0, 0, time.UTC)
	earlier := later.Add(-24 * time.Hour)

	mock.ExpectQuery(`ORDER BY observed_at DESC`).
		WithArgs("user-1", 20, 0).
		WillReturnRows(sqlmock.NewRows(logRowColumns).
			AddRow("b", "user-1", later, 1.0, 2.0, nil, "cloudy", "hazy", "WANING_GIBBOUS", 0.55, 0.97, nil, false, nil, later).
			AddRow("a", "user-1", earlier, 1.0, 2.0, nil, "clear", nil, "FULL_MOON", 0.51, 0.99, nil, false, nil, earlier))

	logs, err := repo.ListByUser(context.Background(), "user-1", 20, 0)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "b", logs[0].ID)
	assert.Equal(t, "hazy", logs[0].Notes)
	assert.Equal(t, "a", logs[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogRepository_GetImage(t *testing.T) {
	ctx := context.Background()

	t.Run("returns bytes and mime", func(t *testing.T) {
		repo, mock := setupLogRepo(t)
		mock.ExpectQuery(`SELECT image_mime, image_data`).
			WithArgs("log-1", "user-1").
			WillReturnRows(sqlmock.NewRows([]string{"image_mime", "image_data"}).AddRow("image/png", []byte{0x89, 'P', 'N', 'G'}))

		img, err := repo.GetImage(ctx, "user-1", "log-1")
		require.NoError(t, err)
		assert.Equal(t, "image/png", img.Mime)
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, img.Data)
	})

	t.Run("falls back to octet-stream", func(t *testing.T) {
		repo, mock := setupLogRepo(t)
		mock.ExpectQuery(`SELECT image_mime, image_data`).
			WillReturnRows(sqlmock.NewRows([]string{"image_mime", "image_data"}).AddRow(nil, []byte{1}))

		img, err := repo.GetImage(ctx, "user-1", "log-1")
		require.NoError(t, err)
		assert.Equal(t, "application/octet-stream", img.Mime)
	})

	t.Run("no image", func(t *testing.T) {
		repo, mock := setupLogRepo(t)
		mock.ExpectQuery(`SELECT image_mime, image_data`).WillReturnError(sql.ErrNoRows)

		_, err := repo.GetImage(ctx, "user-1", "log-1")
		assert.ErrorIs(t, err, domain.ErrLogNotFound)
	})
}

func TestLogRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes", func(t *testing.T) {
		repo, mock := setupLogRepo(t)
		mock.ExpectExec(`DELETE FROM observation_logs`).
			WithArgs("log-1", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(ctx, "user-1", "log-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other user's log is not found", func(t *testing.T) {
		repo, mock := setupLogRepo(t)
		mock.ExpectExec(`DELETE FROM observation_logs`).
			WithArgs("log-1", "user-2").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, "user-2", "log-1"), domain.ErrLogNotFound)
	})
}
