package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/moonlog-backend/internal/observation_logs/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"

	moon "github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/domain"
)

// Schema creates the observation log table. It is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS observation_logs (
	id              uuid PRIMARY KEY,
	user_id         text NOT NULL,
	observed_at     timestamptz NOT NULL,
	latitude        double precision NOT NULL,
	longitude       double precision NOT NULL,
	location_name   text,
	weather         text NOT NULL,
	notes           text,
	phase_name      text NOT NULL,
	phase           double precision NOT NULL,
	illumination    double precision NOT NULL,
	image_mime      text,
	image_data      bytea,
	ai_commentary   text,
	created_at      timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS observation_logs_user_observed_idx
	ON observation_logs (user_id, observed_at DESC);
`

const logColumns = `id, user_id, observed_at, latitude, longitude, location_name, weather, notes,
       phase_name, phase, illumination, image_mime, image_data IS NOT NULL, ai_commentary, created_at`

// LogRepository handles PostgreSQL operations for observation logs
type LogRepository struct {
	db *sql.DB
}

// NewLogRepository creates a new LogRepository
func NewLogRepository(db *sql.DB) *LogRepository {
	return &LogRepository{db: db}
}

// Create inserts a log and its optional image. ID and CreatedAt are filled in.
func (r *LogRepository) Create(ctx context.Context, l *domain.ObservationLog, img *domain.Image) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}

	var imageMime sql.NullString
	var imageData []byte
	if img != nil && len(img.Data) > 0 {
		imageMime = sql.NullString{String: img.Mime, Valid: true}
		imageData = img.Data
		l.HasImage = true
		l.ImageMime = img.Mime
	}

	query := `
		INSERT INTO observation_logs (
			id, user_id, observed_at, latitude, longitude, location_name, weather, notes,
			phase_name, phase, illumination, image_mime, image_data, ai_commentary
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at
	`

	var createdAt time.Time
	err := r.db.QueryRowContext(ctx, query,
		l.ID,
		l.UserID,
		l.ObservedAt,
		l.Latitude,
		l.Longitude,
		nullString(l.LocationName),
		string(l.Weather),
		nullString(l.Notes),
		string(l.PhaseName),
		l.Phase,
		l.Illumination,
		imageMime,
		imageData,
		nullString(l.AICommentary),
	).Scan(&createdAt)
	if err != nil {
		return fmt.Errorf("failed to create observation log: %w", err)
	}

	l.CreatedAt = createdAt
	return nil
}

// GetByID returns one of the user's logs.
func (r *LogRepository) GetByID(ctx context.Context, userID, id string) (*domain.ObservationLog, error) {
	query := `SELECT ` + logColumns + `
		FROM observation_logs
		WHERE id = $1 AND user_id = $2
	`

	l, err := scanLog(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		return nil, domain.ErrLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get observation log: %w", err)
	}
	return l, nil
}

// ListByUser returns the user's logs, most recent observation first.
func (r *LogRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.ObservationLog, error) {
	query := `SELECT ` + logColumns + `
		FROM observation_logs
		WHERE user_id = $1
		ORDER BY observed_at DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list observation logs: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ObservationLog, 0, limit)
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan observation log: %w", err)
		}
		out = append(out, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list observation logs: %w", err)
	}
	return out, nil
}

// GetImage returns the photo attached to a log.
func (r *LogRepository) GetImage(ctx context.Context, userID, id string) (*domain.Image, error) {
	query := `
		SELECT image_mime, image_data
		FROM observation_logs
		WHERE id = $1 AND user_id = $2 AND image_data IS NOT NULL
	`

	var mime sql.NullString
	var data []byte
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&mime, &data)
	if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		return nil, domain.ErrLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}

	img := &domain.Image{Mime: "application/octet-stream", Data: data}
	if mime.Valid && mime.String != "" {
		img.Mime = mime.String
	}
	return img, nil
}

// Delete removes one of the user's logs.
func (r *LogRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM observation_logs WHERE id = $1 AND user_id = $2`, id, userID)
	if isInvalidID(err) {
		return domain.ErrLogNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete observation log: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete observation log: %w", err)
	}
	if n == 0 {
		return domain.ErrLogNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLog(row rowScanner) (*domain.ObservationLog, error) {
	var l domain.ObservationLog
	var locationName, notes, imageMime, commentary sql.NullString
	var weather, phaseName string

	err := row.Scan(
		&l.ID,
		&l.UserID,
		&l.ObservedAt,
		&l.Latitude,
		&l.Longitude,
		&locationName,
		&weather,
		&notes,
		&phaseName,
		&l.Phase,
		&l.Illumination,
		&imageMime,
		&l.HasImage,
		&commentary,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.Weather = domain.Weather(weather)
	l.PhaseName = moon.PhaseName(phaseName)
	l.LocationName = locationName.String
	l.Notes = notes.String
	l.ImageMime = imageMime.String
	l.AICommentary = commentary.String
	return &l, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// isInvalidID matches postgres rejecting a malformed uuid literal.
func isInvalidID(err error) bool {
	var pgErr *pq.Error
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
