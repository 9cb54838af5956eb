package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/moonlog-backend/internal/commentary"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/logging"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/calc"
	moonsvc "github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/service"
	"github.com/GoSim-25-26J-441/moonlog-backend/internal/observation_logs/domain"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Warnings attached to a created log when commentary could not be produced.
const (
	WarnCommentaryFailed       = "commentary unavailable; the log was saved without it"
	WarnCommentaryDisabled     = "commentary is not configured on this server"
	WarnCommentaryNeedsPicture = "commentary requires an attached image"
)

// LogStore persists observation logs. Implemented by repository.LogRepository.
type LogStore interface {
	Create(ctx context.Context, l *domain.ObservationLog, img *domain.Image) error
	GetByID(ctx context.Context, userID, id string) (*domain.ObservationLog, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.ObservationLog, error)
	GetImage(ctx context.Context, userID, id string) (*domain.Image, error)
	Delete(ctx context.Context, userID, id string) error
}

// Commentator produces a short text about an observation photo.
type Commentator interface {
	Describe(ctx context.Context, req commentary.Request) (string, error)
}

// CreateResult is a saved log plus an optional non-fatal warning.
type CreateResult struct {
	Log     *domain.ObservationLog `json:"log"`
	Warning string                 `json:"warning,omitempty"`
}

// LogService owns observation log rules.
type LogService struct {
	store       LogStore
	commentator Commentator
	timeout     time.Duration
	now         func() time.Time
}

// NewLogService creates a LogService. commentator may be nil, in which case
// commentary requests produce a warning.
func NewLogService(store LogStore, commentator Commentator, timeout time.Duration) *LogService {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &LogService{
		store:       store,
		commentator: commentator,
		timeout:     timeout,
		now:         time.Now,
	}
}

// Create validates req, stamps the moon phase at the observation instant and
// location, optionally asks for commentary, and persists the log.
func (s *LogService) Create(ctx context.Context, req domain.CreateLogRequest) (*CreateResult, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, domain.ErrMissingUser
	}
	if !req.Weather.Valid() {
		return nil, domain.ErrInvalidWeather
	}
	if err := moonsvc.ValidateLocation(req.Latitude, req.Longitude); err != nil {
		return nil, domain.ErrInvalidLocation
	}
	img, err := normalizeImage(req.Image)
	if err != nil {
		return nil, err
	}

	observedAt := req.ObservedAt
	if observedAt.IsZero() {
		observedAt = s.now()
	}

	snap := calc.ComputeMoonSnapshot(observedAt, req.Latitude, req.Longitude)
	l := &domain.ObservationLog{
		UserID:       req.UserID,
		ObservedAt:   observedAt,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		LocationName: strings.TrimSpace(req.LocationName),
		Weather:      req.Weather,
		Notes:        strings.TrimSpace(req.Notes),
		PhaseName:    snap.PhaseName,
		Phase:        snap.Phase,
		Illumination: snap.IlluminatedFraction,
	}

	result := &CreateResult{Log: l}
	if req.RequestCommentary {
		result.Warning = s.comment(ctx, l, img)
	}

	if err := s.store.Create(ctx, l, img); err != nil {
		return nil, err
	}
	return result, nil
}

// comment fills l.AICommentary and returns a warning when it could not.
func (s *LogService) comment(ctx context.Context, l *domain.ObservationLog, img *domain.Image) string {
	if s.commentator == nil {
		return WarnCommentaryDisabled
	}
	if img == nil {
		return WarnCommentaryNeedsPicture
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.commentator.Describe(cctx, commentary.Request{
		Image:        img.Data,
		ImageMime:    img.Mime,
		PhaseLabel:   l.PhaseName.Label(),
		Illumination: l.Illumination,
		ObservedAt:   l.ObservedAt,
		LocationName: l.LocationName,
		Weather:      string(l.Weather),
		Notes:        l.Notes,
	})
	if err != nil {
		logging.For(ctx, "logs.commentary").Warn("commentary failed",
			zap.Error(err),
			zap.Bool("timeout", errors.Is(err, context.DeadlineExceeded)))
		return WarnCommentaryFailed
	}

	l.AICommentary = text
	return ""
}

// Get returns one of the user's logs.
func (s *LogService) Get(ctx context.Context, userID, id string) (*domain.ObservationLog, error) {
	if userID == "" {
		return nil, domain.ErrMissingUser
	}
	return s.store.GetByID(ctx, userID, id)
}

// List returns a page of the user's logs, newest observation first.
func (s *LogService) List(ctx context.Context, userID string, limit, offset int) ([]domain.ObservationLog, error) {
	if userID == "" {
		return nil, domain.ErrMissingUser
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListByUser(ctx, userID, limit, offset)
}

// Image returns the photo attached to a log.
func (s *LogService) Image(ctx context.Context, userID, id string) (*domain.Image, error) {
	if userID == "" {
		return nil, domain.ErrMissingUser
	}
	return s.store.GetImage(ctx, userID, id)
}

// Delete removes one of the user's logs.
func (s *LogService) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return domain.ErrMissingUser
	}
	return s.store.Delete(ctx, userID, id)
}

// normalizeImage enforces the size cap and sniffs the content type. The
// declared mime is kept only when it agrees with the sniffed family.
func normalizeImage(img *domain.Image) (*domain.Image, error) {
	if img == nil || len(img.Data) == 0 {
		return nil, nil
	}
	if len(img.Data) > domain.MaxImageBytes {
		return nil, domain.ErrImageTooLarge
	}

	sniffed := http.DetectContentType(img.Data)
	if !strings.HasPrefix(sniffed, "image/") {
		return nil, domain.ErrInvalidImage
	}

	mime := strings.ToLower(strings.TrimSpace(img.Mime))
	if !strings.HasPrefix(mime, "image/") {
		mime = sniffed
	}
	return &domain.Image{Mime: mime, Data: img.Data}, nil
}
