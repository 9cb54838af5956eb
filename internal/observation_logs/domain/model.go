package domain

import (
	"time"

	moon "github.com/GoSim-25-26J-441/moonlog-backend/internal/moon_phase/domain"
)

// MaxImageBytes caps an attached photo.
const MaxImageBytes = 5 << 20

// Weather is the sky condition tag chosen by the observer.
type Weather string

const (
	WeatherClear        Weather = "clear"
	WeatherPartlyCloudy Weather = "partly_cloudy"
	WeatherCloudy       Weather = "cloudy"
	WeatherRain         Weather = "rain"
	WeatherFog          Weather = "fog"
	WeatherOther        Weather = "other"
)

// Valid reports whether w is a known tag.
func (w Weather) Valid() bool {
	switch w {
	case WeatherClear, WeatherPartlyCloudy, WeatherCloudy, WeatherRain, WeatherFog, WeatherOther:
		return true
	}
	return false
}

// ObservationLog is one saved observation. Logs are append-only: they are
// created and deleted, never edited.
type ObservationLog struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	ObservedAt   time.Time      `json:"observed_at"`
	Latitude     float64        `json:"lat"`
	Longitude    float64        `json:"lng"`
	LocationName string         `json:"location_name,omitempty"`
	Weather      Weather        `json:"weather"`
	Notes        string         `json:"notes,omitempty"`
	PhaseName    moon.PhaseName `json:"phase_name"`
	Phase        float64        `json:"phase"`
	Illumination float64        `json:"illuminated_fraction"`
	HasImage     bool           `json:"has_image"`
	ImageMime    string         `json:"image_mime,omitempty"`
	AICommentary string         `json:"ai_commentary,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Image is the photo attached to a log.
type Image struct {
	Mime string
	Data []byte
}

// CreateLogRequest represents data needed to create a new log
type CreateLogRequest struct {
	UserID            string
	ObservedAt        time.Time
	Latitude          float64
	Longitude         float64
	LocationName      string
	Weather           Weather
	Notes             string
	Image             *Image
	RequestCommentary bool
}
