// Package commentary asks Gemini to describe an observation photo in the
// context of the moon phase it was taken under.
package commentary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// ErrEmptyResponse is returned when the model answers with no text.
var ErrEmptyResponse = errors.New("commentary model returned no text")

const systemPrompt = `You are an amateur astronomy guide. Given a photo of the night sky and the
computed moon phase at the time it was taken, write two or three friendly
sentences: what is visible, whether it matches the expected phase, and one
tip for the next observation. Do not invent features that are not visible.`

// Request is what the model is told about one observation.
type Request struct {
	Image        []byte
	ImageMime    string
	PhaseLabel   string
	Illumination float64
	ObservedAt   time.Time
	LocationName string
	Weather      string
	Notes        string
}

type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client describes observations with a Gemini model.
type Client struct {
	models generator
	model  string
}

// NewClient creates a Gemini backed Client.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{models: client.Models, model: model}, nil
}

// Describe returns the model's commentary for req.
func (c *Client) Describe(ctx context.Context, req Request) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.4),
		MaxOutputTokens:   256,
	}

	resp, err := c.models.GenerateContent(ctx, c.model, BuildContents(req), config)
	if err != nil {
		return "", fmt.Errorf("generate commentary: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// BuildContents assembles the user turn: the photo, if any, then the
// observation context as text.
func BuildContents(req Request) []*genai.Content {
	parts := make([]*genai.Part, 0, 2)
	if len(req.Image) > 0 {
		parts = append(parts, genai.NewPartFromBytes(req.Image, req.ImageMime))
	}
	parts = append(parts, genai.NewPartFromText(Prompt(req)))
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

// Prompt renders the observation context.
func Prompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Moon phase: %s (%.0f%% illuminated).\n", req.PhaseLabel, req.Illumination*100)
	if !req.ObservedAt.IsZero() {
		fmt.Fprintf(&b, "Observed at: %s.\n", req.ObservedAt.Format(time.RFC1123))
	}
	if req.LocationName != "" {
		fmt.Fprintf(&b, "Location: %s.\n", req.LocationName)
	}
	if req.Weather != "" {
		fmt.Fprintf(&b, "Sky: %s.\n", strings.ReplaceAll(req.Weather, "_", " "))
	}
	if req.Notes != "" {
		fmt.Fprintf(&b, "Observer notes: %s\n", req.Notes)
	}
	return b.String()
}
