// Package freepik is a client for the Freepik AI image and video generation
// API.
package freepik

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/adscout/internal/resilience"
)

const (
	defaultBaseURL = "https://api.freepik.com/v1"

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 4 << 20
)

// Task statuses reported by GET /ai/tasks/{id}.
const (
	StatusCreated    = "CREATED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

// Aspect ratios accepted by the generation endpoints.
const (
	AspectWidescreen  = "widescreen_16_9"
	AspectSquare      = "square_1_1"
	AspectStory       = "social_story_9_16"
	AspectTraditional = "traditional_3_4"
)

// ErrMissingAPIKey is returned by NewClient when no API key is supplied.
var ErrMissingAPIKey = eris.New("freepik: api key is required")

// Client defines the Freepik AI generation operations.
type Client interface {
	TextToImage(ctx context.Context, req ImageRequest) (*Task, error)
	ImageToVideo(ctx context.Context, req VideoRequest) (*Task, error)
	GetTask(ctx context.Context, id string) (*Task, error)
}

// ImageRequest is the body for POST /ai/text-to-image/imagen3.
type ImageRequest struct {
	Prompt           string  `json:"prompt"`
	NumImages        int     `json:"num_images"`
	AspectRatio      string  `json:"aspect_ratio"`
	Styling          Styling `json:"styling"`
	PersonGeneration string  `json:"person_generation"`
	SafetySettings   string  `json:"safety_settings"`
}

// Styling controls the look of a generated image.
type Styling struct {
	Style   string  `json:"style"`
	Effects Effects `json:"effects"`
}

// Effects are the image styling effects.
type Effects struct {
	Color     string `json:"color"`
	Lightning string `json:"lightning"`
	Framing   string `json:"framing"`
}

// NewImageRequest returns an ad-style photo request for a prompt.
func NewImageRequest(prompt, aspect string) ImageRequest {
	if aspect == "" {
		aspect = AspectWidescreen
	}
	return ImageRequest{
		Prompt:      prompt,
		NumImages:   1,
		AspectRatio: aspect,
		Styling: Styling{
			Style:   "photo",
			Effects: Effects{Color: "vibrant", Lightning: "studio", Framing: "closeup"},
		},
		PersonGeneration: "allow_all",
		SafetySettings:   "block_none",
	}
}

// VideoRequest is the body for POST /ai/image-to-video/seedance-pro-1080p.
type VideoRequest struct {
	Image           string `json:"image"`
	Prompt          string `json:"prompt"`
	Duration        string `json:"duration"`
	AspectRatio     string `json:"aspect_ratio"`
	FramesPerSecond int    `json:"frames_per_second"`
}

// NewVideoRequest returns a five second 24fps widescreen request animating
// image.
func NewVideoRequest(image, prompt string) VideoRequest {
	return VideoRequest{
		Image:           image,
		Prompt:          prompt,
		Duration:        "5",
		AspectRatio:     AspectWidescreen,
		FramesPerSecond: 24,
	}
}

// Task is a generation task. Creation endpoints may return a task that is
// already complete.
type Task struct {
	ID     string  `json:"id"`
	Status string  `json:"status"`
	Images []Asset `json:"images"`
	Video  *Asset  `json:"video"`
}

// Asset is a generated file.
type Asset struct {
	URL string `json:"url"`
}

// ImageURL returns the first generated image URL, if any.
func (t *Task) ImageURL() string {
	if t == nil || len(t.Images) == 0 {
		return ""
	}
	return t.Images[0].URL
}

// VideoURL returns the generated video URL, if any.
func (t *Task) VideoURL() string {
	if t == nil || t.Video == nil {
		return ""
	}
	return t.Video.URL
}

type envelope struct {
	Data Task `json:"data"`
}

// APIError is returned when Freepik responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("freepik: HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new Freepik client.
func NewClient(apiKey string, opts ...Option) (Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 120 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *httpClient) TextToImage(ctx context.Context, req ImageRequest) (*Task, error) {
	var resp envelope
	if err := c.do(ctx, http.MethodPost, "/ai/text-to-image/imagen3", req, &resp); err != nil {
		return nil, eris.Wrap(err, "freepik: text to image")
	}
	return &resp.Data, nil
}

func (c *httpClient) ImageToVideo(ctx context.Context, req VideoRequest) (*Task, error) {
	var resp envelope
	if err := c.do(ctx, http.MethodPost, "/ai/image-to-video/seedance-pro-1080p", req, &resp); err != nil {
		return nil, eris.Wrap(err, "freepik: image to video")
	}
	return &resp.Data, nil
}

func (c *httpClient) GetTask(ctx context.Context, id string) (*Task, error) {
	var resp envelope
	if err := c.do(ctx, http.MethodGet, "/ai/tasks/"+id, nil, &resp); err != nil {
		return nil, eris.Wrapf(err, "freepik: get task %s", id)
	}
	if resp.Data.ID == "" {
		resp.Data.ID = id
	}
	return &resp.Data, nil
}

func (c *httpClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return eris.Wrap(err, "marshal request")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("x-freepik-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return eris.Wrap(err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return resilience.NewTransientError(apiErr, resp.StatusCode)
		}
		return apiErr
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return eris.Wrap(err, "unmarshal response")
	}
	return nil
}
