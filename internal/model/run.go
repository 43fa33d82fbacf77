package model

import "time"

// RunStatus represents the current state of a research run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one recorded research request.
type Run struct {
	ID        string       `json:"id"`
	Subject   Subject      `json:"subject"`
	Status    RunStatus    `json:"status"`
	Result    *ScrapedData `json:"result,omitempty"`
	Stats     RunStats     `json:"stats"`
	Error     string       `json:"error,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// RunStats captures per-run counters.
type RunStats struct {
	Queries         int         `json:"queries"`
	FailedQueries   int         `json:"failed_queries"`
	FallbackQueries int         `json:"fallback_queries"`
	Quality         QualityTier `json:"quality,omitempty"`
	DurationMs      int64       `json:"duration_ms"`
	Cost            float64     `json:"cost"`
}

// MediaType selects what the media generator produces.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// MediaRequest asks for a promotional image or video.
type MediaRequest struct {
	ProductDescription string    `json:"product_description"`
	MediaType          MediaType `json:"media_type"`
	Style              string    `json:"style,omitempty"`
	Aspect             string    `json:"aspect,omitempty"`
}

// MediaResult is the outcome of a media generation request.
type MediaResult struct {
	Success  bool      `json:"success"`
	MediaURL string    `json:"media_url,omitempty"`
	Message  string    `json:"message"`
	Type     MediaType `json:"media_type"`
	TaskID   string    `json:"task_id,omitempty"`
}
