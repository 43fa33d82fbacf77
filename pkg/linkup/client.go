// Package linkup is a client for the Linkup search-and-answer API.
package linkup

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
	defaultBaseURL = "https://api.linkup.so/v1"

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 4 << 20

	// DepthStandard is the cheaper, faster search depth.
	DepthStandard = "standard"
	// DepthDeep runs an agentic multi-step search.
	DepthDeep = "deep"

	// OutputSourcedAnswer asks for an answer with its citations.
	OutputSourcedAnswer = "sourcedAnswer"
)

// ErrMissingAPIKey is returned by NewClient when no API key is supplied.
var ErrMissingAPIKey = eris.New("linkup: api key is required")

// Client performs searches against the Linkup API.
type Client interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

// SearchRequest is the request body for POST /search.
type SearchRequest struct {
	Query         string `json:"q"`
	Depth         string `json:"depth"`
	OutputType    string `json:"outputType"`
	IncludeImages bool   `json:"includeImages"`
}

// SearchResponse is the sourcedAnswer response from POST /search.
type SearchResponse struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// Source is a single citation.
type Source struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// APIError is returned for non-200 responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("linkup: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a Linkup API client.
func NewClient(apiKey string, opts ...Option) (Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *httpClient) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if req.Depth == "" {
		req.Depth = DepthStandard
	}
	if req.OutputType == "" {
		req.OutputType = OutputSourcedAnswer
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "linkup: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "linkup: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "linkup: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, eris.Wrap(err, "linkup: read response")
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(apiErr, resp.StatusCode)
		}
		return nil, apiErr
	}

	var result SearchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "linkup: unmarshal response")
	}
	if result.Sources == nil {
		result.Sources = []Source{}
	}

	return &result, nil
}
