package linkup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/adscout/internal/resilience"
)

func TestNewClient_MissingKey(t *testing.T) {
	c, err := NewClient("")
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantErr       string
		wantTransient bool
		wantAnswer    string
		wantSources   int
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body: `{
				"answer": "The Galaxy S24 costs $799.",
				"sources": [
					{"name": "GSMArena", "url": "https://gsmarena.com/s24", "snippet": "..."},
					{"name": "Samsung", "url": "https://samsung.com/s24", "snippet": "..."}
				]
			}`,
			wantAnswer:  "The Galaxy S24 costs $799.",
			wantSources: 2,
		},
		{
			name:        "missing_sources",
			status:      http.StatusOK,
			body:        `{"answer": "no citations"}`,
			wantAnswer:  "no citations",
			wantSources: 0,
		},
		{
			name:          "rate_limit",
			status:        http.StatusTooManyRequests,
			body:          `{"error": "rate limit exceeded"}`,
			wantErr:       "unexpected status 429",
			wantTransient: true,
		},
		{
			name:          "server_error",
			status:        http.StatusInternalServerError,
			body:          `{"error": "boom"}`,
			wantErr:       "unexpected status 500",
			wantTransient: true,
		},
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    `{"error": "bad key"}`,
			wantErr: "unexpected status 401",
		},
		{
			name:    "malformed_response",
			status:  http.StatusOK,
			body:    `{invalid json`,
			wantErr: "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/search", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, err := NewClient("test-key", WithBaseURL(srv.URL))
			require.NoError(t, err)

			resp, err := c.Search(context.Background(), SearchRequest{Query: "Galaxy S24 price"})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, tt.wantTransient, resilience.IsTransient(err))
				if tt.status != http.StatusOK {
					var apiErr *APIError
					require.True(t, errors.As(err, &apiErr))
					assert.Equal(t, tt.status, apiErr.StatusCode)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAnswer, resp.Answer)
			assert.Len(t, resp.Sources, tt.wantSources)
			assert.NotNil(t, resp.Sources)
		})
	}
}

func TestSearch_DefaultParameters(t *testing.T) {
	var got SearchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"answer":"ok","sources":[]}`))
	}))
	defer srv.Close()

	c, err := NewClient("test-key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.Search(context.Background(), SearchRequest{Query: "q"})
	require.NoError(t, err)

	assert.Equal(t, "q", got.Query)
	assert.Equal(t, DepthStandard, got.Depth)
	assert.Equal(t, OutputSourcedAnswer, got.OutputType)
	assert.False(t, got.IncludeImages)
}

func TestSearch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"answer":"late"}`))
	}))
	defer srv.Close()

	c, err := NewClient("test-key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = c.Search(ctx, SearchRequest{Query: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send request")
}

func TestWithHTTPClient(t *testing.T) {
	hc := &http.Client{Timeout: 5 * time.Second}
	c, err := NewClient("k", WithHTTPClient(hc), WithBaseURL(""))
	require.NoError(t, err)

	hcl := c.(*httpClient)
	assert.Same(t, hc, hcl.http)
	assert.Equal(t, defaultBaseURL, hcl.baseURL)
}

func TestResponseBodyIsBounded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(strings.Repeat("x", maxResponseBytes+1024)))
	}))
	defer srv.Close()

	c, err := NewClient("test-key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.Search(context.Background(), SearchRequest{Query: "Galaxy S24 price"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Len(t, apiErr.Body, maxResponseBytes)
}
