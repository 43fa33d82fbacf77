package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/adscout/internal/config"
	"github.com/sells-group/adscout/internal/model"
	"github.com/sells-group/adscout/internal/resilience"
	"github.com/sells-group/adscout/pkg/freepik"
	"github.com/sells-group/adscout/pkg/freepik/mocks"
)

func testGenerator(client freepik.Client) *Generator {
	return New(client, config.MediaConfig{BreakerThreshold: 2, BreakerResetSecs: 60},
		WithRetryConfig(resilience.RetryConfig{
			MaxAttempts:    3,
			InitialBackoff: time.Millisecond,
			MaxBackoff:     2 * time.Millisecond,
		}),
		WithPollOptions(freepik.WithPollInterval(time.Millisecond), freepik.WithPollCap(2*time.Millisecond)),
	)
}

func transient(code int) error {
	return resilience.NewTransientError(&freepik.APIError{StatusCode: code}, code)
}

func TestAspectRatio(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", freepik.AspectWidescreen, false},
		{"widescreen", freepik.AspectWidescreen, false},
		{"Square", freepik.AspectSquare, false},
		{"story", freepik.AspectStory, false},
		{"traditional", freepik.AspectTraditional, false},
		{"square_1_1", freepik.AspectSquare, false},
		{"panorama", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := AspectRatio(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownAspect)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t, "Phone X with titanium frame, modern style product advertisement",
		BuildPrompt("  Phone X with titanium frame ", ""))
	assert.Equal(t, "Phone X, retro style product advertisement", BuildPrompt("Phone X", "retro"))
}

func TestGenerate_ImageImmediate(t *testing.T) {
	client := mocks.NewMockClient(t)
	client.On("TextToImage", mock.Anything, mock.MatchedBy(func(r freepik.ImageRequest) bool {
		return r.AspectRatio == freepik.AspectSquare && r.Prompt == "Phone X, modern style product advertisement"
	})).Return(&freepik.Task{ID: "img-1", Status: freepik.StatusCompleted, Images: []freepik.Asset{{URL: "https://cdn/a.png"}}}, nil)

	res, err := testGenerator(client).Generate(context.Background(), model.MediaRequest{
		ProductDescription: "Phone X",
		Aspect:             "square",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "https://cdn/a.png", res.MediaURL)
	assert.Equal(t, model.MediaImage, res.Type)
	assert.Equal(t, "img-1", res.TaskID)
	assert.Equal(t, "Image generated successfully", res.Message)
}

func TestGenerate_ImagePolls(t *testing.T) {
	client := mocks.NewMockClient(t)
	client.On("TextToImage", mock.Anything, mock.Anything).
		Return(&freepik.Task{ID: "img-2", Status: freepik.StatusCreated}, nil).Once()
	client.On("GetTask", mock.Anything, "img-2").
		Return(&freepik.Task{ID: "img-2", Status: freepik.StatusInProgress}, nil).Once()
	client.On("GetTask", mock.Anything, "img-2").
		Return(&freepik.Task{ID: "img-2", Status: freepik.StatusCompleted, Images: []freepik.Asset{{URL: "https://cdn/b.png"}}}, nil).Once()

	res, err := testGenerator(client).Generate(context.Background(), model.MediaRequest{
		ProductDescription: "Phone X",
		MediaType:          model.MediaImage,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/b.png", res.MediaURL)
}

func TestGenerate_Video(t *testing.T) {
	client := mocks.NewMockClient(t)
	client.On("TextToImage", mock.Anything, mock.MatchedBy(func(r freepik.ImageRequest) bool {
		return r.AspectRatio == freepik.AspectWidescreen
	})).Return(&freepik.Task{ID: "img-3", Images: []freepik.Asset{{URL: "https://cdn/base.png"}}}, nil).Once()
	client.On("ImageToVideo", mock.Anything, mock.MatchedBy(func(r freepik.VideoRequest) bool {
		return r.Image == "https://cdn/base.png" && r.Duration == "5" && r.FramesPerSecond == 24
	})).Return(&freepik.Task{ID: "vid-1", Status: freepik.StatusCreated}, nil).Once()
	client.On("GetTask", mock.Anything, "vid-1").
		Return(&freepik.Task{ID: "vid-1", Status: freepik.StatusCompleted, Video: &freepik.Asset{URL: "https://cdn/v.mp4"}}, nil).Once()

	res, err := testGenerator(client).Generate(context.Background(), model.MediaRequest{
		ProductDescription: "Phone X",
		MediaType:          model.MediaVideo,
		Aspect:             "story",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/v.mp4", res.MediaURL)
	assert.Equal(t, model.MediaVideo, res.Type)
	assert.Equal(t, "vid-1", res.TaskID)
	assert.Equal(t, "Video generated successfully", res.Message)
}

func TestGenerate_RetriesTransient(t *testing.T) {
	client := mocks.NewMockClient(t)
	client.On("TextToImage", mock.Anything, mock.Anything).Return(nil, transient(503)).Twice()
	client.On("TextToImage", mock.Anything, mock.Anything).
		Return(&freepik.Task{ID: "img-4", Images: []freepik.Asset{{URL: "https://cdn/c.png"}}}, nil).Once()

	res, err := testGenerator(client).Generate(context.Background(), model.MediaRequest{ProductDescription: "Phone X"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/c.png", res.MediaURL)
}

func TestGenerate_PermanentErrorNotRetried(t *testing.T) {
	client := mocks.NewMockClient(t)
	client.On("TextToImage", mock.Anything, mock.Anything).
		Return(nil, &freepik.APIError{StatusCode: 401, Body: "bad key"}).Once()

	_, err := testGenerator(client).Generate(context.Background(), model.MediaRequest{ProductDescription: "Phone X"})
	require.Error(t, err)
	var apiErr *freepik.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 401, apiErr.StatusCode)
}

func TestGenerate_TaskFailed(t *testing.T) {
	client := mocks.NewMockClient(t)
	client.On("TextToImage", mock.Anything, mock.Anything).
		Return(&freepik.Task{ID: "img-5", Status: freepik.StatusCreated}, nil).Once()
	client.On("GetTask", mock.Anything, "img-5").
		Return(&freepik.Task{ID: "img-5", Status: freepik.StatusFailed}, nil).Once()

	_, err := testGenerator(client).Generate(context.Background(), model.MediaRequest{ProductDescription: "Phone X"})
	assert.ErrorIs(t, err, freepik.ErrTaskFailed)
}

func TestGenerate_BreakerOpens(t *testing.T) {
	client := mocks.NewMockClient(t)
	client.On("TextToImage", mock.Anything, mock.Anything).
		Return(nil, &freepik.APIError{StatusCode: 400}).Twice()

	g := testGenerator(client)
	req := model.MediaRequest{ProductDescription: "Phone X"}
	for range 2 {
		_, err := g.Generate(context.Background(), req)
		require.Error(t, err)
	}
	assert.Equal(t, resilience.CircuitOpen, g.Breaker().State())

	_, err := g.Generate(context.Background(), req)
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
}

func TestGenerate_InvalidRequests(t *testing.T) {
	g := testGenerator(mocks.NewMockClient(t))

	_, err := g.Generate(context.Background(), model.MediaRequest{ProductDescription: "  "})
	assert.ErrorIs(t, err, ErrEmptyDescription)

	_, err = g.Generate(context.Background(), model.MediaRequest{ProductDescription: "x", MediaType: "gif"})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = g.Generate(context.Background(), model.MediaRequest{ProductDescription: "x", Aspect: "circle"})
	assert.ErrorIs(t, err, ErrUnknownAspect)
}
