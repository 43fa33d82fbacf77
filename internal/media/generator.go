// Package media generates promotional images and videos for a product
// through the Freepik AI API.
package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/adscout/internal/config"
	"github.com/sells-group/adscout/internal/model"
	"github.com/sells-group/adscout/internal/resilience"
	"github.com/sells-group/adscout/pkg/freepik"
)

const defaultStyle = "modern"

var (
	// ErrEmptyDescription is returned for a request without a product
	// description.
	ErrEmptyDescription = eris.New("media: product description is required")
	// ErrUnsupportedType is returned for a media type other than image or
	// video.
	ErrUnsupportedType = eris.New("media: unsupported media type")
	// ErrUnknownAspect is returned for an aspect name with no API value.
	ErrUnknownAspect = eris.New("media: unknown aspect ratio")
)

var aspects = map[string]string{
	"widescreen":  freepik.AspectWidescreen,
	"square":      freepik.AspectSquare,
	"story":       freepik.AspectStory,
	"traditional": freepik.AspectTraditional,
}

// AspectRatio maps a friendly aspect name to the API value. Empty selects
// widescreen; API values pass through unchanged.
func AspectRatio(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return freepik.AspectWidescreen, nil
	}
	if v, ok := aspects[name]; ok {
		return v, nil
	}
	for _, v := range aspects {
		if v == name {
			return v, nil
		}
	}
	return "", eris.Wrapf(ErrUnknownAspect, "media: aspect %q", name)
}

// BuildPrompt renders the generation prompt for a product description.
func BuildPrompt(description, style string) string {
	style = strings.TrimSpace(style)
	if style == "" {
		style = defaultStyle
	}
	return fmt.Sprintf("%s, %s style product advertisement", strings.TrimSpace(description), style)
}

// Option configures a Generator.
type Option func(*Generator)

// WithRetryConfig overrides the retry policy for task creation.
func WithRetryConfig(cfg resilience.RetryConfig) Option {
	return func(g *Generator) { g.retry = cfg }
}

// WithPollOptions appends options passed to every task poll.
func WithPollOptions(opts ...freepik.PollOption) Option {
	return func(g *Generator) { g.poll = append(g.poll, opts...) }
}

// Generator creates images and videos. Task creation is retried on
// transient errors behind a circuit breaker shared by all requests.
type Generator struct {
	client       freepik.Client
	retry        resilience.RetryConfig
	breaker      *resilience.CircuitBreaker
	imageTimeout time.Duration
	videoTimeout time.Duration
	poll         []freepik.PollOption
}

// New creates a Generator.
func New(client freepik.Client, cfg config.MediaConfig, opts ...Option) *Generator {
	retry, breaker := resilience.FromMediaConfig(cfg)
	retry.OnRetry = resilience.RetryLogger("freepik", "create_task")
	breaker.OnStateChange = func(from, to resilience.CircuitState) {
		zap.L().Warn("media: circuit breaker state change",
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	}

	g := &Generator{
		client:       client,
		retry:        retry,
		breaker:      resilience.NewCircuitBreaker(breaker),
		imageTimeout: seconds(cfg.ImageTimeoutSecs, 45),
		videoTimeout: seconds(cfg.VideoTimeoutSecs, 150),
	}
	if cfg.PollIntervalMs > 0 {
		g.poll = append(g.poll, freepik.WithPollInterval(time.Duration(cfg.PollIntervalMs)*time.Millisecond))
	}
	if cfg.PollCapMs > 0 {
		g.poll = append(g.poll, freepik.WithPollCap(time.Duration(cfg.PollCapMs)*time.Millisecond))
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

func seconds(n, def int) time.Duration {
	if n <= 0 {
		n = def
	}
	return time.Duration(n) * time.Second
}

// Breaker exposes the circuit breaker state for health reporting.
func (g *Generator) Breaker() *resilience.CircuitBreaker {
	return g.breaker
}

// Generate produces the requested media and returns its URL.
func (g *Generator) Generate(ctx context.Context, req model.MediaRequest) (*model.MediaResult, error) {
	if strings.TrimSpace(req.ProductDescription) == "" {
		return nil, ErrEmptyDescription
	}
	if req.MediaType == "" {
		req.MediaType = model.MediaImage
	}
	aspect, err := AspectRatio(req.Aspect)
	if err != nil {
		return nil, err
	}
	prompt := BuildPrompt(req.ProductDescription, req.Style)

	log := zap.L().With(
		zap.String("media_type", string(req.MediaType)),
		zap.String("aspect", aspect),
	)
	start := time.Now()

	var task *freepik.Task
	switch req.MediaType {
	case model.MediaImage:
		ctx, cancel := context.WithTimeout(ctx, g.imageTimeout)
		defer cancel()
		task, err = g.image(ctx, prompt, aspect)
	case model.MediaVideo:
		ctx, cancel := context.WithTimeout(ctx, g.videoTimeout)
		defer cancel()
		task, err = g.video(ctx, prompt)
	default:
		return nil, eris.Wrapf(ErrUnsupportedType, "media: type %q", req.MediaType)
	}
	if err != nil {
		log.Error("media: generation failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return nil, err
	}

	url := task.ImageURL()
	if req.MediaType == model.MediaVideo {
		url = task.VideoURL()
	}
	log.Info("media: generated",
		zap.String("task_id", task.ID),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &model.MediaResult{
		Success:  true,
		MediaURL: url,
		Message:  fmt.Sprintf("%s generated successfully", cases.Title(language.English).String(string(req.MediaType))),
		Type:     req.MediaType,
		TaskID:   task.ID,
	}, nil
}

// image creates a text-to-image task and waits for its first image.
func (g *Generator) image(ctx context.Context, prompt, aspect string) (*freepik.Task, error) {
	task, err := g.create(ctx, func(ctx context.Context) (*freepik.Task, error) {
		return g.client.TextToImage(ctx, freepik.NewImageRequest(prompt, aspect))
	})
	if err != nil {
		return nil, eris.Wrap(err, "media: create image task")
	}
	if task.ImageURL() != "" {
		return task, nil
	}

	task, err = freepik.PollTask(ctx, g.client, task.ID, g.poll...)
	if err != nil {
		return nil, eris.Wrap(err, "media: wait for image")
	}
	if task.ImageURL() == "" {
		return nil, eris.Errorf("media: image task %s completed without an image", task.ID)
	}
	return task, nil
}

// video generates a widescreen base image and animates it.
func (g *Generator) video(ctx context.Context, prompt string) (*freepik.Task, error) {
	base, err := g.image(ctx, prompt, freepik.AspectWidescreen)
	if err != nil {
		return nil, eris.Wrap(err, "media: base image for video")
	}

	task, err := g.create(ctx, func(ctx context.Context) (*freepik.Task, error) {
		return g.client.ImageToVideo(ctx, freepik.NewVideoRequest(base.ImageURL(), prompt))
	})
	if err != nil {
		return nil, eris.Wrap(err, "media: create video task")
	}
	if task.VideoURL() != "" {
		return task, nil
	}

	task, err = freepik.PollTask(ctx, g.client, task.ID, g.poll...)
	if err != nil {
		return nil, eris.Wrap(err, "media: wait for video")
	}
	if task.VideoURL() == "" {
		return nil, eris.Errorf("media: video task %s completed without a video", task.ID)
	}
	return task, nil
}

func (g *Generator) create(ctx context.Context, fn func(ctx context.Context) (*freepik.Task, error)) (*freepik.Task, error) {
	return resilience.ExecuteVal(ctx, g.breaker, func(ctx context.Context) (*freepik.Task, error) {
		return resilience.DoVal(ctx, g.retry, fn)
	})
}

