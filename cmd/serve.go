package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/adscout/internal/media"
	"github.com/sells-group/adscout/internal/metrics"
	"github.com/sells-group/adscout/internal/model"
	"github.com/sells-group/adscout/internal/resilience"
	"github.com/sells-group/adscout/internal/store"
)

const maxBodyBytes = 1 << 20

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the research and media HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initApp(ctx, "serve")
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		timeout := time.Duration(cfg.Server.RequestTimeoutSecs) * time.Second

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           buildMux(env, timeout, cfg.Server.AllowedOrigins),
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      timeout + 10*time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			zap.L().Info("starting server", zap.Int("port", port))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return eris.Wrap(err, "server listen")
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// buildMux wires the API routes. Each research request runs under
// requestTimeout.
func buildMux(env *appEnv, requestTimeout time.Duration, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Run-ID"},
		MaxAge:         300,
	}))
	r.Use(observeRequests)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "adscout API is running"})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		resp := map[string]any{
			"status":            "ok",
			"linkup_configured": env.Scraper != nil,
			"media_configured":  env.Media != nil,
		}
		if env.Media != nil {
			resp["media_breaker"] = env.Media.Breaker().State().String()
		}
		writeJSON(w, http.StatusOK, resp)
	})

	r.Post("/scrape", func(w http.ResponseWriter, r *http.Request) {
		body, ok := readValid(w, r, briefSchema)
		if !ok {
			return
		}
		var brief model.Brief
		if err := json.Unmarshal(body, &brief); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		data, runID, err := research(ctx, env, brief)
		if runID != "" {
			w.Header().Set("X-Run-ID", runID)
		}
		if err != nil {
			zap.L().Error("scrape request failed", zap.String("run_id", runID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Error during scraping: %v", err))
			return
		}
		writeJSON(w, http.StatusOK, data)
	})

	r.Post("/generate-media", func(w http.ResponseWriter, r *http.Request) {
		if env.Media == nil {
			writeError(w, http.StatusServiceUnavailable, "media generation is not configured")
			return
		}
		body, ok := readValid(w, r, mediaSchema)
		if !ok {
			return
		}
		var req model.MediaRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.MediaType == "" {
			req.MediaType = model.MediaImage
		}

		res, err := env.Media.Generate(r.Context(), req)
		metrics.ObserveMedia(string(req.MediaType), err == nil)
		if err != nil {
			writeJSON(w, mediaStatus(err), &model.MediaResult{
				Success: false,
				Message: fmt.Sprintf("Error generating media: %v", err),
				Type:    req.MediaType,
			})
			return
		}
		writeJSON(w, http.StatusOK, res)
	})

	r.Get("/runs", func(w http.ResponseWriter, r *http.Request) {
		if env.Store == nil {
			writeError(w, http.StatusServiceUnavailable, "run history is not configured")
			return
		}
		filter, err := parseRunFilter(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		runs, err := env.Store.ListRuns(r.Context(), filter)
		if err != nil {
			zap.L().Error("list runs failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to list runs")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
	})

	r.Get("/runs/{id}", func(w http.ResponseWriter, r *http.Request) {
		if env.Store == nil {
			writeError(w, http.StatusServiceUnavailable, "run history is not configured")
			return
		}
		run, err := env.Store.GetRun(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, store.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "run not found")
			return
		}
		if err != nil {
			zap.L().Error("get run failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to load run")
			return
		}
		writeJSON(w, http.StatusOK, run)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// observeRequests records request counts and latency per route pattern.
func observeRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		endpoint := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			endpoint = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.ObserveRequest(endpoint, status < http.StatusBadRequest, time.Since(start))
	})
}

// readValid reads the request body and checks it against schema. On
// failure it writes the 400 response and returns false.
func readValid(w http.ResponseWriter, r *http.Request, schema *gojsonschema.Schema) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	if err := validateJSON(schema, body); err != nil {
		var verr *validationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":   "invalid request",
				"details": verr.Details,
			})
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	return body, true
}

func mediaStatus(err error) int {
	switch {
	case errors.Is(err, media.ErrEmptyDescription),
		errors.Is(err, media.ErrUnsupportedType),
		errors.Is(err, media.ErrUnknownAspect):
		return http.StatusBadRequest
	case errors.Is(err, resilience.ErrCircuitOpen):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func parseRunFilter(r *http.Request) (store.RunFilter, error) {
	q := r.URL.Query()
	filter := store.RunFilter{
		Status: model.RunStatus(q.Get("status")),
		Type:   model.SubjectType(q.Get("type")),
	}
	for key, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, eris.Errorf("invalid %s: %q", key, v)
		}
		*dst = n
	}
	if v := q.Get("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, eris.Errorf("invalid since: %q", v)
		}
		filter.CreatedAfter = t
	}
	return filter, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("write response failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
