package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/adscout/internal/classify"
	"github.com/sells-group/adscout/internal/cost"
	"github.com/sells-group/adscout/internal/media"
	"github.com/sells-group/adscout/internal/metrics"
	"github.com/sells-group/adscout/internal/pipeline"
	"github.com/sells-group/adscout/internal/store"
	"github.com/sells-group/adscout/pkg/freepik"
	"github.com/sells-group/adscout/pkg/linkup"
)

// appEnv holds the initialized clients and services used by the scrape,
// media and serve commands.
type appEnv struct {
	Store      store.Store // may be nil
	Scraper    *pipeline.Scraper
	Classifier *classify.Classifier
	Media      *media.Generator // nil when Freepik is not configured
	Costs      *cost.Calculator
	Depth      string
}

// Close releases resources held by the environment.
func (e *appEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initApp validates the config for mode and builds the environment.
// Callers should defer env.Close().
func initApp(ctx context.Context, mode string) (*appEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	env := &appEnv{
		Costs: cost.NewCalculator(cost.RatesFromConfig(cfg.Pricing)),
	}

	if mode == "scrape" || mode == "serve" {
		classifier, err := initClassifier()
		if err != nil {
			return nil, err
		}
		env.Classifier = classifier

		searcher, err := initSearcher()
		if err != nil {
			return nil, err
		}
		scraper, err := initScraper(searcher)
		if err != nil {
			return nil, err
		}
		env.Scraper = scraper
		env.Depth = searcher.Depth()
	}

	if cfg.Freepik.Key != "" {
		client, err := freepik.NewClient(cfg.Freepik.Key, freepik.WithBaseURL(cfg.Freepik.BaseURL))
		if err != nil {
			return nil, eris.Wrap(err, "init freepik")
		}
		env.Media = media.New(client, cfg.Media)
	}

	if mode != "media" {
		st, err := initStore(ctx)
		if err != nil {
			return nil, err
		}
		if err := st.Migrate(ctx); err != nil {
			_ = st.Close()
			return nil, eris.Wrap(err, "migrate store")
		}
		env.Store = st
	}

	zap.L().Debug("app initialized",
		zap.String("mode", mode),
		zap.Bool("media_configured", env.Media != nil),
		zap.String("store", cfg.Store.Driver),
	)
	return env, nil
}

func initClassifier() (*classify.Classifier, error) {
	if cfg.Classify.RulesPath == "" {
		return classify.New(nil), nil
	}
	rules, err := classify.LoadRules(cfg.Classify.RulesPath)
	if err != nil {
		return nil, err
	}
	return classify.New(rules), nil
}

func initSearcher() (*pipeline.LinkupSearcher, error) {
	client, err := linkup.NewClient(cfg.Linkup.Key,
		linkup.WithBaseURL(cfg.Linkup.BaseURL),
		linkup.WithTimeout(time.Duration(cfg.Search.TimeoutSecs)*time.Second),
	)
	if err != nil {
		return nil, eris.Wrap(err, "init linkup")
	}
	return pipeline.NewLinkupSearcher(client), nil
}

func initScraper(searcher pipeline.Searcher) (*pipeline.Scraper, error) {
	policy := pipeline.SingleWorker
	if cfg.Search.RequestsPerSecond > 0 {
		policy.Limiter = rate.NewLimiter(rate.Limit(cfg.Search.RequestsPerSecond), 1)
	}

	return pipeline.New(searcher,
		pipeline.WithPolicy(policy),
		pipeline.WithObserver(metrics.ObserveQuery),
	)
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "adscout.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, cfg.Store.MaxConns)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}
