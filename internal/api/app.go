package api

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/axiome/firstprinciples/internal/config"
	"github.com/axiome/firstprinciples/pkg/buildinfo"
	"github.com/axiome/firstprinciples/pkg/cache"
	"github.com/axiome/firstprinciples/pkg/concepts"
	"github.com/axiome/firstprinciples/pkg/observability"
	"github.com/axiome/firstprinciples/pkg/pipeline"
	"github.com/axiome/firstprinciples/pkg/store"
)

// App is a fully wired server: backends chosen from the configuration and
// the router on top of them.
type App struct {
	Handler http.Handler
	Cache   cache.Cache
	Store   store.Store
	Metrics *Metrics
	Logger  *log.Logger
}

// NewApp connects the configured backends. Redis, MongoDB and Gemini are
// optional; each falls back to an in-process implementation when unset.
// With metrics enabled the app's collectors become the process-wide
// observability hooks until Close.
func NewApp(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.Default()
	}
	app := &App{Logger: logger}

	var err error
	if cfg.Redis.URL != "" {
		if app.Cache, err = cache.NewRedisCache(ctx, cfg.Redis.URL); err != nil {
			return nil, err
		}
		logger.Info("using redis cache")
	} else {
		if app.Cache, err = cache.NewMemoryCache(cfg.Cache.MemoryEntries); err != nil {
			return nil, err
		}
		logger.Info("using in-memory cache (no redis url)", "entries", cfg.Cache.MemoryEntries)
	}

	if cfg.Mongo.URI != "" {
		if app.Store, err = store.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database); err != nil {
			_ = app.Close()
			return nil, err
		}
		logger.Info("using mongodb document store")
	} else {
		app.Store = store.NewMemoryStore()
		logger.Info("documents kept in memory (no mongo uri)")
	}

	if cfg.Server.Metrics {
		app.Metrics = NewMetrics()
		app.Metrics.Install()
	}

	keyer := cache.NewDefaultKeyer()
	if cfg.Redis.KeyPrefix != "" {
		keyer = cache.NewScopedKeyer(keyer, cfg.Redis.KeyPrefix)
	}
	var explainer concepts.Explainer = concepts.EchoExplainer{}
	if cfg.Gemini.APIKey != "" {
		g, err := concepts.NewGeminiExplainer(ctx, concepts.GeminiConfig{
			APIKey:            cfg.Gemini.APIKey,
			Model:             cfg.Gemini.Model,
			RequestsPerMinute: cfg.Gemini.RequestsPerMinute,
		})
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		logger.Info("using gemini explainer", "explainer", g)
		explainer = concepts.NewCachedExplainer(g, app.Cache, keyer, cfg.Cache.ConceptTTL)
	}

	runner := pipeline.NewRunner(app.Cache, keyer, logger)
	if cfg.Cache.ArtifactTTL > 0 {
		runner.ArtifactTTL = cfg.Cache.ArtifactTTL
	}
	svc := concepts.NewService(explainer, logger, cfg.Server.RequestTimeout)

	app.Handler = NewRouter(NewHandlers(runner, svc, app.Store, logger), RouterOptions{
		CORSOrigins:    cfg.Server.CORSOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
		Metrics:        app.Metrics,
	})
	logger.Info("configured "+Title, "version", buildinfo.Get().Version, "origins", cfg.Server.CORSOrigins)
	return app, nil
}

// Close releases backend connections.
func (a *App) Close() error {
	if a.Metrics != nil {
		observability.Reset()
	}
	var errs []error
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	return stderrors.Join(errs...)
}
