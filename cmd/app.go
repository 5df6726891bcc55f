package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hireloop/matchwise/internal/access"
	"github.com/hireloop/matchwise/internal/adapters/postgres"
	"github.com/hireloop/matchwise/internal/adapters/rediscache"
	"github.com/hireloop/matchwise/internal/ai/gemini"
	"github.com/hireloop/matchwise/internal/discovery"
	"github.com/hireloop/matchwise/internal/matching"
	"github.com/hireloop/matchwise/internal/ports"
	"github.com/hireloop/matchwise/internal/secrets"
)

// application holds everything a command needs after wiring.
type application struct {
	service *discovery.Service
	engine  *matching.Engine
	logger  *zap.Logger

	closers []func()
}

func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// newApplication wires the adapters, the engine and the discovery service
// from the configuration. The returned application must be closed.
func newApplication(ctx context.Context, config *Config, logger *zap.Logger) (*application, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	store, err := connectStore(ctx, config)
	if err != nil {
		return nil, err
	}

	app := &application{logger: logger}
	app.closers = append(app.closers, store.Close)

	var cache ports.PageCache
	if config.Redis != nil && config.Redis.URL != "" {
		client, err := rediscache.NewClient(ctx, config.Redis.URL)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		pageCache := rediscache.NewPageCache(client)
		app.closers = append(app.closers, func() { _ = pageCache.Close() })
		cache = pageCache
	} else {
		logger.Info("no redis configured, result caching disabled")
	}

	strategies, err := buildStrategies(ctx, config, logger)
	if err != nil {
		app.Close()
		return nil, err
	}

	gate := matching.NewEligibilityGate()
	if config.Matching != nil {
		if config.Matching.SalaryFilter != nil {
			gate.SalaryRule = *config.Matching.SalaryFilter
		}
		if config.Matching.ExperienceFilter != nil {
			gate.ExperienceRule = *config.Matching.ExperienceFilter
		}
	}

	var threshold float64
	var concurrency int
	if config.Matching != nil {
		threshold = config.Matching.MinimumMatchScore
		concurrency = config.Matching.Concurrency
	}

	app.engine = matching.NewEngine(store, gate, strategies, threshold, logger)

	svcCfg := discovery.Config{Concurrency: concurrency}
	if config.Redis != nil {
		svcCfg.CacheTTL = config.Redis.CacheTTL
	}

	app.service = discovery.NewService(discovery.Deps{
		Profiles:     store,
		Jobs:         store,
		Candidates:   store,
		Applications: store,
		Engine:       app.engine,
		Access:       access.NewGate(store, logger),
		Cache:        cache,
		Logger:       logger,
	}, svcCfg)

	return app, nil
}

func connectStore(ctx context.Context, config *Config) (*postgres.Store, error) {
	if config.Database == nil {
		return nil, errors.New("database configuration is required")
	}

	url, err := secrets.Load(secrets.Source{
		Name:  "database url",
		Value: config.Database.URL,
		File:  config.Database.URLFile,
	})
	if err != nil {
		return nil, fmt.Errorf("loading database url: %w", err)
	}

	store, err := postgres.Connect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return store, nil
}

// buildStrategies assembles the ordered scoring list: the remote strategy
// first when AI is enabled, the deterministic rules always last.
func buildStrategies(ctx context.Context, config *Config, logger *zap.Logger) ([]matching.Strategy, error) {
	rules := matching.NewRuleBasedStrategy()

	if config.AI == nil || !config.AI.Enabled {
		return []matching.Strategy{rules}, nil
	}

	provider := strings.ToLower(strings.TrimSpace(config.AI.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", config.AI.Provider)
	}

	geminiCfg := config.AI.Gemini
	if geminiCfg == nil {
		geminiCfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: geminiCfg.APIKey,
		File:  geminiCfg.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("loading gemini api key: %w", err)
	}

	backend, err := gemini.New(ctx, gemini.Config{
		APIKey:  apiKey,
		Model:   geminiCfg.Model,
		Timeout: geminiCfg.Timeout,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	remote := matching.NewRemoteStrategy(backend, logger, geminiCfg.MaxLogLength)
	return []matching.Strategy{remote, rules}, nil
}
