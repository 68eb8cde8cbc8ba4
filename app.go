/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package smartcare

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/suparena/smartcare/api"
	"github.com/suparena/smartcare/config"
	"github.com/suparena/smartcare/content"
	"github.com/suparena/smartcare/datastore"
	"github.com/suparena/smartcare/fallback"
	"github.com/suparena/smartcare/language"
	"github.com/suparena/smartcare/normalize"
)

// App holds the wired components of a running service.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Languages language.Set
	Client    *datastore.Client
	Content   *content.Service
	Resolver  *language.Resolver
}

// NewApp wires the service from cfg. A store that cannot be opened is
// replaced by an unavailable one so the site keeps serving fallback
// content.
func NewApp(ctx context.Context, cfg *config.Config, backends *Backends, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if backends == nil {
		backends = DefaultBackends()
	}

	langs, err := cfg.LanguageSet()
	if err != nil {
		return nil, err
	}

	store, err := backends.Open(ctx, cfg.Store.Backend, BackendOptions{
		Store:     cfg.Store,
		Languages: langs,
		Logger:    logger,
	})
	if err != nil {
		logger.Warn("document store not available, using local data",
			zap.String("backend", cfg.Store.Backend), zap.Error(err))
		store = datastore.NewUnavailable(err)
	}

	reg, dataset, err := fallback.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load fallback content: %w", err)
	}

	client := datastore.NewClient(store, cfg.Store.Timeout)
	svc := content.NewService(client, normalize.New(langs),
		content.WithFallbacks(reg),
		content.WithDefaultStage(dataset.CurrentStage),
		content.WithTTL(cfg.Cache.TTL),
		content.WithLogger(logger.Named("content")),
	)

	logger.Info("service initialized",
		zap.String("env", cfg.App.Env),
		zap.String("backend", cfg.Store.Backend),
		zap.Bool("store_available", client.Available()),
		zap.Strings("languages", langs.Supported()))

	return &App{
		Config:    cfg,
		Logger:    logger,
		Languages: langs,
		Client:    client,
		Content:   svc,
		Resolver:  language.NewResolver(langs),
	}, nil
}

// Version is the configured version, or the build version.
func (a *App) Version() string {
	if a.Config.App.Version != "" {
		return a.Config.App.Version
	}
	return Version
}

// Handler returns the HTTP handler of the service.
func (a *App) Handler() http.Handler {
	return api.NewRouter(a.Content, a.Resolver, api.Options{
		Service:        a.Config.App.Name,
		Version:        a.Version(),
		Debug:          a.Config.Debug(),
		LanguageCookie: a.Config.HTTP.LanguageCookie,
		RequestTimeout: a.Config.HTTP.RequestTimeout,
		Logger:         a.Logger.Named("http"),
	})
}
