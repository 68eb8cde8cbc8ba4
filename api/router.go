/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/suparena/smartcare/content"
	"github.com/suparena/smartcare/language"
)

// DefaultLanguageCookie stores the visitor's language preference.
const DefaultLanguageCookie = "smartcare_lang"

// Options configures the HTTP surface.
type Options struct {
	// Service is reported by the health endpoint.
	Service string
	Version string
	// Debug enables the cache and admin endpoints.
	Debug          bool
	LanguageCookie string
	// RequestTimeout bounds every request; zero disables the timeout.
	RequestTimeout time.Duration
	Logger         *zap.Logger
}

// NewRouter wires middleware and every route of the service.
func NewRouter(svc *content.Service, resolver *language.Resolver, opts Options) http.Handler {
	if opts.Service == "" {
		opts.Service = "smart_care"
	}
	if opts.LanguageCookie == "" {
		opts.LanguageCookie = DefaultLanguageCookie
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(opts.Logger))
	r.Use(middleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	langs := &languageHandler{resolver: resolver, content: svc, cookie: opts.LanguageCookie, logger: opts.Logger}
	r.Use(langs.Middleware)

	h := NewContentHandler(svc, opts)
	r.Mount("/api", h.Routes())
	r.Get("/set-language/{lang}", langs.SetLanguage)

	return r
}
