/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package content

import (
	"time"

	"go.uber.org/zap"

	"github.com/suparena/smartcare/cache"
	"github.com/suparena/smartcare/datastore"
	"github.com/suparena/smartcare/errors"
	"github.com/suparena/smartcare/fallback"
	"github.com/suparena/smartcare/language"
	"github.com/suparena/smartcare/normalize"
	"github.com/suparena/smartcare/registry"
	"github.com/suparena/smartcare/storagemodels"
)

// Collections read by the site.
const (
	CollectionTranslations = "translations"
	CollectionTeam         = "team_members"
	CollectionMilestones   = "roadmap_milestones"
	CollectionNextSteps    = "roadmap_next_steps"
)

// DefaultTTL is how long resolved content is memoized.
const DefaultTTL = time.Hour

// Sections lists the translation bundle sections, in display order.
var Sections = []string{
	"navigation", "hero", "problem", "solution", "sectors", "team_section",
	"why_us", "roadmap", "implementation", "meta", "footer", "errors",
}

// Bundle maps a section name to its resolved translation document.
type Bundle map[string]storagemodels.Document

// Roadmap is the roadmap block of the site.
type Roadmap struct {
	CurrentStage string                   `json:"current_stage"`
	Milestones   []storagemodels.Document `json:"milestones"`
	NextSteps    []storagemodels.Document `json:"next_steps"`
}

// Service is the content resolution facade. Reads never fail because of the
// store: unavailability is logged and local fallback data is served instead.
// Returned documents are shared with the cache and must not be mutated.
type Service struct {
	client       *datastore.Client
	normalizer   *normalize.Normalizer
	cache        *cache.Cache
	fallbacks    *registry.Registry
	logger       *zap.Logger
	ttl          time.Duration
	currentStage string
}

// Option configures a Service.
type Option func(*Service)

// WithCache sets the cache. Services sharing a cache share invalidation.
func WithCache(c *cache.Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// WithFallbacks sets the fallback registry.
func WithFallbacks(reg *registry.Registry) Option {
	return func(s *Service) {
		s.fallbacks = reg
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTTL sets the memoization TTL. A non-positive TTL disables caching.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.ttl = ttl
	}
}

// WithDefaultStage sets the current stage used when the store names none.
func WithDefaultStage(stage string) Option {
	return func(s *Service) {
		if stage != "" {
			s.currentStage = stage
		}
	}
}

// NewService builds the facade over client.
func NewService(client *datastore.Client, normalizer *normalize.Normalizer, opts ...Option) *Service {
	s := &Service{
		client:       client,
		normalizer:   normalizer,
		cache:        cache.New(),
		fallbacks:    registry.New(),
		logger:       zap.NewNop(),
		ttl:          DefaultTTL,
		currentStage: fallback.DefaultCurrentStage,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Languages returns the supported language set.
func (s *Service) Languages() language.Set {
	return s.normalizer.Languages()
}

// Available reports whether a real document store is attached.
func (s *Service) Available() bool {
	return s.client.Available()
}

// ClearCache drops every memoized result.
func (s *Service) ClearCache() {
	s.cache.InvalidateAll()
	s.logger.Info("content cache cleared")
}

// LanguageChanged is called when a visitor switches language.
func (s *Service) LanguageChanged() {
	s.cache.InvalidateAll()
}

func (s *Service) checkLanguage(lang string) error {
	if !s.Languages().IsSupported(lang) {
		return errors.NewUnsupportedLanguageError(lang)
	}
	return nil
}

func (s *Service) warnUnavailable(op string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("op", op), zap.Error(err))
	s.logger.Warn("document store unavailable, serving fallback", fields...)
}
