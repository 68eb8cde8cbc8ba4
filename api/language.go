/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/suparena/smartcare/content"
	"github.com/suparena/smartcare/language"
)

const cookieMaxAge = 365 * 24 * time.Hour

type languageKey struct{}

// RequestLanguage returns the language resolved for the request, or "" when
// the language middleware did not run.
func RequestLanguage(ctx context.Context) string {
	lang, _ := ctx.Value(languageKey{}).(string)
	return lang
}

type languageHandler struct {
	resolver *language.Resolver
	content  *content.Service
	cookie   string
	logger   *zap.Logger
}

// Middleware resolves the request language from the lang query parameter,
// the preference cookie and Accept-Language. A query override that differs
// from the stored choice is persisted and counts as a language change.
func (h *languageHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var stored string
		if c, err := r.Cookie(h.cookie); err == nil {
			stored = c.Value
		}

		res := h.resolver.Resolve(r.URL.Query().Get("lang"), stored, r.Header.Get("Accept-Language"))
		if res.Persist && res.Code != stored {
			h.persist(w, res.Code)
			if h.content != nil {
				h.content.LanguageChanged()
			}
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), languageKey{}, res.Code)))
	})
}

// SetLanguage stores an explicit language choice and redirects home.
// Unsupported codes are ignored.
func (h *languageHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")
	if set := h.resolver.Set(); set.IsSupported(lang) {
		code := set.Or(lang)
		h.persist(w, code)
		h.content.LanguageChanged()
		h.logger.Info("language changed", zap.String("language", code))
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *languageHandler) persist(w http.ResponseWriter, code string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie,
		Value:    code,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
