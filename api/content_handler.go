/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/suparena/smartcare/content"
	"github.com/suparena/smartcare/errors"
	"github.com/suparena/smartcare/storagemodels"
)

// ContentHandler handles HTTP requests for site content
type ContentHandler struct {
	content *content.Service
	opts    Options
}

// NewContentHandler creates a new content handler
func NewContentHandler(svc *content.Service, opts Options) *ContentHandler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &ContentHandler{content: svc, opts: opts}
}

// Routes returns the routes for content
func (h *ContentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", h.Health)
	r.Get("/team", h.GetTeam)
	r.Get("/team/{lang}", h.GetTeam)
	r.Get("/roadmap", h.GetRoadmap)
	r.Get("/roadmap/{lang}", h.GetRoadmap)
	r.Get("/translations/{lang}", h.GetTranslations)
	r.Get("/documents/{collection}/{id}", h.GetDocument)
	r.Get("/collections/{collection}", h.GetCollection)

	r.With(debugOnly(h.opts.Debug)).Get("/clear-cache", h.ClearCache)

	r.Route("/admin", func(r chi.Router) {
		r.Use(debugOnly(h.opts.Debug))
		r.Put("/documents/{collection}/{id}", h.PutDocument)
		r.Delete("/documents/{collection}/{id}", h.DeleteDocument)
	})

	return r
}

// HealthResponse is the response body of the health endpoint
type HealthResponse struct {
	Status         string `json:"status"`
	Service        string `json:"service"`
	Version        string `json:"version"`
	StoreAvailable bool   `json:"store_available"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// Health reports liveness and whether the document store is configured
func (h *ContentHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthResponse{
		Status:         "healthy",
		Service:        h.opts.Service,
		Version:        h.opts.Version,
		StoreAvailable: h.content.Available(),
	})
}

// GetTeam returns the ordered team members
func (h *ContentHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.content.Team(r.Context(), h.pathLanguage(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, team)
}

// GetRoadmap returns the current stage with milestones and next steps
func (h *ContentHandler) GetRoadmap(w http.ResponseWriter, r *http.Request) {
	roadmap, err := h.content.Roadmap(r.Context(), h.pathLanguage(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, roadmap)
}

// GetTranslations returns the translation bundle of one language
func (h *ContentHandler) GetTranslations(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.content.GetTranslationBundle(r.Context(), chi.URLParam(r, "lang"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, bundle)
}

// GetDocument returns one resolved document
func (h *ContentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	collection, id := chi.URLParam(r, "collection"), chi.URLParam(r, "id")
	doc, err := h.content.GetDocument(r.Context(), collection, id, h.queryLanguage(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if doc == nil {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}
	render.JSON(w, r, doc)
}

// GetCollection returns every resolved document of a collection
func (h *ContentHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	docs, err := h.content.GetCollection(r.Context(), chi.URLParam(r, "collection"), h.queryLanguage(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, docs)
}

// ClearCache drops every cached entry
func (h *ContentHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	h.content.ClearCache()
	render.JSON(w, r, statusResponse{Status: "cache cleared"})
}

// PutDocument creates, replaces or (with ?merge=true) updates a document
func (h *ContentHandler) PutDocument(w http.ResponseWriter, r *http.Request) {
	var doc storagemodels.Document
	if err := render.DecodeJSON(r.Body, &doc); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid document: "+err.Error())
		return
	}

	merge := false
	if raw := r.URL.Query().Get("merge"); raw != "" {
		var err error
		if merge, err = strconv.ParseBool(raw); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid merge flag")
			return
		}
	}

	collection, id := chi.URLParam(r, "collection"), chi.URLParam(r, "id")
	if err := h.content.SetDocument(r.Context(), collection, id, doc, merge); err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, statusResponse{Status: "saved"})
}

// DeleteDocument removes a document
func (h *ContentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	collection, id := chi.URLParam(r, "collection"), chi.URLParam(r, "id")
	if err := h.content.DeleteDocument(r.Context(), collection, id); err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, statusResponse{Status: "deleted"})
}

// pathLanguage uses the {lang} segment when it names a supported language
// and the request language otherwise.
func (h *ContentHandler) pathLanguage(r *http.Request) string {
	if lang := chi.URLParam(r, "lang"); h.content.Languages().IsSupported(lang) {
		return lang
	}
	return h.requestLanguage(r)
}

// queryLanguage is the explicit ?lang= value, which must be supported, or
// the request language.
func (h *ContentHandler) queryLanguage(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return lang
	}
	return h.requestLanguage(r)
}

func (h *ContentHandler) requestLanguage(r *http.Request) string {
	if lang := RequestLanguage(r.Context()); lang != "" {
		return lang
	}
	return h.content.Languages().Default()
}

func (h *ContentHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.IsUnsupportedLanguage(err):
		writeError(w, r, http.StatusBadRequest, "Unsupported language")
	case errors.IsValidationError(err):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.IsNotFound(err):
		writeError(w, r, http.StatusNotFound, "not found")
	case errors.IsUnavailable(err):
		h.opts.Logger.Warn("request failed, store unavailable", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, r, http.StatusServiceUnavailable, "document store unavailable")
	default:
		h.opts.Logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: msg})
}
