/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/smartcare/content"
	"github.com/suparena/smartcare/datastore"
	"github.com/suparena/smartcare/datastore/mock"
	"github.com/suparena/smartcare/fallback"
	"github.com/suparena/smartcare/language"
	"github.com/suparena/smartcare/normalize"
	"github.com/suparena/smartcare/storagemodels"
)

var testLangs = language.MustNewSet("ru", "ru", "en")

type testEnv struct {
	store  *mock.DataStore
	svc    *content.Service
	router http.Handler
}

func setupTestEnv(t *testing.T, store datastore.DocumentStore, debug bool) *testEnv {
	t.Helper()
	reg, ds, err := fallback.NewRegistry()
	require.NoError(t, err)

	svc := content.NewService(
		datastore.NewClient(store, 200*time.Millisecond),
		normalize.New(testLangs),
		content.WithFallbacks(reg),
		content.WithDefaultStage(ds.CurrentStage),
	)
	router := NewRouter(svc, language.NewResolver(testLangs), Options{
		Version: "1.0.0",
		Debug:   debug,
	})

	env := &testEnv{svc: svc, router: router}
	if m, ok := store.(*mock.DataStore); ok {
		env.store = m
	}
	return env
}

func seededStore() *mock.DataStore {
	return mock.New().
		Seed(content.CollectionTeam, map[string]storagemodels.Document{
			"b": {
				"ru": map[string]any{"name": "Сайдулло", "order": 2},
				"en": map[string]any{"name": "Saydullo", "order": 2},
			},
			"a": {
				"ru": map[string]any{"name": "Асадбек", "order": 1},
				"en": map[string]any{"name": "Asadbek", "order": 1},
			},
		}).
		Seed(content.CollectionTranslations, map[string]storagemodels.Document{
			"ru_hero":    {"title": "Умный уход"},
			"en_hero":    {"title": "Smart Care"},
			"en_roadmap": {"current_stage": "Beta"},
		})
}

func (e *testEnv) do(t *testing.T, method, target, body string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, fn := range mutate {
		fn(req)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	env := setupTestEnv(t, seededStore(), false)

	w := env.do(t, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[HealthResponse](t, w)
	assert.Equal(t, HealthResponse{Status: "healthy", Service: "smart_care", Version: "1.0.0", StoreAvailable: true}, resp)

	down := setupTestEnv(t, datastore.NewUnavailable(nil), false)
	resp = decode[HealthResponse](t, down.do(t, http.MethodGet, "/api/health", ""))
	assert.False(t, resp.StoreAvailable)
}

func TestGetTeam(t *testing.T) {
	env := setupTestEnv(t, seededStore(), false)

	w := env.do(t, http.MethodGet, "/api/team/en", "")
	require.Equal(t, http.StatusOK, w.Code)
	team := decode[[]map[string]any](t, w)
	require.Len(t, team, 2)
	assert.Equal(t, "Asadbek", team[0]["name"])
	assert.Equal(t, "a", team[0]["id"])

	t.Run("unsupported path language uses request language", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/team/fr", "", func(r *http.Request) {
			r.Header.Set("Accept-Language", "en-US,en;q=0.9")
		})
		require.Equal(t, http.StatusOK, w.Code)
		team := decode[[]map[string]any](t, w)
		assert.Equal(t, "Asadbek", team[0]["name"])
	})

	t.Run("default language", func(t *testing.T) {
		team := decode[[]map[string]any](t, env.do(t, http.MethodGet, "/api/team", ""))
		assert.Equal(t, "Асадбек", team[0]["name"])
	})

	t.Run("fallback when store is down", func(t *testing.T) {
		down := setupTestEnv(t, datastore.NewUnavailable(nil), false)
		w := down.do(t, http.MethodGet, "/api/team/en", "")
		require.Equal(t, http.StatusOK, w.Code)
		team := decode[[]map[string]any](t, w)
		require.Len(t, team, 2)
		assert.Equal(t, "Асадбек Фазлиддинов", team[0]["name"])
	})
}

func TestGetRoadmap(t *testing.T) {
	env := setupTestEnv(t, datastore.NewUnavailable(nil), false)

	w := env.do(t, http.MethodGet, "/api/roadmap/en", "")
	require.Equal(t, http.StatusOK, w.Code)
	roadmap := decode[map[string]any](t, w)
	assert.Equal(t, "MVP Development", roadmap["current_stage"])
	assert.Len(t, roadmap["milestones"], 4)

	live := setupTestEnv(t, seededStore(), false)
	roadmap = decode[map[string]any](t, live.do(t, http.MethodGet, "/api/roadmap/en", ""))
	assert.Equal(t, "Beta", roadmap["current_stage"])
}

func TestGetTranslations(t *testing.T) {
	env := setupTestEnv(t, seededStore(), false)

	w := env.do(t, http.MethodGet, "/api/translations/en", "")
	require.Equal(t, http.StatusOK, w.Code)
	bundle := decode[map[string]map[string]any](t, w)
	assert.Equal(t, "Smart Care", bundle["hero"]["title"])
	assert.NotContains(t, bundle, "navigation", "section fallbacks only cover an unavailable store")

	down := setupTestEnv(t, datastore.NewUnavailable(nil), false)
	bundle = decode[map[string]map[string]any](t, down.do(t, http.MethodGet, "/api/translations/en", ""))
	assert.Equal(t, "Home", bundle["navigation"]["home"])

	w = env.do(t, http.MethodGet, "/api/translations/fr", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unsupported language", decode[errorResponse](t, w).Error)
}

func TestGetDocument(t *testing.T) {
	env := setupTestEnv(t, seededStore(), false)

	w := env.do(t, http.MethodGet, "/api/documents/translations/en_hero?lang=en", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Smart Care", decode[map[string]any](t, w)["title"])

	w = env.do(t, http.MethodGet, "/api/documents/translations/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/documents/translations/en_hero?lang=de", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCollection(t *testing.T) {
	env := setupTestEnv(t, seededStore(), false)

	w := env.do(t, http.MethodGet, "/api/collections/team_members?lang=ru", "")
	require.Equal(t, http.StatusOK, w.Code)
	docs := decode[[]map[string]any](t, w)
	require.Len(t, docs, 2)
	assert.Equal(t, "Асадбек", docs[0]["name"])

	w = env.do(t, http.MethodGet, "/api/collections/team_members?lang=xx", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDebugOnlyRoutes(t *testing.T) {
	env := setupTestEnv(t, seededStore(), false)

	w := env.do(t, http.MethodGet, "/api/clear-cache", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "not allowed", decode[errorResponse](t, w).Error)

	w = env.do(t, http.MethodPut, "/api/admin/documents/translations/en_hero", `{"title":"x"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodDelete, "/api/admin/documents/translations/en_hero", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 3, env.store.Count(content.CollectionTranslations))
}

func TestClearCache(t *testing.T) {
	env := setupTestEnv(t, seededStore(), true)

	env.do(t, http.MethodGet, "/api/team/en", "")
	reads := env.store.Reads()
	env.do(t, http.MethodGet, "/api/team/en", "")
	assert.Equal(t, reads, env.store.Reads(), "second read is cached")

	w := env.do(t, http.MethodGet, "/api/clear-cache", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cache cleared", decode[statusResponse](t, w).Status)

	env.do(t, http.MethodGet, "/api/team/en", "")
	assert.Greater(t, env.store.Reads(), reads)
}

func TestAdminWrites(t *testing.T) {
	env := setupTestEnv(t, seededStore(), true)

	before := decode[map[string]any](t, env.do(t, http.MethodGet, "/api/documents/translations/en_hero?lang=en", ""))
	assert.Equal(t, "Smart Care", before["title"])

	w := env.do(t, http.MethodPut, "/api/admin/documents/translations/en_hero?merge=true", `{"subtitle":"Your assistant"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "saved", decode[statusResponse](t, w).Status)

	after := decode[map[string]any](t, env.do(t, http.MethodGet, "/api/documents/translations/en_hero?lang=en", ""))
	assert.Equal(t, "Smart Care", after["title"])
	assert.Equal(t, "Your assistant", after["subtitle"], "write invalidates the cache")

	t.Run("replace", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/admin/documents/translations/en_hero", `{"title":"New"}`)
		require.Equal(t, http.StatusOK, w.Code)
		doc := decode[map[string]any](t, env.do(t, http.MethodGet, "/api/documents/translations/en_hero?lang=en", ""))
		assert.Equal(t, map[string]any{"title": "New"}, doc)
	})

	t.Run("bad input", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/admin/documents/translations/en_hero", `{not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = env.do(t, http.MethodPut, "/api/admin/documents/translations/en_hero?merge=perhaps", `{"a":1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = env.do(t, http.MethodPut, "/api/admin/documents/translations/en_hero", `null`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, "/api/admin/documents/translations/en_hero", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "deleted", decode[statusResponse](t, w).Status)

		w = env.do(t, http.MethodDelete, "/api/admin/documents/translations/en_hero", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("store down", func(t *testing.T) {
		down := setupTestEnv(t, datastore.NewUnavailable(nil), true)
		w := down.do(t, http.MethodPut, "/api/admin/documents/translations/en_hero", `{"a":1}`)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
