/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package normalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/suparena/smartcare/language"
	"github.com/suparena/smartcare/storagemodels"
)

func newTestNormalizer() *Normalizer {
	return New(language.MustNewSet("ru", "ru", "en"))
}

func TestDetect(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name string
		raw  storagemodels.Document
		want Shape
	}{
		{"split", storagemodels.Document{"ru": map[string]any{}, "en": map[string]any{}}, ShapeSplit},
		{"split with id", storagemodels.Document{"id": "m1", "ru": map[string]any{}, "en": map[string]any{}}, ShapeSplit},
		{"split missing one language", storagemodels.Document{"ru": map[string]any{"title": "x"}}, ShapeFlat},
		{"split with extra key", storagemodels.Document{"ru": map[string]any{"title": "x"}, "en": map[string]any{"en": "y"}, "order": 1}, ShapePerField},
		{"per field", storagemodels.Document{"status": "completed", "title": map[string]any{"ru": "Тест"}}, ShapePerField},
		{"flat", storagemodels.Document{"title": "Тест", "links": map[string]any{"github": "#"}}, ShapeFlat},
		{"empty", storagemodels.Document{}, ShapeFlat},
		{"nil", nil, ShapeFlat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Detect(tt.raw))
		})
	}
}

func TestNormalizeSplitExample(t *testing.T) {
	n := newTestNormalizer()
	raw := storagemodels.Document{
		"id": "m1",
		"ru": map[string]any{"title": "Тест", "status": "completed"},
		"en": map[string]any{"title": "Test", "status": "completed"},
	}

	got := n.Normalize(raw, "en")
	want := storagemodels.Document{"title": "Test", "status": "completed", "id": "m1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizePerFieldExample(t *testing.T) {
	n := newTestNormalizer()
	raw := storagemodels.Document{"status": "completed", "title": map[string]any{"ru": "Тест"}}

	got := n.Normalize(raw, "en")
	want := storagemodels.Document{"status": "completed", "title": "Тест"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeSplit(t *testing.T) {
	n := newTestNormalizer()
	ru := map[string]any{"title": "Тест"}
	en := map[string]any{"title": "Test"}
	raw := storagemodels.Document{"ru": ru, "en": en}

	assert.Equal(t, storagemodels.Document{"title": "Тест"}, n.Normalize(raw, "ru"))
	assert.Equal(t, storagemodels.Document{"title": "Test"}, n.Normalize(raw, "en"))
	assert.Equal(t, storagemodels.Document{"title": "Тест"}, n.Normalize(raw, "fr"), "unsupported language uses default")

	t.Run("non-mapping target degrades to default", func(t *testing.T) {
		broken := storagemodels.Document{"ru": ru, "en": "oops"}
		assert.Equal(t, storagemodels.Document{"title": "Тест"}, n.Normalize(broken, "en"))
	})

	t.Run("no usable language degrades to empty", func(t *testing.T) {
		broken := storagemodels.Document{"id": "x", "ru": 1, "en": nil}
		assert.Equal(t, storagemodels.Document{"id": "x"}, n.Normalize(broken, "en"))
	})

	t.Run("result does not alias input", func(t *testing.T) {
		got := n.Normalize(raw, "ru")
		got["title"] = "changed"
		assert.Equal(t, "Тест", ru["title"])
	})
}

func TestNormalizePerField(t *testing.T) {
	n := newTestNormalizer()
	raw := storagemodels.Document{
		"title":  map[string]any{"ru": "X", "en": "Y"},
		"note":   map[string]any{"ru": "только ru"},
		"empty":  map[string]any{"en": "only en"},
		"links":  map[string]any{"github": "#"},
		"order":  2,
		"status": "completed",
	}

	gotEN := n.Normalize(raw, "en")
	wantEN := storagemodels.Document{
		"title":  "Y",
		"note":   "только ru",
		"empty":  "only en",
		"links":  map[string]any{"github": "#"},
		"order":  2,
		"status": "completed",
	}
	if diff := cmp.Diff(wantEN, gotEN); diff != "" {
		t.Errorf("en mismatch (-want +got):\n%s", diff)
	}

	gotRU := n.Normalize(raw, "ru")
	assert.Equal(t, "X", gotRU["title"])
	assert.Equal(t, "только ru", gotRU["note"])
	assert.Equal(t, "", gotRU["empty"], "missing target and default degrades to empty string")
	assert.Len(t, gotRU, len(raw))
}

func TestNormalizeFlat(t *testing.T) {
	n := newTestNormalizer()
	raw := storagemodels.Document{"name": "Асадбек", "experience": []any{"Uzum Market"}}

	got := n.Normalize(raw, "en")
	assert.Equal(t, raw, got)

	got["name"] = "changed"
	assert.Equal(t, "Асадбек", raw["name"])

	assert.Equal(t, storagemodels.Document{}, n.Normalize(nil, "ru"))
}

func TestNormalizeDocumentValues(t *testing.T) {
	n := newTestNormalizer()

	t.Run("split", func(t *testing.T) {
		raw := storagemodels.Document{
			"id": "m1",
			"ru": storagemodels.Document{"title": "Тест"},
			"en": storagemodels.Document{"title": "Test"},
		}
		assert.Equal(t, ShapeSplit, n.Detect(raw))
		want := storagemodels.Document{"id": "m1", "title": "Test"}
		if diff := cmp.Diff(want, n.Normalize(raw, "en")); diff != "" {
			t.Errorf("split mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("per field", func(t *testing.T) {
		raw := storagemodels.Document{
			"title":  storagemodels.Document{"ru": "X", "en": "Y"},
			"status": "completed",
		}
		assert.Equal(t, ShapePerField, n.Detect(raw))
		want := storagemodels.Document{"title": "Y", "status": "completed"}
		if diff := cmp.Diff(want, n.Normalize(raw, "en")); diff != "" {
			t.Errorf("per field mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("flat", func(t *testing.T) {
		raw := storagemodels.Document{
			"name":  "Асадбек",
			"links": storagemodels.Document{"github": "#"},
		}
		assert.Equal(t, ShapeFlat, n.Detect(raw))
		assert.Equal(t, raw, n.Normalize(raw, "en"))
	})
}

func TestNormalizeIsPure(t *testing.T) {
	n := newTestNormalizer()
	docs := []storagemodels.Document{
		{"id": "m1", "ru": map[string]any{"title": "Тест"}, "en": map[string]any{"title": "Test"}},
		{"status": "completed", "title": map[string]any{"ru": "Тест"}},
		{"title": "flat"},
	}
	for _, raw := range docs {
		for _, lang := range []string{"ru", "en", "de"} {
			first := n.Normalize(raw, lang)
			second := n.Normalize(raw, lang)
			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("Normalize(%v, %q) not deterministic:\n%s", raw, lang, diff)
			}
		}
	}
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "split", ShapeSplit.String())
	assert.Equal(t, "per_field", ShapePerField.String())
	assert.Equal(t, "flat", ShapeFlat.String())
}
