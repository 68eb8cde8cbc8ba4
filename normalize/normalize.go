/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package normalize

import (
	"github.com/suparena/smartcare/language"
	"github.com/suparena/smartcare/storagemodels"
)

// IDField is the caller-injected document identifier kept across shapes.
const IDField = "id"

// Shape tags the multilingual layout of a stored document.
type Shape int

const (
	// ShapeFlat is a single-language document.
	ShapeFlat Shape = iota
	// ShapeSplit holds one complete field set per language at the top level.
	ShapeSplit
	// ShapePerField holds language mappings on individual fields.
	ShapePerField
)

func (s Shape) String() string {
	switch s {
	case ShapeSplit:
		return "split"
	case ShapePerField:
		return "per_field"
	default:
		return "flat"
	}
}

// Normalizer turns stored documents into a flat, language-resolved view.
// It is stateless apart from the language set and safe for concurrent use.
type Normalizer struct {
	langs language.Set
}

// New returns a Normalizer for langs.
func New(langs language.Set) *Normalizer {
	return &Normalizer{langs: langs}
}

// Languages returns the language set the normalizer was built with.
func (n *Normalizer) Languages() language.Set {
	return n.langs
}

// Detect classifies raw.
func (n *Normalizer) Detect(raw storagemodels.Document) Shape {
	if n.isSplit(raw) {
		return ShapeSplit
	}
	for _, v := range raw {
		if m, ok := asMapping(v); ok && n.hasLanguageKey(m) {
			return ShapePerField
		}
	}
	return ShapeFlat
}

// Normalize resolves raw for lang. An unsupported lang is treated as the
// default language. The result never aliases raw's top-level map and missing
// translations degrade to the default language, then to empty values.
func (n *Normalizer) Normalize(raw storagemodels.Document, lang string) storagemodels.Document {
	lang = n.langs.Or(lang)

	switch n.Detect(raw) {
	case ShapeSplit:
		return n.fromSplit(raw, lang)
	case ShapePerField:
		return n.fromPerField(raw, lang)
	default:
		return n.fromFlat(raw)
	}
}

// isSplit reports whether the keys of raw, ignoring IDField, are exactly the
// supported language codes.
func (n *Normalizer) isSplit(raw storagemodels.Document) bool {
	supported := n.langs.Supported()
	keys := len(raw)
	if _, ok := raw[IDField]; ok {
		keys--
	}
	if keys != len(supported) {
		return false
	}
	for _, code := range supported {
		if _, ok := raw[code]; !ok {
			return false
		}
	}
	return true
}

// asMapping accepts both plain maps and Document values, which decoders and
// Go callers produce interchangeably.
func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case storagemodels.Document:
		return m, true
	default:
		return nil, false
	}
}

func (n *Normalizer) hasLanguageKey(m map[string]any) bool {
	for _, code := range n.langs.Supported() {
		if _, ok := m[code]; ok {
			return true
		}
	}
	return false
}

func (n *Normalizer) fromSplit(raw storagemodels.Document, lang string) storagemodels.Document {
	section, ok := asMapping(raw[lang])
	if !ok {
		section, _ = asMapping(raw[n.langs.Default()])
	}

	out := make(storagemodels.Document, len(section)+1)
	for k, v := range section {
		out[k] = v
	}
	if id, ok := raw[IDField]; ok {
		out[IDField] = id
	}
	return out
}

func (n *Normalizer) fromPerField(raw storagemodels.Document, lang string) storagemodels.Document {
	out := make(storagemodels.Document, len(raw))
	for k, v := range raw {
		m, ok := asMapping(v)
		if !ok || !n.hasLanguageKey(m) {
			out[k] = v
			continue
		}
		if value, ok := m[lang]; ok {
			out[k] = value
		} else if value, ok := m[n.langs.Default()]; ok {
			out[k] = value
		} else {
			out[k] = ""
		}
	}
	return out
}

func (n *Normalizer) fromFlat(raw storagemodels.Document) storagemodels.Document {
	out := raw.Clone()
	if out == nil {
		out = storagemodels.Document{}
	}
	return out
}
