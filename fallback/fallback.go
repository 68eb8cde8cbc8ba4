/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package fallback

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/suparena/smartcare/registry"
	"github.com/suparena/smartcare/storagemodels"
)

// DefaultCurrentStage is used when neither the store nor the dataset names one.
const DefaultCurrentStage = "MVP Development"

//go:embed data/fallback.yaml
var fallbackYAML []byte

// Dataset is the local content served when the store cannot answer.
type Dataset struct {
	CurrentStage string `yaml:"current_stage"`
	// Collections maps a collection name to its fallback documents.
	Collections map[string][]storagemodels.Document `yaml:"collections"`
	// Sections maps a language code to translation section fallbacks.
	Sections map[string]map[string]storagemodels.Document `yaml:"sections"`
}

// Load decodes the embedded fallback dataset.
func Load() (*Dataset, error) {
	return Parse(fallbackYAML)
}

// Parse decodes a fallback dataset from YAML.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to decode fallback dataset: %w", err)
	}
	if ds.CurrentStage == "" {
		ds.CurrentStage = DefaultCurrentStage
	}
	for _, docs := range ds.Collections {
		for i := range docs {
			docs[i] = plainDocument(docs[i])
		}
	}
	for _, sections := range ds.Sections {
		for name, doc := range sections {
			sections[name] = plainDocument(doc)
		}
	}
	return &ds, nil
}

// plainDocument rewrites nested values so every mapping below the top level
// is a map[string]any, matching what the document stores return.
func plainDocument(doc storagemodels.Document) storagemodels.Document {
	for k, v := range doc {
		doc[k] = plainValue(v)
	}
	return doc
}

func plainValue(v any) any {
	switch val := v.(type) {
	case storagemodels.Document:
		return map[string]any(plainDocument(val))
	case map[string]any:
		return map[string]any(plainDocument(val))
	case []any:
		for i, item := range val {
			val[i] = plainValue(item)
		}
		return val
	default:
		return v
	}
}

// Register adds every collection and section of the dataset to reg.
func (ds *Dataset) Register(reg *registry.Registry) {
	for name, docs := range ds.Collections {
		reg.RegisterCollection(name, docs)
	}
	for lang, sections := range ds.Sections {
		for section, doc := range sections {
			reg.RegisterSection(lang, section, doc)
		}
	}
}

// NewRegistry returns a registry populated from the embedded dataset.
func NewRegistry() (*registry.Registry, *Dataset, error) {
	ds, err := Load()
	if err != nil {
		return nil, nil, err
	}
	reg := registry.New()
	ds.Register(reg)
	return reg, ds, nil
}
