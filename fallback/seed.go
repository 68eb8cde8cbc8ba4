/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package fallback

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/suparena/smartcare/storagemodels"
)

//go:embed data/seed.yaml
var seedYAML []byte

// SeedDocument is one bilingual collection entry. Languages holds the field
// set of each language code; Order, when set, is copied into every language.
type SeedDocument struct {
	ID        string                            `yaml:"id"`
	Order     int                               `yaml:"order,omitempty"`
	Languages map[string]storagemodels.Document `yaml:",inline"`
}

// SeedSet is the full bilingual site content.
type SeedSet struct {
	// Translations maps a section name to its per-language document.
	Translations map[string]map[string]storagemodels.Document `yaml:"translations"`
	// Collections maps a collection name to its entries.
	Collections map[string][]SeedDocument `yaml:"collections"`
}

// LoadSeed decodes the embedded seed content.
func LoadSeed() (*SeedSet, error) {
	return ParseSeed(seedYAML)
}

// ParseSeed decodes seed content from YAML.
func ParseSeed(data []byte) (*SeedSet, error) {
	var set SeedSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to decode seed dataset: %w", err)
	}
	for _, langs := range set.Translations {
		for lang, doc := range langs {
			langs[lang] = plainDocument(doc)
		}
	}
	for name, docs := range set.Collections {
		for i, d := range docs {
			if d.ID == "" {
				return nil, fmt.Errorf("seed dataset: entry %d of %s has no id", i, name)
			}
			for lang, fields := range d.Languages {
				d.Languages[lang] = plainDocument(fields)
			}
		}
	}
	return &set, nil
}
