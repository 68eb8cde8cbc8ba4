/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package content

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/suparena/smartcare/cache"
	"github.com/suparena/smartcare/normalize"
	"github.com/suparena/smartcare/storagemodels"
)

// OrderField holds the display position of collection documents.
const OrderField = "order"

// Team returns the team members in display order.
func (s *Service) Team(ctx context.Context, lang string) ([]storagemodels.Document, error) {
	if err := s.checkLanguage(lang); err != nil {
		return nil, err
	}
	lang = s.Languages().Or(lang)

	key := cache.Key{Operation: "team", Language: lang}
	return cache.FetchIf(s.cache, key, s.ttl, func() ([]storagemodels.Document, bool) {
		return sortByOrder(s.collection(ctx, CollectionTeam, lang)), cacheable(ctx)
	}), nil
}

// Roadmap returns the roadmap block. The current stage comes from the
// roadmap translation section.
func (s *Service) Roadmap(ctx context.Context, lang string) (Roadmap, error) {
	if err := s.checkLanguage(lang); err != nil {
		return Roadmap{}, err
	}
	lang = s.Languages().Or(lang)

	key := cache.Key{Operation: "roadmap", Language: lang}
	return cache.FetchIf(s.cache, key, s.ttl, func() (Roadmap, bool) {
		roadmap := Roadmap{
			CurrentStage: s.currentStage,
			Milestones:   sortByOrder(s.collection(ctx, CollectionMilestones, lang)),
			NextSteps:    sortByOrder(s.collection(ctx, CollectionNextSteps, lang)),
		}
		meta := s.document(ctx, CollectionTranslations, lang+"_roadmap", lang).doc
		if stage := meta.String("current_stage"); stage != "" {
			roadmap.CurrentStage = stage
		}
		return roadmap, cacheable(ctx)
	}), nil
}

// sortByOrder returns a copy of docs ordered by OrderField. Documents without
// one follow those with one; ties keep ID order, then input order.
func sortByOrder(docs []storagemodels.Document) []storagemodels.Document {
	out := make([]storagemodels.Document, len(docs))
	copy(out, docs)

	sort.SliceStable(out, func(i, j int) bool {
		oi, iok := orderOf(out[i])
		oj, jok := orderOf(out[j])
		switch {
		case iok && !jok:
			return true
		case !iok && jok:
			return false
		case iok && jok && oi != oj:
			return oi < oj
		}
		return out[i].String(normalize.IDField) < out[j].String(normalize.IDField)
	})
	return out
}

func orderOf(doc storagemodels.Document) (float64, bool) {
	switch v := doc[OrderField].(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
