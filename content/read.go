/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package content

import (
	"context"

	"go.uber.org/zap"

	"github.com/suparena/smartcare/cache"
	"github.com/suparena/smartcare/normalize"
	"github.com/suparena/smartcare/storagemodels"
)

type documentResult struct {
	doc    storagemodels.Document
	status storagemodels.Status
}

func documentKey(collection, id, lang string) cache.Key {
	return cache.Key{Operation: "document:" + collection + "/" + id, Language: lang}
}

func collectionKey(collection, lang string) cache.Key {
	return cache.Key{Operation: "collection:" + collection, Language: lang}
}

// GetDocument returns one resolved document, or nil when the document is
// absent or the store is unavailable.
func (s *Service) GetDocument(ctx context.Context, collection, id, lang string) (storagemodels.Document, error) {
	if err := s.checkLanguage(lang); err != nil {
		return nil, err
	}
	return s.document(ctx, collection, id, s.Languages().Or(lang)).doc, nil
}

func (s *Service) document(ctx context.Context, collection, id, lang string) documentResult {
	return cache.FetchIf(s.cache, documentKey(collection, id, lang), s.ttl, func() (documentResult, bool) {
		res := s.client.Get(ctx, collection, id)
		switch res.Status {
		case storagemodels.StatusFound:
			return documentResult{doc: s.normalizer.Normalize(res.Value, lang), status: res.Status}, cacheable(ctx)
		case storagemodels.StatusUnavailable:
			s.warnUnavailable("get_document", res.Err,
				zap.String("collection", collection), zap.String("id", id))
		default:
			s.logger.Debug("document not found", zap.String("collection", collection), zap.String("id", id))
		}
		return documentResult{status: res.Status}, cacheable(ctx)
	})
}

// GetCollection returns every document of a collection resolved for lang,
// each with its ID under "id". When the store is unavailable or the
// collection is empty, the registered fallback is returned unchanged, or an
// empty list if there is none.
func (s *Service) GetCollection(ctx context.Context, collection, lang string) ([]storagemodels.Document, error) {
	if err := s.checkLanguage(lang); err != nil {
		return nil, err
	}
	return s.collection(ctx, collection, s.Languages().Or(lang)), nil
}

func (s *Service) collection(ctx context.Context, collection, lang string) []storagemodels.Document {
	return cache.FetchIf(s.cache, collectionKey(collection, lang), s.ttl, func() ([]storagemodels.Document, bool) {
		res := s.client.List(ctx, collection)
		switch res.Status {
		case storagemodels.StatusFound:
			docs := make([]storagemodels.Document, 0, len(res.Value))
			for _, rec := range res.Value {
				doc := s.normalizer.Normalize(rec.Document, lang)
				doc[normalize.IDField] = rec.ID
				docs = append(docs, doc)
			}
			return docs, cacheable(ctx)
		case storagemodels.StatusUnavailable:
			s.warnUnavailable("get_collection", res.Err, zap.String("collection", collection))
		default:
			s.logger.Debug("collection empty", zap.String("collection", collection))
		}

		if docs, ok := s.fallbacks.Collection(collection); ok {
			return docs, cacheable(ctx)
		}
		return []storagemodels.Document{}, cacheable(ctx)
	})
}

// GetTranslationBundle returns the translation sections for lang. Missing
// sections are omitted; while the store is unavailable registered section
// fallbacks fill the gaps.
func (s *Service) GetTranslationBundle(ctx context.Context, lang string) (Bundle, error) {
	if err := s.checkLanguage(lang); err != nil {
		return nil, err
	}
	lang = s.Languages().Or(lang)

	key := cache.Key{Operation: "translations", Language: lang}
	return cache.FetchIf(s.cache, key, s.ttl, func() (Bundle, bool) {
		bundle := make(Bundle, len(Sections))
		for _, section := range Sections {
			res := s.document(ctx, CollectionTranslations, lang+"_"+section, lang)
			if res.doc != nil {
				bundle[section] = res.doc
				continue
			}
			if res.status != storagemodels.StatusUnavailable {
				continue
			}
			if doc, ok := s.fallbacks.Section(lang, section); ok {
				bundle[section] = doc
			}
		}
		return bundle, cacheable(ctx)
	}), nil
}

// cacheable reports whether a result computed under ctx may be memoized.
// Once the caller has gone away, store failures say nothing about the store.
func cacheable(ctx context.Context) bool {
	return ctx.Err() == nil
}
