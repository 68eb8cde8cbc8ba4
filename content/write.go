/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package content

import (
	"context"

	"go.uber.org/zap"

	"github.com/suparena/smartcare/errors"
	"github.com/suparena/smartcare/storagemodels"
)

// SetDocument creates or replaces a document, or merges doc into the stored
// one when merge is set.
func (s *Service) SetDocument(ctx context.Context, collection, id string, doc storagemodels.Document, merge bool) error {
	if collection == "" || id == "" {
		return errors.NewValidationError("key", "collection and id are required")
	}
	if doc == nil {
		return errors.NewValidationError("document", "document is required")
	}

	if err := s.client.Set(ctx, collection, id, doc, merge); err != nil {
		s.logger.Error("failed to write document",
			zap.String("collection", collection), zap.String("id", id), zap.Bool("merge", merge), zap.Error(err))
		return err
	}
	s.afterWrite("set", collection, id)
	return nil
}

// DeleteDocument removes a document.
func (s *Service) DeleteDocument(ctx context.Context, collection, id string) error {
	if collection == "" || id == "" {
		return errors.NewValidationError("key", "collection and id are required")
	}

	if err := s.client.Delete(ctx, collection, id); err != nil {
		s.logger.Error("failed to delete document",
			zap.String("collection", collection), zap.String("id", id), zap.Error(err))
		return err
	}
	s.afterWrite("delete", collection, id)
	return nil
}

// afterWrite is the single invalidation point of the write path.
func (s *Service) afterWrite(op, collection, id string) {
	s.cache.InvalidateAll()
	s.logger.Info("document written, cache invalidated",
		zap.String("op", op), zap.String("collection", collection), zap.String("id", id))
}
