package index

import (
	"context"
	"fmt"

	"wikicollector-backend/application/ports"
	"wikicollector-backend/domain/article"

	"go.uber.org/zap"
)

// Synchronizer is the only writer of index blobs. Every path that changes
// the index, per-article or full rebuild, goes through article.Project and
// writes both views together.
//
// There is no locking: concurrent writers for the same user each
// read-modify-write the blob pair and the last one wins. Reconciliation
// repairs whatever is lost.
type Synchronizer struct {
	reader *Reader
	store  ports.IndexStore
	logger *zap.Logger
}

// NewSynchronizer creates a new index synchronizer
func NewSynchronizer(reader *Reader, store ports.IndexStore, logger *zap.Logger) *Synchronizer {
	return &Synchronizer{
		reader: reader,
		store:  store,
		logger: logger,
	}
}

// Upsert replaces any entry with item's id and appends item at the end, so
// index order is write order.
func (s *Synchronizer) Upsert(ctx context.Context, userID string, item article.Article) error {
	current := s.reader.LoadSearchView(ctx, userID)

	items := current.View.Without(item.ArticleID).Articles()
	items = append(items, item)

	if err := s.Replace(ctx, userID, items); err != nil {
		return fmt.Errorf("failed to upsert %s into index: %w", item.ArticleID, err)
	}

	s.logger.Debug("Index upserted",
		zap.String("userID", userID),
		zap.String("articleID", item.ArticleID),
		zap.Int("entries", len(items)),
		zap.Stringer("load", current.Outcome),
	)
	return nil
}

// Remove drops articleID from the index. Removing an absent id rewrites the
// same content.
func (s *Synchronizer) Remove(ctx context.Context, userID, articleID string) error {
	current := s.reader.LoadSearchView(ctx, userID)

	items := current.View.Without(articleID).Articles()

	if err := s.Replace(ctx, userID, items); err != nil {
		return fmt.Errorf("failed to remove %s from index: %w", articleID, err)
	}

	s.logger.Debug("Index entry removed",
		zap.String("userID", userID),
		zap.String("articleID", articleID),
		zap.Int("entries", len(items)),
		zap.Stringer("load", current.Outcome),
	)
	return nil
}

// Replace overwrites both views from the complete list of a user's records.
// The search view is written first; a failure there leaves the tree view
// untouched.
func (s *Synchronizer) Replace(ctx context.Context, userID string, items []article.Article) error {
	search, tree := article.Project(items)

	searchData, err := article.EncodeView(search)
	if err != nil {
		return err
	}
	treeData, err := article.EncodeView(tree)
	if err != nil {
		return err
	}

	if err := s.store.Save(ctx, article.SearchIndex, userID, searchData); err != nil {
		s.logger.Error("Failed to save search index",
			zap.String("userID", userID),
			zap.String("key", article.SearchIndex.Key(userID)),
			zap.Error(err),
		)
		return err
	}
	if err := s.store.Save(ctx, article.TreeIndex, userID, treeData); err != nil {
		s.logger.Error("Failed to save tree index",
			zap.String("userID", userID),
			zap.String("key", article.TreeIndex.Key(userID)),
			zap.Error(err),
		)
		return err
	}
	return nil
}
