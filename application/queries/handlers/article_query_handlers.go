// Package handlers answers article queries. Reads of a single article go to
// the record store; listing and search only ever read the index.
package handlers

import (
	"context"
	"fmt"

	"wikicollector-backend/application/index"
	"wikicollector-backend/application/ports"
	"wikicollector-backend/application/queries"
	"wikicollector-backend/application/queries/bus"

	"go.uber.org/zap"
)

// GetArticleHandler handles GetArticleQuery
type GetArticleHandler struct {
	repo ports.ArticleRepository
}

// NewGetArticleHandler creates a new get handler
func NewGetArticleHandler(repo ports.ArticleRepository) *GetArticleHandler {
	return &GetArticleHandler{repo: repo}
}

// Handle returns the stored record, or nil when it does not exist
func (h *GetArticleHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetArticleQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	a, err := h.repo.Get(ctx, q.UserID, q.ArticleID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}
	return a, nil
}

// ListArticlesHandler handles ListArticlesQuery
type ListArticlesHandler struct {
	reader *index.Reader
	logger *zap.Logger
}

// NewListArticlesHandler creates a new list handler
func NewListArticlesHandler(reader *index.Reader, logger *zap.Logger) *ListArticlesHandler {
	return &ListArticlesHandler{reader: reader, logger: logger}
}

// Handle returns the caller's index entries without content
func (h *ListArticlesHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ListArticlesQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	loaded := h.reader.LoadSearchView(ctx, q.UserID)
	items := loaded.View.Trees()

	h.logger.Debug("Articles listed",
		zap.String("userID", q.UserID),
		zap.Int("count", len(items)),
		zap.Stringer("load", loaded.Outcome),
	)
	return &queries.ListArticlesResult{Items: items, Count: len(items)}, nil
}

// SearchArticlesHandler handles SearchArticlesQuery
type SearchArticlesHandler struct {
	reader *index.Reader
	logger *zap.Logger
}

// NewSearchArticlesHandler creates a new search handler
func NewSearchArticlesHandler(reader *index.Reader, logger *zap.Logger) *SearchArticlesHandler {
	return &SearchArticlesHandler{reader: reader, logger: logger}
}

// Handle runs a linear substring scan over the caller's search view
func (h *SearchArticlesHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.SearchArticlesQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	loaded := h.reader.LoadSearchView(ctx, q.UserID)
	items := loaded.View.Filter(q.Query)

	h.logger.Debug("Articles searched",
		zap.String("userID", q.UserID),
		zap.Int("indexed", len(loaded.View)),
		zap.Int("matched", len(items)),
		zap.Stringer("load", loaded.Outcome),
	)
	return &queries.SearchArticlesResult{Items: items, Count: len(items)}, nil
}

// RegisterAll wires every article query handler into b
func RegisterAll(b *bus.QueryBus, repo ports.ArticleRepository, reader *index.Reader, logger *zap.Logger) error {
	if err := b.Register(queries.GetArticleQuery{}, NewGetArticleHandler(repo)); err != nil {
		return err
	}
	if err := b.Register(queries.ListArticlesQuery{}, NewListArticlesHandler(reader, logger)); err != nil {
		return err
	}
	return b.Register(queries.SearchArticlesQuery{}, NewSearchArticlesHandler(reader, logger))
}
