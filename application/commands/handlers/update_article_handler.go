package handlers

import (
	"context"
	"fmt"

	"wikicollector-backend/application/commands"
	"wikicollector-backend/application/commands/bus"
	"wikicollector-backend/application/index"
	"wikicollector-backend/application/ports"
	"wikicollector-backend/pkg/utils"

	"go.uber.org/zap"
)

// UpdateArticleHandler handles UpdateArticleCommand
type UpdateArticleHandler struct {
	repo   ports.ArticleRepository
	sync   *index.Synchronizer
	logger *zap.Logger

	now func() string
}

// NewUpdateArticleHandler creates a new update handler
func NewUpdateArticleHandler(repo ports.ArticleRepository, sync *index.Synchronizer, logger *zap.Logger) *UpdateArticleHandler {
	return &UpdateArticleHandler{
		repo:   repo,
		sync:   sync,
		logger: logger,
		now:    utils.NowRFC3339,
	}
}

// Handle applies the partial update in the record store and upserts the
// post-update record into the index.
func (h *UpdateArticleHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.UpdateArticleCommand)
	if !ok {
		return nil, fmt.Errorf("%w: %T", bus.ErrUnexpectedCommand, cmd)
	}

	updated, err := h.repo.Update(ctx, c.UserID, c.ArticleID, c.Changes(), h.now())
	if err != nil {
		h.logger.Error("Failed to update article",
			zap.String("userID", c.UserID),
			zap.String("articleID", c.ArticleID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := h.sync.Upsert(ctx, c.UserID, *updated); err != nil {
		return nil, err
	}

	h.logger.Info("Article updated",
		zap.String("userID", c.UserID),
		zap.String("articleID", c.ArticleID),
		zap.Bool("contentChanged", c.Content != nil),
	)
	return updated, nil
}
