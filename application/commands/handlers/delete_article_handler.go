package handlers

import (
	"context"
	"fmt"

	"wikicollector-backend/application/commands"
	"wikicollector-backend/application/commands/bus"
	"wikicollector-backend/application/index"
	"wikicollector-backend/application/ports"

	"go.uber.org/zap"
)

// DeleteArticleHandler handles DeleteArticleCommand
type DeleteArticleHandler struct {
	repo   ports.ArticleRepository
	sync   *index.Synchronizer
	logger *zap.Logger
}

// NewDeleteArticleHandler creates a new delete handler
func NewDeleteArticleHandler(repo ports.ArticleRepository, sync *index.Synchronizer, logger *zap.Logger) *DeleteArticleHandler {
	return &DeleteArticleHandler{
		repo:   repo,
		sync:   sync,
		logger: logger,
	}
}

// Handle removes the record and its index entry. It returns true on success,
// including when the article did not exist.
func (h *DeleteArticleHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.DeleteArticleCommand)
	if !ok {
		return nil, fmt.Errorf("%w: %T", bus.ErrUnexpectedCommand, cmd)
	}

	if err := h.repo.Delete(ctx, c.UserID, c.ArticleID); err != nil {
		h.logger.Error("Failed to delete article",
			zap.String("userID", c.UserID),
			zap.String("articleID", c.ArticleID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := h.sync.Remove(ctx, c.UserID, c.ArticleID); err != nil {
		return nil, err
	}

	h.logger.Info("Article deleted",
		zap.String("userID", c.UserID),
		zap.String("articleID", c.ArticleID),
	)
	return true, nil
}
