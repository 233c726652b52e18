// Package handlers executes article commands against the record store and
// keeps the index in step after each write.
package handlers

import (
	"context"
	"fmt"

	"wikicollector-backend/application/commands"
	"wikicollector-backend/application/commands/bus"
	"wikicollector-backend/application/index"
	"wikicollector-backend/application/ports"
	"wikicollector-backend/domain/article"
	"wikicollector-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateArticleHandler handles CreateArticleCommand
type CreateArticleHandler struct {
	repo   ports.ArticleRepository
	sync   *index.Synchronizer
	logger *zap.Logger

	newID func() string
	now   func() string
}

// NewCreateArticleHandler creates a new create handler
func NewCreateArticleHandler(repo ports.ArticleRepository, sync *index.Synchronizer, logger *zap.Logger) *CreateArticleHandler {
	return &CreateArticleHandler{
		repo:   repo,
		sync:   sync,
		logger: logger,
		newID:  uuid.NewString,
		now:    utils.NowRFC3339,
	}
}

// Handle stores the new record, then upserts it into the index. The
// returned article is the full record.
func (h *CreateArticleHandler) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.CreateArticleCommand)
	if !ok {
		return nil, fmt.Errorf("%w: %T", bus.ErrUnexpectedCommand, cmd)
	}

	item := article.New(c.UserID, h.newID(), *c.Title, *c.Content, h.now())

	if err := h.repo.Put(ctx, item); err != nil {
		h.logger.Error("Failed to create article",
			zap.String("userID", c.UserID),
			zap.String("articleID", item.ArticleID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := h.sync.Upsert(ctx, c.UserID, item); err != nil {
		return nil, err
	}

	h.logger.Info("Article created",
		zap.String("userID", c.UserID),
		zap.String("articleID", item.ArticleID),
	)
	return &item, nil
}
