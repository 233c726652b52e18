package handlers

import (
	"wikicollector-backend/application/commands"
	"wikicollector-backend/application/commands/bus"
	"wikicollector-backend/application/index"
	"wikicollector-backend/application/ports"

	"go.uber.org/zap"
)

// RegisterAll wires every article command handler into b
func RegisterAll(b *bus.CommandBus, repo ports.ArticleRepository, sync *index.Synchronizer, logger *zap.Logger) error {
	if err := b.Register(commands.CreateArticleCommand{}, NewCreateArticleHandler(repo, sync, logger)); err != nil {
		return err
	}
	if err := b.Register(commands.UpdateArticleCommand{}, NewUpdateArticleHandler(repo, sync, logger)); err != nil {
		return err
	}
	return b.Register(commands.DeleteArticleCommand{}, NewDeleteArticleHandler(repo, sync, logger))
}
