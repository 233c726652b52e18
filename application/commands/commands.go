// Package commands defines the state-changing article operations.
package commands

import (
	"wikicollector-backend/domain/article"
	"wikicollector-backend/pkg/utils"
)

// CreateArticleCommand creates an article for the caller. Title and content
// must be present but may be empty.
type CreateArticleCommand struct {
	UserID  string  `json:"userId" validate:"required"`
	Title   *string `json:"title" validate:"required"`
	Content *string `json:"content" validate:"required"`
}

// Validate checks the command
func (c CreateArticleCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// UpdateArticleCommand applies a partial update. Nil fields are left as
// they are.
type UpdateArticleCommand struct {
	UserID    string  `json:"userId" validate:"required"`
	ArticleID string  `json:"articleId" validate:"required"`
	Title     *string `json:"title"`
	Content   *string `json:"content"`
}

// Validate checks the command
func (c UpdateArticleCommand) Validate() error {
	return utils.ValidateStruct(c)
}

// Changes returns the partial update carried by the command
func (c UpdateArticleCommand) Changes() article.Changes {
	return article.Changes{Title: c.Title, Content: c.Content}
}

// DeleteArticleCommand removes an article
type DeleteArticleCommand struct {
	UserID    string `json:"userId" validate:"required"`
	ArticleID string `json:"articleId" validate:"required"`
}

// Validate checks the command
func (c DeleteArticleCommand) Validate() error {
	return utils.ValidateStruct(c)
}
