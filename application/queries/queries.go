// Package queries defines the read-only article operations.
package queries

import (
	"wikicollector-backend/domain/article"
	appErrors "wikicollector-backend/pkg/errors"
)

// GetArticleQuery reads one record from the record store
type GetArticleQuery struct {
	UserID    string
	ArticleID string
}

// Validate validates the GetArticleQuery
func (q GetArticleQuery) Validate() error {
	if q.UserID == "" {
		return appErrors.NewValidationError("user ID is required")
	}
	if q.ArticleID == "" {
		return appErrors.NewValidationError("articleId is required")
	}
	return nil
}

// ListArticlesQuery lists the caller's articles from the index
type ListArticlesQuery struct {
	UserID string
}

// Validate validates the ListArticlesQuery
func (q ListArticlesQuery) Validate() error {
	if q.UserID == "" {
		return appErrors.NewValidationError("user ID is required")
	}
	return nil
}

// SearchArticlesQuery filters the caller's search view. An empty Query
// matches everything.
type SearchArticlesQuery struct {
	UserID string
	Query  string
}

// Validate validates the SearchArticlesQuery
func (q SearchArticlesQuery) Validate() error {
	if q.UserID == "" {
		return appErrors.NewValidationError("user ID is required")
	}
	return nil
}

// ListArticlesResult is the listArticles response
type ListArticlesResult struct {
	Items []article.TreeEntry `json:"items"`
	Count int                 `json:"count"`
}

// SearchArticlesResult is the search response
type SearchArticlesResult struct {
	Items article.SearchView `json:"items"`
	Count int                `json:"count"`
}
