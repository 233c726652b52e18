// Package memory provides in-memory record and index stores. They back the
// unit tests and the local API server when USE_MEMORY_STORE is set.
package memory

import (
	"context"
	"sort"
	"sync"

	"wikicollector-backend/application/ports"
	"wikicollector-backend/domain/article"
	appErrors "wikicollector-backend/pkg/errors"
)

const defaultPageSize = 100

// ArticleRepository is an in-memory ports.ArticleRepository. Scans walk
// records ordered by (userId, articleId) in pages of PageSize.
type ArticleRepository struct {
	mu       sync.RWMutex
	articles map[string]article.Article

	// PageSize bounds the number of records a single Scan call returns.
	PageSize int

	shouldFailOn map[string]error
}

// NewArticleRepository creates an empty repository
func NewArticleRepository() *ArticleRepository {
	return &ArticleRepository{
		articles:     make(map[string]article.Article),
		PageSize:     defaultPageSize,
		shouldFailOn: make(map[string]error),
	}
}

// SetError makes the named method fail with err until ClearErrors.
func (r *ArticleRepository) SetError(method string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shouldFailOn[method] = err
}

// ClearErrors removes all configured errors.
func (r *ArticleRepository) ClearErrors() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shouldFailOn = make(map[string]error)
}

func (r *ArticleRepository) checkError(method string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.shouldFailOn[method]
}

func recordKey(userID, articleID string) string {
	return userID + "\x00" + articleID
}

// Get returns nil, nil for a missing article
func (r *ArticleRepository) Get(ctx context.Context, userID, articleID string) (*article.Article, error) {
	if err := r.checkError("Get"); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.articles[recordKey(userID, articleID)]
	if !ok {
		return nil, nil
	}
	return cloneArticle(a), nil
}

// Put stores or overwrites a record
func (r *ArticleRepository) Put(ctx context.Context, a article.Article) error {
	if err := r.checkError("Put"); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.articles[recordKey(a.UserID, a.ArticleID)] = *cloneArticle(a)
	return nil
}

// Update applies changes to an existing record
func (r *ArticleRepository) Update(ctx context.Context, userID, articleID string, changes article.Changes, now string) (*article.Article, error) {
	if err := r.checkError("Update"); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := recordKey(userID, articleID)
	current, ok := r.articles[key]
	if !ok {
		return nil, appErrors.NewNotFoundError("article")
	}

	updated := current.Apply(changes, now)
	r.articles[key] = updated
	return cloneArticle(updated), nil
}

// Delete removes a record; deleting a missing record is not an error
func (r *ArticleRepository) Delete(ctx context.Context, userID, articleID string) error {
	if err := r.checkError("Delete"); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.articles, recordKey(userID, articleID))
	return nil
}

// Scan returns the page that follows cursor
func (r *ArticleRepository) Scan(ctx context.Context, cursor ports.ScanCursor) (ports.ScanPage, error) {
	if err := r.checkError("Scan"); err != nil {
		return ports.ScanPage{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.articles))
	for k := range r.articles {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	start := 0
	if cursor != nil {
		after := recordKey(cursor["userId"], cursor["articleId"])
		start = sort.SearchStrings(keys, after)
		if start < len(keys) && keys[start] == after {
			start++
		}
	}

	pageSize := r.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	end := start + pageSize
	if end > len(keys) {
		end = len(keys)
	}

	page := ports.ScanPage{Items: make([]article.Article, 0, end-start)}
	for _, k := range keys[start:end] {
		page.Items = append(page.Items, *cloneArticle(r.articles[k]))
	}
	if end < len(keys) {
		last := page.Items[len(page.Items)-1]
		page.Next = ports.ScanCursor{"userId": last.UserID, "articleId": last.ArticleID}
	}
	return page, nil
}

// Count returns the number of stored records.
func (r *ArticleRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.articles)
}

func cloneArticle(a article.Article) *article.Article {
	c := a
	if a.BackupContent != nil {
		backup := *a.BackupContent
		c.BackupContent = &backup
	}
	return &c
}
