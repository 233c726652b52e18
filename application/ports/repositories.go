package ports

import (
	"context"
	"errors"
	"time"

	"wikicollector-backend/domain/article"
)

// ErrIndexNotFound is returned by an IndexStore when the user has no blob
// of the requested kind yet. It is the normal cold-start state.
var ErrIndexNotFound = errors.New("index not found")

// ScanCursor is the continuation token of a record store scan.
// A nil cursor starts a scan; a nil Next ends it.
type ScanCursor map[string]string

// ScanPage is one page of a full record store scan.
type ScanPage struct {
	Items []article.Article
	Next  ScanCursor
}

// ArticleRepository is the primary per-user/per-article record store.
type ArticleRepository interface {
	// Get returns nil, nil when the article does not exist.
	Get(ctx context.Context, userID, articleID string) (*article.Article, error)
	Put(ctx context.Context, a article.Article) error
	// Update merges changes into an existing record, rotating content into
	// backupContent when content changes, and returns the stored result.
	Update(ctx context.Context, userID, articleID string, changes article.Changes, now string) (*article.Article, error)
	Delete(ctx context.Context, userID, articleID string) error
	Scan(ctx context.Context, cursor ScanCursor) (ScanPage, error)
}

// IndexStore persists whole index blobs keyed by user and kind.
type IndexStore interface {
	Load(ctx context.Context, kind article.Kind, userID string) ([]byte, error)
	Save(ctx context.Context, kind article.Kind, userID string, data []byte) error
}

// UploadSigner issues time-limited write URLs for object keys.
type UploadSigner interface {
	PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
}

// Metrics receives operational measurements.
type Metrics interface {
	RecordOperation(ctx context.Context, operation string, duration time.Duration, err error)
	RecordIndexDegraded(ctx context.Context, reason string)
	RecordReconciliation(ctx context.Context, userCount, articleCount int, duration time.Duration)
}
