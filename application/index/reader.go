// Package index keeps the per-user search and tree index blobs in step with
// the record store.
package index

import (
	"context"
	"errors"

	"wikicollector-backend/application/ports"
	"wikicollector-backend/domain/article"

	"go.uber.org/zap"
)

// LoadOutcome says how a search view load ended.
type LoadOutcome int

const (
	// LoadFound means the blob existed and decoded.
	LoadFound LoadOutcome = iota
	// LoadMissing means the user has no blob yet.
	LoadMissing
	// LoadFailed means the blob could not be read or decoded.
	LoadFailed
)

func (o LoadOutcome) String() string {
	switch o {
	case LoadFound:
		return "found"
	case LoadMissing:
		return "missing"
	default:
		return "failed"
	}
}

// LoadResult keeps "not found" and "read error" apart even though both end
// up as an empty view for callers.
type LoadResult struct {
	View    article.SearchView
	Outcome LoadOutcome
	Err     error
}

// Degraded reports whether the empty view stands in for an unreadable index.
func (r LoadResult) Degraded() bool {
	return r.Outcome == LoadFailed
}

// Reader loads a user's search view.
type Reader struct {
	store   ports.IndexStore
	metrics ports.Metrics
	logger  *zap.Logger
}

// NewReader creates a new index reader
func NewReader(store ports.IndexStore, metrics ports.Metrics, logger *zap.Logger) *Reader {
	return &Reader{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// LoadSearchView never fails. A missing blob is an empty view. An unreadable
// blob is also an empty view, logged and counted: index completeness is
// traded for write availability.
//
// TODO: a transient store error currently looks like an empty index to
// callers; decide whether writes should fail instead of dropping entries.
func (r *Reader) LoadSearchView(ctx context.Context, userID string) LoadResult {
	data, err := r.store.Load(ctx, article.SearchIndex, userID)
	if errors.Is(err, ports.ErrIndexNotFound) {
		r.logger.Debug("Search index not found, starting empty",
			zap.String("userID", userID),
		)
		return LoadResult{View: article.SearchView{}, Outcome: LoadMissing}
	}
	if err != nil {
		return r.degrade(ctx, userID, "read_error", err)
	}

	view, err := article.DecodeSearchView(data)
	if err != nil {
		return r.degrade(ctx, userID, "decode_error", err)
	}

	return LoadResult{View: view, Outcome: LoadFound}
}

func (r *Reader) degrade(ctx context.Context, userID, reason string, err error) LoadResult {
	r.logger.Warn("Search index unreadable, treating as empty",
		zap.String("userID", userID),
		zap.String("reason", reason),
		zap.Error(err),
	)
	if r.metrics != nil {
		r.metrics.RecordIndexDegraded(ctx, reason)
	}
	return LoadResult{View: article.SearchView{}, Outcome: LoadFailed, Err: err}
}
