// Package services holds the application services that are not plain
// per-article commands: the full index rebuild and upload URL issuance.
package services

import (
	"context"
	"fmt"
	"time"

	"wikicollector-backend/application/index"
	"wikicollector-backend/application/ports"
	"wikicollector-backend/domain/article"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ReconciliationResult summarizes one rebuild run
type ReconciliationResult struct {
	UserCount    int `json:"userCount"`
	ArticleCount int `json:"articleCount"`
}

// ReconciliationService rebuilds every user's index from the record store
type ReconciliationService struct {
	repo        ports.ArticleRepository
	sync        *index.Synchronizer
	metrics     ports.Metrics
	logger      *zap.Logger
	concurrency int
}

// NewReconciliationService creates a new reconciliation service. A
// concurrency below 1 means one user at a time.
func NewReconciliationService(
	repo ports.ArticleRepository,
	sync *index.Synchronizer,
	metrics ports.Metrics,
	logger *zap.Logger,
	concurrency int,
) *ReconciliationService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ReconciliationService{
		repo:        repo,
		sync:        sync,
		metrics:     metrics,
		logger:      logger,
		concurrency: concurrency,
	}
}

// userRecords keeps users in the order the scan first saw them
type userRecords struct {
	order  []string
	byUser map[string][]article.Article
}

func (u *userRecords) add(a article.Article) {
	if _, seen := u.byUser[a.UserID]; !seen {
		u.order = append(u.order, a.UserID)
	}
	u.byUser[a.UserID] = append(u.byUser[a.UserID], a)
}

// Reconcile scans the whole record store, then overwrites both views of
// every user found. Users without records are not visited, so their old
// blobs stay as they are. The first failed write aborts the run.
func (s *ReconciliationService) Reconcile(ctx context.Context) (*ReconciliationResult, error) {
	start := time.Now()

	users, scanned, err := s.scanAll(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Record store scanned",
		zap.Int("articles", scanned),
		zap.Int("users", len(users.order)),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, userID := range users.order {
		userID := userID
		items := users.byUser[userID]
		g.Go(func() error {
			if err := s.sync.Replace(gctx, userID, items); err != nil {
				return fmt.Errorf("failed to rebuild index for user %s: %w", userID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("Reconciliation failed", zap.Error(err))
		return nil, err
	}

	result := &ReconciliationResult{
		UserCount:    len(users.order),
		ArticleCount: scanned,
	}
	duration := time.Since(start)
	if s.metrics != nil {
		s.metrics.RecordReconciliation(ctx, result.UserCount, result.ArticleCount, duration)
	}

	s.logger.Info("Reconciliation completed",
		zap.Int("userCount", result.UserCount),
		zap.Int("articleCount", result.ArticleCount),
		zap.Duration("duration", duration),
	)
	return result, nil
}

// scanAll pages through the record store until the cursor runs out.
// Records without a userId are counted but not indexed.
func (s *ReconciliationService) scanAll(ctx context.Context) (*userRecords, int, error) {
	users := &userRecords{byUser: make(map[string][]article.Article)}
	scanned := 0
	pages := 0

	var cursor ports.ScanCursor
	for {
		page, err := s.repo.Scan(ctx, cursor)
		if err != nil {
			s.logger.Error("Record store scan failed",
				zap.Int("page", pages),
				zap.Error(err),
			)
			return nil, 0, err
		}
		pages++

		for _, a := range page.Items {
			scanned++
			if a.UserID == "" {
				s.logger.Warn("Skipping record without userId", zap.String("articleID", a.ArticleID))
				continue
			}
			users.add(a)
		}

		if page.Next == nil {
			break
		}
		cursor = page.Next
	}

	s.logger.Debug("Scan finished", zap.Int("pages", pages))
	return users, scanned, nil
}
