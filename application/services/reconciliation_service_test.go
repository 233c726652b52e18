package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"wikicollector-backend/application/index"
	"wikicollector-backend/domain/article"
	"wikicollector-backend/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) RecordOperation(ctx context.Context, operation string, duration time.Duration, err error) {
	m.Called(operation)
}

func (m *mockMetrics) RecordIndexDegraded(ctx context.Context, reason string) {
	m.Called(reason)
}

func (m *mockMetrics) RecordReconciliation(ctx context.Context, userCount, articleCount int, duration time.Duration) {
	m.Called(userCount, articleCount)
}

type reconcileFixture struct {
	repo    *memory.ArticleRepository
	store   *memory.IndexStore
	sync    *index.Synchronizer
	service *ReconciliationService
	metrics *mockMetrics
}

func newReconcileFixture(concurrency int) *reconcileFixture {
	logger := zap.NewNop()
	repo := memory.NewArticleRepository()
	repo.PageSize = 2
	store := memory.NewIndexStore()
	metrics := new(mockMetrics)
	sync := index.NewSynchronizer(index.NewReader(store, metrics, logger), store, logger)
	return &reconcileFixture{
		repo:    repo,
		store:   store,
		sync:    sync,
		metrics: metrics,
		service: NewReconciliationService(repo, sync, metrics, logger, concurrency),
	}
}

func (f *reconcileFixture) blobs(userID string) (string, string) {
	search, _ := f.store.Blob(article.SearchIndex.Key(userID))
	tree, _ := f.store.Blob(article.TreeIndex.Key(userID))
	return string(search), string(tree)
}

func TestReconcile_CountsUsersAndArticles(t *testing.T) {
	ctx := context.Background()
	f := newReconcileFixture(4)
	f.metrics.On("RecordReconciliation", 2, 2).Return().Once()
	require.NoError(t, f.repo.Put(ctx, article.New("U1", "a", "A", "x", "t0")))
	require.NoError(t, f.repo.Put(ctx, article.New("U2", "b", "B", "y", "t0")))

	result, err := f.service.Reconcile(ctx)

	require.NoError(t, err)
	assert.Equal(t, &ReconciliationResult{UserCount: 2, ArticleCount: 2}, result)
	f.metrics.AssertExpectations(t)
}

func TestReconcile_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newReconcileFixture(3)
	f.metrics.On("RecordReconciliation", mock.Anything, mock.Anything).Return()
	for i := 0; i < 7; i++ {
		require.NoError(t, f.repo.Put(ctx, article.New(fmt.Sprintf("U%d", i%3), fmt.Sprintf("a%d", i), "T", "日本語", "t0")))
	}

	_, err := f.service.Reconcile(ctx)
	require.NoError(t, err)
	firstSearch, firstTree := f.blobs("U1")

	_, err = f.service.Reconcile(ctx)
	require.NoError(t, err)
	secondSearch, secondTree := f.blobs("U1")

	assert.Equal(t, firstSearch, secondSearch)
	assert.Equal(t, firstTree, secondTree)
	assert.Contains(t, firstSearch, "日本語")
}

func TestReconcile_RepairsDrift(t *testing.T) {
	ctx := context.Background()
	f := newReconcileFixture(2)
	f.metrics.On("RecordReconciliation", mock.Anything, mock.Anything).Return()

	require.NoError(t, f.repo.Put(ctx, article.New("U", "kept", "K", "x", "t0")))
	require.NoError(t, f.repo.Put(ctx, article.New("U", "lost", "L", "y", "t0")))
	// Index knows about a deleted article and misses one that exists
	require.NoError(t, f.sync.Replace(ctx, "U", []article.Article{
		article.New("U", "kept", "K", "x", "t0"),
		article.New("U", "ghost", "G", "z", "t0"),
	}))

	_, err := f.service.Reconcile(ctx)
	require.NoError(t, err)

	data, _ := f.store.Blob(article.SearchIndex.Key("U"))
	search, err := article.DecodeSearchView(data)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"kept", "lost"}, search.ArticleIDs())

	data, _ = f.store.Blob(article.TreeIndex.Key("U"))
	tree, err := article.DecodeTreeView(data)
	require.NoError(t, err)
	assert.Len(t, tree, 2)
}

func TestReconcile_UsersWithoutRecordsAreNotVisited(t *testing.T) {
	ctx := context.Background()
	f := newReconcileFixture(1)
	f.metrics.On("RecordReconciliation", 1, 1).Return()
	stale := []byte(`[{"articleId":"old"}]`)
	f.store.Put(article.SearchIndex.Key("gone"), stale)
	require.NoError(t, f.repo.Put(ctx, article.New("U", "a", "A", "x", "t0")))

	_, err := f.service.Reconcile(ctx)

	require.NoError(t, err)
	data, _ := f.store.Blob(article.SearchIndex.Key("gone"))
	assert.Equal(t, stale, data)
}

func TestReconcile_SkipsRecordsWithoutUser(t *testing.T) {
	ctx := context.Background()
	f := newReconcileFixture(1)
	f.metrics.On("RecordReconciliation", 1, 2).Return().Once()
	require.NoError(t, f.repo.Put(ctx, article.New("", "orphan", "O", "x", "t0")))
	require.NoError(t, f.repo.Put(ctx, article.New("U", "a", "A", "x", "t0")))

	result, err := f.service.Reconcile(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, result.UserCount)
	assert.Equal(t, 2, result.ArticleCount)
	_, ok := f.store.Blob(article.SearchIndex.Key(""))
	assert.False(t, ok)
}

func TestReconcile_EmptyStore(t *testing.T) {
	f := newReconcileFixture(1)
	f.metrics.On("RecordReconciliation", 0, 0).Return()

	result, err := f.service.Reconcile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, result.UserCount)
	assert.Zero(t, f.store.Saves())
}

func TestReconcile_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("scan error", func(t *testing.T) {
		f := newReconcileFixture(1)
		f.repo.SetError("Scan", errors.New("provisioned throughput exceeded"))

		_, err := f.service.Reconcile(ctx)

		assert.ErrorContains(t, err, "provisioned throughput exceeded")
		assert.Zero(t, f.store.Saves())
		f.metrics.AssertNotCalled(t, "RecordReconciliation", mock.Anything, mock.Anything)
	})

	t.Run("write error", func(t *testing.T) {
		f := newReconcileFixture(2)
		require.NoError(t, f.repo.Put(ctx, article.New("U1", "a", "A", "x", "t0")))
		require.NoError(t, f.repo.Put(ctx, article.New("U2", "b", "B", "y", "t0")))
		f.store.SetError("Save:tree", errors.New("access denied"))

		_, err := f.service.Reconcile(ctx)

		assert.ErrorContains(t, err, "access denied")
		f.metrics.AssertNotCalled(t, "RecordReconciliation", mock.Anything, mock.Anything)
	})
}
