package handlers

import (
	"context"
	"errors"
	"testing"

	"wikicollector-backend/application/index"
	"wikicollector-backend/application/queries"
	"wikicollector-backend/application/queries/bus"
	"wikicollector-backend/domain/article"
	"wikicollector-backend/infrastructure/persistence/memory"
	appErrors "wikicollector-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newQueryBus(t *testing.T, repo *memory.ArticleRepository, store *memory.IndexStore) *bus.QueryBus {
	t.Helper()
	logger := zap.NewNop()
	b := bus.NewQueryBus()
	require.NoError(t, RegisterAll(b, repo, index.NewReader(store, nil, logger), logger))
	return b
}

func seedIndex(t *testing.T, store *memory.IndexStore, userID string, items ...article.Article) {
	t.Helper()
	search, _ := article.Project(items)
	data, err := article.EncodeView(search)
	require.NoError(t, err)
	store.Put(article.SearchIndex.Key(userID), data)
}

func TestGetArticle(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewArticleRepository()
	store := memory.NewIndexStore()
	b := newQueryBus(t, repo, store)
	require.NoError(t, repo.Put(ctx, article.New("U", "a1", "A", "body", "t0")))

	result, err := b.Ask(ctx, queries.GetArticleQuery{UserID: "U", ArticleID: "a1"})
	require.NoError(t, err)
	assert.Equal(t, "body", result.(*article.Article).Content)

	result, err = b.Ask(ctx, queries.GetArticleQuery{UserID: "U", ArticleID: "missing"})
	require.NoError(t, err)
	assert.Nil(t, result)

	// Another user's article is not visible
	result, err = b.Ask(ctx, queries.GetArticleQuery{UserID: "other", ArticleID: "a1"})
	require.NoError(t, err)
	assert.Nil(t, result)

	_, err = b.Ask(ctx, queries.GetArticleQuery{UserID: "U"})
	assert.True(t, appErrors.IsValidation(err))
	assert.Zero(t, store.Saves())
}

func TestListArticles(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewArticleRepository()
	store := memory.NewIndexStore()
	b := newQueryBus(t, repo, store)

	t.Run("no index yet", func(t *testing.T) {
		result, err := b.Ask(ctx, queries.ListArticlesQuery{UserID: "U"})
		require.NoError(t, err)
		list := result.(*queries.ListArticlesResult)
		assert.Equal(t, 0, list.Count)
		assert.NotNil(t, list.Items)
	})

	t.Run("reads index only and drops content", func(t *testing.T) {
		seedIndex(t, store, "U",
			article.New("U", "a1", "First", "one", "t0"),
			article.New("U", "a2", "Second", "two", "t1"),
		)

		result, err := b.Ask(ctx, queries.ListArticlesQuery{UserID: "U"})
		require.NoError(t, err)
		list := result.(*queries.ListArticlesResult)
		require.Equal(t, 2, list.Count)
		assert.Equal(t, "a1", list.Items[0].ArticleID)
		assert.Equal(t, "Second", list.Items[1].Title)
		assert.Zero(t, repo.Count())
	})
}

func TestSearchArticles(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewArticleRepository()
	store := memory.NewIndexStore()
	b := newQueryBus(t, repo, store)
	seedIndex(t, store, "U",
		article.New("U", "a1", "A", "hello world", "t0"),
		article.New("U", "a2", "Hello again", "x", "t1"),
		article.New("U", "a3", "B", "nothing", "t2"),
	)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query returns everything", "", []string{"a1", "a2", "a3"}},
		{"case-insensitive title or content", "HELLO", []string{"a1", "a2"}},
		{"no match", "zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := b.Ask(ctx, queries.SearchArticlesQuery{UserID: "U", Query: tt.query})
			require.NoError(t, err)
			found := result.(*queries.SearchArticlesResult)
			assert.Equal(t, tt.want, found.Items.ArticleIDs())
			assert.Equal(t, len(tt.want), found.Count)
		})
	}
}

func TestSearchArticles_DegradedIndexIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := memory.NewIndexStore()
	store.SetError("Load", errors.New("timeout"))
	b := newQueryBus(t, memory.NewArticleRepository(), store)

	result, err := b.Ask(ctx, queries.SearchArticlesQuery{UserID: "U", Query: "x"})

	require.NoError(t, err)
	assert.Equal(t, 0, result.(*queries.SearchArticlesResult).Count)
}
