package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"wikicollector-backend/application/ports"
	"wikicollector-backend/domain/article"
	appErrors "wikicollector-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewArticleRepository()

	a := article.New("user-1", "id-1", "A", "hello world", "t0")
	require.NoError(t, repo.Put(ctx, a))

	got, err := repo.Get(ctx, "user-1", "id-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, a, *got)

	content := "goodbye"
	updated, err := repo.Update(ctx, "user-1", "id-1", article.Changes{Content: &content}, "t1")
	require.NoError(t, err)
	require.NotNil(t, updated.BackupContent)
	assert.Equal(t, "hello world", *updated.BackupContent)

	require.NoError(t, repo.Delete(ctx, "user-1", "id-1"))
	got, err = repo.Get(ctx, "user-1", "id-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again is fine
	assert.NoError(t, repo.Delete(ctx, "user-1", "id-1"))
}

func TestArticleRepository_UpdateMissing(t *testing.T) {
	repo := NewArticleRepository()

	_, err := repo.Update(context.Background(), "user-1", "nope", article.Changes{}, "t1")
	assert.True(t, appErrors.IsNotFound(err))
	assert.Zero(t, repo.Count())
}

func TestArticleRepository_ScanPages(t *testing.T) {
	ctx := context.Background()
	repo := NewArticleRepository()
	repo.PageSize = 2

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Put(ctx, article.New(fmt.Sprintf("user-%d", i%2), fmt.Sprintf("id-%d", i), "t", "c", "t0")))
	}

	var all []article.Article
	var cursor ports.ScanCursor
	pages := 0
	for {
		page, err := repo.Scan(ctx, cursor)
		require.NoError(t, err)
		all = append(all, page.Items...)
		pages++
		if page.Next == nil {
			break
		}
		cursor = page.Next
	}

	assert.Equal(t, 3, pages)
	assert.Len(t, all, 5)
	assert.Equal(t, "user-0", all[0].UserID)
	assert.Equal(t, "user-1", all[4].UserID)
}

func TestArticleRepository_SetError(t *testing.T) {
	repo := NewArticleRepository()
	repo.SetError("Put", errors.New("throttled"))

	err := repo.Put(context.Background(), article.New("u", "a", "t", "c", "t0"))
	assert.EqualError(t, err, "throttled")

	repo.ClearErrors()
	assert.NoError(t, repo.Put(context.Background(), article.New("u", "a", "t", "c", "t0")))
}

func TestIndexStore_LoadSave(t *testing.T) {
	ctx := context.Background()
	store := NewIndexStore()

	_, err := store.Load(ctx, article.SearchIndex, "user-1")
	assert.ErrorIs(t, err, ports.ErrIndexNotFound)

	require.NoError(t, store.Save(ctx, article.TreeIndex, "user-1", []byte("[]")))
	data, err := store.Load(ctx, article.TreeIndex, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	assert.Equal(t, 1, store.Saves())

	store.SetError("Save:tree", errors.New("denied"))
	assert.NoError(t, store.Save(ctx, article.SearchIndex, "user-1", []byte("[]")))
	assert.Error(t, store.Save(ctx, article.TreeIndex, "user-1", []byte("[]")))
}
