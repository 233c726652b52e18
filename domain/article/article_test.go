package article

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	a := New("user-1", "id-1", "A", "hello world", "2024-01-01T00:00:00Z")

	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
	assert.Nil(t, a.BackupContent)
}

func TestArticle_Apply(t *testing.T) {
	base := New("user-1", "id-1", "A", "hello world", "t0")

	t.Run("content change rotates backup", func(t *testing.T) {
		updated := base.Apply(Changes{Content: strPtr("goodbye")}, "t1")

		assert.Equal(t, "goodbye", updated.Content)
		require.NotNil(t, updated.BackupContent)
		assert.Equal(t, "hello world", *updated.BackupContent)
		assert.Equal(t, "A", updated.Title)
		assert.Equal(t, "t1", updated.UpdatedAt)
		assert.Equal(t, "t0", updated.CreatedAt)
	})

	t.Run("title only keeps content and backup", func(t *testing.T) {
		withBackup := base.Apply(Changes{Content: strPtr("v2")}, "t1")
		updated := withBackup.Apply(Changes{Title: strPtr("B")}, "t2")

		assert.Equal(t, "B", updated.Title)
		assert.Equal(t, "v2", updated.Content)
		require.NotNil(t, updated.BackupContent)
		assert.Equal(t, "hello world", *updated.BackupContent)
	})

	t.Run("empty changes refresh timestamp only", func(t *testing.T) {
		changes := Changes{}
		updated := base.Apply(changes, "t3")

		assert.True(t, changes.IsEmpty())
		assert.Equal(t, "t3", updated.UpdatedAt)
		assert.Equal(t, base.Content, updated.Content)
		assert.Nil(t, updated.BackupContent)
	})

	t.Run("source record is not mutated", func(t *testing.T) {
		_ = base.Apply(Changes{Content: strPtr("x")}, "t4")
		assert.Equal(t, "hello world", base.Content)
		assert.Nil(t, base.BackupContent)
	})
}

func TestSearchView_Without(t *testing.T) {
	view := SearchView{{ArticleID: "a"}, {ArticleID: "b"}, {ArticleID: "a"}}

	assert.Equal(t, []string{"b"}, view.Without("a").ArticleIDs())
	assert.Equal(t, []string{"a", "b", "a"}, view.Without("zzz").ArticleIDs())
	assert.Len(t, view, 3)
}
