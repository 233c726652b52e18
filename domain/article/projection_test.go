package article

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func sampleArticles() []Article {
	return []Article{
		{
			UserID:        "user-1",
			ArticleID:     "b",
			Title:         "Second",
			Content:       "new body",
			BackupContent: strPtr("old body"),
			CreatedAt:     "2024-01-01T00:00:00Z",
			UpdatedAt:     "2024-01-03T00:00:00Z",
		},
		{
			UserID:    "user-1",
			ArticleID: "a",
			Title:     "First",
			Content:   "hello world",
			CreatedAt: "2024-01-02T00:00:00Z",
			UpdatedAt: "2024-01-02T00:00:00Z",
		},
	}
}

func TestProject_TreeIsSearchWithoutContent(t *testing.T) {
	search, tree := Project(sampleArticles())

	require.Len(t, search, 2)
	require.Len(t, tree, 2)
	for i := range search {
		assert.Equal(t, search[i].Tree(), tree[i])
	}
}

func TestProject_PreservesInputOrder(t *testing.T) {
	search, tree := Project(sampleArticles())

	assert.Equal(t, []string{"b", "a"}, search.ArticleIDs())
	assert.Equal(t, "b", tree[0].ArticleID)
	assert.Equal(t, "a", tree[1].ArticleID)
}

func TestProject_NeverLeaksBackupContent(t *testing.T) {
	search, tree := Project(sampleArticles())

	searchJSON, err := EncodeView(search)
	require.NoError(t, err)
	treeJSON, err := EncodeView(tree)
	require.NoError(t, err)

	assert.NotContains(t, string(searchJSON), "backupContent")
	assert.NotContains(t, string(searchJSON), "old body")
	assert.NotContains(t, string(treeJSON), "backupContent")
	assert.NotContains(t, string(treeJSON), `"content"`)

	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal(treeJSON, &raw))
	for _, entry := range raw {
		assert.NotContains(t, entry, "content")
	}
}

func TestProject_EmptyInputEncodesAsEmptyArray(t *testing.T) {
	search, tree := Project(nil)

	searchJSON, err := EncodeView(search)
	require.NoError(t, err)
	treeJSON, err := EncodeView(tree)
	require.NoError(t, err)

	assert.Equal(t, "[]", string(searchJSON))
	assert.Equal(t, "[]", string(treeJSON))
}

func TestEncodeView_Golden(t *testing.T) {
	items := []Article{{
		UserID:        "user-1",
		ArticleID:     "a1",
		Title:         "日本語 <メモ>",
		Content:       "a & b",
		BackupContent: strPtr("previous"),
		CreatedAt:     "2024-01-01T00:00:00Z",
		UpdatedAt:     "2024-01-02T00:00:00Z",
	}}
	search, tree := Project(items)

	searchJSON, err := EncodeView(search)
	require.NoError(t, err)
	treeJSON, err := EncodeView(tree)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "search_view", searchJSON)
	g.Assert(t, "tree_view", treeJSON)
}

func TestDecodeSearchView(t *testing.T) {
	t.Run("drops legacy backupContent", func(t *testing.T) {
		data := []byte(`[{"userId":"u","articleId":"a","title":"t","content":"c","backupContent":"old","createdAt":"x","updatedAt":"y"}]`)

		view, err := DecodeSearchView(data)
		require.NoError(t, err)
		require.Len(t, view, 1)
		assert.Nil(t, view[0].Article().BackupContent)
		assert.Equal(t, "c", view[0].Content)
	})

	t.Run("empty and null blobs are empty views", func(t *testing.T) {
		for _, data := range [][]byte{nil, []byte("  "), []byte("null")} {
			view, err := DecodeSearchView(data)
			require.NoError(t, err)
			assert.NotNil(t, view)
			assert.Empty(t, view)
		}
	})

	t.Run("corrupt blob is an error", func(t *testing.T) {
		_, err := DecodeSearchView([]byte("{not json"))
		assert.Error(t, err)
	})
}

func TestKind_Key(t *testing.T) {
	assert.Equal(t, "users/u-1/search_index.json", SearchIndex.Key("u-1"))
	assert.Equal(t, "users/u-1/tree_index.json", TreeIndex.Key("u-1"))
}
