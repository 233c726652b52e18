// Package article holds the wiki article record and the two denormalized
// views derived from it: the search view (everything except the backup
// content) and the tree view (metadata only).
package article

// Article is the authoritative record kept in the record store.
// UserID + ArticleID is the identity.
type Article struct {
	UserID        string  `json:"userId" dynamodbav:"userId"`
	ArticleID     string  `json:"articleId" dynamodbav:"articleId"`
	Title         string  `json:"title" dynamodbav:"title"`
	Content       string  `json:"content" dynamodbav:"content"`
	BackupContent *string `json:"backupContent,omitempty" dynamodbav:"backupContent,omitempty"`
	CreatedAt     string  `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt     string  `json:"updatedAt" dynamodbav:"updatedAt"`
}

// New builds a freshly created article. Both timestamps are the same instant
// and no backup content exists yet.
func New(userID, articleID, title, content, now string) Article {
	return Article{
		UserID:    userID,
		ArticleID: articleID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Changes is a partial update. Nil fields are left untouched.
type Changes struct {
	Title   *string
	Content *string
}

// IsEmpty reports whether the update only refreshes the timestamp.
func (c Changes) IsEmpty() bool {
	return c.Title == nil && c.Content == nil
}

// Apply returns a copy of a with the changes merged in. A content change
// moves the current content into BackupContent first.
func (a Article) Apply(c Changes, now string) Article {
	updated := a
	if c.Title != nil {
		updated.Title = *c.Title
	}
	if c.Content != nil {
		previous := a.Content
		updated.BackupContent = &previous
		updated.Content = *c.Content
	}
	updated.UpdatedAt = now
	return updated
}

// SearchEntry is one element of the search view.
type SearchEntry struct {
	UserID    string `json:"userId"`
	ArticleID string `json:"articleId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Article converts the entry back into a record without backup content.
func (e SearchEntry) Article() Article {
	return Article{
		UserID:    e.UserID,
		ArticleID: e.ArticleID,
		Title:     e.Title,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// Tree drops the content.
func (e SearchEntry) Tree() TreeEntry {
	return TreeEntry{
		UserID:    e.UserID,
		ArticleID: e.ArticleID,
		Title:     e.Title,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// TreeEntry is one element of the tree view. It is also the shape returned
// by listArticles.
type TreeEntry struct {
	UserID    string `json:"userId"`
	ArticleID string `json:"articleId"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// SearchView is the full per-user search index.
type SearchView []SearchEntry

// TreeView is the full per-user tree index.
type TreeView []TreeEntry

// ArticleIDs returns the ids in index order.
func (v SearchView) ArticleIDs() []string {
	ids := make([]string, 0, len(v))
	for _, e := range v {
		ids = append(ids, e.ArticleID)
	}
	return ids
}

// Articles converts every entry back into a record.
func (v SearchView) Articles() []Article {
	items := make([]Article, 0, len(v))
	for _, e := range v {
		items = append(items, e.Article())
	}
	return items
}

// Without returns the view with every entry for articleID removed.
func (v SearchView) Without(articleID string) SearchView {
	kept := make(SearchView, 0, len(v))
	for _, e := range v {
		if e.ArticleID != articleID {
			kept = append(kept, e)
		}
	}
	return kept
}
