package article

// Project derives both views from a user's complete list of records. It is
// the only place view shapes are defined: the per-write synchronizer and the
// reconciliation job both go through it. Input order is preserved and the
// returned slices are never nil, so an empty index encodes as [].
func Project(items []Article) (SearchView, TreeView) {
	search := make(SearchView, 0, len(items))
	tree := make(TreeView, 0, len(items))
	for _, item := range items {
		entry := SearchEntry{
			UserID:    item.UserID,
			ArticleID: item.ArticleID,
			Title:     item.Title,
			Content:   item.Content,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		}
		search = append(search, entry)
		tree = append(tree, entry.Tree())
	}
	return search, tree
}
