package article

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ContentType of persisted index blobs.
const ContentType = "application/json"

// Kind identifies one of the two per-user index blobs.
type Kind string

const (
	SearchIndex Kind = "search"
	TreeIndex   Kind = "tree"
)

// Key returns the object key of the index blob for userID.
func (k Kind) Key(userID string) string {
	return fmt.Sprintf("users/%s/%s_index.json", userID, k)
}

// EncodeView serializes a view as a JSON array. Non-ASCII text and HTML
// characters are written as-is.
func EncodeView(view interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(view); err != nil {
		return nil, fmt.Errorf("failed to encode index: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// DecodeSearchView parses a persisted search view. Unknown fields, including
// a backupContent written by older writers, are dropped.
func DecodeSearchView(data []byte) (SearchView, error) {
	view := SearchView{}
	if len(bytes.TrimSpace(data)) == 0 {
		return view, nil
	}
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("failed to decode search index: %w", err)
	}
	if view == nil {
		view = SearchView{}
	}
	return view, nil
}

// DecodeTreeView parses a persisted tree view.
func DecodeTreeView(data []byte) (TreeView, error) {
	view := TreeView{}
	if len(bytes.TrimSpace(data)) == 0 {
		return view, nil
	}
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("failed to decode tree index: %w", err)
	}
	if view == nil {
		view = TreeView{}
	}
	return view, nil
}
