// Package appsync turns gateway invocations into article commands and
// queries. One resolver serves every function; each entry point only enables
// its own field names.
package appsync

import (
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
)

// Field names accepted from the gateway
const (
	FieldGetArticle        = "getArticle"
	FieldListArticles      = "listArticles"
	FieldCreateArticle     = "createArticle"
	FieldUpdateArticle     = "updateArticle"
	FieldDeleteArticle     = "deleteArticle"
	FieldSearch            = "search"
	FieldSearchArticles    = "searchArticles"
	FieldGetImageUploadURL = "getImageUploadUrl"
)

// ArticleFields are served by the article manager function
var ArticleFields = []string{FieldGetArticle, FieldListArticles, FieldCreateArticle, FieldUpdateArticle, FieldDeleteArticle}

// SearchFields are served by the full-text search function
var SearchFields = []string{FieldSearch, FieldSearchArticles}

// UploadFields are served by the image uploader function
var UploadFields = []string{FieldGetImageUploadURL}

// Event is the direct Lambda resolver payload
type Event struct {
	Info      Info                           `json:"info"`
	Arguments json.RawMessage                `json:"arguments,omitempty"`
	Identity  *events.AppSyncCognitoIdentity `json:"identity,omitempty"`
}

// Info names the resolved field
type Info struct {
	FieldName  string `json:"fieldName"`
	ParentType string `json:"parentTypeName,omitempty"`
}

// UserID returns identity.sub, or "" when the caller is anonymous
func (e Event) UserID() string {
	if e.Identity == nil {
		return ""
	}
	return e.Identity.Sub
}

// NewEvent builds an envelope for fieldName. args is marshalled as the
// arguments object.
func NewEvent(fieldName, userID string, args interface{}) (Event, error) {
	event := Event{Info: Info{FieldName: fieldName}}
	if userID != "" {
		event.Identity = &events.AppSyncCognitoIdentity{Sub: userID}
	}
	if args != nil {
		raw, err := json.Marshal(args)
		if err != nil {
			return Event{}, err
		}
		event.Arguments = raw
	}
	return event, nil
}

type articleIDArgs struct {
	ArticleID string `json:"articleId"`
}

type articleInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type createArticleArgs struct {
	Input *articleInput `json:"input"`
}

type updateArticleArgs struct {
	ArticleID string        `json:"articleId"`
	Input     *articleInput `json:"input"`
}

type searchArgs struct {
	Query *string `json:"query"`
}

type uploadArgs struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}
