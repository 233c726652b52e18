// Package handlers serves the article operations over HTTP. Every handler
// builds the same invocation envelope the gateway sends and runs it through
// the shared resolver.
package handlers

import (
	"encoding/json"
	"net/http"

	"wikicollector-backend/interfaces/appsync"
	"wikicollector-backend/pkg/auth"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ArticleRequest is the body of create and update requests
type ArticleRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// UploadRequest is the body of POST /uploads
type UploadRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

// ArticleHandler handles article, search and upload requests
type ArticleHandler struct {
	resolver *appsync.Resolver
	logger   *zap.Logger
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(resolver *appsync.Resolver, logger *zap.Logger) *ArticleHandler {
	return &ArticleHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// ListArticles handles GET /articles
func (h *ArticleHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, appsync.FieldListArticles, nil, http.StatusOK)
}

// CreateArticle handles POST /articles
func (h *ArticleHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req ArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	h.resolve(w, r, appsync.FieldCreateArticle, map[string]interface{}{"input": req}, http.StatusCreated)
}

// GetArticle handles GET /articles/{articleID}
func (h *ArticleHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	articleID := chi.URLParam(r, "articleID")

	result, ok := h.call(w, r, appsync.FieldGetArticle, map[string]interface{}{"articleId": articleID})
	if !ok {
		return
	}
	if result == nil {
		respondError(w, h.logger, http.StatusNotFound, "article not found")
		return
	}
	respondJSON(w, h.logger, http.StatusOK, result)
}

// UpdateArticle handles PUT /articles/{articleID}
func (h *ArticleHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	articleID := chi.URLParam(r, "articleID")

	var req ArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	h.resolve(w, r, appsync.FieldUpdateArticle, map[string]interface{}{
		"articleId": articleID,
		"input":     req,
	}, http.StatusOK)
}

// DeleteArticle handles DELETE /articles/{articleID}
func (h *ArticleHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	articleID := chi.URLParam(r, "articleID")

	if _, ok := h.call(w, r, appsync.FieldDeleteArticle, map[string]interface{}{"articleId": articleID}); !ok {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search handles GET /search?q=. A missing q matches every article.
func (h *ArticleHandler) Search(w http.ResponseWriter, r *http.Request) {
	args := map[string]interface{}{}
	if values := r.URL.Query(); values.Has("q") {
		args["query"] = values.Get("q")
	}
	h.resolve(w, r, appsync.FieldSearch, args, http.StatusOK)
}

// IssueUploadURL handles POST /uploads
func (h *ArticleHandler) IssueUploadURL(w http.ResponseWriter, r *http.Request) {
	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	h.resolve(w, r, appsync.FieldGetImageUploadURL, req, http.StatusOK)
}

func (h *ArticleHandler) resolve(w http.ResponseWriter, r *http.Request, field string, args interface{}, status int) {
	result, ok := h.call(w, r, field, args)
	if !ok {
		return
	}
	respondJSON(w, h.logger, status, result)
}

// call runs field for the authenticated user. On failure the error response
// is already written and ok is false.
func (h *ArticleHandler) call(w http.ResponseWriter, r *http.Request, field string, args interface{}) (interface{}, bool) {
	event, err := appsync.NewEvent(field, auth.UserIDFromContext(r.Context()), args)
	if err != nil {
		h.logger.Error("Failed to build event", zap.String("operation", field), zap.Error(err))
		respondError(w, h.logger, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}

	result, err := h.resolver.Handle(r.Context(), event)
	if err != nil {
		respondAppError(w, h.logger, err)
		return nil, false
	}
	return result, true
}
