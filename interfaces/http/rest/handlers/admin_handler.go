package handlers

import (
	"net/http"

	"wikicollector-backend/application/services"

	"go.uber.org/zap"
)

// AdminHandler exposes maintenance operations
type AdminHandler struct {
	reconciler *services.ReconciliationService
	logger     *zap.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(reconciler *services.ReconciliationService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		reconciler: reconciler,
		logger:     logger,
	}
}

// Reconcile handles POST /admin/reconcile by rebuilding every user's index
func (h *AdminHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	result, err := h.reconciler.Reconcile(r.Context())
	if err != nil {
		h.logger.Error("Reconciliation request failed", zap.Error(err))
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message":      "Sync successful",
		"userCount":    result.UserCount,
		"articleCount": result.ArticleCount,
	})
}
