package handlers

import (
	"encoding/json"
	"net/http"

	appErrors "wikicollector-backend/pkg/errors"

	"go.uber.org/zap"
)

func respondJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}

// respondAppError maps err to its HTTP status. Only AppError messages reach
// the client.
func respondAppError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := appErrors.HTTPStatusOf(err)
	message := "Internal server error"
	if appErr := appErrors.GetAppError(err); appErr != nil {
		message = appErr.Message
	}
	respondError(w, logger, status, message)
}
