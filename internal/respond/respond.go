// Package respond writes JSON responses and renders errors per the apperr
// taxonomy. Shared by the handlers and the auth middleware.
package respond

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"moodlog/internal/apperr"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error renders err per the taxonomy in apperr. Store failures are logged
// with their cause and surfaced as a generic message.
func Error(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError && logger != nil {
		logger.Error("request failed", zap.Error(err))
	}
	JSON(w, status, map[string]string{"message": err.Error()})
}
