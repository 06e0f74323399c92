// Package respond writes JSON bodies and the standard error envelope.
package respond

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"jobly/internal/apperr"
	"jobly/internal/middleware"
)

func JSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// Error writes err as {"error":{"code","message"},"correlationId"}.
// Unclassified errors are logged and reported as a generic 500.
func Error(ctx context.Context, w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.ErrorContext(ctx, "request failed", "error", err, "correlationId", middleware.GetCorrelationID(ctx))
		message = "Internal Server Error"
	}
	writeError(ctx, w, apperr.Code(err), message, status)
}

func writeError(ctx context.Context, w http.ResponseWriter, code, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
		"correlationId": middleware.GetCorrelationID(ctx),
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
