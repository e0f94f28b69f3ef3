package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"sopgen/internal/domain"
	"sopgen/internal/httputil"
)

// handleError maps domain errors onto RFC 7807 responses. Conflict errors
// carry the conflicting resource in extra fields; anything unrecognized is
// logged and becomes a 500.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		extras := map[string]interface{}{}
		if conflict.ResourceType != "" {
			extras["resource_type"] = conflict.ResourceType
		}
		if conflict.ResourceID != "" {
			extras["resource_id"] = conflict.ResourceID
		}
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflict.Message, extras)
		return
	}

	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrLocked), errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, "forbidden")
	default:
		logger.Error("unhandled error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
