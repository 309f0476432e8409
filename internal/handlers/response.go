package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-bank-client/internal/logger"
	"github.com/sbilibin2017/gw-bank-client/internal/models"
)

// MessageResponse is a plain confirmation.
// swagger:model MessageResponse
type MessageResponse struct {
	// Message
	// example: Logged out
	Message string `json:"message"`
}

// StatusFor maps an error to the HTTP status of the dashboard surface.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrActionInFlight),
		errors.Is(err, models.ErrLoginInProgress),
		errors.Is(err, models.ErrLoginCanceled):
		return http.StatusConflict
	}

	var e *models.Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case models.KindValidation:
		return http.StatusBadRequest
	case models.KindBackend:
		if e.Status >= 400 && e.Status < 500 {
			return e.Status
		}
		return http.StatusBadGateway
	case models.KindNetwork, models.KindResponseShape:
		return http.StatusBadGateway
	case models.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, op string, err error) {
	status := StatusFor(err)
	resp := models.ErrorResponse{Error: "internal server error", Kind: models.KindOf(err).String()}

	var e *models.Error
	if errors.As(err, &e) {
		resp.Error = e.Message
		resp.Field = e.Field
	}
	if status >= http.StatusInternalServerError {
		logger.Log.Errorw("request failed", "op", op, "status", status, "error", err)
	} else {
		logger.Log.Warnw("request rejected", "op", op, "status", status, "error", err)
	}
	writeJSON(w, status, resp)
}

func writeBadRequest(w http.ResponseWriter, op string, err error) {
	logger.Log.Errorw("failed to decode request", "op", op, "error", err)
	writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
		Error: "invalid request body",
		Kind:  models.KindValidation.String(),
	})
}
