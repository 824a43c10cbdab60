package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"redmango/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: model.ErrCodeInternalError, Message: message})
}

// writeDomainError maps a service error to an HTTP status and a stable
// error code. Unknown errors become 500 without leaking internals.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusInternalServerError
		switch domainErr.Code {
		case model.ErrCodeFileTooLarge,
			model.ErrCodeMissingFile,
			model.ErrCodeUnsupportedExtension,
			model.ErrCodeInvalidPrice,
			model.ErrCodeEmptyCart:
			status = http.StatusBadRequest
		case model.ErrCodeMenuItemNotFound,
			model.ErrCodeCartNotFound:
			status = http.StatusNotFound
		case model.ErrCodePaymentFailed:
			status = http.StatusBadGateway
		}

		logger.Warn().
			Str("code", domainErr.Code).
			Int("status", status).
			Msg(domainErr.Message)
		writeJSON(w, status, model.ErrorResponse{Error: domainErr.Code, Message: domainErr.Message})
		return
	}

	if strings.Contains(err.Error(), "required") {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Error:   model.ErrCodeMissingField,
			Message: err.Error(),
		})
		return
	}

	logger.Error().Err(err).Msg("handler error")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Error:   model.ErrCodeInternalError,
		Message: "internal server error",
	})
}
