package handlers

import (
	"errors"
	"net/http"

	"taskgarden/internal/logger"
	"taskgarden/internal/service"

	"go.uber.org/zap"
)

// handleServiceError converts any service error to a JSON response.
// Business errors keep their localized message; everything else is a 500
// so that no raw fault reaches the caller unmapped.
func handleServiceError(w http.ResponseWriter, err error) {
	var busErr *service.BusinessError
	if errors.As(err, &busErr) {
		statusCode := mapBusinessErrorToHTTP(busErr.Code)

		logger.Warn("HTTP: business error",
			zap.String("error_code", busErr.Code),
			zap.Int("http_status", statusCode))

		responseWithError(w, statusCode, busErr.Message)
		return
	}

	logger.Error("HTTP: service error", err)
	responseWithError(w, http.StatusInternalServerError, err.Error())
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeUnauthorized:
		return http.StatusUnauthorized
	case service.CodeValidation:
		return http.StatusBadRequest
	case service.CodeConflict:
		// duplicates answer 400, not 409; clients treat them as input errors
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
