package response

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	appErrors "github.com/LDtheGHOST/Portfolio-Project-sub000/pkg/errors"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes v with the given status
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are gone already, nothing left to tell the client.
		zap.L().Warn("encoding response", zap.Error(err))
	}
}

// Error maps err to its status code and writes {"error": message}.
// Unexpected errors are logged with their cause and answered with a generic message.
func Error(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	status := appErrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	JSON(w, status, ErrorResponse{Error: appErrors.PublicMessage(err)})
}

// Decode reads a JSON body into v. An empty or malformed body is a validation error.
func Decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return appErrors.ErrInvalidBody
	}
	return nil
}
