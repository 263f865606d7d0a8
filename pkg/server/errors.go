package server

import (
	"context"
	stderrors "errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/vango-dev/vreconcile/internal/errors"
)

// ErrorBody is the JSON shape of error responses and stream error messages.
type ErrorBody struct {
	Code   string `json:"code,omitempty"`
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func errorBody(err error) ErrorBody {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return ErrorBody{Code: e.Code, Error: e.Message, Detail: e.Detail}
	}
	return ErrorBody{Error: err.Error()}
}

// statusFor maps an error to an HTTP status.
func statusFor(err error) int {
	var e *errors.Error
	if stderrors.As(err, &e) {
		switch e.Code {
		case "E504":
			return http.StatusNotFound
		case "E501", "E502", "E503":
			return http.StatusUnprocessableEntity
		}
		if e.Category == errors.CategoryConstruction {
			return http.StatusUnprocessableEntity
		}
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorBody(err))
}
