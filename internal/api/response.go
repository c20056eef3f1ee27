package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/probekit/pkg/classify"
	"github.com/dmitrymomot/probekit/pkg/memo"
	"github.com/dmitrymomot/probekit/pkg/probe"
)

// JSONResponse is the envelope of every API response.
type JSONResponse struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body JSONResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respond(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, JSONResponse{Data: data})
}

func respondError(w http.ResponseWriter, err error) {
	status, detail := errorToDetail(err)
	writeJSON(w, status, JSONResponse{Error: detail})
}

// errorToDetail maps domain errors onto status codes. Anything unrecognised
// is a 500 whose message does not leak the cause.
func errorToDetail(err error) (int, *ErrorDetail) {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code, &ErrorDetail{Code: httpErr.Key, Message: http.StatusText(httpErr.Code)}
	case errors.Is(err, ErrMissingContentType), errors.Is(err, ErrInvalidJSON), errors.Is(err, ErrMissingSignature):
		return http.StatusBadRequest, &ErrorDetail{Code: "invalid_request", Message: err.Error()}
	case errors.Is(err, probe.ErrInvalidSnapshot):
		return http.StatusBadRequest, &ErrorDetail{Code: "invalid_snapshot", Message: err.Error()}
	case errors.Is(err, memo.ErrEmptyEnvironmentID):
		return http.StatusBadRequest, &ErrorDetail{Code: "invalid_environment_id", Message: err.Error()}
	case errors.Is(err, memo.ErrNotFound):
		return http.StatusNotFound, &ErrorDetail{Code: "environment_not_found", Message: err.Error()}
	case errors.Is(err, classify.ErrUnknownField):
		return http.StatusNotFound, &ErrorDetail{Code: "unknown_field", Message: err.Error()}
	case errors.Is(err, memo.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, &ErrorDetail{Code: "store_unavailable", Message: memo.ErrStoreUnavailable.Error()}
	}
	return http.StatusInternalServerError, &ErrorDetail{Code: ErrInternalServerError.Key, Message: http.StatusText(http.StatusInternalServerError)}
}
