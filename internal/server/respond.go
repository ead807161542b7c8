package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	errs "github.com/snowdex/snowdex/pkg/errors"
)

// errorEnvelope is the JSON shape of every error response.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondJSON writes v with the given status.
func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

// respondRaw writes a pre-encoded JSON body, used by the response
// cache to replay memoized pages.
func (s *Server) respondRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		s.logger.Error("writing response", "error", err)
	}
}

// respondError renders err as the error envelope with the status its
// code maps to. Error responses are never cacheable.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	status := errs.StatusCode(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"error", err, "request_id", requestIDFromContext(r.Context()))
	}

	w.Header().Set("Cache-Control", "no-store")
	s.respondJSON(w, status, errorEnvelope{
		Error: errorBody{
			Code:    string(code),
			Message: errs.UserMessage(err),
		},
	})
}

// parsePage reads the page query parameter: absent means the first
// page, anything that is not a positive integer is a client error.
func parsePage(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, errs.New(errs.ErrCodeInvalidInput, "page must be a positive integer, got %q", raw)
	}
	return page, nil
}
