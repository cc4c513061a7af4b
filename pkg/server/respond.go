package server

import (
	"encoding/json"
	"net/http"

	errs "github.com/matzehuels/fattree/pkg/errors"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps an error code to its HTTP status.
func statusFor(code errs.Code) int {
	switch code {
	case errs.ErrCodeInvalidTopology:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidHost, errs.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errs.ErrCodeSessionNotFound, errs.ErrCodeNotFound:
		return http.StatusNotFound
	case errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// writeError reports err to the client. Errors without a client-facing code
// are logged and replaced by a generic message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errs.GetCode(err)
	status := statusFor(code)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		if code == "" {
			code = errs.ErrCodeInternal
		}
		writeJSON(w, status, ErrorResponse{Code: code, Message: "internal error"})
		return
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: errs.UserMessage(err)})
}
