package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	bferrors "github.com/matzehuels/blockfill/pkg/errors"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError responds with the error's code and user message. Broken engine
// invariants are logged with the full error chain.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := bferrors.GetCode(err)
	msg := bferrors.UserMessage(err)
	if code == "" {
		code = bferrors.ErrCodeInternal
	}
	if bferrors.IsFatal(err) || code == bferrors.ErrCodeInternal {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	writeJSON(w, statusFor(code), errorResponse{Error: msg, Code: string(code)})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code bferrors.Code) int {
	switch {
	case code == bferrors.ErrCodeSessionNotFound, code == bferrors.ErrCodeNotFound:
		return http.StatusNotFound
	case code == bferrors.ErrCodeTooManySessions:
		return http.StatusServiceUnavailable
	case strings.HasPrefix(string(code), "INVALID_"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody decodes a JSON request body into v. Unknown fields are
// rejected. An empty body is accepted only when optional is set.
func decodeBody(w http.ResponseWriter, r *http.Request, v any, optional bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) && optional {
			return nil
		}
		return bferrors.Wrap(bferrors.ErrCodeInvalidInput, err, "invalid JSON body")
	}
	return nil
}
