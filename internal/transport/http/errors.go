package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/joaoppegoraro/garage-management/internal/domain"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeUnknownEventType   = "unknown_event_type"
	codeInvalidDate        = "invalid_date"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps a business error onto an HTTP status, reusing the
// machine code the error already carries. Unknown errors become opaque 500s.
func writeDomainError(w http.ResponseWriter, err error) {
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}
	writeError(w, statusForError(domainErr), domainErr.Code, domainErr.Message)
}

func statusForError(err *domain.Error) int {
	switch err {
	case domain.ErrPlateNotFound, domain.ErrSpaceNotFound, domain.ErrSectorNotFound:
		return http.StatusNotFound
	case domain.ErrDuplicateEntry, domain.ErrGarageFull, domain.ErrSpaceConflict,
		domain.ErrSectorAlreadyExists, domain.ErrSpaceAlreadyExists:
		return http.StatusConflict
	case domain.ErrDataInconsistency:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
