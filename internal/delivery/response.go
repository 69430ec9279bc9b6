package delivery

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lgbarn/movetree-go/internal/errors"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Status int `json:"Status"`
	Body   any `json:"Body,omitempty"`
}

// ErrorResponse is the Body of a failed request.
type ErrorResponse struct {
	ErrorDescription string `json:"ErrorDescription"`
}

const internalErrorJSON = `{"Status":500,"Body":{"ErrorDescription":"internal server error"}}`

// WriteResponseWithStatus writes body in the envelope with the given status.
func WriteResponseWithStatus(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(Response{Status: status, Body: body})
	if err != nil {
		writeInternalError(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeInternalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = fmt.Fprintln(w, internalErrorJSON)
}

// statusFor maps the error taxonomy onto HTTP statuses. Duplicate moves
// also wrap ErrIllegalMove, so they are matched first.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrStudyNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrDuplicateMove),
		errors.Is(err, errors.ErrNoFirstMoveAlternative):
		return http.StatusConflict
	case errors.Is(err, errors.ErrIllegalMove),
		errors.Is(err, errors.ErrParseFailure),
		errors.Is(err, errors.ErrInvalidFEN):
		return http.StatusUnprocessableEntity
	case errors.IsNavigation(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
