package delivery

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lgbarn/movetree-go/internal/errors"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errors.Wrapf(errors.ErrStudyNotFound, "study x"), http.StatusNotFound},
		{"duplicate", fmt.Errorf("%w: %w", errors.ErrIllegalMove, errors.ErrDuplicateMove), http.StatusConflict},
		{"illegal", &errors.MoveError{Err: errors.ErrIllegalMove, MoveText: "Ke3"}, http.StatusUnprocessableEntity},
		{"parse", &errors.ParseError{Err: errors.ErrParseFailure}, http.StatusUnprocessableEntity},
		{"fen", errors.ErrInvalidFEN, http.StatusUnprocessableEntity},
		{"path", errors.ErrPathNotFound, http.StatusBadRequest},
		{"target", errors.ErrInvalidCursorTarget, http.StatusBadRequest},
		{"ply", errors.ErrPlyIndexOutOfRange, http.StatusBadRequest},
		{"first move alternative", fmt.Errorf("%w: %w", errors.ErrPlyIndexOutOfRange, errors.ErrNoFirstMoveAlternative), http.StatusConflict},
		{"other", fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestWriteResponseWithStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResponseWithStatus(rec, http.StatusTeapot, ErrorResponse{ErrorDescription: "short and stout"})

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"Status":418,"Body":{"ErrorDescription":"short and stout"}}`, rec.Body.String())
}

func TestWriteResponseUnencodable(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResponseWithStatus(rec, http.StatusOK, make(chan int))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, internalErrorJSON, rec.Body.String())
}
