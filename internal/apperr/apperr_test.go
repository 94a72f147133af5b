package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponse(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", Validation("Please fill full form!"), http.StatusBadRequest, "Please fill full form!"},
		{"duplicate", Duplicate("Email already registered!"), http.StatusConflict, "Email already registered!"},
		{"unauthorized", Unauthorized("User Not Authorized"), http.StatusUnauthorized, "User Not Authorized"},
		{"forbidden", Forbidden("Employer not allowed to access this resource."), http.StatusForbidden, "Employer not allowed to access this resource."},
		{"not found", NotFound("Job not found!"), http.StatusNotFound, "Job not found!"},
		{"empty message falls back to status text", NotFound(""), http.StatusNotFound, "Not Found"},
		{"wrapped app error", fmt.Errorf("handler: %w", Forbidden("nope")), http.StatusForbidden, "nope"},
		{"internal hides message", Internal("db exploded", errors.New("boom")), http.StatusInternalServerError, InternalMessage},
		{"plain error", errors.New("raw"), http.StatusInternalServerError, InternalMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := Response(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("token expired")
	err := Wrap(KindUnauthorized, "Json Web Token is expired, Try again!", cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, Is(err, KindUnauthorized))
	assert.False(t, Is(err, KindForbidden))
	assert.Equal(t, "Json Web Token is expired, Try again!: token expired", err.Error())
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("x")))
	assert.False(t, Is(nil, KindInternal))
}
