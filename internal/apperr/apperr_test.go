package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"jobly/internal/apperr"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"Validation", fmt.Errorf("%w: no data supplied", apperr.ErrValidation), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"NotFound", fmt.Errorf("%w: no job: 7", apperr.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"Unauthorized", apperr.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"Unclassified", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"DoubleWrapped", fmt.Errorf("update: %w", fmt.Errorf("%w: no job: 1", apperr.ErrNotFound)), http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, apperr.HTTPStatus(tt.err))
			assert.Equal(t, tt.code, apperr.Code(tt.err))
		})
	}
}

func TestHTTPStatus_Nil(t *testing.T) {
	assert.Equal(t, http.StatusOK, apperr.HTTPStatus(nil))
}
