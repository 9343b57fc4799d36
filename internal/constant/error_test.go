package constant

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{ErrInvalidSlides, http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", ErrHTMLRequired), http.StatusBadRequest},
		{ErrInvalidParams, http.StatusBadRequest},
		{ErrConvertFailed, http.StatusInternalServerError},
		{ErrParseFailed, http.StatusInternalServerError},
		{ErrTooManyRequests, http.StatusTooManyRequests},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetErrorCode(tt.err), fmt.Sprint(tt.err))
	}
}

func TestCategory(t *testing.T) {
	wrapped := fmt.Errorf("%w: %v", ErrConvertFailed, errors.New("zip failed"))
	assert.Equal(t, ErrConvertFailed, Category(wrapped))
	assert.Equal(t, ErrInternalError, Category(errors.New("x")))
}
