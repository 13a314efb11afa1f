package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMissingFieldError(t *testing.T) {
	err := NewMissingFieldError("attendance")

	assert.Equal(t, CodeMissingField, err.Code)
	assert.Equal(t, "attendance", err.Field)
	assert.Equal(t, CategoryValidation, err.Category)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Contains(t, err.Error(), "Missing required field: attendance")
}

func TestNewOutOfRangeError(t *testing.T) {
	err := NewOutOfRangeError("attendance", "Attendance must be between 0 and 100%")

	assert.Equal(t, CodeOutOfRange, err.Code)
	assert.Equal(t, "attendance", err.Field)
	assert.Contains(t, err.Error(), "Attendance must be between 0 and 100%")
}

func TestNewInvalidCategoryError(t *testing.T) {
	err := NewInvalidCategoryError("family_support", "Family Support", []string{"Low", "Medium", "High"})

	assert.Equal(t, CodeInvalidCategory, err.Code)
	assert.Equal(t, "family_support", err.Field)
	assert.Contains(t, err.Error(), "Family Support must be one of: Low, Medium, High")
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "missing field is validation", err: NewMissingFieldError("attendance"), expected: true},
		{name: "out of range is validation", err: NewOutOfRangeError("attendance", "bad"), expected: true},
		{name: "internal error is not validation", err: NewInternalError("boom", nil), expected: false},
		{name: "plain error is not validation", err: stderrors.New("boom"), expected: false},
		{name: "wrapped validation error is validation", err: fmt.Errorf("context: %w", NewMissingFieldError("attendance")), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidation(tt.err))
		})
	}
}

func TestToAppError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ToAppError(nil))
	})

	t.Run("app errors pass through", func(t *testing.T) {
		original := NewMissingFieldError("attendance")
		assert.Same(t, original, ToAppError(original))
	})

	t.Run("plain errors become internal", func(t *testing.T) {
		err := ToAppError(stderrors.New("boom"))
		require.NotNil(t, err)
		assert.Equal(t, "INTERNAL_ERROR", err.Code)
		assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
	})
}

func TestNewInternalErrorWrapsCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := NewInternalError("failed to persist", cause)

	assert.Equal(t, CategoryInternal, err.Category)
	assert.ErrorIs(t, err, cause)
}

func TestNewRateLimitError(t *testing.T) {
	err := NewRateLimitError("30")

	assert.Equal(t, "RATE_LIMIT_EXCEEDED", err.Code)
	assert.Equal(t, CategoryRateLimit, err.Category)
	assert.Equal(t, http.StatusTooManyRequests, err.HTTPStatus)
}

func TestSafeCloseNil(t *testing.T) {
	assert.NotPanics(t, func() {
		SafeClose(nil, "nothing")
	})
}
