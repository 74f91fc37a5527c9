package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "error with cause",
			err: Wrap(KindConfig, "load", "failed to load config",
				errors.New("file not found")),
			contains: []string{"[config:load]", "failed to load config", "file not found"},
		},
		{
			name:     "error without cause",
			err:      New(KindValidation, "client.create", "name is required"),
			contains: []string{"[validation:client.create]", "name is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(errStr, substr) {
					t.Errorf("error string %q does not contain %q", errStr, substr)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	wrappedErr := Wrap(KindStorage, "test", "wrapped", originalErr)

	if !errors.Is(wrappedErr, originalErr) {
		t.Error("Unwrap should return the original error")
	}
}

func TestIsKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		expected bool
	}{
		{
			name:     "direct error kind match",
			err:      New(KindAuth, "token.verify", "invalid token"),
			kind:     KindAuth,
			expected: true,
		},
		{
			name:     "wrapped error kind match",
			err:      Wrap(KindStorage, "test", "message", errors.New("cause")),
			kind:     KindStorage,
			expected: true,
		},
		{
			name:     "error kind mismatch",
			err:      New(KindConfig, "test", "message"),
			kind:     KindAuth,
			expected: false,
		},
		{
			name:     "non-typed error",
			err:      errors.New("plain error"),
			kind:     KindConfig,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsKind(tt.err, tt.kind)
			if result != tt.expected {
				t.Errorf("IsKind() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{New(KindValidation, "op", "bad input"), http.StatusBadRequest},
		{New(KindAuth, "op", "bad token"), http.StatusUnauthorized},
		{New(KindForbidden, "op", "wrong role"), http.StatusForbidden},
		{New(KindNotFound, "op", "missing row"), http.StatusNotFound},
		{New(KindStorage, "op", "disk failure"), http.StatusInternalServerError},
		{errors.New("plain error"), http.StatusInternalServerError},
		{fmt.Errorf("deep: %w", New(KindAuth, "op", "expired")), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.expected {
			t.Errorf("HTTPStatus(%v) = %d, expected %d", tt.err, got, tt.expected)
		}
	}
}
