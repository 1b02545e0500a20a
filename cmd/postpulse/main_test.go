package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackendError(t *testing.T) {
	err := &BackendError{Message: "fetching 2026-06: connection refused"}
	assert.Equal(t, "fetching 2026-06: connection refused", err.Error())
}

func TestErrorTypeDetection(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType string
	}{
		{
			name:     "BackendError",
			err:      &BackendError{Message: "backend down"},
			wantType: "BackendError",
		},
		{
			name:     "regular error",
			err:      errors.New("config error"),
			wantType: "other",
		},
		{
			name:     "wrapped BackendError",
			err:      errors.Join(&BackendError{Message: "backend down"}, errors.New("additional context")),
			wantType: "BackendError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var backendErr *BackendError
			isBackend := errors.As(tt.err, &backendErr)

			if tt.wantType == "BackendError" {
				assert.True(t, isBackend, "expected error to be detected as BackendError")
			} else {
				assert.False(t, isBackend, "expected error NOT to be detected as BackendError")
			}
		})
	}
}
