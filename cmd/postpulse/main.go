package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess = 0 // Command completed
	ExitBackend = 1 // Analytics backend unreachable
	ExitError   = 2 // Configuration or runtime error
)

// BackendError indicates the command itself was valid but the analytics
// backend could not be reached.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		// Check error type to determine exit code
		var backendErr *BackendError
		if errors.As(err, &backendErr) {
			os.Exit(ExitBackend)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
