package contentclient

import (
	"fmt"
)

// RemoteRequestError reports a failed call to the content service: either a
// transport failure (Err set) or a non-2xx response (StatusCode set).
type RemoteRequestError struct {
	Op         string
	Method     string
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteRequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.Path, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s %s: status %d: %s", e.Op, e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s %s: status %d", e.Op, e.Method, e.Path, e.StatusCode)
}

func (e *RemoteRequestError) Unwrap() error {
	return e.Err
}
