package client

import (
	"errors"
	"fmt"
)

// ErrTimeout is wrapped by any step whose HTTP call exceeded the client timeout.
var ErrTimeout = errors.New("request timed out")

// UploadError reports a failure of the image upload step. No record was
// created.
type UploadError struct {
	Detail string
	Err    error
}

func (e *UploadError) Error() string {
	return "image upload failed: " + e.Detail
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// PartialCreationError reports that the image was stored but the record was
// not. ImagePath is the orphaned upload.
type PartialCreationError struct {
	ImagePath string
	Detail    string
	Err       error
}

func (e *PartialCreationError) Error() string {
	return "failed to save record: " + e.Detail
}

func (e *PartialCreationError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx response from the API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}
