package apiclient

import (
	"errors"
	"fmt"
)

var (
	// ErrRequestFailed indicates the request never produced an HTTP response
	ErrRequestFailed = errors.New("apiclient.request_failed")

	// ErrDecodeResponse indicates a success response body could not be decoded
	ErrDecodeResponse = errors.New("apiclient.decode_response_failed")

	// ErrEncodeBody indicates the request body could not be encoded
	ErrEncodeBody = errors.New("apiclient.encode_body_failed")

	// ErrInvalidBaseURL indicates the configured base URL is unusable
	ErrInvalidBaseURL = errors.New("apiclient.invalid_base_url")
)

// APIError carries the backend's structured error message for any
// non-success HTTP status. When the response body is not parseable the
// Message falls back to the HTTP status text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsAPIError extracts an *APIError from an error chain.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
