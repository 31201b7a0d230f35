package remote

import "fmt"

// DefaultErrorMessage is used when a failed response carries no error payload.
const DefaultErrorMessage = "failed to load participants"

// InvalidPayloadMessage is used when a success response is not a participant list.
const InvalidPayloadMessage = "invalid participants payload"

// NetworkError reports a transport-level failure: host unreachable, connection
// reset, timeout of the underlying HTTP client.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RemoteError reports a reachable server answering with a non-success status.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string { return e.Message }
