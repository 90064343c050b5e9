package remote

import (
	"errors"
	"fmt"
)

// ErrParseFailed marks a response body that did not match the search
// envelope. Non-fatal: the coordinator surfaces a notice and keeps running.
var ErrParseFailed = errors.New("malformed search response")

// FetchError covers transport failures and non-2xx responses. StatusCode is
// zero when the request never produced a response.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch failed: %v", e.Err)
	}
	return fmt.Sprintf("fetch failed: unexpected status code %d", e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
