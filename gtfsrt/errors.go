package gtfsrt

import "fmt"

// TransportError reports a failed HTTP exchange with a feed endpoint.
// StatusCode is zero when the request never completed.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a payload that could not be parsed as a FeedMessage.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
