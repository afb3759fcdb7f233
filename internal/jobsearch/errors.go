package jobsearch

import (
	"errors"
	"fmt"
)

var ErrNotConfigured = errors.New("job search api key not configured")

// ErrorKind classifies why a fetch did not produce a result.
type ErrorKind string

const (
	KindNotConfigured ErrorKind = "not_configured"
	KindTransport     ErrorKind = "transport"
	KindStatus        ErrorKind = "status"
	KindDecode        ErrorKind = "decode"
	KindRejected      ErrorKind = "rejected"
)

// FetchError is the failure side of Fetch.
type FetchError struct {
	Kind   ErrorKind
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("job search %s (http %d): %v", e.Kind, e.Status, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("job search %s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("job search %s", e.Kind)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Kind reports the FetchError kind wrapped in err, or "" if there is none.
func Kind(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
