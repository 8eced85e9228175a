package domain

import (
	"errors"
	"fmt"
)

var (
	ErrReportNotReady  = errors.New("report is not ready for download")
	ErrMapReportScope  = errors.New("map report with domain none requires an ip restriction")
	ErrEmptyKBQuery    = errors.New("knowledge base query selects no vulnerabilities")
	ErrMissingTemplate = errors.New("no map report template configured")
	ErrInvalidArgument = errors.New("invalid argument")
)

// TransportError is a network or authentication failure. StatusCode is zero
// when no HTTP response was received.
type TransportError struct {
	Call       string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("qualys %s: http status %d: %v", e.Call, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("qualys %s: %v", e.Call, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError carries the code and message of a server error envelope verbatim.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("qualys api error %s: %s", e.Code, e.Message)
}

// MalformedResponseError reports an element that is missing or unparsable
// where no sentinel value applies.
type MalformedResponseError struct {
	Element string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed response: %s", e.Element)
	}
	return fmt.Sprintf("malformed response: %s: %v", e.Element, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// InvalidStateError is returned before any network call when a scan
// transition is not allowed from its current status.
type InvalidStateError struct {
	Ref       string
	Current   string
	Attempted string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("scan %s: cannot %s from status %q", e.Ref, e.Attempted, e.Current)
}

type NotReadyError struct {
	ID     int64
	Status string
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("report %d has status %q: %v", e.ID, e.Status, ErrReportNotReady)
}

func (e *NotReadyError) Is(target error) bool {
	return target == ErrReportNotReady
}
