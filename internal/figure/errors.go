// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package figure

import (
	"errors"
	"fmt"
	"net/http"
)

// # Error Taxonomy

// ErrorKind tags the closed set of provider failures.
type ErrorKind string

const (
	KindNone          ErrorKind = ""
	KindConfiguration ErrorKind = "configuration"
	KindUpstream      ErrorKind = "upstream"
	KindEmptyData     ErrorKind = "empty_data"
)

// Reason distinguishes upstream failures by status code.
type Reason string

const (
	ReasonUnauthorized Reason = "unauthorized"
	ReasonNotFound     Reason = "not found"
	ReasonGeneric      Reason = "generic"
)

// ReasonFor maps a backend status code to its [Reason].
func ReasonFor(status int) Reason {
	switch status {
	case http.StatusForbidden:
		return ReasonUnauthorized
	case http.StatusNotFound:
		return ReasonNotFound
	default:
		return ReasonGeneric
	}
}

// ConfigurationError reports a missing credential or sheet identifier.
// It is raised before any network call.
type ConfigurationError struct {
	// Missing names the absent configuration value.
	Missing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing configuration: %s is not set", e.Missing)
}

// UpstreamError reports a non-success answer from the spreadsheet backend.
// Status is 0 when the request never produced a response.
type UpstreamError struct {
	Status     int
	StatusText string
	Reason     Reason
	Cause      error
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("Google Sheets API error: %v", e.Cause)
	}
	text := e.StatusText
	if text == "" {
		text = http.StatusText(e.Status)
	}
	return fmt.Sprintf("Google Sheets API error: %d %s (%s)", e.Status, text, e.Reason)
}

func (e *UpstreamError) Unwrap() error { return e.Cause }

// ErrEmptyData is the [EmptyDataError] returned when a success payload has no values field.
var ErrEmptyData = &EmptyDataError{}

// EmptyDataError reports a success response lacking the data field entirely.
// A present but empty field is a valid, empty result.
type EmptyDataError struct{}

func (e *EmptyDataError) Error() string {
	return "Google Sheets API returned no values field"
}

// KindOf returns the [ErrorKind] of err, or [KindNone] when err is not a provider failure.
func KindOf(err error) ErrorKind {
	var (
		configErr   *ConfigurationError
		upstreamErr *UpstreamError
		emptyErr    *EmptyDataError
	)
	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &configErr):
		return KindConfiguration
	case errors.As(err, &upstreamErr):
		return KindUpstream
	case errors.As(err, &emptyErr):
		return KindEmptyData
	default:
		return KindNone
	}
}
