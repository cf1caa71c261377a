package model

import "errors"

// User-facing messages of the error taxonomy.
const (
	// MsgNoFileSelected is surfaced when a submission is attempted without a file.
	MsgNoFileSelected = "no file selected"

	// MsgNoResults is surfaced when the service answers without an error
	// and without usable result fields.
	MsgNoResults = "no results returned"

	// MsgNetworkFailure is surfaced for every transport-level failure.
	// Transport details are kept out of the user-facing message.
	MsgNetworkFailure = "failed to process the document"
)

var (
	// ErrFileTooLarge is returned by LoadUploadedFile when the file exceeds
	// the configured upload limit.
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")

	// ErrNotRegularFile is returned by LoadUploadedFile for directories.
	ErrNotRegularFile = errors.New("not a regular file")
)

// ValidationError reports a local precondition failure.
// No network call is made when it occurs.
type ValidationError struct {
	Reason string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return e.Reason
}

// ServiceError reports that the redaction service declined the request or
// answered without mandatory result fields.
type ServiceError struct {
	Message string
}

// Error implements error.
func (e *ServiceError) Error() string {
	return e.Message
}

// NetworkError reports a transport failure: unreachable host, timeout, or a
// body that could not be decoded. Error always returns MsgNetworkFailure;
// the cause is available through errors.Unwrap for logging.
type NetworkError struct {
	Cause error
}

// Error implements error.
func (e *NetworkError) Error() string {
	return MsgNetworkFailure
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Cause
}
