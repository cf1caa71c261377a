package session

import "errors"

var (
	// ErrSubmissionInFlight is returned by Begin while another submission
	// holds the session.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")

	// ErrNoFile is returned by Begin when no file is selected.
	ErrNoFile = errors.New("no file selected")
)
