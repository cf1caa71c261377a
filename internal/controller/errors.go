package controller

import "errors"

// ErrRedactorPanic is the network error cause recorded when the Redactor
// panics during a submission.
var ErrRedactorPanic = errors.New("redactor panicked")
