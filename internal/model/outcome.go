package model

// OutcomeKind tags how a submission resolved.
type OutcomeKind int

const (
	// OutcomeSuccess means the service returned well-formed results.
	OutcomeSuccess OutcomeKind = iota

	// OutcomeServiceError means the service reported an error or returned
	// a body without result fields.
	OutcomeServiceError

	// OutcomeNetworkError means the round trip itself failed.
	OutcomeNetworkError

	// OutcomeRejected means the submission never left the client because a
	// local precondition failed.
	OutcomeRejected
)

// String returns the outcome kind name used in logs and reports.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeServiceError:
		return "service_error"
	case OutcomeNetworkError:
		return "network_error"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of one submission.
// Result is set only for OutcomeSuccess; Err is set for every other kind.
type Outcome struct {
	Kind   OutcomeKind
	Result *RedactionResult
	Err    error
}

// Succeeded returns a success outcome. A nil result fails closed into a
// service error with MsgNoResults.
func Succeeded(result *RedactionResult) Outcome {
	if result == nil {
		return ServiceFailed(MsgNoResults)
	}
	return Outcome{Kind: OutcomeSuccess, Result: result}
}

// ServiceFailed returns a service error outcome carrying the service's
// message. An empty message is replaced by MsgNoResults.
func ServiceFailed(message string) Outcome {
	if message == "" {
		message = MsgNoResults
	}
	return Outcome{Kind: OutcomeServiceError, Err: &ServiceError{Message: message}}
}

// NetworkFailed returns a network error outcome wrapping the transport cause.
func NetworkFailed(cause error) Outcome {
	return Outcome{Kind: OutcomeNetworkError, Err: &NetworkError{Cause: cause}}
}

// Rejected returns a validation outcome with the given reason.
func Rejected(reason string) Outcome {
	return Outcome{Kind: OutcomeRejected, Err: &ValidationError{Reason: reason}}
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess && o.Result != nil
}

// Message returns the user-facing error message, or "" on success.
func (o Outcome) Message() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}
