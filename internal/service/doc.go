// Package service is the client side of the redaction service boundary.
//
// Client.Redact uploads one document as a multipart form to
// {apiBase}/api/redact-pdf and classifies the answer into a model.Outcome:
//
//   - transport failure or a body that is not JSON: model.OutcomeNetworkError
//   - a non-empty "error" field: model.OutcomeServiceError with that message
//   - "redacted_text", "redaction_stats" and "total_redactions" present and
//     well-typed: model.OutcomeSuccess
//   - anything else: model.OutcomeServiceError with model.MsgNoResults
//
// The HTTP status code is logged but does not change the classification; the
// service reports its own failures in the body.
//
// Requests can be routed through a SOCKS5 proxy (WithProxy). There is no retry:
// a failed submission is retried by the user.
package service
