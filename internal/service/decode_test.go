package service

import (
	"errors"
	"testing"

	"github.com/nao1215/pdfredact/internal/model"
)

// TestDecode tests response classification.
func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		kind    model.OutcomeKind
		message string
	}{
		{
			name: "well-formed result is a success",
			body: `{"success":true,"redacted_text":["a","b"],"redaction_stats":[{"email_address":1},{}],"total_redactions":{"email_address":1},"total_pages":2}`,
			kind: model.OutcomeSuccess,
		},
		{
			name: "empty document is a success",
			body: `{"redacted_text":[],"redaction_stats":[],"total_redactions":{}}`,
			kind: model.OutcomeSuccess,
		},
		{
			name:    "error field becomes service error",
			body:    `{"error":"bad file"}`,
			kind:    model.OutcomeServiceError,
			message: "bad file",
		},
		{
			name:    "error field wins over result fields",
			body:    `{"error":"Only PDF files are allowed","redacted_text":[],"redaction_stats":[],"total_redactions":{}}`,
			kind:    model.OutcomeServiceError,
			message: "Only PDF files are allowed",
		},
		{
			name: "empty error string with results is a success",
			body: `{"error":"","redacted_text":["x"],"redaction_stats":[{}],"total_redactions":{}}`,
			kind: model.OutcomeSuccess,
		},
		{
			name:    "empty object is no results",
			body:    `{}`,
			kind:    model.OutcomeServiceError,
			message: model.MsgNoResults,
		},
		{
			name:    "missing total is no results",
			body:    `{"redacted_text":["x"],"redaction_stats":[{}]}`,
			kind:    model.OutcomeServiceError,
			message: model.MsgNoResults,
		},
		{
			name:    "null result field is no results",
			body:    `{"redacted_text":null,"redaction_stats":[],"total_redactions":{}}`,
			kind:    model.OutcomeServiceError,
			message: model.MsgNoResults,
		},
		{
			name:    "negative count is no results",
			body:    `{"redacted_text":["x"],"redaction_stats":[{"ssn":-1}],"total_redactions":{}}`,
			kind:    model.OutcomeServiceError,
			message: model.MsgNoResults,
		},
		{
			name:    "html body is a network error",
			body:    `<html>502 Bad Gateway</html>`,
			kind:    model.OutcomeNetworkError,
			message: model.MsgNetworkFailure,
		},
		{
			name:    "empty body is a network error",
			body:    ``,
			kind:    model.OutcomeNetworkError,
			message: model.MsgNetworkFailure,
		},
		{
			name:    "truncated body is a network error",
			body:    `{"redacted_text":["x"`,
			kind:    model.OutcomeNetworkError,
			message: model.MsgNetworkFailure,
		},
		{
			name:    "top-level array is no results",
			body:    `[1,2]`,
			kind:    model.OutcomeServiceError,
			message: model.MsgNoResults,
		},
		{
			name:    "numeric error is a service error",
			body:    `{"error":42}`,
			kind:    model.OutcomeServiceError,
			message: "42",
		},
		{
			name:    "object error is a service error",
			body:    `{"error": {"detail": "bad"}}`,
			kind:    model.OutcomeServiceError,
			message: `{"detail":"bad"}`,
		},
		{
			name:    "true error is a service error",
			body:    `{"error":true,"redacted_text":[],"redaction_stats":[],"total_redactions":{}}`,
			kind:    model.OutcomeServiceError,
			message: "true",
		},
		{
			name: "false error with results is a success",
			body: `{"error":false,"redacted_text":["x"],"redaction_stats":[{}],"total_redactions":{}}`,
			kind: model.OutcomeSuccess,
		},
		{
			name: "zero error with results is a success",
			body: `{"error":0,"redacted_text":["x"],"redaction_stats":[{}],"total_redactions":{}}`,
			kind: model.OutcomeSuccess,
		},
		{
			name:    "numeric page list is no results",
			body:    `{"redacted_text":5,"redaction_stats":[{}],"total_redactions":{}}`,
			kind:    model.OutcomeServiceError,
			message: model.MsgNoResults,
		},
		{
			name:    "string page list is no results",
			body:    `{"redacted_text":"x","redaction_stats":[{}],"total_redactions":{}}`,
			kind:    model.OutcomeServiceError,
			message: model.MsgNoResults,
		},
		{
			name:    "string stats list is no results",
			body:    `{"redacted_text":["x"],"redaction_stats":"x","total_redactions":{}}`,
			kind:    model.OutcomeServiceError,
			message: model.MsgNoResults,
		},
		{
			name:    "fractional count is no results",
			body:    `{"redacted_text":["x"],"redaction_stats":[{}],"total_redactions":{"ssn":1.5}}`,
			kind:    model.OutcomeServiceError,
			message: model.MsgNoResults,
		},
		{
			name:    "negative total is no results",
			body:    `{"redacted_text":["a"],"redaction_stats":[{}],"total_redactions":{"x":-1}}`,
			kind:    model.OutcomeServiceError,
			message: model.MsgNoResults,
		},
		{
			name: "ill-typed total pages is ignored",
			body: `{"redacted_text":["x"],"redaction_stats":[{}],"total_redactions":{},"total_pages":"one"}`,
			kind: model.OutcomeSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, _ := Decode([]byte(tt.body))
			if got.Kind != tt.kind {
				t.Fatalf("Kind = %v, expected %v (err: %v)", got.Kind, tt.kind, got.Err)
			}
			if got.Message() != tt.message {
				t.Errorf("Message() = %q, expected %q", got.Message(), tt.message)
			}
			if tt.kind == model.OutcomeNetworkError && !errors.Is(got.Err, ErrMalformedBody) {
				t.Errorf("expected ErrMalformedBody in chain, got %v", got.Err)
			}
		})
	}
}

// TestDecodeAlignment tests page/stats alignment on success.
func TestDecodeAlignment(t *testing.T) {
	t.Parallel()

	t.Run("short stats are padded with empty counts", func(t *testing.T) {
		t.Parallel()

		body := `{"redacted_text":["p1","p2","p3"],"redaction_stats":[{"ssn":2}],"total_redactions":{"ssn":2},"total_pages":3}`
		got, info := Decode([]byte(body))
		if !got.OK() {
			t.Fatalf("expected success, got %v", got.Err)
		}
		if got.Result.PageCount() != 3 {
			t.Fatalf("PageCount() = %d, expected 3", got.Result.PageCount())
		}
		if len(got.Result.PerPageStats) != 3 {
			t.Fatalf("len(PerPageStats) = %d, expected 3", len(got.Result.PerPageStats))
		}
		for i := 1; i < 3; i++ {
			if len(got.Result.PerPageStats[i]) != 0 {
				t.Errorf("page %d stats = %v, expected empty", i+1, got.Result.PerPageStats[i])
			}
		}
		if info.PaddedPages != 2 {
			t.Errorf("PaddedPages = %d, expected 2", info.PaddedPages)
		}
		if info.DeclaredPages != 3 {
			t.Errorf("DeclaredPages = %d, expected 3", info.DeclaredPages)
		}
	})

	t.Run("null stats entry counts as padded", func(t *testing.T) {
		t.Parallel()

		body := `{"redacted_text":["p1","p2"],"redaction_stats":[null,{"ssn":1}],"total_redactions":{"ssn":1}}`
		got, info := Decode([]byte(body))
		if !got.OK() {
			t.Fatalf("expected success, got %v", got.Err)
		}
		if got.Result.PerPageStats[0] == nil {
			t.Error("expected non-nil stats for page 1")
		}
		if info.PaddedPages != 1 {
			t.Errorf("PaddedPages = %d, expected 1", info.PaddedPages)
		}
		if info.DeclaredPages != -1 {
			t.Errorf("DeclaredPages = %d, expected -1", info.DeclaredPages)
		}
	})

	t.Run("total pages mismatch does not fail", func(t *testing.T) {
		t.Parallel()

		body := `{"redacted_text":["p1"],"redaction_stats":[{}],"total_redactions":{},"total_pages":9}`
		got, info := Decode([]byte(body))
		if !got.OK() {
			t.Fatalf("expected success, got %v", got.Err)
		}
		if info.DeclaredPages != 9 || info.Pages != 1 {
			t.Errorf("info = %+v, expected declared 9 and pages 1", info)
		}
	})
}
