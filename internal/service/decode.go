package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/nao1215/pdfredact/internal/model"
)

// envelope keeps every known field raw so presence and type can be checked
// separately. Unknown fields such as "success" are ignored.
type envelope struct {
	Error           json.RawMessage `json:"error"`
	RedactedText    json.RawMessage `json:"redacted_text"`
	RedactionStats  json.RawMessage `json:"redaction_stats"`
	TotalRedactions json.RawMessage `json:"total_redactions"`
	TotalPages      json.RawMessage `json:"total_pages"`
}

// DecodeInfo carries response details that are logged but do not change the
// outcome.
type DecodeInfo struct {
	// Pages is the number of pages in redacted_text.
	Pages int

	// PaddedPages is how many pages had no entry in redaction_stats.
	PaddedPages int

	// DeclaredPages is total_pages as sent by the service, or -1 if absent
	// or not an integer.
	DeclaredPages int
}

// Decode classifies a response body.
//
// Only a body that is not valid JSON is a network error wrapping
// ErrMalformedBody. A non-empty "error" value of any type wins over the
// result fields. Any other body whose result fields are missing, of the
// wrong type or carry negative counts fails closed into a service error with
// model.MsgNoResults.
func Decode(data []byte) (model.Outcome, DecodeInfo) {
	info := DecodeInfo{DeclaredPages: -1}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return malformed("body is not JSON"), info
	}

	var env envelope
	if trimmed[0] != '{' || json.Unmarshal(trimmed, &env) != nil {
		return model.ServiceFailed(model.MsgNoResults), info
	}

	if msg, ok := errorMessage(env.Error); ok {
		return model.ServiceFailed(msg), info
	}

	if present(env.TotalPages) {
		var n int
		if err := json.Unmarshal(env.TotalPages, &n); err == nil {
			info.DeclaredPages = n
		}
	}

	if !present(env.RedactedText) || !present(env.RedactionStats) || !present(env.TotalRedactions) {
		return model.ServiceFailed(model.MsgNoResults), info
	}

	var pages []model.PageText
	var perPage []model.CategoryCounts
	var total model.CategoryCounts
	if json.Unmarshal(env.RedactedText, &pages) != nil ||
		json.Unmarshal(env.RedactionStats, &perPage) != nil ||
		json.Unmarshal(env.TotalRedactions, &total) != nil {
		return model.ServiceFailed(model.MsgNoResults), info
	}

	if hasNegative(total) {
		return model.ServiceFailed(model.MsgNoResults), info
	}
	for _, counts := range perPage {
		if hasNegative(counts) {
			return model.ServiceFailed(model.MsgNoResults), info
		}
	}

	info.Pages = len(pages)
	if missing := len(pages) - len(perPage); missing > 0 {
		info.PaddedPages = missing
	}
	for i := 0; i < len(perPage) && i < len(pages); i++ {
		if perPage[i] == nil {
			info.PaddedPages++
		}
	}

	return model.Succeeded(model.NewRedactionResult(pages, perPage, total)), info
}

// errorMessage returns the message carried by the "error" field and whether
// it counts as set. Strings are used as they are. null, false, 0 and "" are
// unset; any other value is reported as its compact JSON text.
func errorMessage(raw json.RawMessage) (string, bool) {
	if !present(raw) {
		return "", false
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	switch v := v.(type) {
	case string:
		return v, v != ""
	case bool:
		if !v {
			return "", false
		}
	case float64:
		if v == 0 {
			return "", false
		}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw), true
	}
	return buf.String(), true
}

// present reports whether a raw field was sent with a non-null value.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

func malformed(detail string) model.Outcome {
	return model.NetworkFailed(fmt.Errorf("%w: %s", ErrMalformedBody, detail))
}

func hasNegative(counts model.CategoryCounts) bool {
	for _, n := range counts {
		if n < 0 {
			return true
		}
	}
	return false
}
