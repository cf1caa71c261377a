package report

import (
	"encoding/json"
	"io"
)

// JSONWriter outputs views as JSON.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed output.
	indent bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables two-space indented output.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs one view as a JSON object.
func (w *JSONWriter) Write(view *View) (int, error) {
	return w.writeJSON(view)
}

// BatchReport is the JSON shape of a batch run.
type BatchReport struct {
	Documents int     `json:"documents"`
	Redacted  int     `json:"redacted"`
	Failed    int     `json:"failed"`
	Results   []*View `json:"results"`
}

// WriteBatch outputs the views wrapped in a BatchReport.
func (w *JSONWriter) WriteBatch(views []*View) (int, error) {
	succeeded, failed := batchCounts(views)
	if views == nil {
		views = []*View{}
	}
	return w.writeJSON(&BatchReport{
		Documents: len(views),
		Redacted:  succeeded,
		Failed:    failed,
		Results:   views,
	})
}

// writeJSON marshals v and writes it with a trailing newline.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
