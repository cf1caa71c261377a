package report

import (
	"fmt"
	"io"
	"strings"
)

const ruleWidth = 70

// SimpleWriter renders plain text for terminal display.
type SimpleWriter struct {
	baseWriter

	// pageText controls whether redacted page text is printed.
	pageText bool

	// verbose adds the file digest and the list of scanned categories.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithPageText controls whether redacted page text is printed.
// Enabled by default.
func WithPageText(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.pageText = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		pageText:   true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders one view.
func (w *SimpleWriter) Write(view *View) (int, error) {
	var sb strings.Builder
	w.writeView(&sb, view)
	return io.WriteString(w.output, sb.String())
}

// WriteBatch renders every view followed by a batch summary.
func (w *SimpleWriter) WriteBatch(views []*View) (int, error) {
	var sb strings.Builder
	for _, v := range views {
		w.writeView(&sb, v)
	}

	succeeded, failed := batchCounts(views)
	rule(&sb, "=")
	fmt.Fprintf(&sb, "Documents: %d  Redacted: %d  Failed: %d\n", len(views), succeeded, failed)
	for _, v := range views {
		if v.Failed() {
			fmt.Fprintf(&sb, "  [x] %s: %s\n", v.File, v.Error)
		}
	}
	rule(&sb, "=")
	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeView(sb *strings.Builder, view *View) {
	w.writeHeader(sb, view)

	if view.Error != "" {
		fmt.Fprintf(sb, "Error: %s\n\n", view.Error)
	}
	if view.Status == StatusRedacted {
		w.writeSummary(sb, view)
		w.writePages(sb, view)
	}
	if len(view.Metadata) > 0 {
		w.writeMetadata(sb, view)
	}
	if w.verbose {
		w.writeScanned(sb)
	}
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, view *View) {
	sb.WriteString("\n")
	rule(sb, "=")
	sb.WriteString("                        PDF REDACTION REPORT\n")
	rule(sb, "=")
	sb.WriteString("\n")

	file := view.File
	if file == "" {
		file = "(none)"
	}
	fmt.Fprintf(sb, "File:    %s\n", file)
	if w.verbose && view.Digest != "" {
		fmt.Fprintf(sb, "SHA3:    %s\n", view.Digest)
	}
	fmt.Fprintf(sb, "Status:  %s\n", statusLabel(view.Status))
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeSummary(sb *strings.Builder, view *View) {
	rule(sb, "-")
	sb.WriteString("REDACTION SUMMARY\n")
	rule(sb, "-")
	sb.WriteString("\n")
	fmt.Fprintf(sb, "  Pages:      %d\n", len(view.Pages))
	fmt.Fprintf(sb, "  Redactions: %d\n", view.Redactions)
	fmt.Fprintf(sb, "  %s\n\n", view.TotalSummary)
}

func (w *SimpleWriter) writePages(sb *strings.Builder, view *View) {
	for _, p := range view.Pages {
		rule(sb, "-")
		fmt.Fprintf(sb, "PAGE %d  (%s)\n", p.Number, p.Summary)
		rule(sb, "-")
		if w.pageText {
			sb.WriteString(p.Text)
			if !strings.HasSuffix(p.Text, "\n") {
				sb.WriteString("\n")
			}
		}
		sb.WriteString("\n")
	}
}

func (w *SimpleWriter) writeMetadata(sb *strings.Builder, view *View) {
	rule(sb, "-")
	sb.WriteString("DOCUMENT METADATA (not redacted)\n")
	rule(sb, "-")
	for _, f := range view.Metadata {
		fmt.Fprintf(sb, "  [%s] %s: %s (%s)\n", f.SeverityText, f.Title, f.Field, f.Source)
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeScanned(sb *strings.Builder) {
	sb.WriteString("Scanned for:\n")
	for _, c := range ScannedCategories {
		fmt.Fprintf(sb, "  [+] %s\n", c)
	}
	sb.WriteString("\n")
}

func rule(sb *strings.Builder, ch string) {
	sb.WriteString(strings.Repeat(ch, ruleWidth))
	sb.WriteString("\n")
}

func statusLabel(s Status) string {
	switch s {
	case StatusEmpty:
		return "No file selected"
	case StatusReady:
		return "Ready"
	case StatusProcessing:
		return "Processing..."
	case StatusRedacted:
		return "Redacted"
	case StatusFailed:
		return "FAILED"
	default:
		return string(s)
	}
}
