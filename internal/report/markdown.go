package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs views as Markdown, built with nao1215/markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs one view as a Markdown document.
func (w *MarkdownWriter) Write(view *View) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("PDF Redaction Report")
	md.PlainText("")
	w.writeDocument(md, view)
	w.writeScanned(md)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteBatch outputs an overview table followed by one section per view.
func (w *MarkdownWriter) WriteBatch(views []*View) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("PDF Redaction Batch Report")
	md.PlainText("")

	rows := make([][]string, len(views))
	for i, v := range views {
		detail := v.TotalSummary
		if v.Failed() {
			detail = v.Error
		}
		rows[i] = []string{"`" + v.File + "`", statusText(v), strconv.Itoa(v.Redactions), detail}
	}
	md.Table(markdown.TableSet{
		Header: []string{"File", "Status", "Redactions", "Details"},
		Rows:   rows,
	})
	md.PlainText("")

	succeeded, failed := batchCounts(views)
	if failed > 0 {
		md.Warningf("%d of %d document(s) failed.", failed, len(views))
	} else {
		md.Tip(strconv.Itoa(succeeded) + " document(s) redacted.")
	}
	md.PlainText("")

	for _, v := range views {
		md.H2(v.File)
		md.PlainText("")
		w.writeDocument(md, v)
	}
	w.writeScanned(md)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeDocument(md *markdown.Markdown, view *View) {
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"File", "`" + view.File + "`"},
			{"SHA3-256", "`" + view.Digest + "`"},
			{"Status", statusText(view)},
			{"Pages", strconv.Itoa(len(view.Pages))},
			{"Redactions", strconv.Itoa(view.Redactions)},
		},
	})
	md.PlainText("")

	if view.Status == StatusRedacted {
		w.writeTotals(md, view)
		w.writePages(md, view)
	}
	if len(view.Metadata) > 0 {
		w.writeMetadata(md, view)
	}
}

func (w *MarkdownWriter) writeMetadata(md *markdown.Markdown, view *View) {
	md.Warningf("The original file still carries %d metadata field(s) that redaction does not remove.", len(view.Metadata))
	md.PlainText("")

	rows := make([][]string, len(view.Metadata))
	for i, f := range view.Metadata {
		rows[i] = []string{f.SeverityText, f.Title, "`" + f.Field + "`", f.Source}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Finding", "Field", "Found in"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeTotals(md *markdown.Markdown, view *View) {
	if len(view.Total) == 0 {
		md.Tip("No sensitive information detected.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(view.Total))
	for i, e := range view.Total {
		rows[i] = []string{e.DisplayName, strconv.Itoa(e.Count)}
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(view.Redactions) + "**"})
	md.Table(markdown.TableSet{
		Header: []string{"Category", "Redactions"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writePieChart(md, view)
}

// writePieChart writes a mermaid pie chart of the document-wide counts.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, view *View) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Redactions by Category"),
		piechart.WithShowData(true),
	)
	for _, e := range view.Total {
		chart.LabelAndIntValue(e.DisplayName, uint64(e.Count))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writePages(md *markdown.Markdown, view *View) {
	for _, p := range view.Pages {
		md.PlainTextf("**Page %d**: %s", p.Number, p.Summary)
		md.PlainText("")
		md.Details("Redacted text of page "+strconv.Itoa(p.Number), p.Text)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeScanned(md *markdown.Markdown) {
	md.H2("Scanned Categories")
	md.PlainText("")
	md.BulletList(ScannedCategories...)
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [pdfredact](https://github.com/nao1215/pdfredact)*")
}

func statusText(view *View) string {
	switch view.Status {
	case StatusRedacted:
		return "✅ Redacted"
	case StatusFailed:
		return "❌ Failed - " + view.Error
	case StatusProcessing:
		return "⏳ Processing"
	default:
		return statusLabel(view.Status)
	}
}
