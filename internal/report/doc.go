// Package report renders session state for humans and tools.
//
// NewView turns a session.Snapshot into a View: the selected file, the
// loading and error state, and, after a successful submission, a summary of
// the document-wide counts and every redacted page with its own summary.
//
// Writers render Views:
//   - SimpleWriter: plain text for terminal display
//   - JSONWriter: structured JSON for tool integration
//   - MarkdownWriter: Markdown with a category table and a mermaid pie chart
//
// All writers implement Writer, so the CLI picks one by flag and
// MultiWriter can fan out to several destinations.
package report
