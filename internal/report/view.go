package report

import (
	"github.com/nao1215/pdfredact/internal/model"
	"github.com/nao1215/pdfredact/internal/session"
	"github.com/nao1215/pdfredact/internal/stats"
)

// Status describes where a session is in its submission lifecycle.
type Status string

const (
	// StatusEmpty means no file is selected.
	StatusEmpty Status = "empty"
	// StatusReady means a file is selected and nothing has been submitted
	// since.
	StatusReady Status = "ready"
	// StatusProcessing means a submission is in flight.
	StatusProcessing Status = "processing"
	// StatusRedacted means the last submission succeeded.
	StatusRedacted Status = "redacted"
	// StatusFailed means the last submission ended with an error.
	StatusFailed Status = "failed"
)

// ScannedCategories lists the kinds of information the redaction service
// looks for.
var ScannedCategories = []string{
	"Personal names",
	"Email addresses",
	"Phone numbers",
	"Social Security Numbers",
	"Credit card numbers",
	"Dates",
	"Addresses",
	"Company names",
	"Financial information",
	"ID numbers",
	"Network information",
}

// View is the renderable form of a session.
type View struct {
	File         string `json:"file,omitempty"`
	Digest       string `json:"digest,omitempty"`
	Size         int64  `json:"size,omitempty"`
	SubmissionID string `json:"submission_id,omitempty"`
	Status       Status `json:"status"`
	Loading      bool   `json:"loading"`
	Error        string `json:"error,omitempty"`

	// TotalSummary is the formatted document-wide counts, set only when
	// a result is present.
	TotalSummary string        `json:"total_summary,omitempty"`
	Total        []stats.Entry `json:"total,omitempty"`
	Redactions   int           `json:"redactions"`
	Pages        []PageView    `json:"pages,omitempty"`

	// Metadata lists what the original document still carries outside its
	// pages. Set by the caller; NewView leaves it empty.
	Metadata []model.MetadataFinding `json:"metadata,omitempty"`
}

// PageView is one redacted page.
type PageView struct {
	// Number is 1-based.
	Number  int           `json:"number"`
	Text    string        `json:"text"`
	Summary string        `json:"summary"`
	Stats   []stats.Entry `json:"stats"`
}

// NewView builds a View from a snapshot.
func NewView(snap session.Snapshot) *View {
	v := &View{
		SubmissionID: snap.SubmissionID,
		Loading:      snap.Loading,
		Error:        snap.Error,
	}

	if snap.File != nil {
		v.File = snap.File.Name
		v.Digest = snap.File.Digest
		v.Size = snap.File.Size()
	}

	if snap.Result != nil {
		v.TotalSummary = stats.Format(snap.Result.TotalStats)
		v.Total = stats.Entries(snap.Result.TotalStats)
		v.Redactions = snap.Result.TotalStats.Total()
		v.Pages = pageViews(snap.Result)
	}

	v.Status = statusOf(snap)
	return v
}

func pageViews(result *model.RedactionResult) []PageView {
	pages := make([]PageView, result.PageCount())
	for i, text := range result.Pages {
		counts := result.PageStats(i)
		pages[i] = PageView{
			Number:  i + 1,
			Text:    string(text),
			Summary: stats.Format(counts),
			Stats:   stats.Entries(counts),
		}
	}
	return pages
}

func statusOf(snap session.Snapshot) Status {
	switch {
	case snap.Loading:
		return StatusProcessing
	case snap.Error != "":
		return StatusFailed
	case snap.Result != nil:
		return StatusRedacted
	case snap.File != nil:
		return StatusReady
	default:
		return StatusEmpty
	}
}

// Failed reports whether the view ended in an error.
func (v *View) Failed() bool {
	return v.Status == StatusFailed
}
