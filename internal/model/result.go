package model

// PageText is the redacted content of one page.
// Its position in RedactionResult.Pages is the page index.
type PageText string

// CategoryCounts maps a redaction category name (e.g. "personal_name",
// "email_address") to the number of occurrences that were redacted.
// Counts are non-negative.
type CategoryCounts map[string]int

// Total returns the sum of all counts.
func (c CategoryCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Clone returns a copy of c. A nil receiver yields an empty, non-nil map.
func (c CategoryCounts) Clone() CategoryCounts {
	out := make(CategoryCounts, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// RedactionResult is the decoded result of a successful submission.
//
// Invariant: len(PerPageStats) == len(Pages). Use NewRedactionResult to build
// one; it pads missing page stats with empty counts.
type RedactionResult struct {
	// Pages holds the redacted text of every page in page order.
	Pages []PageText `json:"pages"`

	// PerPageStats holds the category counts of every page, aligned by
	// index with Pages. An entry is never nil.
	PerPageStats []CategoryCounts `json:"per_page_stats"`

	// TotalStats holds the document-wide category counts.
	TotalStats CategoryCounts `json:"total_stats"`
}

// NewRedactionResult builds a RedactionResult whose per-page stats are aligned
// with pages. Stats missing for a page (short slice or nil entry) become empty
// counts; entries beyond the last page are dropped. A nil total becomes empty.
func NewRedactionResult(pages []PageText, perPage []CategoryCounts, total CategoryCounts) *RedactionResult {
	if pages == nil {
		pages = []PageText{}
	}

	aligned := make([]CategoryCounts, len(pages))
	for i := range pages {
		if i < len(perPage) && perPage[i] != nil {
			aligned[i] = perPage[i]
			continue
		}
		aligned[i] = CategoryCounts{}
	}

	if total == nil {
		total = CategoryCounts{}
	}

	return &RedactionResult{
		Pages:        pages,
		PerPageStats: aligned,
		TotalStats:   total,
	}
}

// PageCount returns the number of pages.
func (r *RedactionResult) PageCount() int {
	return len(r.Pages)
}

// PageStats returns the stats for page index i (0-based).
// An out-of-range index yields empty counts rather than a panic.
func (r *RedactionResult) PageStats(i int) CategoryCounts {
	if i < 0 || i >= len(r.PerPageStats) || r.PerPageStats[i] == nil {
		return CategoryCounts{}
	}
	return r.PerPageStats[i]
}
