package report

import "io"

// Writer renders views to a destination.
type Writer interface {
	// Write renders one view.
	Write(view *View) (int, error)

	// WriteBatch renders the views of a batch run, in order.
	WriteBatch(views []*View) (int, error)
}

// MultiWriter writes to multiple Writers.
// Our Writer renders views, not bytes, so io.MultiWriter does not fit.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders the view with every writer. Stops on the first error.
func (m *MultiWriter) Write(view *View) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(view)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteBatch renders the views with every writer. Stops on the first error.
func (m *MultiWriter) WriteBatch(views []*View) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteBatch(views)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter holds the output destination shared by all writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// batchCounts returns how many views succeeded and failed.
func batchCounts(views []*View) (succeeded, failed int) {
	for _, v := range views {
		switch v.Status {
		case StatusRedacted:
			succeeded++
		case StatusFailed:
			failed++
		}
	}
	return succeeded, failed
}
