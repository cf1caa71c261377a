package inspect

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/nao1215/pdfredact/internal/model"
)

// DefaultMaxImages bounds how many embedded images are examined per document.
const DefaultMaxImages = 64

// Inspector finds metadata in documents.
type Inspector struct {
	maxImages int
	logger    *slog.Logger
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithMaxImages sets how many embedded images are examined.
// Non-positive values are ignored.
func WithMaxImages(n int) Option {
	return func(i *Inspector) {
		if n > 0 {
			i.maxImages = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Inspector) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// New creates an Inspector.
func New(opts ...Option) *Inspector {
	i := &Inspector{
		maxImages: DefaultMaxImages,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Inspect returns the metadata findings of file, most severe first.
// A nil file or one that is not a PDF yields no findings.
func (i *Inspector) Inspect(file *model.UploadedFile) []model.MetadataFinding {
	if file == nil || file.Ext() != ".pdf" {
		return nil
	}

	var findings []model.MetadataFinding
	findings = append(findings, inspectInfo(file.Data)...)
	findings = append(findings, inspectXMP(file.Data)...)
	for n, segment := range exifSegments(file.Data, i.maxImages) {
		findings = append(findings, inspectImage(segment, n+1)...)
	}
	findings = dedupe(findings)

	slices.SortStableFunc(findings, func(a, b model.MetadataFinding) int {
		return cmp.Compare(b.Severity, a.Severity)
	})

	if len(findings) > 0 {
		i.logger.Debug("metadata found",
			"digest", file.ShortDigest(),
			"findings", len(findings),
		)
	}
	return findings
}

func dedupe(findings []model.MetadataFinding) []model.MetadataFinding {
	type key struct{ kind, field, source string }
	seen := make(map[key]bool, len(findings))
	out := findings[:0]
	for _, f := range findings {
		k := key{f.Kind, f.Field, f.Source}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, f)
	}
	return out
}
