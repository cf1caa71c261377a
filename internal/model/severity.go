package model

// Severity represents how much a piece of leftover document metadata can
// reveal about the author or the origin of a document.
type Severity int

const (
	// SeverityInfo indicates metadata with no direct identity impact.
	SeverityInfo Severity = iota

	// SeverityLow indicates metadata useful only for correlation,
	// such as the producing library or a timestamp.
	SeverityLow

	// SeverityMedium indicates metadata that narrows down the source,
	// such as the authoring application or a stable document ID.
	SeverityMedium

	// SeverityHigh indicates metadata that likely names a person.
	SeverityHigh

	// SeverityCritical indicates metadata that pinpoints a person or place,
	// such as GPS coordinates in an embedded photo.
	SeverityCritical
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Metadata finding kinds.
const (
	FindingPDFAuthor     = "pdf_author"
	FindingPDFCreator    = "pdf_creator"
	FindingPDFProducer   = "pdf_producer"
	FindingPDFTitle      = "pdf_title"
	FindingPDFKeywords   = "pdf_keywords"
	FindingPDFDocumentID = "pdf_document_id"
	FindingPDFTimezone   = "pdf_timezone"
	FindingEXIFGPS       = "exif_gps"
	FindingEXIFCamera    = "exif_camera"
	FindingEXIFSerial    = "exif_serial"
	FindingEXIFSoftware  = "exif_software"
	FindingEXIFAuthor    = "exif_author"
	FindingEXIFDateTime  = "exif_datetime"
	FindingEXIFComputer  = "exif_computer"
)

// FindingInfo describes a finding kind.
type FindingInfo struct {
	Severity       Severity
	Title          string
	Recommendation string
}

// findingInfoMapping is the single source of severity and wording for
// each finding kind.
var findingInfoMapping = map[string]FindingInfo{
	FindingEXIFGPS: {
		Severity:       SeverityCritical,
		Title:          "GPS coordinates in an embedded image",
		Recommendation: "Strip EXIF data from images before embedding them.",
	},
	FindingPDFAuthor: {
		Severity:       SeverityHigh,
		Title:          "Document author",
		Recommendation: "Clear the Author field in the document properties.",
	},
	FindingEXIFAuthor: {
		Severity:       SeverityHigh,
		Title:          "Author or copyright in an embedded image",
		Recommendation: "Strip EXIF data from images before embedding them.",
	},
	FindingEXIFSerial: {
		Severity:       SeverityHigh,
		Title:          "Device serial number in an embedded image",
		Recommendation: "Strip EXIF data from images before embedding them.",
	},
	FindingPDFCreator: {
		Severity:       SeverityMedium,
		Title:          "Authoring application",
		Recommendation: "Export through a tool that does not record the creator.",
	},
	FindingPDFDocumentID: {
		Severity:       SeverityMedium,
		Title:          "Document identifier",
		Recommendation: "Regenerate the document so its XMP IDs cannot be correlated.",
	},
	FindingPDFTimezone: {
		Severity:       SeverityMedium,
		Title:          "Timestamp with timezone",
		Recommendation: "Remove creation and modification dates from the document properties.",
	},
	FindingEXIFCamera: {
		Severity:       SeverityMedium,
		Title:          "Camera make or model in an embedded image",
		Recommendation: "Strip EXIF data from images before embedding them.",
	},
	FindingEXIFComputer: {
		Severity:       SeverityMedium,
		Title:          "Host computer name in an embedded image",
		Recommendation: "Strip EXIF data from images before embedding them.",
	},
	FindingPDFTitle: {
		Severity:       SeverityLow,
		Title:          "Document title or subject",
		Recommendation: "Check that the title and subject do not repeat redacted text.",
	},
	FindingPDFKeywords: {
		Severity:       SeverityLow,
		Title:          "Document keywords",
		Recommendation: "Check that the keywords do not repeat redacted text.",
	},
	FindingPDFProducer: {
		Severity:       SeverityLow,
		Title:          "PDF producer library",
		Recommendation: "No action needed unless the producer is unusual.",
	},
	FindingEXIFSoftware: {
		Severity:       SeverityLow,
		Title:          "Editing software in an embedded image",
		Recommendation: "Strip EXIF data from images before embedding them.",
	},
	FindingEXIFDateTime: {
		Severity:       SeverityLow,
		Title:          "Timestamp in an embedded image",
		Recommendation: "Strip EXIF data from images before embedding them.",
	},
}

// GetSeverity returns the severity level for a finding kind.
// Returns SeverityInfo if the kind is not in the mapping.
func GetSeverity(kind string) Severity {
	if info, ok := findingInfoMapping[kind]; ok {
		return info.Severity
	}
	return SeverityInfo
}

// GetFindingInfo returns the full finding information for a finding kind.
func GetFindingInfo(kind string) FindingInfo {
	if info, ok := findingInfoMapping[kind]; ok {
		return info
	}
	return FindingInfo{
		Severity:       SeverityInfo,
		Title:          "Unknown metadata",
		Recommendation: "Review the document properties manually.",
	}
}

// MetadataFinding is one piece of metadata left in a submitted document.
// The redaction service only returns page text, so metadata is never
// redacted. The value itself is not kept: it is the information being
// warned about.
type MetadataFinding struct {
	Kind         string   `json:"kind"`
	Title        string   `json:"title"`
	Field        string   `json:"field"`
	Source       string   `json:"source"`
	Severity     Severity `json:"-"`
	SeverityText string   `json:"severity"`
}

// NewMetadataFinding builds a finding of kind for field found in source.
func NewMetadataFinding(kind, field, source string) MetadataFinding {
	info := GetFindingInfo(kind)
	return MetadataFinding{
		Kind:         kind,
		Title:        info.Title,
		Field:        field,
		Source:       source,
		Severity:     info.Severity,
		SeverityText: info.Severity.String(),
	}
}
