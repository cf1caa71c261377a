package inspect

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/nao1215/pdfredact/internal/model"
)

const (
	sourceInfo = "document info"
	sourceXMP  = "xmp"
)

// infoField is one Info dictionary entry and the finding it produces.
type infoField struct {
	key     string
	kind    string
	pattern *regexp.Regexp
}

func newInfoField(key, kind string) infoField {
	// Literal strings may contain escaped parentheses; hex strings are
	// delimited by angle brackets.
	return infoField{
		key:     key,
		kind:    kind,
		pattern: regexp.MustCompile(`/` + key + `\s*(?:\(((?:\\.|[^\\)])*)\)|<([0-9A-Fa-f\s]*)>)`),
	}
}

var infoFields = []infoField{
	newInfoField("Author", model.FindingPDFAuthor),
	newInfoField("Creator", model.FindingPDFCreator),
	newInfoField("Producer", model.FindingPDFProducer),
	newInfoField("Title", model.FindingPDFTitle),
	newInfoField("Subject", model.FindingPDFTitle),
	newInfoField("Keywords", model.FindingPDFKeywords),
	newInfoField("CreationDate", model.FindingPDFTimezone),
	newInfoField("ModDate", model.FindingPDFTimezone),
}

// xmpField is one XMP property and the finding it produces.
type xmpField struct {
	name    string
	kind    string
	pattern *regexp.Regexp
}

var xmpFields = []xmpField{
	{"dc:creator", model.FindingPDFAuthor, regexp.MustCompile(`(?s)<dc:creator[^>]*>.*?<rdf:li[^>]*>([^<]+)</rdf:li>`)},
	{"xmp:CreatorTool", model.FindingPDFCreator, regexp.MustCompile(`xmp:CreatorTool(?:>([^<]+)<|="([^"]+)")`)},
	{"pdf:Producer", model.FindingPDFProducer, regexp.MustCompile(`pdf:Producer(?:>([^<]+)<|="([^"]+)")`)},
	{"xmpMM:DocumentID", model.FindingPDFDocumentID, regexp.MustCompile(`xmpMM:DocumentID(?:>([^<]+)<|="([^"]+)")`)},
	{"xmpMM:InstanceID", model.FindingPDFDocumentID, regexp.MustCompile(`xmpMM:InstanceID(?:>([^<]+)<|="([^"]+)")`)},
	{"xmpMM:OriginalDocumentID", model.FindingPDFDocumentID, regexp.MustCompile(`xmpMM:OriginalDocumentID(?:>([^<]+)<|="([^"]+)")`)},
}

// timezonePattern matches the offset of a PDF date, e.g. +09'00'.
// "Z" means UTC and reveals nothing.
var timezonePattern = regexp.MustCompile(`^(?:D:)?\d{4,14}[+-]\d{2}'?(?:\d{2}'?)?$`)

// utf16BOM marks a PDF text string encoded as UTF-16BE.
var utf16BOM = []byte{0xFE, 0xFF}

// inspectInfo reports Info dictionary entries with a non-empty value.
func inspectInfo(data []byte) []model.MetadataFinding {
	var findings []model.MetadataFinding
	for _, f := range infoFields {
		for _, m := range f.pattern.FindAllSubmatch(data, -1) {
			var value string
			if m[2] != nil {
				value = decodeHexString(m[2])
			} else {
				value = decodeLiteralString(m[1])
			}
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			if f.kind == model.FindingPDFTimezone && !timezonePattern.MatchString(value) {
				continue
			}
			findings = append(findings, model.NewMetadataFinding(f.kind, "/"+f.key, sourceInfo))
			break
		}
	}
	return findings
}

// inspectXMP reports XMP properties with a non-empty value.
func inspectXMP(data []byte) []model.MetadataFinding {
	if !bytes.Contains(data, []byte("<x:xmpmeta")) && !bytes.Contains(data, []byte("<rdf:RDF")) {
		return nil
	}

	var findings []model.MetadataFinding
	for _, f := range xmpFields {
		m := f.pattern.FindSubmatch(data)
		if m == nil {
			continue
		}
		value := ""
		for _, g := range m[1:] {
			if len(g) > 0 {
				value = string(g)
				break
			}
		}
		if strings.TrimSpace(value) == "" {
			continue
		}
		findings = append(findings, model.NewMetadataFinding(f.kind, f.name, sourceXMP))
	}
	return findings
}

// decodeLiteralString resolves the escapes of a PDF literal string and
// decodes UTF-16BE content.
func decodeLiteralString(raw []byte) string {
	var out []byte
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 == len(raw) {
			out = append(out, c)
			continue
		}
		i++
		switch e := raw[i]; e {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case '\r', '\n':
			// Line continuation.
		default:
			if e >= '0' && e <= '7' {
				j := i
				for j < len(raw) && j < i+3 && raw[j] >= '0' && raw[j] <= '7' {
					j++
				}
				n, _ := strconv.ParseUint(string(raw[i:j]), 8, 8)
				out = append(out, byte(n))
				i = j - 1
				continue
			}
			out = append(out, e)
		}
	}
	return decodeTextString(out)
}

// decodeHexString decodes a PDF hex string. Whitespace is ignored and an
// odd trailing digit is padded with zero.
func decodeHexString(raw []byte) string {
	digits := make([]byte, 0, len(raw)+1)
	for _, c := range raw {
		if _, ok := hexValue(c); ok {
			digits = append(digits, c)
		}
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}

	out := make([]byte, len(digits)/2)
	for i := range out {
		hi, _ := hexValue(digits[2*i])
		lo, _ := hexValue(digits[2*i+1])
		out[i] = hi<<4 | lo
	}
	return decodeTextString(out)
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// decodeTextString decodes UTF-16BE text strings. Anything else is
// returned as is.
func decodeTextString(b []byte) string {
	if !bytes.HasPrefix(b, utf16BOM) {
		return string(b)
	}
	dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
	out, err := dec.Bytes(b)
	if err != nil {
		return ""
	}
	return string(out)
}
