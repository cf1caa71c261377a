package inspect

import (
	"bytes"
	"encoding/binary"
	"strconv"

	exif "github.com/dsoprea/go-exif/v3"

	"github.com/nao1215/pdfredact/internal/model"
)

var (
	jpegSOI    = []byte{0xFF, 0xD8, 0xFF}
	exifHeader = []byte("Exif\x00\x00")
)

const (
	markerAPP1 = 0xE1
	markerSOS  = 0xDA
)

// exifKinds maps EXIF tag names to finding kinds.
var exifKinds = map[string]string{
	"GPSLatitude":        model.FindingEXIFGPS,
	"GPSLongitude":       model.FindingEXIFGPS,
	"Make":               model.FindingEXIFCamera,
	"Model":              model.FindingEXIFCamera,
	"SerialNumber":       model.FindingEXIFSerial,
	"CameraSerialNumber": model.FindingEXIFSerial,
	"BodySerialNumber":   model.FindingEXIFSerial,
	"LensSerialNumber":   model.FindingEXIFSerial,
	"Software":           model.FindingEXIFSoftware,
	"ProcessingSoftware": model.FindingEXIFSoftware,
	"Artist":             model.FindingEXIFAuthor,
	"Author":             model.FindingEXIFAuthor,
	"Copyright":          model.FindingEXIFAuthor,
	"XPAuthor":           model.FindingEXIFAuthor,
	"DateTimeOriginal":   model.FindingEXIFDateTime,
	"DateTimeDigitized":  model.FindingEXIFDateTime,
	"DateTime":           model.FindingEXIFDateTime,
	"HostComputer":       model.FindingEXIFComputer,
}

// exifSegments returns the EXIF payload of every embedded JPEG, up to max
// images. Only the APP segments before the scan data are walked.
func exifSegments(data []byte, maxImages int) [][]byte {
	var segments [][]byte
	images := 0
	for off := 0; off < len(data) && images < maxImages; {
		i := bytes.Index(data[off:], jpegSOI)
		if i < 0 {
			break
		}
		start := off + i
		off = start + len(jpegSOI)

		if seg := app1Exif(data[start+2:]); seg != nil {
			images++
			segments = append(segments, seg)
		}
	}
	return segments
}

// app1Exif walks JPEG markers from just after SOI and returns the TIFF data
// of the first APP1 Exif segment.
func app1Exif(b []byte) []byte {
	for len(b) >= 4 && b[0] == 0xFF {
		marker := b[1]
		if marker == markerSOS {
			return nil
		}
		length := int(binary.BigEndian.Uint16(b[2:4]))
		if length < 2 || 2+length > len(b) {
			return nil
		}
		payload := b[4 : 2+length]
		if marker == markerAPP1 && bytes.HasPrefix(payload, exifHeader) {
			return payload[len(exifHeader):]
		}
		b = b[2+length:]
	}
	return nil
}

// inspectImage reports identifying EXIF tags of one image.
func inspectImage(segment []byte, index int) []model.MetadataFinding {
	raw, err := exif.SearchAndExtractExif(segment)
	if err != nil || raw == nil {
		return nil
	}
	entries, _, err := exif.GetFlatExifData(raw, nil)
	if err != nil {
		return nil
	}

	source := "image " + strconv.Itoa(index)
	var findings []model.MetadataFinding
	for _, entry := range entries {
		kind, ok := exifKinds[entry.TagName]
		if !ok || entry.Formatted == "" {
			continue
		}
		findings = append(findings, model.NewMetadataFinding(kind, entry.TagName, source))
	}
	return findings
}
