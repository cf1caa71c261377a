// Package inspect looks for metadata left in a document before it is
// submitted for redaction.
//
// The redaction service returns redacted page text only. Whatever the
// document carries outside its pages survives untouched: the Info
// dictionary (author, creator, dates), XMP packets with document IDs, and
// EXIF blocks of embedded JPEG images. Inspect reports which of these are
// present so the user knows the original file is still not safe to share.
//
// Findings name the field and where it was found, never its value.
package inspect
