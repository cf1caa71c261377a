package model

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/sha3"
)

// shortDigestLength is the number of hex characters ShortDigest returns.
const shortDigestLength = 12

// UploadedFile is the document selected for submission.
// Only one UploadedFile is tracked per session at a time.
type UploadedFile struct {
	// Name is the base filename including its extension.
	// It is sent as the filename of the multipart "file" part.
	Name string `json:"name"`

	// Data holds the raw document bytes.
	// Excluded from JSON so reports never embed the unredacted document.
	Data []byte `json:"-"`

	// Digest is the hex encoded SHA3-256 of Data.
	// Logs identify documents by digest, never by content.
	Digest string `json:"digest"`
}

// NewUploadedFile creates an UploadedFile from a name and its content.
// Only the base name of name is kept.
func NewUploadedFile(name string, data []byte) *UploadedFile {
	sum := sha3.Sum256(data)
	return &UploadedFile{
		Name:   filepath.Base(name),
		Data:   data,
		Digest: hex.EncodeToString(sum[:]),
	}
}

// LoadUploadedFile reads the file at path into an UploadedFile.
// If maxSize is positive and the file is larger, ErrFileTooLarge is returned
// without reading the content.
func LoadUploadedFile(path string, maxSize int64) (*UploadedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, fmt.Errorf("%s (%d bytes): %w", path, info.Size(), ErrFileTooLarge)
	}

	data, err := os.ReadFile(path) //nolint:gosec // User-selected document path is intentional
	if err != nil {
		return nil, err
	}
	return NewUploadedFile(path, data), nil
}

// Ext returns the lower-case filename extension including the dot.
func (f *UploadedFile) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// Size returns the document size in bytes.
func (f *UploadedFile) Size() int64 {
	return int64(len(f.Data))
}

// ShortDigest returns an abbreviated digest for log lines and report headers.
func (f *UploadedFile) ShortDigest() string {
	if len(f.Digest) <= shortDigestLength {
		return f.Digest
	}
	return f.Digest[:shortDigestLength]
}
