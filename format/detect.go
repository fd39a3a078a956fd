// Package format provides file format detection for Word documents.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a recognised input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// DOC indicates a legacy binary Word (.doc) document.
	DOC
)

var (
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}                         // PK\x03\x04
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1} // Compound File Binary
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case DOC:
		return "DOC"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOCX:
		return ".docx"
	case DOC:
		return ".doc"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		return DOCX
	case ".doc":
		return DOC
	default:
		return Unknown
	}
}

// IsWordFile reports whether the filename has a Word extension (.doc or .docx).
// Both are attempted by a conversion run; legacy files are rejected later by
// the magic-byte check with a helpful message.
func IsWordFile(filename string) bool {
	return Detect(filename) != Unknown
}

// HasZIPMagic reports whether data starts with the ZIP local file header
// signature. Every DOCX package does.
func HasZIPMagic(data []byte) bool {
	return bytes.HasPrefix(data, zipMagic)
}

// DetectFromMagic checks file magic bytes to determine format.
// A ZIP signature is reported as DOCX; the archive contents are not inspected.
func DetectFromMagic(data []byte) Format {
	switch {
	case HasZIPMagic(data):
		return DOCX
	case bytes.HasPrefix(data, oleMagic):
		return DOC
	default:
		return Unknown
	}
}

// ReadMagic reads the leading bytes of r that DetectFromMagic needs.
// Short inputs are returned as is.
func ReadMagic(r io.Reader) ([]byte, error) {
	buf := make([]byte, len(oleMagic))
	n, err := io.ReadFull(r, buf)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		return buf[:n], nil
	}
	if err != nil {
		return nil, err
	}
	return buf, nil
}
