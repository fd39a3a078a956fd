package model

import (
	"strconv"
	"strings"
)

// Paragraph is a body paragraph of a document.
type Paragraph struct {
	// StyleName is the display name of the paragraph style ("Heading 1", "Normal").
	StyleName string
	Runs      []Run
}

// Run is a contiguous span of text sharing uniform formatting, or an
// embedded drawing.
type Run struct {
	Text string

	// HasProperties is true when the run carries an explicit <w:rPr>.
	HasProperties bool

	// Formatting declared directly on the run. Empty means not declared.
	FontName    string
	FontSize    string // half-points, raw attribute value
	FontSizeSet bool   // <w:sz> present, even without a value
	Bold        string // raw w:val of <w:b>; "" with BoldSet means plain <w:b/>
	BoldSet     bool

	Drawings []Drawing
}

// Drawing is an inline or floating picture inside a run.
type Drawing struct {
	RelID          string // r:embed of the blip
	Description    string // docPr descr (alt text)
	HasDescription bool   // descr attribute present, even when empty
}

// Font returns the declared font name, if any.
func (r Run) Font() (string, bool) {
	return r.FontName, r.FontName != ""
}

// HalfPoints returns the declared font size in half-points.
// ok is false when no size is declared. A declared but malformed or empty
// size returns a non-nil error.
func (r Run) HalfPoints() (size int, ok bool, err error) {
	if r.FontSize == "" && !r.FontSizeSet {
		return 0, false, nil
	}
	size, err = strconv.Atoi(strings.TrimSpace(r.FontSize))
	if err != nil {
		return 0, true, err
	}
	return size, true, nil
}

// IsBold reports whether the run declares bold explicitly and the
// declaration is not switched off.
func (r Run) IsBold() bool {
	if !r.BoldSet {
		return false
	}
	switch strings.ToLower(r.Bold) {
	case "false", "0", "off":
		return false
	}
	return true
}

// Relationship is one entry of a document part's relationship table.
type Relationship struct {
	ID       string
	Type     string
	Target   string
	External bool
	Data     []byte // nil when the target is external or missing from the archive
}

// IsImage reports whether the relationship type is an image relationship.
func (r Relationship) IsImage() bool {
	return strings.Contains(r.Type, "image")
}
