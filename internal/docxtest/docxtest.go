// Package docxtest builds minimal DOCX archives for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Namespace declarations for the root <w:document> element.
const documentNamespaces = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing" ` +
	`xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
	`xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture" ` +
	`xmlns:wpg="http://schemas.microsoft.com/office/word/2010/wordprocessingGroup" ` +
	`xmlns:wpc="http://schemas.microsoft.com/office/word/2010/wordprocessingCanvas" ` +
	`xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"`

// ImageRelType is the relationship type of embedded images.
const ImageRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

// HyperlinkRelType is the relationship type of external hyperlinks.
const HyperlinkRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"

// Rel is a relationship of word/document.xml.
type Rel struct {
	ID       string
	Type     string
	Target   string // relative to word/
	External bool
}

// Builder assembles a DOCX package.
type Builder struct {
	Body   string            // inner XML of <w:body>
	Styles string            // inner XML of <w:styles>; omitted when empty
	Rels   []Rel             // word/_rels/document.xml.rels entries
	Parts  map[string][]byte // extra archive entries, keyed by full path
}

// New returns a builder for the given body XML.
func New(body string) *Builder {
	return &Builder{Body: body, Parts: make(map[string][]byte)}
}

// WithStyles sets the styles part content.
func (b *Builder) WithStyles(styles string) *Builder {
	b.Styles = styles
	return b
}

// WithImage adds an image relationship and, when data is non-nil, the media part.
func (b *Builder) WithImage(id, target string, data []byte) *Builder {
	b.Rels = append(b.Rels, Rel{ID: id, Type: ImageRelType, Target: target})
	if data != nil {
		b.Parts["word/"+target] = data
	}
	return b
}

// WithRel adds an arbitrary relationship.
func (b *Builder) WithRel(rel Rel) *Builder {
	b.Rels = append(b.Rels, rel)
	return b
}

// Bytes returns the archive.
func (b *Builder) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	add := func(name, content string) error {
		w, err := zw.Create(name)
		if err != nil {
			return err
		}
		_, err = w.Write([]byte(content))
		return err
	}

	contentTypes := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Default Extension="png" ContentType="image/png"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`
	if err := add("[Content_Types].xml", contentTypes); err != nil {
		return nil, err
	}

	rels := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`
	if err := add("_rels/.rels", rels); err != nil {
		return nil, err
	}

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document ` + documentNamespaces + `>
  <w:body>` + b.Body + `</w:body>
</w:document>`
	if err := add("word/document.xml", document); err != nil {
		return nil, err
	}

	if b.Styles != "" {
		styles := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` + b.Styles + `</w:styles>`
		if err := add("word/styles.xml", styles); err != nil {
			return nil, err
		}
	}

	if len(b.Rels) > 0 {
		var sb strings.Builder
		sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
		for _, rel := range b.Rels {
			mode := ""
			if rel.External {
				mode = ` TargetMode="External"`
			}
			fmt.Fprintf(&sb, `<Relationship Id="%s" Type="%s" Target="%s"%s/>`, rel.ID, rel.Type, rel.Target, mode)
		}
		sb.WriteString(`</Relationships>`)
		if err := add("word/_rels/document.xml.rels", sb.String()); err != nil {
			return nil, err
		}
	}

	for name, data := range b.Parts {
		if err := add(name, string(data)); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MustBytes returns the archive or fails the test.
func (b *Builder) MustBytes(t testing.TB) []byte {
	t.Helper()
	data, err := b.Bytes()
	if err != nil {
		t.Fatalf("building docx: %v", err)
	}
	return data
}

// WriteFile writes the archive to dir/name and returns its path.
func (b *Builder) WriteFile(t testing.TB, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("creating dir: %v", err)
	}
	if err := os.WriteFile(p, b.MustBytes(t), 0o644); err != nil {
		t.Fatalf("writing docx: %v", err)
	}
	return p
}

// Paragraph returns a <w:p> with an optional style and plain text runs.
func Paragraph(style string, runs ...string) string {
	var sb strings.Builder
	sb.WriteString("<w:p>")
	if style != "" {
		fmt.Fprintf(&sb, `<w:pPr><w:pStyle w:val="%s"/></w:pPr>`, style)
	}
	for _, r := range runs {
		sb.WriteString(r)
	}
	sb.WriteString("</w:p>")
	return sb.String()
}

// Run returns a <w:r> holding text, with optional raw run properties.
func Run(rPr, text string) string {
	props := ""
	if rPr != "" {
		props = "<w:rPr>" + rPr + "</w:rPr>"
	}
	return fmt.Sprintf(`<w:r>%s<w:t xml:space="preserve">%s</w:t></w:r>`, props, text)
}

// Drawing returns a <w:r> with an inline picture referencing relID.
// An empty descr omits the descr attribute.
func Drawing(relID, descr string) string {
	attr := ""
	if descr != "" {
		attr = fmt.Sprintf(` descr="%s"`, descr)
	}
	return fmt.Sprintf(`<w:r><w:drawing><wp:inline><wp:extent cx="100" cy="100"/><wp:docPr id="1" name="Picture 1"%s/>`+
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture"><pic:pic><pic:blipFill>`+
		`<a:blip r:embed="%s"/></pic:blipFill></pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r>`, attr, relID)
}

// EmptyDescrDrawing returns a <w:r> with an inline picture whose descr
// attribute is present but empty.
func EmptyDescrDrawing(relID string) string {
	return fmt.Sprintf(`<w:r><w:drawing><wp:inline><wp:extent cx="100" cy="100"/><wp:docPr id="1" name="Picture 1" descr=""/>`+
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture"><pic:pic><pic:blipFill>`+
		`<a:blip r:embed="%s"/></pic:blipFill></pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r>`, relID)
}

// GroupDrawing returns a <w:r> with a floating group shape holding one
// picture that references relID.
func GroupDrawing(relID, descr string) string {
	return fmt.Sprintf(`<w:r><w:drawing><wp:anchor><wp:extent cx="100" cy="100"/><wp:docPr id="5" name="Group 5" descr="%s"/>`+
		`<a:graphic><a:graphicData uri="http://schemas.microsoft.com/office/word/2010/wordprocessingGroup"><wpg:wgp>`+
		`<wpg:grpSpPr/><pic:pic><pic:nvPicPr><pic:cNvPr id="6" name="Picture 6"/></pic:nvPicPr><pic:blipFill>`+
		`<a:blip r:embed="%s"/></pic:blipFill></pic:pic></wpg:wgp></a:graphicData></a:graphic></wp:anchor></w:drawing></w:r>`, descr, relID)
}
