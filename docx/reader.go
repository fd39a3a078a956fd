// Package docx provides DOCX (Office Open XML) document parsing.
//
// A [Reader] exposes the two things the Markdown translation needs from a
// Word document: the body paragraphs in document order, with their style
// names and runs, and the main part's relationship table with the binary
// payload of every internal target.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/tsawler/docdown/model"
)

// defaultMainPart is used when the package relationships do not name the
// main document part.
const defaultMainPart = "word/document.xml"

// Reader provides access to DOCX document content.
type Reader struct {
	zipReader *zip.Reader
	closer    io.Closer
	files     map[string]*zip.File

	mainPart   string
	document   *documentXML
	styles     *StyleResolver
	rels       []model.Relationship
	paragraphs []model.Paragraph
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r, err := newReader(&zr.Reader, zr)
	if err != nil {
		zr.Close()
		return nil, err
	}
	return r, nil
}

// NewReader reads a DOCX document from r, which holds size bytes.
// The caller keeps ownership of r; Close on the returned Reader is a no-op
// for the underlying data.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr, nil)
}

func newReader(zr *zip.Reader, closer io.Closer) (*Reader, error) {
	r := &Reader{
		zipReader: zr,
		closer:    closer,
		files:     make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		r.files[f.Name] = f
	}

	r.mainPart = r.findMainPart()

	// Validate required files exist
	if err := r.validate(); err != nil {
		return nil, err
	}

	// Parse relationships first (needed to resolve images)
	if err := r.parseRelationships(); err != nil {
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}

	// Parse styles.xml (optional but usually present)
	r.parseStyles()

	if err := r.parseDocument(); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// Paragraphs returns the body paragraphs in document order.
func (r *Reader) Paragraphs() []model.Paragraph {
	return r.paragraphs
}

// Relationships returns the main part's relationships in the order they
// are declared.
func (r *Reader) Relationships() []model.Relationship {
	return r.rels
}

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	required := []string{
		"[Content_Types].xml",
		r.mainPart,
	}

	for _, name := range required {
		if r.files[name] == nil {
			return fmt.Errorf("missing required file: %s", name)
		}
	}

	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	f := r.files[name]
	if f == nil {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// findMainPart resolves the main document part from _rels/.rels.
func (r *Reader) findMainPart() string {
	data, err := r.getFileContent("_rels/.rels")
	if err != nil {
		return defaultMainPart
	}

	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return defaultMainPart
	}

	for _, rel := range rels.Relationships {
		if rel.Type == relTypeOfficeDocument {
			return resolveTarget("", rel.Target)
		}
	}
	return defaultMainPart
}

// parseRelationships parses the main part's relationships file and loads
// the payload of each internal target.
func (r *Reader) parseRelationships() error {
	dir, base := path.Split(r.mainPart)
	data, err := r.getFileContent(dir + "_rels/" + base + ".rels")
	if err != nil {
		// Relationships file is optional
		return nil
	}

	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return err
	}

	r.rels = make([]model.Relationship, 0, len(rels.Relationships))
	for _, rel := range rels.Relationships {
		entry := model.Relationship{
			ID:       rel.ID,
			Type:     rel.Type,
			Target:   rel.Target,
			External: strings.EqualFold(rel.TargetMode, "External"),
		}
		if !entry.External {
			// A part missing from the archive leaves Data nil.
			if payload, err := r.getFileContent(resolveTarget(dir, rel.Target)); err == nil {
				entry.Data = payload
			}
		}
		r.rels = append(r.rels, entry)
	}

	return nil
}

// parseStyles parses the styles definition file.
func (r *Reader) parseStyles() {
	data, err := r.getFileContent("word/styles.xml")
	if err != nil {
		r.styles = NewStyleResolver(nil)
		return
	}

	styles := &stylesXML{}
	if err := xml.Unmarshal(data, styles); err != nil {
		// Styles are optional - continue with built-in names
		r.styles = NewStyleResolver(nil)
		return
	}
	r.styles = NewStyleResolver(styles)
}

// parseDocument parses the main document content.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent(r.mainPart)
	if err != nil {
		return err
	}

	r.document = &documentXML{}
	if err := xml.Unmarshal(data, r.document); err != nil {
		return fmt.Errorf("unmarshaling %s: %w", r.mainPart, err)
	}

	r.processParagraphs()
	return nil
}

// processParagraphs converts all body paragraphs into model paragraphs.
func (r *Reader) processParagraphs() {
	if r.document == nil || r.document.Body == nil {
		return
	}

	r.paragraphs = make([]model.Paragraph, 0, len(r.document.Body.Paragraphs))
	for _, p := range r.document.Body.Paragraphs {
		r.paragraphs = append(r.paragraphs, r.processParagraph(p))
	}
}

// processParagraph converts a single paragraph.
func (r *Reader) processParagraph(p paragraphXML) model.Paragraph {
	parsed := model.Paragraph{
		StyleName: r.styles.Name(p.Properties.Style.Val),
		Runs:      make([]model.Run, 0, len(p.Runs)),
	}

	for _, run := range p.Runs {
		parsed.Runs = append(parsed.Runs, convertRun(run))
	}

	return parsed
}

// convertRun copies the directly declared formatting and drawings of a run.
func convertRun(run runXML) model.Run {
	out := model.Run{Text: run.Text}

	if props := run.Properties; props != nil {
		out.HasProperties = true
		if props.Font != nil {
			out.FontName = props.Font.ASCII
		}
		if props.FontSize != nil {
			out.FontSize = props.FontSize.Val
			out.FontSizeSet = true
		}
		if props.Bold != nil {
			out.BoldSet = true
			out.Bold = props.Bold.Val
		}
	}

	for _, dr := range run.Drawings {
		pic := dr.picture()
		if pic == nil || pic.Blip == nil || pic.Blip.Embed == "" {
			continue
		}
		d := model.Drawing{RelID: pic.Blip.Embed}
		if pic.DocPr.Descr != nil {
			d.Description = *pic.DocPr.Descr
			d.HasDescription = true
		}
		out.Drawings = append(out.Drawings, d)
	}

	return out
}

// resolveTarget turns a relationship target into an archive path.
// Targets starting with "/" are package absolute; others are relative to dir.
func resolveTarget(dir, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return strings.TrimPrefix(path.Clean(dir+target), "/")
}
