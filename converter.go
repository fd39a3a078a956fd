package docdown

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/docdown/assets"
	"github.com/tsawler/docdown/docx"
	"github.com/tsawler/docdown/layout"
	"github.com/tsawler/docdown/markdown"
	"github.com/tsawler/docdown/model"
	"github.com/tsawler/docdown/stats"
)

// Converter provides a fluent interface for converting Word documents.
// Each configuration method returns a new Converter instance, making it
// safe for concurrent use and allowing method chaining.
type Converter struct {
	source  string
	options ConvertOptions
}

// Result describes one converted document.
type Result struct {
	// Source is the input document path.
	Source string

	// Output is the path of the written Markdown file.
	Output string

	// Images lists the written images in sequence order.
	Images []model.ImageReference

	// ImageAttempts counts image relationships that carried a payload,
	// including those that failed to write.
	ImageAttempts int

	// ImageFailures lists images that could not be written.
	ImageFailures []stats.ImageFailure

	// Outline summarizes the structure of the produced Markdown.
	Outline markdown.Outline
}

// clone creates a copy of the Converter with a copy of its options.
func (c *Converter) clone() *Converter {
	return &Converter{
		source:  c.source,
		options: c.options.clone(),
	}
}

// ============================================================================
// Configuration Methods (return new Converter instance)
// ============================================================================

// OutputDir sets the directory receiving Markdown files and images.
//
// Example:
//
//	result, err := docdown.Open("doc.docx").OutputDir("out").ConvertFile(ctx)
func (c *Converter) OutputDir(dir string) *Converter {
	newConv := c.clone()
	newConv.options.outputDir = dir
	return newConv
}

// Fs sets the filesystem used for both input and output.
// Tests typically pass afero.NewMemMapFs().
func (c *Converter) Fs(fs afero.Fs) *Converter {
	newConv := c.clone()
	newConv.options.fs = fs
	return newConv
}

// Logger sets the logger for conversion diagnostics.
func (c *Converter) Logger(logger *slog.Logger) *Converter {
	newConv := c.clone()
	newConv.options.logger = logger
	return newConv
}

// WithOCR sets a recognizer used to describe images that have no alt text.
//
// Example:
//
//	client, err := ocr.New()
//	if err == nil {
//	    defer client.Close()
//	    conv = conv.WithOCR(client)
//	}
func (c *Converter) WithOCR(r assets.Recognizer) *Converter {
	newConv := c.clone()
	newConv.options.recognizer = r
	return newConv
}

// Concurrency sets how many documents a directory conversion processes at
// once. Values below 1 are treated as 1.
func (c *Converter) Concurrency(n int) *Converter {
	newConv := c.clone()
	if n < 1 {
		n = 1
	}
	newConv.options.concurrency = n
	return newConv
}

// ============================================================================
// Terminal Operations
// ============================================================================

// ConvertFile converts the source document into the output directory.
//
// A zero-byte source returns ErrDocumentEmpty. A source that cannot be
// opened as a Word document returns ErrDocumentUnreadable wrapping the
// cause. No Markdown file is written when an error is returned. If the
// error happens after images were extracted, the returned Result is non-nil
// and carries the images and image failures of the attempt.
func (c *Converter) ConvertFile(ctx context.Context) (*Result, error) {
	if c.source == "" {
		return nil, ErrNoSource
	}
	return convertDocument(ctx, c.source, c.options.outputDir, c.options)
}

// convertDocument translates one document into targetDir.
// Panics raised while translating are returned as errors. Once images have
// been extracted, res is returned even on error.
func convertDocument(ctx context.Context, path, targetDir string, opts ConvertOptions) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("converting %s: unexpected failure: %v", path, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := opts.log()
	log.Info("docdown: converting", "path", path)

	data, err := afero.ReadFile(opts.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrDocumentEmpty, path)
	}

	doc, err := docx.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDocumentUnreadable, path, err)
	}
	defer doc.Close()

	docBase := DocumentName(path)
	imageDir := filepath.Join(targetDir, assets.ImagesDir)
	if err := opts.fs.MkdirAll(imageDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", imageDir, err)
	}

	extracted := assets.NewExtractorWithConfig(opts.fs, assets.Config{
		Logger:     log,
		Recognizer: opts.recognizer,
	}).Extract(doc.Relationships(), imageDir, docBase)

	res = &Result{
		Source:        path,
		Images:        sortedImages(extracted.Refs),
		ImageAttempts: extracted.Count,
		ImageFailures: extracted.Failures,
	}

	emitter := markdown.NewEmitter()
	for _, p := range doc.Paragraphs() {
		items := markdown.Linearize(p, extracted.Refs)
		emitter.Emit(layout.Classify(p, items))
	}
	content := emitter.String()

	output := filepath.Join(targetDir, docBase+".md")
	if err := afero.WriteFile(opts.fs, output, []byte(content), 0o644); err != nil {
		return res, fmt.Errorf("writing %s: %w", output, err)
	}
	log.Info("docdown: converted", "path", path, "output", output)

	res.Output = output
	res.Outline = markdown.ParseOutline([]byte(content))
	return res, nil
}

// DocumentName returns the base name used for a document's outputs: the
// file name without its final extension, in Unicode NFC form.
func DocumentName(path string) string {
	base := filepath.Base(path)
	return norm.NFC.String(strings.TrimSuffix(base, filepath.Ext(base)))
}

func sortedImages(refs map[string]model.ImageReference) []model.ImageReference {
	images := make([]model.ImageReference, 0, len(refs))
	for _, ref := range refs {
		images = append(images, ref)
	}
	sort.Slice(images, func(i, j int) bool { return images[i].Seq < images[j].Seq })
	return images
}
