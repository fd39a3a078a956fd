// Package assets extracts embedded images from a document's relationship
// table and writes them next to the generated Markdown.
//
// Images are named <doc>_image_<n>.<ext>, where n numbers the images written
// for one document starting at 1. A failed write or a relationship without a
// payload does not consume a number, so the written files are always
// numbered 1..k.
package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder for probing
	_ "image/jpeg" // register JPEG decoder for probing
	_ "image/png"  // register PNG decoder for probing
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"  // register BMP decoder for probing
	_ "golang.org/x/image/tiff" // register TIFF decoder for probing
	_ "golang.org/x/image/webp" // register WebP decoder for probing

	"github.com/tsawler/docdown/model"
	"github.com/tsawler/docdown/stats"
)

// ImagesDir is the directory, relative to the Markdown file, that holds
// extracted images.
const ImagesDir = "images"

// defaultExtension replaces extensions outside allowedExtensions.
const defaultExtension = "png"

// allowedExtensions are kept as declared; anything else is written as .png.
// The bytes are never re-encoded.
var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"bmp":  true,
}

// Recognizer produces a textual description of an image, used as alt text
// when the document provides none.
type Recognizer interface {
	AltText(data []byte) (string, error)
}

// Config configures an Extractor.
type Config struct {
	// Logger receives per-image diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// Recognizer, when set, is run on every written image.
	Recognizer Recognizer
}

// Extractor writes image relationships to a filesystem.
type Extractor struct {
	fs     afero.Fs
	config Config
}

// Result is the outcome of extracting one document's images.
type Result struct {
	// Refs maps relationship ids to successfully written images.
	Refs map[string]model.ImageReference

	// Count is the number of extraction attempts, including failed writes.
	Count int

	// Written is the number of images saved.
	Written int

	// Failures lists images that could not be written.
	Failures []stats.ImageFailure
}

// NewExtractor creates an extractor writing to fs.
func NewExtractor(fs afero.Fs) *Extractor {
	return NewExtractorWithConfig(fs, Config{})
}

// NewExtractorWithConfig creates an extractor with custom configuration.
func NewExtractorWithConfig(fs afero.Fs, config Config) *Extractor {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Extractor{fs: fs, config: config}
}

// Extract writes every image relationship with a payload into imageDir and
// returns the mapping from relationship id to output-relative path.
// A failed write is recorded in the result and does not stop extraction.
func (e *Extractor) Extract(rels []model.Relationship, imageDir, docBase string) Result {
	result := Result{Refs: make(map[string]model.ImageReference)}
	log := e.config.Logger

	for _, rel := range rels {
		if !rel.IsImage() || len(rel.Data) == 0 {
			continue
		}

		result.Count++
		seq := result.Written + 1
		fileName := FileName(docBase, seq, Extension(rel.Target))

		if err := e.write(filepath.Join(imageDir, fileName), rel.Data); err != nil {
			msg := fmt.Sprintf("Failed to extract image %d from %s: %v", result.Count, docBase, err)
			log.Error("assets: "+msg, "document", docBase, "rel", rel.ID)
			result.Failures = append(result.Failures, stats.ImageFailure{Document: docBase, Message: msg})
			continue
		}

		result.Written = seq
		ref := model.ImageReference{
			RelID:    rel.ID,
			Seq:      seq,
			FileName: fileName,
			Path:     "./" + path.Join(ImagesDir, fileName),
		}
		e.probe(&ref, rel.Data)
		e.recognize(&ref, rel.Data)

		result.Refs[rel.ID] = ref
		log.Debug("assets: saved image", "file", fileName, "rel", rel.ID)
	}

	if result.Written > 0 {
		log.Info(fmt.Sprintf("assets: extracted %d images from %s", result.Written, docBase))
	}

	return result
}

func (e *Extractor) write(name string, data []byte) error {
	if err := e.fs.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(e.fs, name, data, 0o644)
}

// probe records the dimensions and format found in the image header.
func (e *Extractor) probe(ref *model.ImageReference, data []byte) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		e.config.Logger.Debug("assets: could not probe image", "file", ref.FileName, "error", err)
		return
	}
	ref.Width = cfg.Width
	ref.Height = cfg.Height
	ref.Format = format
}

func (e *Extractor) recognize(ref *model.ImageReference, data []byte) {
	if e.config.Recognizer == nil {
		return
	}
	text, err := e.config.Recognizer.AltText(data)
	if err != nil {
		e.config.Logger.Debug("assets: recognition failed", "file", ref.FileName, "error", err)
		return
	}
	ref.RecognizedText = text
}

// Extension returns the output extension for a relationship target: the
// lower-cased text after the last dot, or "png" when that is not a
// supported raster extension.
func Extension(target string) string {
	ext := strings.ToLower(target[strings.LastIndex(target, ".")+1:])
	if !allowedExtensions[ext] {
		return defaultExtension
	}
	return ext
}

// FileName returns the image file name for a document and sequence number.
func FileName(docBase string, seq int, ext string) string {
	return fmt.Sprintf("%s_image_%d.%s", docBase, seq, ext)
}
