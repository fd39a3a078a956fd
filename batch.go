package docdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"github.com/tsawler/docdown/format"
	"github.com/tsawler/docdown/stats"
)

// job is one document of a run and the directory receiving its output.
type job struct {
	path      string
	targetDir string
}

// Convert converts the source and returns the run statistics.
//
// A source file is converted into the output directory. A source directory
// is walked recursively and every .doc and .docx file is converted into the
// matching subdirectory of the output directory. Files that do not start
// with the ZIP signature are recorded as failed without being opened.
//
// Per-document failures are recorded in the returned Stats and never stop
// the run; use Stats.Failed to detect them. The error is non-nil only when
// the source cannot be read or ctx is cancelled. Cancellation is checked
// between documents; a document already being converted runs to completion.
func (c *Converter) Convert(ctx context.Context) (*stats.Stats, error) {
	if c.source == "" {
		return nil, ErrNoSource
	}

	opts := c.options
	info, err := opts.fs.Stat(c.source)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	if opts.outputDir != "" {
		if err := opts.fs.MkdirAll(opts.outputDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	var jobs []job
	if info.IsDir() {
		jobs, err = c.collect()
		if err != nil {
			return nil, err
		}
	} else if format.IsWordFile(c.source) {
		jobs = []job{{path: c.source, targetDir: opts.outputDir}}
	}

	st := stats.New()
	r := &run{opts: opts, stats: st}

	p := pool.New().WithMaxGoroutines(opts.concurrency)
	for _, j := range jobs {
		j := j
		p.Go(func() {
			if ctx.Err() != nil {
				return
			}
			r.process(ctx, j)
		})
	}
	p.Wait()

	r.logSkipped()

	if err := ctx.Err(); err != nil {
		return st, err
	}
	return st, nil
}

// collect walks the source tree and pairs every Word file with the output
// directory mirroring its location.
func (c *Converter) collect() ([]job, error) {
	opts := c.options
	opts.log().Info("docdown: processing directory", "path", c.source)

	var jobs []job
	err := afero.Walk(opts.fs, c.source, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == c.source {
				return err
			}
			opts.log().Warn("docdown: skipping unreadable path", "path", path, "error", err)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() || !format.IsWordFile(path) {
			return nil
		}

		rel, err := filepath.Rel(c.source, filepath.Dir(path))
		if err != nil {
			return err
		}
		jobs = append(jobs, job{path: path, targetDir: filepath.Join(opts.outputDir, rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", c.source, err)
	}
	return jobs, nil
}

// run holds the state shared by the documents of one Convert call.
type run struct {
	opts  ConvertOptions
	stats *stats.Stats

	mu      sync.Mutex
	skipped []string
}

func (r *run) process(ctx context.Context, j job) {
	log := r.opts.log()
	r.stats.AddAttempt()

	if err := r.checkSignature(j.path); err != nil {
		msg := signatureMessage(j.path, err)
		log.Error("docdown: "+msg, "error", err)
		r.stats.AddFailure(j.path, msg)
		r.skip(j.path)
		return
	}

	res, err := convertDocument(ctx, j.path, j.targetDir, r.opts)
	if res != nil {
		r.stats.AddImages(j.path, len(res.Images), res.ImageFailures)
	}
	if err != nil {
		log.Error("docdown: failed to convert", "path", j.path, "error", err)
		r.stats.AddFailure(j.path, err.Error())
		r.skip(j.path)
		return
	}

	r.stats.AddDocument(documentDetail(res))
	r.stats.AddSuccess(j.path)
}

// signatureMessage describes a file rejected by checkSignature.
func signatureMessage(path string, err error) string {
	if errors.Is(err, ErrLegacyWordDocument) {
		return fmt.Sprintf("File is in the legacy binary %s format (%s) and is not a valid Word document for conversion: %s\n"+
			"Save it as %s in Word and convert it again.", format.DOC, format.DOC.Extension(), path, format.DOCX.Extension())
	}
	return fmt.Sprintf("File has .docx extension but is not a valid Word document: %s\n"+
		"File may be corrupted or in an older .doc format.", path)
}

// documentDetail converts the outline and image metadata of a result into
// its report entry.
func documentDetail(res *Result) stats.DocumentDetail {
	d := stats.DocumentDetail{
		Document:   res.Source,
		Output:     res.Output,
		Headings:   res.Outline.Headings,
		CodeBlocks: res.Outline.CodeBlocks,
		Paragraphs: res.Outline.Paragraphs,
		ImageLinks: res.Outline.Images,
	}
	for _, img := range res.Images {
		d.Images = append(d.Images, stats.ImageInfo{
			File:   img.FileName,
			Width:  img.Width,
			Height: img.Height,
			Format: img.Format,
		})
	}
	return d
}

// checkSignature returns ErrNotWordDocument unless the file starts with the
// ZIP local file header. A file starting with the compound file signature
// of legacy Word documents also matches ErrLegacyWordDocument.
func (r *run) checkSignature(path string) error {
	f, err := r.opts.fs.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotWordDocument, err)
	}
	defer f.Close()

	magic, err := format.ReadMagic(f)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotWordDocument, err)
	}
	switch format.DetectFromMagic(magic) {
	case format.DOCX:
		return nil
	case format.DOC:
		return fmt.Errorf("%w: %w", ErrNotWordDocument, ErrLegacyWordDocument)
	default:
		return ErrNotWordDocument
	}
}

func (r *run) skip(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skipped = append(r.skipped, path)
}

func (r *run) logSkipped() {
	if len(r.skipped) == 0 {
		return
	}
	log := r.opts.log()
	log.Warn("docdown: skipped files", "count", len(r.skipped))
	for _, path := range r.skipped {
		log.Warn("docdown: skipped", "path", path)
	}
}
