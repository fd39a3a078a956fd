// Package stats accumulates the outcome of a conversion run and renders it
// as a human-readable summary or a YAML report.
//
// A Stats value is safe for concurrent use: documents converted in parallel
// merge their results into the same accumulator.
package stats

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ImageFailure records an image that could not be written.
type ImageFailure struct {
	Document string `yaml:"document"`
	Message  string `yaml:"message"`
}

// FileFailure records a document that could not be converted.
type FileFailure struct {
	Path    string `yaml:"path"`
	Message string `yaml:"message"`
}

// ImageCount is the number of images extracted from one document.
type ImageCount struct {
	Document string `yaml:"document"`
	Images   int    `yaml:"images"`
}

// ImageInfo describes one written image. Width, Height and Format are zero
// when the image header could not be decoded.
type ImageInfo struct {
	File   string `yaml:"file"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// DocumentDetail is the structure of one converted document.
type DocumentDetail struct {
	Document string `yaml:"document"`
	Output   string `yaml:"output"`

	// Headings counts headings by level; index 0 is level 1.
	Headings   [6]int      `yaml:"headings,flow"`
	CodeBlocks int         `yaml:"code_blocks"`
	Paragraphs int         `yaml:"paragraphs"`
	ImageLinks int         `yaml:"image_links"`
	Images     []ImageInfo `yaml:"images,omitempty"`
}

// HeadingCount returns the total number of headings.
func (d DocumentDetail) HeadingCount() int {
	n := 0
	for _, c := range d.Headings {
		n += c
	}
	return n
}

// Stats accumulates counters for a conversion run.
type Stats struct {
	mu sync.Mutex

	runID   string
	started time.Time

	totalFiles   int
	succeeded    []string
	failed       []FileFailure
	totalImages  int
	imageCounts  map[string]int
	imageOrder   []string
	failedImages []ImageFailure
	documents    []DocumentDetail
}

// New returns an empty accumulator stamped with a fresh run id.
func New() *Stats {
	return &Stats{
		runID:       uuid.NewString(),
		started:     time.Now(),
		imageCounts: make(map[string]int),
	}
}

// AddAttempt counts a file that the run tried to convert.
func (s *Stats) AddAttempt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalFiles++
}

// AddSuccess records a converted file.
func (s *Stats) AddSuccess(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.succeeded = append(s.succeeded, path)
}

// AddFailure records a file that failed to convert.
func (s *Stats) AddFailure(path, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed = append(s.failed, FileFailure{Path: path, Message: message})
}

// AddImages records the image count of one document and any image failures.
// A later call for the same document replaces its count.
func (s *Stats) AddImages(document string, count int, failures []ImageFailure) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.imageCounts[document]; ok {
		s.totalImages -= prev
	} else {
		s.imageOrder = append(s.imageOrder, document)
	}
	s.imageCounts[document] = count
	s.totalImages += count
	s.failedImages = append(s.failedImages, failures...)
}

// AddDocument records the structure of a converted document.
func (s *Stats) AddDocument(d DocumentDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.Images = append([]ImageInfo(nil), d.Images...)
	s.documents = append(s.documents, d)
}

// Failed reports whether any document or image failed.
func (s *Stats) Failed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.failed) > 0 || len(s.failedImages) > 0
}

// Report is a point-in-time copy of the accumulated counters.
type Report struct {
	RunID        string         `yaml:"run_id"`
	Started      time.Time      `yaml:"started"`
	Finished     time.Time      `yaml:"finished"`
	TotalFiles   int            `yaml:"total_files"`
	Succeeded    []string       `yaml:"succeeded"`
	Failed       []FileFailure  `yaml:"failed"`
	TotalImages  int            `yaml:"total_images"`
	ImageCounts  []ImageCount   `yaml:"image_counts"`
	FailedImages []ImageFailure `yaml:"failed_images"`

	// Documents lists converted documents ordered by path.
	Documents []DocumentDetail `yaml:"documents"`
}

// Snapshot copies the current counters into a Report.
func (s *Stats) Snapshot() Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := Report{
		RunID:        s.runID,
		Started:      s.started,
		Finished:     time.Now(),
		TotalFiles:   s.totalFiles,
		Succeeded:    append([]string(nil), s.succeeded...),
		Failed:       append([]FileFailure(nil), s.failed...),
		TotalImages:  s.totalImages,
		FailedImages: append([]ImageFailure(nil), s.failedImages...),
	}
	for _, doc := range s.imageOrder {
		r.ImageCounts = append(r.ImageCounts, ImageCount{Document: doc, Images: s.imageCounts[doc]})
	}
	for _, d := range s.documents {
		d.Images = append([]ImageInfo(nil), d.Images...)
		r.Documents = append(r.Documents, d)
	}
	sort.Slice(r.Documents, func(i, j int) bool { return r.Documents[i].Document < r.Documents[j].Document })
	return r
}
