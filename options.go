package docdown

import (
	"log/slog"

	"github.com/spf13/afero"

	"github.com/tsawler/docdown/assets"
)

// ConvertOptions holds configuration for a conversion.
type ConvertOptions struct {
	// Filesystem used for reading sources and writing output
	fs afero.Fs

	// Output location; "" means the current directory
	outputDir string

	// Number of documents converted at once in a directory walk
	concurrency int

	logger     *slog.Logger
	recognizer assets.Recognizer
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		fs:          afero.NewOsFs(),
		outputDir:   "",
		concurrency: 1,
		logger:      nil, // nil means slog.Default()
		recognizer:  nil,
	}
}

// clone creates a copy of ConvertOptions.
func (o ConvertOptions) clone() ConvertOptions {
	return ConvertOptions{
		fs:          o.fs,
		outputDir:   o.outputDir,
		concurrency: o.concurrency,
		logger:      o.logger,
		recognizer:  o.recognizer,
	}
}

func (o ConvertOptions) log() *slog.Logger {
	if o.logger == nil {
		return slog.Default()
	}
	return o.logger
}
