package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tsawler/docdown"
	"github.com/tsawler/docdown/ocr"
	"github.com/tsawler/docdown/stats"
)

// logFileName returns the per-run log file name for t.
func logFileName(t time.Time) string {
	return "docdown_" + t.Format("20060102_150405") + ".log"
}

// setupLogging logs to stderr and to a timestamped file in logDir.
// The returned function closes the file.
func setupLogging(logDir string, verbose bool) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.Create(filepath.Join(logDir, logFileName(time.Now())))
	if err != nil {
		return nil, nil, fmt.Errorf("creating log file: %w", err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(io.MultiWriter(os.Stderr, f), &slog.HandlerOptions{Level: level})
	return slog.New(handler), func() { f.Close() }, nil
}

func run(ctx context.Context, cfg config, source, target string, stdout io.Writer) error {
	logger, closeLog, err := setupLogging(cfg.LogDir, cfg.Verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	conv := docdown.Open(source).
		OutputDir(target).
		Concurrency(cfg.Concurrency).
		Logger(logger)

	if cfg.OCRAlt {
		client, err := ocr.New()
		if err != nil {
			logger.Warn("docdown: OCR unavailable, images without alt text keep the default", "error", err)
		} else {
			defer client.Close()
			if err := client.SetLanguage(cfg.OCRLang); err != nil {
				logger.Warn("docdown: setting OCR language", "lang", cfg.OCRLang, "error", err)
			}
			conv = conv.WithOCR(client)
		}
	}

	st, err := conv.Convert(ctx)
	if err != nil && st == nil {
		logger.Error("docdown: fatal error", "error", err)
		return err
	}
	if err != nil {
		logger.Warn("docdown: run interrupted", "error", err)
	}

	report := st.Snapshot()
	if werr := stats.WriteSummary(stdout, report); werr != nil {
		return werr
	}
	if cfg.Report != "" {
		if werr := writeReport(cfg.Report, report); werr != nil {
			return werr
		}
		logger.Info("docdown: wrote report", "path", cfg.Report)
	}

	if err != nil {
		return err
	}
	if st.Failed() {
		return errConversionFailed
	}
	return nil
}

func writeReport(path string, report stats.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := stats.WriteYAML(f, report); err != nil {
		f.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	return f.Close()
}
