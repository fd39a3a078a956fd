package stats

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

const separator = "================================================================================"

// invalidDocumentHints are message fragments that indicate the input is not a
// usable Word document.
var invalidDocumentHints = []string{
	"not a valid Word document",
	"document is unreadable",
}

// WriteSummary prints the conversion summary for a report.
func WriteSummary(w io.Writer, r Report) error {
	var b strings.Builder

	b.WriteString("\n" + separator + "\n")
	b.WriteString("                               CONVERSION SUMMARY\n")
	b.WriteString(separator + "\n\n")

	b.WriteString("📊 Overall Statistics:\n")
	fmt.Fprintf(&b, "   • Total files processed: %d\n", r.TotalFiles)
	fmt.Fprintf(&b, "   • Successfully converted: %d ✅\n", len(r.Succeeded))
	mark := "✅"
	if len(r.Failed) > 0 {
		mark = "❌"
	}
	fmt.Fprintf(&b, "   • Failed conversions: %d %s\n", len(r.Failed), mark)

	if r.TotalImages > 0 {
		b.WriteString("\n📷 Image Statistics:\n")
		fmt.Fprintf(&b, "   • Total images extracted: %d\n", r.TotalImages)
		b.WriteString("\n   Images per file:\n")
		for _, c := range r.ImageCounts {
			if c.Images > 0 {
				fmt.Fprintf(&b, "   • %s: %d images\n", c.Document, c.Images)
			}
		}
	}

	if len(r.Documents) > 0 {
		b.WriteString("\n📑 Document structure:\n")
		for _, d := range r.Documents {
			fmt.Fprintf(&b, "   • %s: %d headings, %d code blocks, %d paragraphs, %d images\n",
				d.Document, d.HeadingCount(), d.CodeBlocks, d.Paragraphs, d.ImageLinks)
			for _, img := range d.Images {
				fmt.Fprintf(&b, "     - %s%s\n", img.File, describeImage(img))
			}
		}
	}

	if len(r.Succeeded) > 0 {
		b.WriteString("\n✅ Successfully converted files:\n")
		for _, file := range r.Succeeded {
			fmt.Fprintf(&b, "   • %s\n", file)
		}
	}

	if len(r.Failed) > 0 {
		b.WriteString("\n❌ Failed conversions:\n")
		for _, f := range r.Failed {
			fmt.Fprintf(&b, "   • %s\n", f.Path)
			fmt.Fprintf(&b, "     Error: %s\n", f.Message)

			if isInvalidDocument(f.Message) {
				fmt.Fprintf(&b, "\n   Suggestion for '%s':\n", filepath.Base(f.Path))
				b.WriteString("   • Check if the file is:\n")
				b.WriteString("     - A valid .docx file (not .doc)\n")
				b.WriteString("     - Not password protected\n")
				b.WriteString("     - Not corrupted\n")
			}
		}
	}

	if len(r.FailedImages) > 0 {
		b.WriteString("\n⚠️  Failed image extractions:\n")
		for _, f := range r.FailedImages {
			fmt.Fprintf(&b, "   • %s\n", f.Document)
			fmt.Fprintf(&b, "     Error: %s\n", f.Message)
		}
	}

	b.WriteString("\n" + separator + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func describeImage(img ImageInfo) string {
	if img.Width == 0 || img.Height == 0 {
		return ""
	}
	return fmt.Sprintf(" (%dx%d %s)", img.Width, img.Height, img.Format)
}

func isInvalidDocument(message string) bool {
	for _, hint := range invalidDocumentHints {
		if strings.Contains(message, hint) {
			return true
		}
	}
	return false
}

// WriteYAML writes the report as YAML.
func WriteYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}
