package markdown

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/docdown/model"
)

// DefaultAltText is used for images without a description.
const DefaultAltText = "Image"

// Linearize converts a paragraph's runs into content items in run order.
//
// A run holding a drawing whose relationship id is in refs becomes an image
// link and its text is dropped. Otherwise a run with non-blank text becomes
// a text item holding the untrimmed text. Whitespace-only runs contribute
// nothing.
func Linearize(p model.Paragraph, refs map[string]model.ImageReference) []model.ContentItem {
	var items []model.ContentItem

	for _, run := range p.Runs {
		if images := runImages(run, refs); len(images) > 0 {
			items = append(items, images...)
			continue
		}
		if strings.TrimSpace(run.Text) != "" {
			items = append(items, model.Text(run.Text))
		}
	}

	return items
}

func runImages(run model.Run, refs map[string]model.ImageReference) []model.ContentItem {
	var items []model.ContentItem
	for _, d := range run.Drawings {
		ref, ok := refs[d.RelID]
		if !ok {
			continue
		}
		items = append(items, model.Image(AltText(d, ref.RecognizedText), ref.Path))
	}
	return items
}

// AltText returns the text placed inside ![...] for drawing d. Newlines
// become spaces and the result is trimmed and NFC normalized.
//
// A declared description is used even when it is empty. Without one the
// recognized text is used, then DefaultAltText.
func AltText(d model.Drawing, recognized string) string {
	if d.HasDescription || d.Description != "" {
		return cleanAlt(d.Description)
	}
	if alt := cleanAlt(recognized); alt != "" {
		return alt
	}
	return DefaultAltText
}

func cleanAlt(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	return norm.NFC.String(strings.TrimSpace(s))
}
