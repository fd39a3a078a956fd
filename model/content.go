package model

import "fmt"

// Kind is the role of a paragraph in the Markdown output.
type Kind int

const (
	KindEmpty Kind = iota
	KindNormal
	KindHeading
	KindCode
	KindImageOnly
)

func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "Normal"
	case KindHeading:
		return "Heading"
	case KindCode:
		return "Code"
	case KindImageOnly:
		return "ImageOnly"
	default:
		return "Empty"
	}
}

// ItemType tags a ContentItem.
type ItemType int

const (
	ItemText ItemType = iota
	ItemImage
)

// ContentItem is a text fragment or a rendered Markdown image link.
type ContentItem struct {
	Type    ItemType
	Content string
}

// Text returns a text content item.
func Text(s string) ContentItem { return ContentItem{Type: ItemText, Content: s} }

// Image returns an image content item rendering ![alt](path).
func Image(alt, path string) ContentItem {
	return ContentItem{Type: ItemImage, Content: fmt.Sprintf("![%s](%s)", alt, path)}
}

// ClassifiedParagraph is a paragraph ready for emission.
type ClassifiedParagraph struct {
	Kind  Kind
	Level int // 1-6 for headings, 0 otherwise
	Items []ContentItem
}

// ImageReference describes one extracted image.
type ImageReference struct {
	RelID    string
	Seq      int    // 1-based, per document
	FileName string // <doc>_image_<n>.<ext>
	Path     string // ./images/<FileName>

	// Probed from the image header; zero when the format is not decodable.
	Width  int
	Height int
	Format string

	// RecognizedText is OCR output used as alt text when the drawing has no description.
	RecognizedText string
}
