package docx

import (
	"regexp"
	"strings"
)

// defaultParagraphStyle is the name Word gives the default paragraph style.
const defaultParagraphStyle = "Normal"

// builtinNames maps the lower-case names Word stores for built-in styles to
// the names shown in the Word UI.
var builtinNames = map[string]string{
	"caption":  "Caption",
	"footer":   "Footer",
	"header":   "Header",
	"normal":   "Normal",
	"subtitle": "Subtitle",
	"title":    "Title",
}

var (
	builtinHeadingName = regexp.MustCompile(`^heading (\d)$`)
	builtinHeadingID   = regexp.MustCompile(`(?i)^heading(\d)$`)
)

// StyleResolver maps paragraph style IDs to display names.
type StyleResolver struct {
	names       map[string]string // styleId -> display name (paragraph styles only)
	defaultName string
	haveStyles  bool
}

// NewStyleResolver creates a new style resolver from parsed styles.
// A nil styles part is valid: names are then derived from well-known IDs.
func NewStyleResolver(styles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		names:       make(map[string]string),
		defaultName: defaultParagraphStyle,
	}

	if styles == nil {
		return sr
	}
	sr.haveStyles = true

	for _, style := range styles.Styles {
		if style.Type != "" && style.Type != "paragraph" {
			continue
		}
		name := uiName(style.Name.Val)
		if name == "" {
			name = style.StyleID
		}
		sr.names[style.StyleID] = name
		if style.Default == "1" {
			sr.defaultName = name
		}
	}

	return sr
}

// Name returns the display name for a paragraph style ID.
//
// An empty ID resolves to the default paragraph style. When the document
// carries a styles part, an unknown ID also resolves to the default style
// (Word's own behaviour). Without a styles part, built-in IDs such as
// "Heading1" are translated and any other ID is returned as is.
func (sr *StyleResolver) Name(styleID string) string {
	if styleID == "" {
		return sr.defaultName
	}

	if name, ok := sr.names[styleID]; ok {
		return name
	}

	if sr.haveStyles {
		return sr.defaultName
	}

	return idName(styleID)
}

// uiName converts a stored built-in style name into its UI form
// ("heading 1" -> "Heading 1").
func uiName(name string) string {
	lower := strings.ToLower(name)
	if ui, ok := builtinNames[lower]; ok {
		return ui
	}
	if m := builtinHeadingName.FindStringSubmatch(lower); m != nil {
		return "Heading " + m[1]
	}
	return name
}

// idName derives a display name from a built-in style ID.
func idName(styleID string) string {
	if m := builtinHeadingID.FindStringSubmatch(styleID); m != nil {
		return "Heading " + m[1]
	}
	if ui, ok := builtinNames[strings.ToLower(styleID)]; ok {
		return ui
	}
	return styleID
}
