package layout

import (
	"strings"

	"github.com/tsawler/docdown/model"
)

// monospaceFonts are the fonts that mark a paragraph as code.
var monospaceFonts = map[string]bool{
	"Consolas":    true,
	"Courier New": true,
}

// IsCode reports whether a paragraph should be emitted as a code line.
// A paragraph with no font-declaring runs is only code by style name;
// mixed-font lines are never code by font.
func IsCode(p model.Paragraph) bool {
	if strings.HasPrefix(strings.ToLower(p.StyleName), "code") {
		return true
	}

	declared := 0
	for _, run := range p.Runs {
		font, ok := run.Font()
		if !ok {
			continue
		}
		if !monospaceFonts[font] {
			return false
		}
		declared++
	}
	return declared > 0
}

// Classify determines the role of a paragraph given its linearized content.
func Classify(p model.Paragraph, items []model.ContentItem) model.ClassifiedParagraph {
	cp := model.ClassifiedParagraph{Items: items}

	if len(items) == 0 {
		cp.Kind = model.KindEmpty
		return cp
	}

	if level := HeadingLevel(p); level > 0 {
		cp.Kind = model.KindHeading
		cp.Level = level
		return cp
	}

	switch {
	case IsCode(p):
		cp.Kind = model.KindCode
	case len(items) == 1 && items[0].Type == model.ItemImage:
		cp.Kind = model.KindImageOnly
	default:
		cp.Kind = model.KindNormal
	}
	return cp
}
