package markdown

import (
	"strings"

	"github.com/tsawler/docdown/model"
)

const (
	codeFence = "```"
	tabWidth  = 4
)

// Emitter renders classified paragraphs as Markdown lines.
// An Emitter is not safe for concurrent use; use one per document.
type Emitter struct {
	inCode bool
	lines  []string
}

// NewEmitter returns an emitter outside any code block.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Emit appends the lines for one paragraph.
// Empty paragraphs inside a code block are dropped and keep the block open.
func (e *Emitter) Emit(cp model.ClassifiedParagraph) {
	if e.inCode && cp.Kind != model.KindCode && cp.Kind != model.KindEmpty {
		e.closeFence()
	}

	switch cp.Kind {
	case model.KindHeading:
		e.lines = append(e.lines, strings.Repeat("#", cp.Level)+" "+join(cp.Items, true))

	case model.KindCode:
		if !e.inCode {
			e.lines = append(e.lines, "", codeFence)
			e.inCode = true
		}
		line := join(cp.Items, true)
		e.lines = append(e.lines, strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth)))

	case model.KindImageOnly:
		e.lines = append(e.lines, "", cp.Items[0].Content, "")

	case model.KindNormal:
		if line := join(cp.Items, false); strings.TrimSpace(line) != "" {
			e.lines = append(e.lines, line)
		}

	case model.KindEmpty:
		if !e.inCode {
			e.lines = append(e.lines, "")
		}
	}
}

// Lines closes an open code block and returns the document lines with runs
// of blank lines collapsed to one.
func (e *Emitter) Lines() []string {
	if e.inCode {
		e.closeFence()
	}
	return collapseBlank(e.lines)
}

// String returns Lines joined by newlines.
func (e *Emitter) String() string {
	return strings.Join(e.Lines(), "\n")
}

func (e *Emitter) closeFence() {
	e.lines = append(e.lines, codeFence, "")
	e.inCode = false
}

// join concatenates item contents. When textOnly is set, image items are
// left out.
func join(items []model.ContentItem, textOnly bool) string {
	var b strings.Builder
	for _, item := range items {
		if textOnly && item.Type != model.ItemText {
			continue
		}
		b.WriteString(item.Content)
	}
	return b.String()
}

// collapseBlank keeps the first of each run of whitespace-only lines.
func collapseBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	prevBlank := false
	for _, line := range lines {
		blank := strings.TrimSpace(line) == ""
		if blank && prevBlank {
			continue
		}
		out = append(out, line)
		prevBlank = blank
	}
	return out
}
