package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Outline summarizes the structure of a Markdown document.
type Outline struct {
	// Headings counts headings by level; index 0 is level 1.
	Headings   [6]int `yaml:"headings"`
	CodeBlocks int    `yaml:"code_blocks"`
	Images     int    `yaml:"images"`
	Paragraphs int    `yaml:"paragraphs"`
}

// HeadingCount returns the total number of headings.
func (o Outline) HeadingCount() int {
	n := 0
	for _, c := range o.Headings {
		n += c
	}
	return n
}

// ParseOutline parses md with goldmark and counts its block structure.
func ParseOutline(md []byte) Outline {
	var o Outline

	doc := goldmark.New().Parser().Parse(text.NewReader(md))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			if node.Level >= 1 && node.Level <= len(o.Headings) {
				o.Headings[node.Level-1]++
			}
		case *ast.FencedCodeBlock:
			o.CodeBlocks++
			return ast.WalkSkipChildren, nil
		case *ast.Image:
			o.Images++
		case *ast.Paragraph:
			o.Paragraphs++
		}
		return ast.WalkContinue, nil
	})

	return o
}
