// Package markdown turns classified paragraphs into Markdown lines.
//
// Conversion happens in two steps. [Linearize] flattens a paragraph's runs
// into an ordered list of text fragments and image links. An [Emitter]
// then renders classified paragraphs one at a time, opening and closing
// fenced code blocks as consecutive code paragraphs start and end, and
// collapsing runs of blank lines in the final output.
//
// [ParseOutline] parses the produced Markdown back with goldmark to summarize
// its structure for reporting.
package markdown
